package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sundial-labs/ccs/internal/workspace"
)

// gracePeriod protects freshly touched worktrees from reclamation. A
// worktree modified within this window is kept even when it holds no
// commits or changes, so a session that just provisioned it is not raced.
const gracePeriod = time.Hour

// baseBranches are the merge bases tried, in order, when deciding whether
// a worktree still carries unmerged work. The first one git can resolve
// decides.
var baseBranches = []string{"main", "master", "origin/main", "origin/master"}

// Decision is the classification verdict for a single worktree.
type Decision struct {
	Remove bool
	Reason string
}

func keep(reason string) Decision   { return Decision{Remove: false, Reason: reason} }
func remove(reason string) Decision { return Decision{Remove: true, Reason: reason} }

// Classifier decides whether a worktree directory is an orphan that can
// be reclaimed. Every ambiguity resolves to keeping the directory; losing
// work is strictly worse than leaking disk.
type Classifier struct {
	git *workspace.Git

	// now is swappable for tests.
	now func() time.Time
}

// NewClassifier returns a Classifier using the given git runner.
func NewClassifier(git *workspace.Git) *Classifier {
	return &Classifier{git: git, now: time.Now}
}

// Classify inspects the worktree at path. running holds the workspace
// paths currently mounted into live sandbox containers; a running session
// always wins, regardless of the directory's state.
func (c *Classifier) Classify(ctx context.Context, path string, running map[string]struct{}) Decision {
	if _, ok := running[path]; ok {
		return keep("container running")
	}

	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		// A directory under the data root without git metadata was either
		// half-provisioned or left behind by a failed removal.
		return remove("not a git worktree")
	}

	dirty, err := c.git.HasUncommittedChanges(ctx, path)
	if err != nil {
		return keep("cannot inspect working tree")
	}
	if dirty {
		return keep("uncommitted changes")
	}

	// A worktree sitting on a base branch has nothing to merge.
	branch, _ := c.git.CurrentBranch(ctx, path)
	if branch != "main" && branch != "master" {
		merged, resolved := c.mergedIntoBase(ctx, path)
		if !resolved {
			return keep("cannot determine merge status")
		}
		if !merged {
			return keep("unmerged commits")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return keep("cannot determine age")
	}
	if c.now().Sub(info.ModTime()) < gracePeriod {
		return keep("recently modified")
	}

	return remove("no changes, no running container")
}

// mergedIntoBase reports whether HEAD is contained in the first base
// branch git can resolve. resolved is false when no base resolves, which
// happens in repositories with unconventional default branches.
func (c *Classifier) mergedIntoBase(ctx context.Context, path string) (merged, resolved bool) {
	for _, base := range baseBranches {
		out, err := c.git.CommitsAhead(ctx, path, base)
		if err != nil {
			continue
		}
		return strings.TrimSpace(out) == "", true
	}
	return false, false
}
