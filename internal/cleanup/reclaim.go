package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/workspace"
)

// Result reports what a reclamation pass did. Kept and Errors entries are
// formatted "path: reason" so they can be printed directly.
type Result struct {
	Removed []string
	Kept    []string
	Errors  []string
}

// HadChanges reports whether the pass removed anything or hit errors,
// i.e. whether there is something worth telling the user about.
func (r *Result) HadChanges() bool {
	return len(r.Removed) > 0 || len(r.Errors) > 0
}

// Summary returns a one-line human-readable tally.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d removed, %d kept, %d errors", len(r.Removed), len(r.Kept), len(r.Errors))
}

// Reclaimer walks the worktree data root and removes orphaned worktrees.
// The data root layout is <DataRoot>/<repo-name>/<branch-name>; anything
// deeper is the worktree's own content and is never inspected.
//
// A pass never fails as a whole. Individual failures are collected in the
// result and the walk continues.
type Reclaimer struct {
	git        *workspace.Git
	inspector  SessionInspector
	classifier *Classifier

	// DataRoot is the directory scanned for worktrees.
	DataRoot string

	// DryRun classifies without removing anything.
	DryRun bool
}

// NewReclaimer returns a Reclaimer scanning dataRoot.
func NewReclaimer(git *workspace.Git, inspector SessionInspector, dataRoot string) *Reclaimer {
	return &Reclaimer{
		git:        git,
		inspector:  inspector,
		classifier: NewClassifier(git),
		DataRoot:   dataRoot,
	}
}

// Run performs one reclamation pass.
func (r *Reclaimer) Run(ctx context.Context) *Result {
	result := &Result{}

	repos, err := os.ReadDir(r.DataRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Debug("cannot read worktree data root", "path", r.DataRoot, "error", err)
		}
		return result
	}

	running := r.inspector.RunningWorkspaces(ctx)

	for _, repo := range repos {
		if !repo.IsDir() {
			continue
		}
		repoDir := filepath.Join(r.DataRoot, repo.Name())

		worktrees, err := os.ReadDir(repoDir)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", repoDir, err))
			continue
		}

		for _, wt := range worktrees {
			if !wt.IsDir() {
				continue
			}
			path := filepath.Join(repoDir, wt.Name())

			decision := r.classifier.Classify(ctx, path, running)
			if !decision.Remove {
				result.Kept = append(result.Kept, fmt.Sprintf("%s: %s", path, decision.Reason))
				continue
			}

			if r.DryRun {
				result.Removed = append(result.Removed, path)
				continue
			}

			if err := r.remove(ctx, path); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v (reason: %s)", path, err, decision.Reason))
				continue
			}
			logging.Info("removed orphaned worktree", "path", path, "reason", decision.Reason)
			result.Removed = append(result.Removed, path)
		}

		if !r.DryRun {
			r.pruneIfEmpty(repoDir)
		}
	}

	return result
}

// remove deletes a single worktree. When the directory is a linked
// worktree it is removed through git so the main repository's bookkeeping
// stays consistent; otherwise, or when git fails, the directory is
// deleted directly. A directory that is already gone counts as removed.
func (r *Reclaimer) remove(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if mainRepo, ok := mainRepositoryFor(path); ok {
		if err := r.git.RemoveWorktree(ctx, mainRepo, path); err != nil {
			logging.Debug("git worktree remove failed, deleting directly", "path", path, "error", err)
		} else if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}

	return os.RemoveAll(path)
}

// mainRepositoryFor resolves the main repository a linked worktree
// belongs to by following its .git pointer file. The pointer names
// <main>/.git/worktrees/<name>; walking up to the .git component and one
// level further yields the main repository.
func mainRepositoryFor(worktreePath string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(worktreePath, ".git"))
	if err != nil {
		return "", false
	}

	firstLine, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	metaDir, ok := strings.CutPrefix(firstLine, "gitdir: ")
	if !ok {
		return "", false
	}
	metaDir = strings.TrimSpace(metaDir)

	for dir := metaDir; ; {
		if filepath.Base(dir) == ".git" {
			return filepath.Dir(dir), true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// pruneIfEmpty removes a repository grouping directory once its last
// worktree is gone. Failure is ignored; a non-empty directory is the
// normal case.
func (r *Reclaimer) pruneIfEmpty(repoDir string) {
	entries, err := os.ReadDir(repoDir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(repoDir); err == nil {
		logging.Debug("pruned empty repository directory", "path", repoDir)
	}
}
