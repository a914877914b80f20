package workspace

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sundial-labs/ccs/internal/system"
)

// Git runs the read and write git operations ccs needs. Structural
// worktree operations (add/remove) are deliberately delegated to the git
// binary; the on-disk linking format is git's responsibility.
type Git struct {
	exec system.CommandExecutor
}

// NewGit returns a Git using the given executor, or the default OS
// executor when nil.
func NewGit(exec system.CommandExecutor) *Git {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Git{exec: exec}
}

func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	full := append([]string{"-C", dir}, args...)
	out, err := g.exec.Execute(ctx, "git", full...)
	return string(out), err
}

// TopLevel returns the root of the working tree containing path.
func (g *Git) TopLevel(ctx context.Context, path string) (string, error) {
	out, err := g.run(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepo, path)
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute git directory for the repository containing
// path. For worktrees this is <main>/.git/worktrees/<name>.
func (g *Git) GitDir(ctx context.Context, path string) (string, error) {
	out, err := g.run(ctx, path, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepo, path)
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the checked-out branch name, empty for a
// detached HEAD.
func (g *Git) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasUncommittedChanges reports whether the working tree has any
// uncommitted modification (staged, unstaged, or untracked).
func (g *Git) HasUncommittedChanges(ctx context.Context, dir string) (bool, error) {
	out, err := g.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitsAhead returns the one-line log of commits reachable from HEAD
// but not from base. An error means the base could not be resolved.
func (g *Git) CommitsAhead(ctx context.Context, dir, base string) (string, error) {
	return g.run(ctx, dir, "log", base+"..HEAD", "--oneline")
}

// LocalBranchExists reports whether refs/heads/<name> exists.
func (g *Git) LocalBranchExists(ctx context.Context, repoDir, name string) bool {
	_, err := g.run(ctx, repoDir, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// CreateBranch creates a branch at the current HEAD.
func (g *Git) CreateBranch(ctx context.Context, repoDir, name string) error {
	if _, err := g.run(ctx, repoDir, "branch", name); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// AddWorktree materializes a worktree for an existing branch.
func (g *Git) AddWorktree(ctx context.Context, repoDir, worktreePath, branch string) error {
	if _, err := g.run(ctx, repoDir, "worktree", "add", worktreePath, branch); err != nil {
		return fmt.Errorf("failed to create worktree: %w", err)
	}
	return nil
}

// RemoveWorktree force-removes a worktree from the main repository's
// bookkeeping, deleting its directory.
func (g *Git) RemoveWorktree(ctx context.Context, mainRepoDir, worktreePath string) error {
	if _, err := g.run(ctx, mainRepoDir, "worktree", "remove", "--force", worktreePath); err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	return nil
}

// validBranchName matches safe branch names: alphanumeric start, then
// alphanumerics, hyphens, underscores, dots. Branch names double as
// directory names under the data root, so path separators are rejected.
var validBranchName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateBranchName checks that a branch name is safe for use in branch
// refs, directory paths, and container names.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name must not be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("branch name too long (max 128 characters)")
	}
	if !validBranchName.MatchString(name) {
		return fmt.Errorf("branch name %q contains invalid characters (allowed: alphanumeric, hyphens, underscores, dots)", name)
	}
	return nil
}
