package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/logging"
)

// GenerateBranchName returns a fresh sandbox branch name. Names are flat
// (no slash) because the branch name doubles as the worktree directory
// name under the data root.
func GenerateBranchName() string {
	return "sandbox-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateWorktree provisions a new worktree of the repository at repoPath
// for the given branch and returns the context for the new workspace.
//
// With createBranch set the branch must not exist yet and is created at
// the current HEAD; otherwise the branch must already exist. Provisioning
// from inside a worktree is refused.
func (g *Git) CreateWorktree(ctx context.Context, repoPath, branch string, createBranch bool, cfg *config.Config, paths *config.Paths) (*Context, error) {
	if err := ValidateBranchName(branch); err != nil {
		return nil, err
	}

	wctx, err := g.Detect(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	if wctx.IsWorktree {
		return nil, ErrCannotCreateFromWorktree
	}

	base := cfg.ResolveWorktreeBase(wctx.RepoName, filepath.Dir(wctx.WorkspacePath), paths)
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("failed to create worktree base %s: %w", base, err)
	}

	// The branch name has been validated, but join defensively anyway so a
	// future relaxation of the name rules cannot escape the base directory.
	target, err := securejoin.SecureJoin(base, branch)
	if err != nil {
		return nil, fmt.Errorf("invalid worktree path for branch %s: %w", branch, err)
	}

	if _, err := os.Stat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorktreeExists, target)
	}

	exists := g.LocalBranchExists(ctx, wctx.WorkspacePath, branch)
	if createBranch {
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrBranchExists, branch)
		}
		if err := g.CreateBranch(ctx, wctx.WorkspacePath, branch); err != nil {
			return nil, err
		}
	} else if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, branch)
	}

	if err := g.AddWorktree(ctx, wctx.WorkspacePath, target, branch); err != nil {
		return nil, err
	}
	logging.Info("created worktree", "path", target, "branch", branch, "repo", wctx.RepoName)

	resolved := canonicalize(target)

	// The main repository's git dir backs the new worktree's metadata.
	_, gitDir, err := g.inspect(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	return &Context{
		WorkspacePath: resolved,
		SharedGitDir:  gitDir,
		RepoName:      wctx.RepoName,
		IsWorktree:    true,
	}, nil
}

// canonicalize resolves symlinks where possible so the path handed to the
// container runtime matches what git recorded. Falls back to the cleaned
// absolute path when resolution fails.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
