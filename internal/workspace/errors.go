package workspace

import "errors"

// Structural provisioning errors. These are terminal for the operation
// that hit them and are surfaced to the caller unchanged; call sites wrap
// them with the offending path or branch name.
var (
	// ErrNotARepo means the path is not inside a git repository.
	ErrNotARepo = errors.New("not a git repository")

	// ErrNoRepoName means the repository name could not be derived from
	// the metadata layout (e.g. a .git directory at the filesystem root).
	ErrNoRepoName = errors.New("failed to determine repository name")

	// ErrCannotCreateFromWorktree means provisioning was attempted from
	// inside an existing worktree. Worktree metadata cannot host further
	// worktrees; provisioning must originate from the main repository.
	ErrCannotCreateFromWorktree = errors.New("cannot create worktree from within a worktree; run from the main repository")

	// ErrWorktreeExists means the target directory already exists.
	ErrWorktreeExists = errors.New("worktree already exists")

	// ErrBranchExists means a local branch with the requested name exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound means no local branch with the requested name exists.
	ErrBranchNotFound = errors.New("branch not found")
)
