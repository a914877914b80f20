package workspace

import (
	"context"
	"path/filepath"
)

// Mount targets inside the sandbox container. When the workspace is a
// worktree, its .git file points at metadata under the main repository's
// .git directory, so that directory is mounted alongside the workspace to
// keep git functional inside the container.
const (
	WorkspaceMountTarget = "/workspace"
	SharedGitMountTarget = "/workspace/.git-main"
)

// Context describes the repository a sandbox session operates on.
type Context struct {
	// WorkspacePath is the working tree root mounted into the container.
	WorkspacePath string

	// SharedGitDir is the main repository's .git directory when the
	// workspace is a linked worktree, empty otherwise.
	SharedGitDir string

	// RepoName is the repository name, derived from the main repository's
	// directory regardless of which worktree is active.
	RepoName string

	// IsWorktree reports whether WorkspacePath is a linked worktree rather
	// than the main working tree.
	IsWorktree bool
}

// Mount is a single host-to-container bind mount.
type Mount struct {
	HostPath      string
	ContainerPath string
}

// DockerMounts returns the bind mounts for this workspace. The workspace
// mount always comes first; mounting it before the shared git directory
// matters because the second target nests inside the first.
func (c *Context) DockerMounts() []Mount {
	mounts := []Mount{
		{HostPath: c.WorkspacePath, ContainerPath: WorkspaceMountTarget},
	}
	if c.IsWorktree && c.SharedGitDir != "" {
		mounts = append(mounts, Mount{
			HostPath:      c.SharedGitDir,
			ContainerPath: SharedGitMountTarget,
		})
	}
	return mounts
}

// Detect inspects path and resolves the repository context for it.
func (g *Git) Detect(ctx context.Context, path string) (*Context, error) {
	top, gitDir, err := g.inspect(ctx, path)
	if err != nil {
		return nil, err
	}

	isWorktree := isWorktreeGitDir(gitDir)

	repoName, err := repoNameFromGitDir(gitDir, top, isWorktree)
	if err != nil {
		return nil, err
	}

	wctx := &Context{
		WorkspacePath: top,
		RepoName:      repoName,
		IsWorktree:    isWorktree,
	}
	if isWorktree {
		// gitDir is <main>/.git/worktrees/<name>; the shared directory is
		// two levels up.
		wctx.SharedGitDir = filepath.Dir(filepath.Dir(gitDir))
	}
	return wctx, nil
}

func (g *Git) inspect(ctx context.Context, path string) (top, gitDir string, err error) {
	top, err = g.TopLevel(ctx, path)
	if err != nil {
		return "", "", err
	}
	gitDir, err = g.GitDir(ctx, path)
	if err != nil {
		return "", "", err
	}
	return top, gitDir, nil
}

// isWorktreeGitDir reports whether an absolute git dir belongs to a
// linked worktree, i.e. lies under <main>/.git/worktrees/.
func isWorktreeGitDir(gitDir string) bool {
	return filepath.Base(filepath.Dir(gitDir)) == "worktrees"
}

// repoNameFromGitDir derives the repository name from the main
// repository's location. For a worktree the git dir is
// <main>/.git/worktrees/<name>, for a main checkout it is <top>/.git;
// either way the name is the directory containing the main .git.
func repoNameFromGitDir(gitDir, top string, isWorktree bool) (string, error) {
	var mainGitDir string
	if isWorktree {
		mainGitDir = filepath.Dir(filepath.Dir(gitDir))
	} else {
		mainGitDir = gitDir
	}

	if filepath.Base(mainGitDir) == ".git" {
		parent := filepath.Dir(mainGitDir)
		name := filepath.Base(parent)
		if name == "/" || name == "." || name == string(filepath.Separator) {
			return "", ErrNoRepoName
		}
		return name, nil
	}

	// Bare or unconventional layout: fall back to the working tree name.
	if name := filepath.Base(top); name != "/" && name != "." {
		return name, nil
	}
	return "", ErrNoRepoName
}
