// Package testutil provides helpers for tests that need a populated
// worktree data root.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sundial-labs/ccs/internal/config"
)

// Env is a throwaway ccs environment rooted in a temp directory.
type Env struct {
	Paths *config.Paths
}

// NewEnv creates config and data directories under t.TempDir.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	root := t.TempDir()
	paths := &config.Paths{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
	for _, dir := range []string{paths.ConfigDir, paths.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return &Env{Paths: paths}
}

// AddWorktree lays out a fake linked worktree under the data root, with
// the .git pointer file a real worktree carries.
func (e *Env) AddWorktree(t *testing.T, repo, branch string) string {
	t.Helper()
	path := filepath.Join(e.Paths.DataDir, repo, branch)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	pointer := "gitdir: /home/user/" + repo + "/.git/worktrees/" + branch + "\n"
	if err := os.WriteFile(filepath.Join(path, ".git"), []byte(pointer), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// AddDir creates a bare directory (no git metadata) under the data root.
func (e *Env) AddDir(t *testing.T, repo, name string) string {
	t.Helper()
	path := filepath.Join(e.Paths.DataDir, repo, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// SetAge backdates a path's modification time.
func SetAge(t *testing.T, path string, age time.Duration) {
	t.Helper()
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}
