package app

import (
	"path/filepath"
	"testing"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/runtime"
	"github.com/sundial-labs/ccs/internal/system"
)

func TestNew_Defaults(t *testing.T) {
	paths := &config.Paths{
		ConfigDir: filepath.Join(t.TempDir(), "config"),
		DataDir:   filepath.Join(t.TempDir(), "data"),
	}

	a, err := New(WithPaths(paths))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Config == nil || a.Git == nil || a.Executor == nil {
		t.Errorf("New() left dependencies unset: %+v", a)
	}
	if a.Config.Docker.Image != "ccs:latest" {
		t.Errorf("missing config should yield defaults, got %q", a.Config.Docker.Image)
	}
}

func TestContainerEngine_Pinned(t *testing.T) {
	a, err := New(
		WithPaths(&config.Paths{ConfigDir: t.TempDir(), DataDir: t.TempDir()}),
		WithExecutor(system.NewMockExecutor()),
		WithEngine(runtime.EnginePodman),
	)
	if err != nil {
		t.Fatal(err)
	}

	engine, err := a.ContainerEngine()
	if err != nil {
		t.Fatalf("ContainerEngine() error: %v", err)
	}
	if engine != runtime.EnginePodman {
		t.Errorf("engine = %q, want pinned podman", engine)
	}
}

func TestDefault_Swappable(t *testing.T) {
	t.Cleanup(ResetDefault)

	fake, err := New(WithPaths(&config.Paths{ConfigDir: t.TempDir(), DataDir: t.TempDir()}))
	if err != nil {
		t.Fatal(err)
	}
	SetDefault(fake)

	got, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if got != fake {
		t.Error("Default() should return the instance set with SetDefault")
	}
}
