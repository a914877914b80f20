package runtime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/system"
	"github.com/sundial-labs/ccs/internal/workspace"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{
		Engine: EngineDocker,
		Exec:   system.NewMockExecutor(),
		Config: config.Default(),
		Workspace: &workspace.Context{
			WorkspacePath: "/data/ccs/myrepo/feature",
			SharedGitDir:  "/home/user/myrepo/.git",
			RepoName:      "myrepo",
			IsWorktree:    true,
		},
	}
}

func TestArgs_BasicLayout(t *testing.T) {
	r := testRunner(t)
	args := r.Args("ccs-myrepo-42", false, []string{"-p", "hello"})

	line := strings.Join(args, " ")

	for _, want := range []string{
		"run --rm -it",
		"--name ccs-myrepo-42",
		"-v /data/ccs/myrepo/feature:/workspace",
		"-v /home/user/myrepo/.git:/workspace/.git-main",
		"-w /workspace",
		"--user agent",
		"ccs:latest claude -p hello",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("args missing %q:\n%s", want, line)
		}
	}

	// The workspace mount must precede the nested git mount.
	ws := strings.Index(line, "/data/ccs/myrepo/feature:/workspace")
	git := strings.Index(line, ":/workspace/.git-main")
	if ws == -1 || git == -1 || ws > git {
		t.Errorf("mount order wrong:\n%s", line)
	}

	// Agent args come after the image.
	img := strings.Index(line, "ccs:latest")
	if strings.Index(line, "-p hello") < img {
		t.Errorf("agent args must follow the image:\n%s", line)
	}
}

func TestArgs_Detach(t *testing.T) {
	r := testRunner(t)
	args := r.Args("ccs-myrepo-42", true, nil)

	if !slices.Contains(args, "-d") || slices.Contains(args, "-it") {
		t.Errorf("detached args = %v", args)
	}
}

func TestArgs_Limits(t *testing.T) {
	r := testRunner(t)
	r.Config.Docker.MemoryLimit = "4g"
	r.Config.Docker.CPULimit = 2.5

	line := strings.Join(r.Args("n", false, nil), " ")
	if !strings.Contains(line, "--memory 4g") {
		t.Errorf("missing memory limit:\n%s", line)
	}
	if !strings.Contains(line, "--cpus 2.5") {
		t.Errorf("missing cpu limit:\n%s", line)
	}
}

func TestArgs_EnvSortedAndMCP(t *testing.T) {
	r := testRunner(t)
	r.Env = map[string]string{"ZEBRA": "z", "ALPHA": "a"}
	r.MCPConfigPath = "/tmp/ccs-mcp-123.json"

	line := strings.Join(r.Args("n", false, nil), " ")

	if strings.Index(line, "-e ALPHA=a") > strings.Index(line, "-e ZEBRA=z") {
		t.Errorf("env must be sorted for determinism:\n%s", line)
	}
	if !strings.Contains(line, "-v /tmp/ccs-mcp-123.json:/tmp/mcp-config.json:ro") {
		t.Errorf("missing mcp config mount:\n%s", line)
	}
	if !strings.Contains(line, "claude --mcp-config /tmp/mcp-config.json") {
		t.Errorf("agent must be pointed at the mcp config:\n%s", line)
	}
}

func TestArgs_EnvFile(t *testing.T) {
	ws := t.TempDir()
	if err := os.WriteFile(filepath.Join(ws, ".env"), []byte("A=b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := testRunner(t)
	r.Workspace.WorkspacePath = ws
	r.Config.Docker.LoadEnvFile = true

	line := strings.Join(r.Args("n", false, nil), " ")
	if !strings.Contains(line, "--env-file "+filepath.Join(ws, ".env")) {
		t.Errorf("missing env file:\n%s", line)
	}

	// Without the file on disk the flag is omitted.
	r.Workspace.WorkspacePath = t.TempDir()
	line = strings.Join(r.Args("n", false, nil), " ")
	if strings.Contains(line, "--env-file") {
		t.Errorf("env file flag without a file:\n%s", line)
	}
}

func TestRun_DryRunExecutesNothing(t *testing.T) {
	mock := system.NewMockExecutor()
	r := testRunner(t)
	r.Exec = mock
	r.DryRun = true

	if _, err := r.Run(context.Background(), false, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(mock.Commands) != 0 {
		t.Errorf("dry run must not execute, got %v", mock.CommandLines())
	}
}

func TestRun_Detached(t *testing.T) {
	mock := system.NewMockExecutor()
	r := testRunner(t)
	r.Exec = mock

	name, err := r.Run(context.Background(), true, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.HasPrefix(name, "ccs-myrepo-") {
		t.Errorf("container name = %q", name)
	}

	cmd, ok := mock.LastCommand()
	if !ok || cmd.Name != "docker" {
		t.Fatalf("expected a docker invocation, got %+v", cmd)
	}
	if !slices.Contains(cmd.Args, "-d") {
		t.Errorf("detached run missing -d: %v", cmd.Args)
	}
}

func TestContainerNameFor(t *testing.T) {
	name := ContainerNameFor("myrepo")
	if !strings.HasPrefix(name, "ccs-myrepo-") {
		t.Errorf("ContainerNameFor() = %q", name)
	}
}

func TestListSessions(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.AddResponse("ps --filter",
		[]byte("abc123\tccs-myrepo-1\tUp 5 minutes\tccs:latest\ndef456\tccs-other-2\tUp 1 hour\tccs:latest\n"), nil)

	sessions, err := ListSessions(context.Background(), EngineDocker, mock)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	want := Session{ID: "abc123", Name: "ccs-myrepo-1", Status: "Up 5 minutes", Image: "ccs:latest"}
	if sessions[0] != want {
		t.Errorf("sessions[0] = %+v, want %+v", sessions[0], want)
	}
}

func TestListSessions_Empty(t *testing.T) {
	mock := system.NewMockExecutor()
	sessions, err := ListSessions(context.Background(), EngineDocker, mock)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %v, want none", sessions)
	}
}

func TestResolveSessionName(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.AddResponse("ps --filter",
		[]byte("a\tccs-myrepo-1\tUp\timg\nb\tccs-myrepo-2\tUp\timg\nc\tccs-other-3\tUp\timg\n"), nil)

	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{query: "ccs-myrepo-1", want: "ccs-myrepo-1"},
		{query: "myrepo-2", want: "ccs-myrepo-2"},
		{query: "other", want: "ccs-other-3"},
		{query: "myrepo", wantErr: true}, // ambiguous
		{query: "missing", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ResolveSessionName(context.Background(), EngineDocker, mock, tt.query)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveSessionName(%q) = %q, want error", tt.query, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveSessionName(%q) error: %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveSessionName(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestStop(t *testing.T) {
	mock := system.NewMockExecutor()
	if err := Stop(context.Background(), EnginePodman, mock, "ccs-myrepo-1"); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	cmd, _ := mock.LastCommand()
	if cmd.Line() != "podman stop ccs-myrepo-1" {
		t.Errorf("Stop ran %q", cmd.Line())
	}

	mock.AddResponse("stop", nil, errors.New("no such container"))
	if err := Stop(context.Background(), EnginePodman, mock, "ccs-myrepo-1"); err == nil {
		t.Error("Stop() should surface engine errors")
	}
}
