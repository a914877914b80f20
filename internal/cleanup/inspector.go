package cleanup

import (
	"context"
	"strings"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/system"
)

// SessionInspector reports which workspace paths are mounted into running
// sandbox containers. Implementations are best-effort: when the container
// runtime cannot be queried they return an empty set rather than an
// error, and the classifier's other rules carry the safety burden.
type SessionInspector interface {
	RunningWorkspaces(ctx context.Context) map[string]struct{}
}

// EngineInspector queries a container engine (docker or podman) for
// running ccs sessions and extracts their bind mount sources.
type EngineInspector struct {
	engine string
	exec   system.CommandExecutor
}

// NewEngineInspector returns an inspector for the given engine binary.
func NewEngineInspector(engine string, exec system.CommandExecutor) *EngineInspector {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &EngineInspector{engine: engine, exec: exec}
}

func (i *EngineInspector) RunningWorkspaces(ctx context.Context) map[string]struct{} {
	running := make(map[string]struct{})

	out, err := i.exec.Execute(ctx, i.engine,
		"ps", "--filter", "name="+config.ContainerPrefix, "--format", "{{.Mounts}}")
	if err != nil {
		logging.Debug("failed to list running sandbox containers", "engine", i.engine, "error", err)
		return running
	}

	for _, line := range strings.Split(string(out), "\n") {
		for _, mount := range strings.Split(line, ",") {
			mount = strings.TrimSpace(mount)
			if mount != "" {
				running[mount] = struct{}{}
			}
		}
	}
	return running
}

// StaticInspector returns a fixed set of workspace paths. Used in tests
// and when the container runtime is known to be unavailable.
type StaticInspector struct {
	Workspaces []string
}

func (s *StaticInspector) RunningWorkspaces(ctx context.Context) map[string]struct{} {
	running := make(map[string]struct{}, len(s.Workspaces))
	for _, w := range s.Workspaces {
		running[w] = struct{}{}
	}
	return running
}
