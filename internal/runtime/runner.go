package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/sundial-labs/ccs/internal/config"
	ccserrors "github.com/sundial-labs/ccs/internal/errors"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/system"
	"github.com/sundial-labs/ccs/internal/workspace"
)

// mcpMountTarget is where the generated MCP config lands in the container.
const mcpMountTarget = "/tmp/mcp-config.json"

// agentCommand is the coding agent launched inside the sandbox.
const agentCommand = "claude"

// ContainerNameFor returns a fresh session container name for a
// repository. The numeric suffix keeps concurrent sessions on the same
// repository apart without needing coordination.
func ContainerNameFor(repo string) string {
	return config.ContainerName(fmt.Sprintf("%s-%d", repo, time.Now().UnixNano()%1_000_000))
}

// Runner assembles and launches a single sandbox session container.
type Runner struct {
	Engine    Engine
	Exec      system.CommandExecutor
	Config    *config.Config
	Workspace *workspace.Context

	// Env is the resolved environment (secrets, agent credentials) passed
	// into the container.
	Env map[string]string

	// MCPConfigPath is the generated MCP config on the host; empty when no
	// MCP servers are configured.
	MCPConfigPath string

	// DryRun prints the container command instead of running it.
	DryRun bool
}

// Args builds the engine arguments for the session container.
func (r *Runner) Args(name string, detach bool, agentArgs []string) []string {
	args := []string{"run", "--rm"}
	if detach {
		args = append(args, "-d")
	} else {
		args = append(args, "-it")
	}
	args = append(args, "--name", name)

	for _, m := range r.Workspace.DockerMounts() {
		args = append(args, "-v", m.HostPath+":"+m.ContainerPath)
	}
	for _, host := range sortedKeys(r.Config.Docker.ExtraVolumes) {
		args = append(args, "-v", expandHome(host)+":"+r.Config.Docker.ExtraVolumes[host])
	}
	if r.MCPConfigPath != "" {
		args = append(args, "-v", r.MCPConfigPath+":"+mcpMountTarget+":ro")
	}

	if wd := r.Config.Docker.Workdir; wd != "" {
		args = append(args, "-w", wd)
	}
	if user := r.Config.Docker.User; user != "" {
		args = append(args, "--user", user)
	}
	if mem := r.Config.Docker.MemoryLimit; mem != "" {
		args = append(args, "--memory", mem)
	}
	if cpus := r.Config.Docker.CPULimit; cpus > 0 {
		args = append(args, "--cpus", fmt.Sprintf("%g", cpus))
	}

	for _, key := range sortedKeys(r.Env) {
		args = append(args, "-e", key+"="+r.Env[key])
	}

	if r.Config.Docker.LoadEnvFile {
		envFile := filepath.Join(r.Workspace.WorkspacePath, r.Config.Docker.EnvFilePath)
		if _, err := os.Stat(envFile); err == nil {
			args = append(args, "--env-file", envFile)
		}
	}

	args = append(args, r.Config.Docker.Image, agentCommand)
	if r.MCPConfigPath != "" {
		args = append(args, "--mcp-config", mcpMountTarget)
	}
	return append(args, agentArgs...)
}

// Run starts the session container. Interactive sessions take over the
// terminal until the agent exits; detached sessions return immediately.
func (r *Runner) Run(ctx context.Context, detach bool, agentArgs []string) (string, error) {
	name := ContainerNameFor(r.Workspace.RepoName)
	args := r.Args(name, detach, agentArgs)

	if r.DryRun {
		logging.UserInfo("dry run: %s", shellquote.Join(append([]string{string(r.Engine)}, args...)...))
		return name, nil
	}

	logging.Info("starting sandbox session",
		"container", name, "engine", r.Engine, "workspace", r.Workspace.WorkspacePath, "detach", detach)

	if detach {
		if _, err := r.Exec.Execute(ctx, string(r.Engine), args...); err != nil {
			return "", ccserrors.ContainerFailed("start detached session", err)
		}
		return name, nil
	}

	if err := r.Exec.ExecuteInteractive(ctx, string(r.Engine), args...); err != nil {
		return "", ccserrors.ContainerFailed("run session", err)
	}
	return name, nil
}

// BuildImage builds the sandbox image from a Dockerfile. An explicit
// dockerfile path wins; otherwise Dockerfile next to the config is used.
func BuildImage(ctx context.Context, engine Engine, exec system.CommandExecutor, cfg *config.Config, paths *config.Paths) error {
	dockerfile := cfg.Docker.DockerfilePath
	if dockerfile == "" {
		dockerfile = filepath.Join(paths.ConfigDir, "Dockerfile")
	}
	dockerfile = expandHome(dockerfile)

	if _, err := os.Stat(dockerfile); err != nil {
		return ccserrors.ConfigError(fmt.Sprintf("no Dockerfile at %s; set docker.dockerfile_path", dockerfile), err)
	}

	logging.UserInfo("building %s from %s", cfg.Docker.Image, dockerfile)
	err := exec.ExecuteInteractive(ctx, string(engine),
		"build", "-t", cfg.Docker.Image, "-f", dockerfile, filepath.Dir(dockerfile))
	if err != nil {
		return ccserrors.ContainerFailed("build image", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
