package runtime

import (
	"context"
	"os"
	"strings"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/system"
)

// Status is a snapshot of the sandbox environment's health.
type Status struct {
	Engine        Engine
	EngineVersion string
	ImagePresent  bool
	ConfigPresent bool
	MCPPresent    bool
	Sessions      []Session
}

// CheckStatus gathers the environment status. Individual probes failing
// do not fail the check; their fields stay at zero values.
func CheckStatus(ctx context.Context, engine Engine, exec system.CommandExecutor, cfg *config.Config, paths *config.Paths) *Status {
	st := &Status{Engine: engine}

	if out, err := exec.Execute(ctx, string(engine), "--version"); err == nil {
		st.EngineVersion = strings.TrimSpace(string(out))
	}

	if _, err := exec.Execute(ctx, string(engine), "image", "inspect", cfg.Docker.Image); err == nil {
		st.ImagePresent = true
	}

	if _, err := os.Stat(paths.ConfigFile()); err == nil {
		st.ConfigPresent = true
	}
	if _, err := os.Stat(paths.MCPServersFile()); err == nil {
		st.MCPPresent = true
	}

	if sessions, err := ListSessions(ctx, engine, exec); err == nil {
		st.Sessions = sessions
	}

	return st
}

// Print writes the status report for the user.
func (st *Status) Print(cfg *config.Config, paths *config.Paths) {
	if st.EngineVersion != "" {
		logging.UserSuccess("engine: %s (%s)", st.Engine, st.EngineVersion)
	} else {
		logging.UserError("engine %s not responding", st.Engine)
	}

	if st.ImagePresent {
		logging.UserSuccess("image: %s", cfg.Docker.Image)
	} else {
		logging.UserWarning("image %s not found; run `ccs build`", cfg.Docker.Image)
	}

	if st.ConfigPresent {
		logging.UserSuccess("config: %s", paths.ConfigFile())
	} else {
		logging.UserInfo("config: using defaults (%s missing)", paths.ConfigFile())
	}

	if st.MCPPresent {
		logging.UserSuccess("mcp servers: %s", paths.MCPServersFile())
	} else {
		logging.UserInfo("mcp servers: none configured")
	}

	if len(st.Sessions) == 0 {
		logging.UserInfo("no running sessions")
		return
	}
	logging.UserSuccess("%d running session(s)", len(st.Sessions))
	for _, s := range st.Sessions {
		logging.UserInfo("  %s (%s)", s.Name, s.Status)
	}
}
