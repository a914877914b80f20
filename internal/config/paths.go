package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName namespaces everything ccs writes to disk.
	AppName = "ccs"

	// ContainerPrefix is prepended to container names so sessions started
	// by ccs can be found again with a name filter.
	ContainerPrefix = "ccs-"
)

// Paths holds the resolved per-user directories ccs operates on.
// They are resolved once at startup and injected everywhere, so tests
// can point the whole tool at a temp directory.
type Paths struct {
	// ConfigDir holds config.toml and mcp.yaml.
	ConfigDir string

	// DataDir is the worktree data root. Worktrees are created two levels
	// beneath it: <DataDir>/<repo-name>/<branch-name>. The cleanup pass
	// depends on this layout.
	DataDir string
}

// DefaultPaths resolves the platform-standard per-user directories,
// honoring XDG overrides.
func DefaultPaths() *Paths {
	home, _ := os.UserHomeDir()

	configBase := os.Getenv("XDG_CONFIG_HOME")
	if configBase == "" {
		configBase = filepath.Join(home, ".config")
	}

	dataBase := os.Getenv("XDG_DATA_HOME")
	if dataBase == "" {
		dataBase = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configBase, AppName),
		DataDir:   filepath.Join(dataBase, AppName),
	}
}

// ConfigFile returns the path to config.toml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// MCPServersFile returns the path to the MCP servers config file.
func (p *Paths) MCPServersFile() string {
	return filepath.Join(p.ConfigDir, "mcp.yaml")
}

// ContainerName returns the container name for a sandbox session suffix.
func ContainerName(suffix string) string {
	return ContainerPrefix + suffix
}
