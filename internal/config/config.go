package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the main ccs configuration, loaded from config.toml.
type Config struct {
	Docker   DockerConfig   `toml:"docker"`
	Worktree WorktreeConfig `toml:"worktree"`
	Secrets  SecretsConfig  `toml:"secrets"`

	// MCPConfigPath overrides the default mcp.yaml location.
	MCPConfigPath string `toml:"mcp_config_path"`
}

// DockerConfig holds container-related settings.
type DockerConfig struct {
	// Image is the container image used for sandbox sessions.
	Image string `toml:"image"`

	// DockerfilePath is used by `ccs build`; empty means autodetect.
	DockerfilePath string `toml:"dockerfile_path"`

	// ExtraVolumes maps host paths (supports ~) to container paths.
	ExtraVolumes map[string]string `toml:"extra_volumes"`

	// ExtraEnv is additional environment passed to the container.
	// Values may be secret references (op://, bws://, pass://, env://).
	ExtraEnv map[string]string `toml:"extra_env"`

	// User is the container user.
	User string `toml:"user"`

	// Workdir is the working directory inside the container.
	Workdir string `toml:"workdir"`

	// MemoryLimit is passed to --memory when set (e.g. "4g").
	MemoryLimit string `toml:"memory_limit"`

	// CPULimit is passed to --cpus when non-zero.
	CPULimit float64 `toml:"cpu_limit"`

	// LoadEnvFile loads EnvFilePath from the workspace when present.
	LoadEnvFile bool `toml:"load_env_file"`

	// EnvFilePath is the env file looked up relative to the workspace.
	EnvFilePath string `toml:"env_file_path"`
}

// WorktreeConfig holds worktree provisioning settings.
type WorktreeConfig struct {
	// BasePath is the parent directory for new worktrees. Supports the
	// {repo_name} and {data_dir} placeholders and a leading ~/. Relative
	// paths are resolved against the repository's parent directory.
	BasePath string `toml:"base_path"`
}

// SecretsConfig selects the secrets backend.
type SecretsConfig struct {
	// Backend is one of "1password", "bitwarden", "pass", or "env".
	Backend string `toml:"backend"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Docker: DockerConfig{
			Image:       "ccs:latest",
			User:        "agent",
			Workdir:     "/workspace",
			EnvFilePath: ".env",
		},
		Worktree: WorktreeConfig{
			// Keep worktrees inside the data root so the cleanup pass can
			// find and reclaim them.
			BasePath: filepath.Join("{data_dir}", "{repo_name}"),
		},
		Secrets: SecretsConfig{
			Backend: "env",
		},
	}
}

// Load reads config.toml from the config dir, falling back to defaults
// when the file does not exist.
func Load(paths *Paths) (*Config, error) {
	cfg := Default()

	path := paths.ConfigFile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// WriteDefault writes the default config to the config dir if no config
// file exists yet, and returns its path.
func WriteDefault(paths *Paths) (string, error) {
	path := paths.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return "", fmt.Errorf("failed to write default config: %w", err)
	}

	return path, nil
}

// ResolveWorktreeBase resolves the worktree base path for a repository,
// substituting placeholders and expanding a leading ~/. Relative results
// are anchored at the repository's parent directory.
func (c *Config) ResolveWorktreeBase(repoName, repoParent string, paths *Paths) string {
	base := c.Worktree.BasePath
	base = strings.ReplaceAll(base, "{repo_name}", repoName)
	base = strings.ReplaceAll(base, "{data_dir}", paths.DataDir)

	if strings.HasPrefix(base, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, base[2:])
		}
	}

	if filepath.IsAbs(base) {
		return base
	}

	return filepath.Join(repoParent, base)
}
