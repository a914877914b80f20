// Package auth discovers coding agent credentials on the host so they
// can be forwarded into sandbox containers.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sundial-labs/ccs/internal/logging"
)

// Credentials are the agent credentials found on the host. At most one
// of OAuthToken and APIKey is set.
type Credentials struct {
	// Source describes where the credentials came from, for status output.
	Source string

	OAuthToken string
	APIKey     string
}

// EnvVars returns the environment variables to inject into the
// container, or nil when nothing was found.
func (c *Credentials) EnvVars() map[string]string {
	switch {
	case c == nil:
		return nil
	case c.OAuthToken != "":
		return map[string]string{"CLAUDE_CODE_OAUTH_TOKEN": c.OAuthToken}
	case c.APIKey != "":
		return map[string]string{"ANTHROPIC_API_KEY": c.APIKey}
	}
	return nil
}

// credentialsFile mirrors the agent's on-disk credential store.
type credentialsFile struct {
	ClaudeAiOauth struct {
		AccessToken string `json:"accessToken"`
	} `json:"claudeAiOauth"`
}

// Discover finds agent credentials, preferring explicit environment
// variables over the agent's credential store. Returns nil when nothing
// is found; sessions can still run against an already authenticated
// volume.
func Discover() *Credentials {
	home, _ := os.UserHomeDir()
	return discover(home, os.Getenv)
}

func discover(home string, getenv func(string) string) *Credentials {
	if token := getenv("CLAUDE_CODE_OAUTH_TOKEN"); token != "" {
		return &Credentials{Source: "environment (CLAUDE_CODE_OAUTH_TOKEN)", OAuthToken: token}
	}
	if key := getenv("ANTHROPIC_API_KEY"); key != "" {
		return &Credentials{Source: "environment (ANTHROPIC_API_KEY)", APIKey: key}
	}

	if home == "" {
		return nil
	}
	path := filepath.Join(home, ".claude", ".credentials.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		logging.Debug("unreadable credentials file", "path", path, "error", err)
		return nil
	}
	if creds.ClaudeAiOauth.AccessToken == "" {
		return nil
	}
	return &Credentials{Source: path, OAuthToken: creds.ClaudeAiOauth.AccessToken}
}
