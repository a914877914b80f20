// Package mcp translates the user's mcp.yaml into the JSON config format
// the coding agent consumes.
package mcp

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server is one MCP server definition from mcp.yaml.
type Server struct {
	Command string            `yaml:"command" json:"command,omitempty"`
	Args    []string          `yaml:"args" json:"args,omitempty"`
	Env     map[string]string `yaml:"env" json:"env,omitempty"`
	Type    string            `yaml:"type" json:"type,omitempty"`
	URL     string            `yaml:"url" json:"url,omitempty"`
}

// File is the mcp.yaml document.
type File struct {
	Servers map[string]Server `yaml:"servers"`
}

// Load reads mcp.yaml. A missing file returns an empty File, not an
// error; MCP servers are optional.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// agentConfig is the JSON document format the agent expects.
type agentConfig struct {
	MCPServers map[string]Server `json:"mcpServers"`
}

// WriteAgentConfig writes the servers as agent JSON config to a temp
// file and returns its path. Returns empty with no error when there are
// no servers. The caller removes the file when the session ends.
func (f *File) WriteAgentConfig() (string, error) {
	if len(f.Servers) == 0 {
		return "", nil
	}

	data, err := json.MarshalIndent(agentConfig{MCPServers: f.Servers}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode mcp config: %w", err)
	}

	tmp, err := os.CreateTemp("", "ccs-mcp-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create mcp config file: %w", err)
	}
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write mcp config: %w", err)
	}
	return tmp.Name(), nil
}
