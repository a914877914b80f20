package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.yaml")
	content := `servers:
  github:
    command: npx
    args: ["-y", "@modelcontextprotocol/server-github"]
    env:
      GITHUB_TOKEN: env://GITHUB_TOKEN
  docs:
    type: http
    url: https://docs.example.com/mcp
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(f.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(f.Servers))
	}

	gh := f.Servers["github"]
	if gh.Command != "npx" || len(gh.Args) != 2 {
		t.Errorf("github server = %+v", gh)
	}
	if f.Servers["docs"].URL != "https://docs.example.com/mcp" {
		t.Errorf("docs server = %+v", f.Servers["docs"])
	}
}

func TestLoad_Missing(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "mcp.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(f.Servers) != 0 {
		t.Errorf("missing file should load as empty, got %+v", f)
	}
}

func TestWriteAgentConfig(t *testing.T) {
	f := &File{Servers: map[string]Server{
		"github": {Command: "npx", Args: []string{"-y", "server-github"}},
	}}

	path, err := f.WriteAgentConfig()
	if err != nil {
		t.Fatalf("WriteAgentConfig() error: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		MCPServers map[string]Server `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.MCPServers["github"].Command != "npx" {
		t.Errorf("round-tripped config = %+v", doc)
	}
}

func TestWriteAgentConfig_Empty(t *testing.T) {
	path, err := (&File{}).WriteAgentConfig()
	if err != nil {
		t.Fatalf("WriteAgentConfig() error: %v", err)
	}
	if path != "" {
		t.Errorf("no servers should produce no file, got %q", path)
	}
}
