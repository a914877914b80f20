package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func TestDiscover_EnvTokenWins(t *testing.T) {
	env := map[string]string{
		"CLAUDE_CODE_OAUTH_TOKEN": "tok-123",
		"ANTHROPIC_API_KEY":       "key-456",
	}

	creds := discover("", func(k string) string { return env[k] })
	if creds == nil || creds.OAuthToken != "tok-123" {
		t.Fatalf("discover() = %+v, want oauth token", creds)
	}
	if creds.APIKey != "" {
		t.Error("api key must not be set when the oauth token wins")
	}

	vars := creds.EnvVars()
	if vars["CLAUDE_CODE_OAUTH_TOKEN"] != "tok-123" || len(vars) != 1 {
		t.Errorf("EnvVars() = %v", vars)
	}
}

func TestDiscover_APIKey(t *testing.T) {
	creds := discover("", func(k string) string {
		if k == "ANTHROPIC_API_KEY" {
			return "key-456"
		}
		return ""
	})
	if creds == nil || creds.APIKey != "key-456" {
		t.Fatalf("discover() = %+v", creds)
	}
	if creds.EnvVars()["ANTHROPIC_API_KEY"] != "key-456" {
		t.Errorf("EnvVars() = %v", creds.EnvVars())
	}
}

func TestDiscover_CredentialsFile(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".claude")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"claudeAiOauth": {"accessToken": "stored-token"}}`
	if err := os.WriteFile(filepath.Join(dir, ".credentials.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	creds := discover(home, noEnv)
	if creds == nil || creds.OAuthToken != "stored-token" {
		t.Fatalf("discover() = %+v", creds)
	}
}

func TestDiscover_Nothing(t *testing.T) {
	if creds := discover(t.TempDir(), noEnv); creds != nil {
		t.Errorf("discover() = %+v, want nil", creds)
	}
	if vars := (*Credentials)(nil).EnvVars(); vars != nil {
		t.Errorf("nil credentials EnvVars() = %v", vars)
	}
}
