package toolchain

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []Toolchain
	}{
		{"rust", []string{"Cargo.toml", "Cargo.lock"}, []Toolchain{Rust}},
		{"go", []string{"go.mod"}, []Toolchain{Go}},
		{"pnpm hides node", []string{"pnpm-lock.yaml", "package.json"}, []Toolchain{PNPM}},
		{"plain node", []string{"package.json"}, []Toolchain{Node}},
		{"uv hides python", []string{"uv.lock", "pyproject.toml"}, []Toolchain{UV}},
		{"mixed repo", []string{"go.mod", "package.json", "turbo.json"}, []Toolchain{Go, Node, Turbo}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got := Detect(dir)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
