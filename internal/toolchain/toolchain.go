// Package toolchain detects which language toolchains a workspace uses,
// for status reporting and image suggestions.
package toolchain

import (
	"os"
	"path/filepath"
)

// Toolchain is a detected project toolchain.
type Toolchain string

const (
	Rust   Toolchain = "rust"
	Go     Toolchain = "go"
	Bun    Toolchain = "bun"
	PNPM   Toolchain = "pnpm"
	Yarn   Toolchain = "yarn"
	Node   Toolchain = "node"
	UV     Toolchain = "uv"
	Poetry Toolchain = "poetry"
	Pipenv Toolchain = "pipenv"
	Python Toolchain = "python"
	Moon   Toolchain = "moon"
	Turbo  Toolchain = "turbo"
)

// markers maps marker files to toolchains, most specific first. Order
// matters: a pnpm workspace also has package.json, and detection should
// report pnpm, not node.
var markers = []struct {
	file      string
	toolchain Toolchain
}{
	{"Cargo.toml", Rust},
	{"go.mod", Go},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package.json", Node},
	{"uv.lock", UV},
	{"poetry.lock", Poetry},
	{"Pipfile", Pipenv},
	{"requirements.txt", Python},
	{"pyproject.toml", Python},
	{"moon.yml", Moon},
	{"turbo.json", Turbo},
}

// Detect returns the toolchains found in dir. Within each language
// family only the most specific match is reported.
func Detect(dir string) []Toolchain {
	var found []Toolchain
	seen := make(map[Toolchain]bool)

	for _, m := range markers {
		if seen[m.toolchain] {
			continue
		}
		if covered(m.toolchain, seen) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
			found = append(found, m.toolchain)
			seen[m.toolchain] = true
		}
	}
	return found
}

// covered reports whether a more specific toolchain in the same family
// was already detected.
func covered(t Toolchain, seen map[Toolchain]bool) bool {
	switch t {
	case Node:
		return seen[Bun] || seen[PNPM] || seen[Yarn]
	case Python:
		return seen[UV] || seen[Poetry] || seen[Pipenv]
	}
	return false
}
