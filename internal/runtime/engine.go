// Package runtime drives the container engine behind sandbox sessions.
package runtime

import (
	"fmt"
	"os/exec"
)

// Engine identifies the container engine binary.
type Engine string

const (
	EnginePodman Engine = "podman"
	EngineDocker Engine = "docker"
)

// Detect finds an available container engine. Podman is preferred because
// rootless containers need no extra setup for the bind mounts ccs uses.
func Detect() (Engine, error) {
	for _, engine := range []Engine{EnginePodman, EngineDocker} {
		if _, err := exec.LookPath(string(engine)); err == nil {
			return engine, nil
		}
	}
	return "", fmt.Errorf("no container engine found (looked for podman, docker)")
}
