package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/sundial-labs/ccs/internal/config"
	ccserrors "github.com/sundial-labs/ccs/internal/errors"
	"github.com/sundial-labs/ccs/internal/system"
)

// Session is one running sandbox container.
type Session struct {
	ID     string
	Name   string
	Status string
	Image  string
}

// ListSessions returns the running ccs session containers.
func ListSessions(ctx context.Context, engine Engine, exec system.CommandExecutor) ([]Session, error) {
	out, err := exec.Execute(ctx, string(engine),
		"ps", "--filter", "name="+config.ContainerPrefix,
		"--format", "{{.ID}}\t{{.Names}}\t{{.Status}}\t{{.Image}}")
	if err != nil {
		return nil, ccserrors.ContainerFailed("list sessions", err)
	}

	var sessions []Session
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			continue
		}
		sessions = append(sessions, Session{
			ID:     fields[0],
			Name:   fields[1],
			Status: fields[2],
			Image:  fields[3],
		})
	}
	return sessions, nil
}

// ResolveSessionName matches a user-supplied name against running
// sessions. An exact name wins; otherwise a unique substring match is
// accepted. The prefix may be omitted ("myrepo-123" for "ccs-myrepo-123").
func ResolveSessionName(ctx context.Context, engine Engine, exec system.CommandExecutor, query string) (string, error) {
	sessions, err := ListSessions(ctx, engine, exec)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range sessions {
		if s.Name == query || s.Name == config.ContainerName(query) {
			return s.Name, nil
		}
		if strings.Contains(s.Name, query) {
			matches = append(matches, s.Name)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no running session matches %q", query)
	default:
		return "", fmt.Errorf("%q is ambiguous: %s", query, strings.Join(matches, ", "))
	}
}

// Attach connects the terminal to a running session.
func Attach(ctx context.Context, engine Engine, exec system.CommandExecutor, name string) error {
	if err := exec.ExecuteInteractive(ctx, string(engine), "attach", name); err != nil {
		return ccserrors.ContainerFailed("attach", err)
	}
	return nil
}

// Logs streams a session's output. With follow the call blocks until the
// session exits or the user interrupts.
func Logs(ctx context.Context, engine Engine, exec system.CommandExecutor, name string, follow bool) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, name)

	if err := exec.ExecuteInteractive(ctx, string(engine), args...); err != nil {
		return ccserrors.ContainerFailed("logs", err)
	}
	return nil
}

// Stop stops a session. The container was started with --rm, so stopping
// also removes it.
func Stop(ctx context.Context, engine Engine, exec system.CommandExecutor, name string) error {
	if _, err := exec.Execute(ctx, string(engine), "stop", name); err != nil {
		return ccserrors.ContainerFailed("stop", err)
	}
	return nil
}
