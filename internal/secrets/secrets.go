// Package secrets resolves secret references in container environment
// values against an external secrets manager.
//
// Supported reference schemes:
//
//	op://vault/item/field     1Password CLI
//	bws://<secret-id>         Bitwarden Secrets Manager CLI
//	pass://<entry>            pass(1)
//	env://<NAME>              host environment
//
// Values without a scheme pass through unchanged.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	ccserrors "github.com/sundial-labs/ccs/internal/errors"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/system"
)

// resolveConcurrency bounds parallel CLI invocations. Secret manager
// CLIs are slow (network bound), so references resolve in parallel, but
// hammering the daemon with dozens of clients helps nobody.
const resolveConcurrency = 4

// Resolver resolves secret references using external CLIs.
type Resolver struct {
	exec   system.CommandExecutor
	getenv func(string) string
}

// NewResolver returns a Resolver using the given executor.
func NewResolver(exec system.CommandExecutor, getenv func(string) string) *Resolver {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Resolver{exec: exec, getenv: getenv}
}

// Resolve resolves every reference in env and returns a new map.
// References resolve in parallel; the first failure aborts the rest.
func (r *Resolver) Resolve(ctx context.Context, env map[string]string) (map[string]string, error) {
	resolved := make(map[string]string, len(env))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for key, value := range env {
		g.Go(func() error {
			v, err := r.resolveValue(ctx, value)
			if err != nil {
				return ccserrors.SecretsError(fmt.Sprintf("failed to resolve %s", key), err)
			}
			mu.Lock()
			resolved[key] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *Resolver) resolveValue(ctx context.Context, value string) (string, error) {
	scheme, ref, ok := strings.Cut(value, "://")
	if !ok {
		return value, nil
	}

	switch scheme {
	case "op":
		// op read wants the full reference including the scheme.
		out, err := r.exec.Execute(ctx, "op", "read", value)
		if err != nil {
			return "", fmt.Errorf("op read: %w", err)
		}
		return strings.TrimSpace(string(out)), nil

	case "bws":
		out, err := r.exec.Execute(ctx, "bws", "secret", "get", ref, "--output", "json")
		if err != nil {
			return "", fmt.Errorf("bws secret get: %w", err)
		}
		var secret struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(out, &secret); err != nil {
			return "", fmt.Errorf("unexpected bws output: %w", err)
		}
		return secret.Value, nil

	case "pass":
		out, err := r.exec.Execute(ctx, "pass", "show", ref)
		if err != nil {
			return "", fmt.Errorf("pass show: %w", err)
		}
		// pass entries may carry metadata after the first line.
		first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
		return first, nil

	case "env":
		v := r.getenv(ref)
		if v == "" {
			logging.Debug("secret reference resolved to empty value", "variable", ref)
		}
		return v, nil

	default:
		// Unknown schemes pass through; the value may legitimately be a
		// URL ("https://...").
		return value, nil
	}
}
