// Package app wires the application's dependencies together so commands
// share one configured instance and tests can swap in fakes.
package app

import (
	"sync"

	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/runtime"
	"github.com/sundial-labs/ccs/internal/system"
	"github.com/sundial-labs/ccs/internal/workspace"
)

// App holds the shared dependencies of a ccs invocation.
type App struct {
	Paths    *config.Paths
	Config   *config.Config
	Executor system.CommandExecutor
	Git      *workspace.Git

	engine     runtime.Engine
	engineOnce sync.Once
	engineErr  error
}

// Option configures an App.
type Option func(*App)

// WithPaths overrides the default XDG paths.
func WithPaths(p *config.Paths) Option {
	return func(a *App) { a.Paths = p }
}

// WithConfig overrides the loaded configuration.
func WithConfig(c *config.Config) Option {
	return func(a *App) { a.Config = c }
}

// WithExecutor overrides the command executor.
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) { a.Executor = e }
}

// WithEngine pins the container engine, skipping detection.
func WithEngine(e runtime.Engine) Option {
	return func(a *App) { a.engine = e }
}

// New builds an App. Unset dependencies get their defaults; the
// configuration is loaded from disk unless provided.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.Paths == nil {
		a.Paths = config.DefaultPaths()
	}
	if a.Config == nil {
		cfg, err := config.Load(a.Paths)
		if err != nil {
			return nil, err
		}
		a.Config = cfg
	}
	if a.Executor == nil {
		a.Executor = system.DefaultExecutor()
	}
	if a.Git == nil {
		a.Git = workspace.NewGit(a.Executor)
	}
	return a, nil
}

// ContainerEngine returns the container engine, detecting it on first
// use. Detection is deferred so commands that never touch containers
// work on hosts without one.
func (a *App) ContainerEngine() (runtime.Engine, error) {
	a.engineOnce.Do(func() {
		if a.engine == "" {
			a.engine, a.engineErr = runtime.Detect()
		}
	})
	return a.engine, a.engineErr
}

var (
	defaultMu  sync.Mutex
	defaultApp *App
)

// Default returns the process-wide App, building it on first use.
func Default() (*App, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultApp == nil {
		a, err := New()
		if err != nil {
			return nil, err
		}
		defaultApp = a
	}
	return defaultApp, nil
}

// SetDefault replaces the process-wide App. Used by tests.
func SetDefault(a *App) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultApp = a
}

// ResetDefault clears the process-wide App so the next Default call
// rebuilds it.
func ResetDefault() {
	SetDefault(nil)
}
