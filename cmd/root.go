// Package cmd implements the ccs command line interface.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/auth"
	"github.com/sundial-labs/ccs/internal/cleanup"
	ccserrors "github.com/sundial-labs/ccs/internal/errors"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/mcp"
	"github.com/sundial-labs/ccs/internal/runtime"
	"github.com/sundial-labs/ccs/internal/secrets"
	"github.com/sundial-labs/ccs/internal/workspace"
)

var (
	flagVerbose bool
	flagJSON    bool

	flagNew    bool
	flagBranch string
	flagHere   bool
	flagDetach bool
	flagDryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "ccs [path] [-- agent-args...]",
	Short: "Disposable sandbox sessions for coding agents",
	Long: `ccs provisions a git worktree for a repository, starts a coding agent
in a container with the worktree mounted, and reclaims abandoned
worktrees once their work is merged or discarded.

By default ccs creates a fresh worktree on a generated branch. Use
--branch to work on an existing branch, --here to skip provisioning and
mount the current checkout, and --detach to leave the session running in
the background. Arguments after -- are passed to the agent.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(flagVerbose, flagJSON, os.Stderr)
	},
	RunE: runSession,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "log as JSON")

	rootCmd.Flags().BoolVar(&flagNew, "new", false, "create a new branch (generated name unless --branch is given)")
	rootCmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "branch to provision the worktree for")
	rootCmd.Flags().BoolVar(&flagHere, "here", false, "run in the current checkout without provisioning a worktree")
	rootCmd.Flags().BoolVarP(&flagDetach, "detach", "d", false, "run the session in the background")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the container command instead of running it")
}

func runSession(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := app.Default()
	if err != nil {
		return err
	}

	positional, agentArgs := splitArgs(cmd, args)
	repoPath := "."
	if len(positional) > 0 {
		repoPath = positional[0]
	}

	// Opportunistic reclamation keeps the data root from growing without
	// a dedicated gc run. Failures never block the session.
	reclaimOrphans(ctx, a, false, false)

	wctx, err := provision(ctx, a, repoPath)
	if err != nil {
		return err
	}

	resolver := secrets.NewResolver(a.Executor, os.Getenv)

	env, err := sessionEnv(ctx, a, resolver)
	if err != nil {
		return err
	}

	mcpPath, err := agentMCPConfig(ctx, a, resolver)
	if err != nil {
		return err
	}
	if mcpPath != "" {
		defer os.Remove(mcpPath)
	}

	engine, err := a.ContainerEngine()
	if err != nil {
		return ccserrors.ContainerFailed("detect engine", err)
	}

	runner := &runtime.Runner{
		Engine:        engine,
		Exec:          a.Executor,
		Config:        a.Config,
		Workspace:     wctx,
		Env:           env,
		MCPConfigPath: mcpPath,
		DryRun:        flagDryRun,
	}

	name, err := runner.Run(ctx, flagDetach, agentArgs)
	if err != nil {
		return err
	}

	if flagDetach && !flagDryRun {
		logging.UserSuccess("session %s started", name)
		logging.UserInfo("attach with `ccs attach %s`", name)
	}
	return nil
}

// provision resolves the workspace to mount. Without --here or an
// explicit branch a fresh worktree on a generated branch is created;
// running from inside an existing worktree reuses it instead.
func provision(ctx context.Context, a *app.App, repoPath string) (*workspace.Context, error) {
	if flagHere {
		wctx, err := a.Git.Detect(ctx, repoPath)
		if err != nil {
			return nil, ccserrors.NotARepo(repoPath)
		}
		return wctx, nil
	}

	branch := flagBranch
	createBranch := flagNew || flagBranch == ""
	if branch == "" {
		branch = workspace.GenerateBranchName()
	}

	wctx, err := a.Git.CreateWorktree(ctx, repoPath, branch, createBranch, a.Config, a.Paths)
	switch {
	case err == nil:
		logging.UserSuccess("provisioned worktree %s (branch %s)", wctx.WorkspacePath, branch)
		return wctx, nil

	case errors.Is(err, workspace.ErrCannotCreateFromWorktree) && flagBranch == "" && !flagNew:
		// Already inside a sandbox worktree; reuse it.
		wctx, derr := a.Git.Detect(ctx, repoPath)
		if derr != nil {
			return nil, ccserrors.NotARepo(repoPath)
		}
		logging.UserInfo("reusing worktree %s", wctx.WorkspacePath)
		return wctx, nil

	case errors.Is(err, workspace.ErrNotARepo):
		return nil, ccserrors.NotARepo(repoPath)

	case errors.Is(err, workspace.ErrBranchExists), errors.Is(err, workspace.ErrBranchNotFound):
		return nil, ccserrors.BranchError("cannot provision worktree", err)

	default:
		return nil, ccserrors.WorktreeError("cannot provision worktree", err)
	}
}

// sessionEnv resolves configured extra environment and merges in any
// agent credentials found on the host.
func sessionEnv(ctx context.Context, a *app.App, resolver *secrets.Resolver) (map[string]string, error) {
	env, err := resolver.Resolve(ctx, a.Config.Docker.ExtraEnv)
	if err != nil {
		return nil, err
	}

	if creds := auth.Discover(); creds != nil {
		logging.Debug("forwarding agent credentials", "source", creds.Source)
		for k, v := range creds.EnvVars() {
			env[k] = v
		}
	} else {
		logging.UserWarning("no agent credentials found; the session may require login")
	}
	return env, nil
}

// agentMCPConfig renders the configured MCP servers to a temp file for
// the container, empty when none are configured. Secret references in
// server env blocks are resolved before writing.
func agentMCPConfig(ctx context.Context, a *app.App, resolver *secrets.Resolver) (string, error) {
	path := a.Paths.MCPServersFile()
	if a.Config.MCPConfigPath != "" {
		path = a.Config.MCPConfigPath
	}

	f, err := mcp.Load(path)
	if err != nil {
		return "", ccserrors.ConfigError("invalid mcp config", err)
	}

	for name, server := range f.Servers {
		env, err := resolver.Resolve(ctx, server.Env)
		if err != nil {
			return "", err
		}
		server.Env = env
		f.Servers[name] = server
	}

	return f.WriteAgentConfig()
}

func splitArgs(cmd *cobra.Command, args []string) (positional, agentArgs []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args, nil
}

// reclaimOrphans runs one reclamation pass. Results are only surfaced
// when something happened or the caller asked for detail.
func reclaimOrphans(ctx context.Context, a *app.App, dryRun, verbose bool) *cleanup.Result {
	var inspector cleanup.SessionInspector = &cleanup.StaticInspector{}
	if engine, err := a.ContainerEngine(); err == nil {
		inspector = cleanup.NewEngineInspector(string(engine), a.Executor)
	}

	r := cleanup.NewReclaimer(a.Git, inspector, a.Paths.DataDir)
	r.DryRun = dryRun
	result := r.Run(ctx)

	for _, path := range result.Removed {
		if dryRun {
			logging.UserInfo("would remove %s", path)
		} else {
			logging.UserInfo("reclaimed %s", path)
		}
	}
	if verbose {
		for _, kept := range result.Kept {
			logging.UserInfo("kept %s", kept)
		}
	}
	for _, e := range result.Errors {
		logging.UserWarning("cleanup: %s", e)
	}
	return result
}
