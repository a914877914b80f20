package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/runtime"
)

var stopCmd = &cobra.Command{
	Use:   "stop <session>...",
	Short: "Stop running sessions",
	Long: `Stops one or more sandbox sessions. Session containers are started
with --rm, so stopping also removes them; the worktree stays and is
picked up by the next gc pass once it qualifies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			return err
		}

		for _, arg := range args {
			name, err := runtime.ResolveSessionName(cmd.Context(), engine, a.Executor, arg)
			if err != nil {
				return err
			}
			if err := runtime.Stop(cmd.Context(), engine, a.Executor, name); err != nil {
				return err
			}
			logging.UserSuccess("stopped %s", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
