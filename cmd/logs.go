package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/runtime"
)

var logsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs <session>",
	Short: "Show a session's output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			return err
		}

		name, err := runtime.ResolveSessionName(cmd.Context(), engine, a.Executor, args[0])
		if err != nil {
			return err
		}
		return runtime.Logs(cmd.Context(), engine, a.Executor, name, logsFollow)
	},
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow the log output")
	rootCmd.AddCommand(logsCmd)
}
