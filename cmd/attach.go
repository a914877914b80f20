package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/runtime"
	"github.com/sundial-labs/ccs/internal/tui"
)

var attachCmd = &cobra.Command{
	Use:   "attach [session]",
	Short: "Attach to a running session",
	Long: `Attaches the terminal to a running sandbox session. Without an
argument an interactive picker is shown. The session name may be
abbreviated to any unique part of it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			name, err := runtime.ResolveSessionName(cmd.Context(), engine, a.Executor, args[0])
			if err != nil {
				return err
			}
			return runtime.Attach(cmd.Context(), engine, a.Executor, name)
		}

		sessions, err := runtime.ListSessions(cmd.Context(), engine, a.Executor)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			logging.UserInfo("no running sessions")
			return nil
		}

		choice, err := tui.PickSession(sessions)
		if err != nil {
			return err
		}
		if choice == nil {
			return nil
		}

		switch choice.Action {
		case tui.ActionAttach:
			return runtime.Attach(cmd.Context(), engine, a.Executor, choice.Session.Name)
		case tui.ActionLogs:
			return runtime.Logs(cmd.Context(), engine, a.Executor, choice.Session.Name, true)
		case tui.ActionStop:
			if err := runtime.Stop(cmd.Context(), engine, a.Executor, choice.Session.Name); err != nil {
				return err
			}
			logging.UserSuccess("stopped %s", choice.Session.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
}
