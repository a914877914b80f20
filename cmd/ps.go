package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/runtime"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List running sandbox sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			return err
		}

		sessions, err := runtime.ListSessions(cmd.Context(), engine, a.Executor)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			logging.UserInfo("no running sessions")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATUS\tIMAGE\tID")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Status, s.Image, s.ID)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(psCmd)
}
