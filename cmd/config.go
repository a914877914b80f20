package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/config"
	"github.com/sundial-labs/ccs/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and edit the configuration",
	Long: `Writes the default configuration if none exists and opens it in
$EDITOR. Without $EDITOR the path is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}

		path, err := config.WriteDefault(a.Paths)
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			logging.UserInfo("config file: %s (set $EDITOR to edit directly)", path)
			return nil
		}
		return a.Executor.ExecuteInteractive(cmd.Context(), editor, path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
