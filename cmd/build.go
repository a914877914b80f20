package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/runtime"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the sandbox image",
	Long: `Builds the configured sandbox image from a Dockerfile. The Dockerfile
is taken from docker.dockerfile_path, or from the config directory when
unset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			return err
		}

		if err := runtime.BuildImage(cmd.Context(), engine, a.Executor, a.Config, a.Paths); err != nil {
			return err
		}
		logging.UserSuccess("built %s", a.Config.Docker.Image)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
