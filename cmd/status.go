package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/auth"
	"github.com/sundial-labs/ccs/internal/logging"
	"github.com/sundial-labs/ccs/internal/runtime"
	"github.com/sundial-labs/ccs/internal/toolchain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sandbox environment status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}
		engine, err := a.ContainerEngine()
		if err != nil {
			logging.UserError("no container engine found (looked for podman, docker)")
			return nil
		}

		st := runtime.CheckStatus(cmd.Context(), engine, a.Executor, a.Config, a.Paths)
		st.Print(a.Config, a.Paths)

		if creds := auth.Discover(); creds != nil {
			logging.UserSuccess("agent credentials: %s", creds.Source)
		} else {
			logging.UserWarning("no agent credentials found")
		}
		logging.UserInfo("secrets backend: %s", a.Config.Secrets.Backend)

		if cwd, err := os.Getwd(); err == nil {
			if tc := toolchain.Detect(cwd); len(tc) > 0 {
				logging.UserInfo("toolchains here: %v", tc)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
