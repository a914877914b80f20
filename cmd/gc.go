package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sundial-labs/ccs/internal/app"
	"github.com/sundial-labs/ccs/internal/logging"
)

var gcDryRun bool

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Reclaim orphaned worktrees",
	Long: `Scans the worktree data root and removes worktrees that have no
running session, no uncommitted changes, and no unmerged commits.
Anything ambiguous is kept. Worktrees modified within the last hour are
kept regardless, so a session that just provisioned one is never raced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Default()
		if err != nil {
			return err
		}

		result := reclaimOrphans(cmd.Context(), a, gcDryRun, flagVerbose)
		logging.UserSuccess("%s", result.Summary())
		return nil
	},
}

func init() {
	gcCmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "classify without removing anything")
	rootCmd.AddCommand(gcCmd)
}
