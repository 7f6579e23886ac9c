package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
)

// Reset command flags.
var resetFlagForce bool

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset --force",
	Short: "Delete all tasks",
	Long: `Delete all tasks. The stored value is first copied to a backup key, so
even unreadable data is kept. When the tasks were readable, 'weekly undo'
brings them back.

Examples:
  weekly reset --force`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetFlagForce, "force", false, "Confirm deleting all tasks")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetFlagForce {
		return errors.Invalid(errors.ErrConfirmationMissing, "force", "")
	}

	if err := ctx.Store.Reset(); err != nil {
		return err
	}

	backupKey := ctx.Config.Storage.Key + model.SuffixBackup
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status": "reset",
			"backup": backupKey,
		})
	}
	ctx.CLIFormatter().Success("All tasks deleted (backup kept under " + backupKey + ")")
	return nil
}
