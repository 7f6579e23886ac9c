package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/output"
)

// undoCmd represents the undo command.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Long: `Undo the last change to the task list (add, done, rename, remove,
import or reset). Only the most recent change is kept.

Examples:
  weekly remove Gym
  weekly undo
  # Gym is back`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	state, err := ctx.Store.Undo()
	if errors.Is(err, errors.ErrNothingToUndo) {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]string{
				"status":  "nothing_to_undo",
				"message": "Nothing to undo",
			})
		}
		ctx.CLIFormatter().Muted("Nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintUndo(state)
	}
	cli := ctx.CLIFormatter()
	cli.Success(describeUndo(state))
	if !state.SavedAt.IsZero() {
		cli.Muted("The change was made " + output.FormatAgo(state.SavedAt, time.Now()))
	}
	return nil
}

// describeUndo returns a human summary of an undone change.
func describeUndo(state *model.UndoState) string {
	cli := ctx.CLIFormatter()
	name := cli.TaskName(state.TaskName)
	switch state.Action {
	case model.UndoActionAdd:
		return "Undid add: removed " + name
	case model.UndoActionRemove:
		return "Undid remove: restored " + name
	case model.UndoActionRename:
		return "Undid rename: " + name + " has its old name back"
	case model.UndoActionToggle:
		return "Undid done: " + name + " is back as it was"
	case model.UndoActionImport:
		return "Undid import: restored the previous tasks"
	case model.UndoActionReset:
		return "Undid reset: restored the previous tasks"
	}
	return "Undid " + string(state.Action)
}
