package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/tui"
)

// boardCmd represents the board command.
var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"b", "ui", "dash"},
	Short:   "Open the interactive weekly board",
	Long: `Open a full-screen board with one section per day. Move with the arrow
keys (or h/j/k/l), toggle with space, add with a, rename with r, remove
with d and undo with u. Press q to quit.

When adding, end the name with !1, !2 or !3 to set a priority.

Examples:
  weekly board`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !ctx.Formatter.IsTerminal() {
		return errors.NewUserError("the board needs an interactive terminal",
			"Use 'weekly week' to print the tasks instead.")
	}
	return tui.Run(tui.BoardConfig{
		Store:  ctx.Store,
		Locale: ctx.Locale(),
	})
}
