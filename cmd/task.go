package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/parser"
	"github.com/manav03panchal/weekly/internal/validate"
)

// Add command flags.
var (
	addFlagDay      string
	addFlagPriority string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:     "add NAME... --day DAY",
	Aliases: []string{"a", "new"},
	Short:   "Add a task to a day",
	Long: `Add a task to a day of the week. The words of NAME are joined with
spaces, so quoting is optional. Task names must be unique.

DAY is a day name or prefix (mon, tuesday, segunda), a number from 0
(Monday) to 6 (Sunday), today, tomorrow, or a date such as "next friday"
or 2026-10-23, in which case its day of the week is used.

PRIORITY is 1 (high), 2 (medium), 3 (low) or high/medium/low. Tasks
without a priority are listed after prioritized ones.

Examples:
  weekly add Pay rent --day mon --priority 1
  weekly add "Call mom" -d sunday
  weekly add Gym -d tomorrow -p low`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

// doneCmd represents the done command.
var doneCmd = &cobra.Command{
	Use:     "done NAME...",
	Aliases: []string{"toggle", "check"},
	Short:   "Toggle a task between done and pending",
	Long: `Toggle whether a task is done. Running it again marks the task pending.

Examples:
  weekly done Pay rent
  weekly check Gym`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDone,
}

// renameCmd represents the rename command.
var renameCmd = &cobra.Command{
	Use:     "rename OLD NEW",
	Aliases: []string{"mv"},
	Short:   "Rename a task",
	Long: `Rename a task. Quote names that contain spaces. An empty NEW name
leaves the task unchanged.

Examples:
  weekly rename Gym "Gym with Ana"`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

// removeCmd represents the remove command.
var removeCmd = &cobra.Command{
	Use:     "remove NAME...",
	Aliases: []string{"rm", "del"},
	Short:   "Remove a task",
	Long: `Remove a task. Use 'weekly undo' to bring it back.

Examples:
  weekly remove Pay rent
  weekly rm Gym`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagDay, "day", "d", "", "Day of the week or a date")
	addCmd.Flags().StringVarP(&addFlagPriority, "priority", "p", "", "Priority: 1 (high), 2, 3 (low)")
	addCmd.RegisterFlagCompletionFunc("day", completeDays)
	addCmd.RegisterFlagCompletionFunc("priority", cobra.FixedCompletions(
		[]string{"1\thigh", "2\tmedium", "3\tlow"}, cobra.ShellCompDirectiveNoFileComp))

	doneCmd.ValidArgsFunction = completeTasks
	renameCmd.ValidArgsFunction = completeTasks
	removeCmd.ValidArgsFunction = completeTasks

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(removeCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	// The name is checked before the flags so errors come in the same
	// order as the store's.
	if validate.SanitizeName(name) == "" {
		return errors.Invalid(errors.ErrEmptyName, "name", "")
	}

	day, err := parser.ParseDay(addFlagDay, time.Now())
	if err != nil {
		return err
	}
	priority, err := parser.ParsePriority(addFlagPriority)
	if err != nil {
		return err
	}

	if err := ctx.Store.Add(name, day, priority); err != nil {
		return err
	}

	task := findTask(validate.SanitizeName(name))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("add", task, ctx.Locale())
	}
	if task == nil {
		return nil
	}

	cli := ctx.CLIFormatter()
	msg := "Added " + cli.TaskName(task.Name) + " to " + task.Day.LocalLabel(ctx.Locale())
	if task.Priority.IsSet() {
		msg += " (" + parser.PriorityName(task.Priority) + " priority)"
	}
	cli.Success(msg)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	if ok, err := requireTask(name); err != nil || !ok {
		return err
	}

	if err := ctx.Store.ToggleChecked(name); err != nil {
		return err
	}

	task := findTask(name)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("toggle", task, ctx.Locale())
	}
	if task == nil {
		return nil
	}
	cli := ctx.CLIFormatter()
	if task.Checked {
		cli.Success("Done: " + cli.TaskName(task.Name))
	} else {
		cli.Success("Pending: " + cli.TaskName(task.Name))
	}
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	if ok, err := requireTask(oldName); err != nil || !ok {
		return err
	}

	if err := ctx.Store.Rename(oldName, newName); err != nil {
		return err
	}

	newName = validate.SanitizeName(newName)
	if newName == "" {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintTask("none", findTask(oldName), ctx.Locale())
		}
		ctx.CLIFormatter().Muted("Empty name, nothing renamed")
		return nil
	}

	task := findTask(newName)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("rename", task, ctx.Locale())
	}
	cli := ctx.CLIFormatter()
	cli.Success("Renamed " + cli.TaskName(oldName) + " to " + cli.TaskName(newName))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	task := findTask(name)
	if task == nil {
		return reportMissing(name)
	}

	if err := ctx.Store.Remove(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("remove", task, ctx.Locale())
	}
	cli := ctx.CLIFormatter()
	cli.Success("Removed " + cli.TaskName(task.Name) + " from " + task.Day.LocalLabel(ctx.Locale()))
	return nil
}

// findTask returns a copy of the first task named name, or nil.
func findTask(name string) *model.Task {
	t, err := ctx.Store.Find(name)
	if err != nil {
		return nil
	}
	return t
}

// requireTask reports whether name exists, printing a notice when it
// does not. Missing tasks are not an error.
func requireTask(name string) (bool, error) {
	ok, err := ctx.Store.Exists(name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, reportMissing(name)
	}
	return true, nil
}

func reportMissing(name string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status":  "not_found",
			"message": "No task named " + name,
		})
	}
	ctx.CLIFormatter().Muted("No task named '" + name + "'")
	return nil
}
