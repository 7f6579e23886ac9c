package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/parser"
	"github.com/manav03panchal/weekly/internal/render"
)

// Week command flags.
var weekFlagStats bool

// weekCmd represents the week command.
var weekCmd = &cobra.Command{
	Use:     "week [DAY]",
	Aliases: []string{"w", "ls", "list"},
	Short:   "Show tasks grouped by day",
	Long: `Show all tasks grouped by day of the week. Within a day, tasks with a
priority come first (1 before 2 before 3), then tasks without one, each
group in the order it was added.

Pass a DAY to show only that day.

Examples:
  weekly week
  weekly week fri
  weekly week tomorrow
  weekly week --stats
  weekly week --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeek,
}

// todayCmd represents the today command.
var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t", "td"},
	Short:   "Show today's tasks",
	Long: `Show the tasks for the current day of the week.

Examples:
  weekly today
  weekly t`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDays([]model.Day{model.DayOf(time.Now())})
	},
}

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"s", "summary"},
	Short:   "Show completion per day",
	Long: `Show how many tasks are done for each day, with the number of tasks at
each priority level.

Examples:
  weekly stats
  weekly stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	weekCmd.Flags().BoolVar(&weekFlagStats, "stats", false, "Show completion per day instead of tasks")
	weekCmd.ValidArgsFunction = completeDays

	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(statsCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
	if weekFlagStats {
		return runStats(cmd, args)
	}
	if len(args) == 0 {
		w, err := ctx.Store.Week()
		if err != nil {
			return err
		}
		return ctx.PrintWeek(w)
	}

	day, err := parser.ParseDay(args[0], time.Now())
	if err != nil {
		return err
	}
	return printDays([]model.Day{day})
}

// printDays prints only the given days of the week.
func printDays(days []model.Day) error {
	w, err := ctx.Store.Week()
	if err != nil {
		return err
	}

	keep := make(map[model.Day]bool, len(days))
	for _, d := range days {
		keep[d] = true
	}
	var shown []render.Day
	for _, d := range ctx.RenderWeek(w) {
		if keep[d.Day] {
			shown = append(shown, d)
		}
	}

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintWeek(shown)
	case ctx.IsPlain():
		ctx.PlainFormatter().PrintWeek(shown)
	default:
		ctx.CLIFormatter().PrintWeek(shown, false)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	w, err := ctx.Store.Week()
	if err != nil {
		return err
	}
	stats := w.Stats()

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(stats)
	}
	ctx.CLIFormatter().PrintStats(ctx.RenderWeek(w), stats)
	return nil
}
