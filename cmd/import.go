package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/store"
	"github.com/manav03panchal/weekly/internal/transfer"
	"github.com/manav03panchal/weekly/internal/validate"
)

// Import command flags.
var (
	importFlagMerge  bool
	importFlagDryRun bool
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"imp", "restore"},
	Short:   "Import tasks from a file",
	Long: `Import tasks from a file written by 'weekly export'. Files ending in .csv
are read as CSV, anything else as JSON. A bare JSON array of task records
is accepted too.

By default the imported tasks replace the stored ones. With --merge they
are appended, skipping names that already exist. 'weekly undo' reverts
an import.

Examples:
  weekly import tasks.json
  weekly import tasks.csv --merge
  weekly import tasks.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagMerge, "merge", false, "Keep stored tasks and add new ones")
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Check the file without importing")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tasks, err := transfer.Read(data, transfer.FormatForPath(filename))
	if err != nil {
		return err
	}

	mode := store.ImportReplace
	if importFlagMerge {
		mode = store.ImportMerge
	}

	if importFlagDryRun {
		return previewImport(tasks, mode)
	}

	res, err := ctx.Store.Import(tasks, mode)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":   "imported",
			"mode":     res.Mode,
			"imported": res.Imported,
			"skipped":  res.Skipped,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Imported %d tasks (%s)", res.Imported, res.Mode))
	if res.Skipped > 0 {
		cli.Muted(fmt.Sprintf("Skipped %d tasks that already exist", res.Skipped))
	}
	return nil
}

// previewImport validates tasks and reports what an import would do.
func previewImport(tasks []model.Task, mode store.ImportMode) error {
	for i := range tasks {
		tasks[i].Name = validate.SanitizeName(tasks[i].Name)
	}
	if err := validate.Tasks(tasks); err != nil {
		return err
	}

	skipped := 0
	if mode == store.ImportMerge {
		stored, err := ctx.Store.Tasks()
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if model.IndexOf(stored, t.Name) >= 0 {
				skipped++
			}
		}
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":   "dry_run",
			"mode":     mode,
			"imported": len(tasks) - skipped,
			"skipped":  skipped,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title("Dry Run - Import Preview")
	cli.Println(fmt.Sprintf("Would import %d tasks (%s)", len(tasks)-skipped, mode))
	if skipped > 0 {
		cli.Muted(fmt.Sprintf("Would skip %d tasks that already exist", skipped))
	}
	return nil
}
