package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/storage"
	"github.com/manav03panchal/weekly/internal/transfer"
)

// Export command flags.
var (
	exportFlagType   string
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export all tasks",
	Long: `Export all tasks as JSON or CSV. Without --type the format follows the
extension of the output file, and JSON is used for stdout.

Examples:
  weekly export
  weekly export -o tasks.json
  weekly export --type csv -o tasks.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagType, "type", "t", "", "Export format: json, csv")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{"json", "csv"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := transfer.FormatForPath(exportFlagOutput)
	if exportFlagType != "" {
		f, err := transfer.ParseFormat(exportFlagType)
		if err != nil {
			return err
		}
		format = f
	}

	tasks, err := ctx.Store.Tasks()
	if err != nil {
		return err
	}

	if exportFlagOutput == "" {
		return transfer.Write(stdout, format, tasks, time.Now())
	}

	var buf bytes.Buffer
	if err := transfer.Write(&buf, format, tasks, time.Now()); err != nil {
		return err
	}
	if err := storage.SafeWrite(exportFlagOutput, buf.Bytes(), 0o644); err != nil {
		return err
	}

	ctx.Log.Debug("exported", "format", string(format), logging.KeyCount, len(tasks))
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "exported",
			"file":   exportFlagOutput,
			"count":  len(tasks),
		})
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d tasks to %s", len(tasks), exportFlagOutput))
	return nil
}
