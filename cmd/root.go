// Package cmd provides the CLI commands for Weekly.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/output"
	"github.com/manav03panchal/weekly/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
	flagDB     string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// stdout receives command output.
var stdout io.Writer = os.Stdout

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Organize your week from the terminal",
	Long: `Weekly keeps a list of tasks, each tagged with a day of the week and an
optional priority, and shows them grouped by day with the most urgent
first.

Examples:
  weekly add Pay rent --day mon --priority 1
  weekly add Gym --day "next friday"
  weekly done Pay rent
  weekly week
  weekly board`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.ConfigFromEnv())
		}

		opts := runtime.DefaultOptions()
		if flagConfig != "" {
			opts.ConfigPath = flagConfig
		}
		opts.DBPath = flagDB
		opts.Debug = flagDebug
		opts.Command = cmd.CommandPath()

		// Unset flags keep the configured display settings.
		var err error
		if flagFormat != "" {
			if opts.Format, err = output.ParseFormat(flagFormat); err != nil {
				return err
			}
		}
		if flagColor != "" {
			if opts.ColorMode, err = output.ParseColorMode(flagColor); err != nil {
				return err
			}
		}

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = stdout
		ctx.Log.Debug("command started")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the week
		return runWeek(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it. Errors
// are printed before being returned.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		if ctx != nil {
			ctx.Close()
			ctx = nil
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/weekly/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Database path, or :memory: for a throwaway store")

	rootCmd.ValidArgsFunction = completeDays
	rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"cli", "json", "plain"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("weekly %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// printError prints err to stderr, or as a JSON document when JSON output
// is selected.
func printError(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.JSONFormatter().PrintError(err)
		return
	}
	if flagDebug {
		os.Stderr.WriteString(errors.FormatDebugError(err) + "\n")
		return
	}
	os.Stderr.WriteString("Error: " + errors.FormatByCategory(err) + "\n")
}
