package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/config"
)

// Config command flags.
var configInitFlagForce bool

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Show the effective configuration",
	Long: `Show the configuration weekly runs with, after the config file,
environment variables (WEEKLY_DATABASE, WEEKLY_BACKEND, WEEKLY_KEY,
WEEKLY_LOCALE, NO_COLOR) and flags are applied.

Examples:
  weekly config
  weekly config path
  weekly config init`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints the config file location.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(configPath())
	},
}

// configInitCmd writes a commented config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a commented config file with the default settings. An existing
file is kept unless --force is given.

Examples:
  weekly config init
  weekly config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlagForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configPath returns the config file in use.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if p := os.Getenv("WEEKLY_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	path := configPath()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"path":     path,
			"database": cfg.DatabasePath(),
			"config":   cfg,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Muted("# " + path)
	cli.Muted("# database: " + cfg.DatabasePath())
	cli.Print(cfg.String())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteExample(path, configInitFlagForce); err != nil {
		return err
	}
	ctx.CLIFormatter().Success("Wrote " + path)
	return nil
}
