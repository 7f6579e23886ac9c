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
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionGenerators writes the completion script for each shell.
var completionGenerators = map[string]func(io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

func completionShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for sh := range completionGenerators {
		shells = append(shells, sh)
	}
	slices.Sort(shells)
	return shells
}

var completionCmd = &cobra.Command{
	Use:   "completion [" + strings.Join(completionShells(), "|") + "]",
	Short: "Print a shell completion script",
	Long: `Print a completion script for weekly. Task names and days complete
from your stored week.

  bash        source <(weekly completion bash)
  zsh         weekly completion zsh > "${fpath[1]}/_weekly"
  fish        weekly completion fish > ~/.config/fish/completions/weekly.fish
  powershell  weekly completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells(),
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionGenerators[args[0]](stdout)
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
