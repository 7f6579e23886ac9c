package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/weekly/internal/model"
)

// completeTasks completes task names.
func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	// rename takes a single existing name first
	if cmd == renameCmd && len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tasks, err := ctx.Store.Tasks()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, t := range tasks {
		if strings.HasPrefix(t.Name, toComplete) {
			completions = append(completions, t.Name+"\t"+t.Day.LocalLabel(ctx.Locale()))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeDays completes day names.
func completeDays(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	candidates := []string{"today", "tomorrow"}
	for _, d := range model.Days {
		candidates = append(candidates, strings.ToLower(d.Label()))
	}

	var completions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, strings.ToLower(toComplete)) {
			completions = append(completions, c)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
