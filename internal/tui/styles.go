// Package tui provides the interactive terminal board for weekly.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/weekly/internal/render"
)

// Color palette for the board.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the board.
var (
	// StyleTitle is used for the board title.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleDay is used for day headers.
	StyleDay = lipgloss.NewStyle().
			Bold(true)

	// StyleDaySelected is used for the header of the focused day.
	StyleDaySelected = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorActive)

	// StyleCursor marks the selected item.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleDone is used for completed items.
	StyleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorMuted)

	// StyleWarning is used for status messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleInput is used for the rename and add prompt.
	StyleInput = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleDayBox frames a day section.
	StyleDayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// StyleDayBoxSelected frames the focused day section.
	StyleDayBoxSelected = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorActive).
				Padding(0, 1)
)

// iconStyles colors priority icons, most urgent in red.
var iconStyles = map[render.Icon]lipgloss.Style{
	render.IconHigh:   lipgloss.NewStyle().Foreground(ColorError),
	render.IconMedium: lipgloss.NewStyle().Foreground(ColorWarning),
	render.IconLow:    lipgloss.NewStyle().Foreground(ColorSuccess),
	render.IconNone:   lipgloss.NewStyle().Foreground(ColorMuted),
}

// ProgressBar creates a colored progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}
