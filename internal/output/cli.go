package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/validate"
	"github.com/manav03panchal/weekly/internal/week"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleDay = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorMuted)

	iconStyles = map[render.Icon]lipgloss.Style{
		render.IconHigh:   lipgloss.NewStyle().Foreground(colorError),
		render.IconMedium: lipgloss.NewStyle().Foreground(colorWarning),
		render.IconLow:    lipgloss.NewStyle().Foreground(colorSuccess),
		render.IconNone:   lipgloss.NewStyle().Foreground(colorMuted),
	}
)

// IconGlyph draws a priority icon as signal bars. Taller means more urgent.
func IconGlyph(icon render.Icon) string {
	switch icon {
	case render.IconHigh:
		return "▂▄▆"
	case render.IconMedium:
		return "▂▄ "
	case render.IconLow:
		return "▂  "
	}
	return "   "
}

// Checkbox draws the completion marker.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) style(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.style(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.style(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.style(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.style(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.style(styleMuted, text))
}

// TaskName formats a task name for inline messages.
func (c *CLIFormatter) TaskName(name string) string {
	return c.style(styleBold, name)
}

// ItemLine renders one item as "[x] ▂▄▆ name".
func (c *CLIFormatter) ItemLine(item render.Item) string {
	icon := c.style(iconStyles[item.Icon], IconGlyph(item.Icon))
	name := item.Name
	if item.Completed {
		name = c.style(styleDone, name)
	}
	return fmt.Sprintf("%s %s %s", Checkbox(item.Completed), icon, name)
}

// PrintWeek draws the board: one section per day, items in display order.
// Empty days are listed unless hideEmpty is set.
func (c *CLIFormatter) PrintWeek(days []render.Day, hideEmpty bool) {
	width := c.Width()
	printed := 0
	for _, d := range days {
		if hideEmpty && len(d.Items) == 0 {
			continue
		}
		done := 0
		for _, it := range d.Items {
			if it.Completed {
				done++
			}
		}

		header := d.Label
		if len(d.Items) > 0 {
			header = fmt.Sprintf("%s (%d/%d)", d.Label, done, len(d.Items))
		}
		if printed > 0 {
			c.Println()
		}
		c.Println(c.style(styleDay, header))
		printed++

		if len(d.Items) == 0 {
			c.Println("  " + c.style(styleMuted, "no tasks"))
			continue
		}
		for _, it := range d.Items {
			c.Println("  " + truncate(c.ItemLine(it), width-2, it))
		}
	}
	if printed == 0 {
		c.Muted("No tasks this week. Add one with 'weekly add NAME --day monday'.")
	}
}

// truncate shortens plain lines that would wrap by cutting the name.
// Styled lines are left alone.
func truncate(line string, width int, item render.Item) string {
	if width <= 10 || lipgloss.Width(line) <= width || strings.ContainsRune(line, '\x1b') {
		return line
	}
	// "[ ] ▂▄▆ " precedes the name.
	name := validate.TruncateString(item.Name, width-8)
	return fmt.Sprintf("%s %s %s", Checkbox(item.Completed), IconGlyph(item.Icon), name)
}

// PrintStats prints per-day completion with a progress bar.
func (c *CLIFormatter) PrintStats(days []render.Day, stats week.Stats) {
	rows := make([]TableRow, 0, len(days))
	for i, d := range days {
		ds := stats.Days[i]
		pct := 0.0
		if ds.Total > 0 {
			pct = float64(ds.Done) / float64(ds.Total) * 100
		}
		rows = append(rows, TableRow{Columns: []string{
			d.Label,
			fmt.Sprintf("%d/%d", ds.Done, ds.Total),
			ProgressBar(pct, 10),
			fmt.Sprintf("%d/%d/%d", ds.High, ds.Medium, ds.Low),
		}})
	}
	c.PrintTable([]string{"Day", "Done", "", "H/M/L"}, rows)
	c.Println()
	c.Printf("Total: %d/%d done (%.0f%%)\n", stats.Done, stats.Total, stats.Percent())
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of PrintTable output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.style(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
