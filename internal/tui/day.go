package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/weekly/internal/output"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/validate"
)

// DayComponent renders one day of the board.
type DayComponent struct {
	Day      render.Day
	Width    int
	Selected bool
	// Cursor is the selected row, or -1 when the day is not focused.
	Cursor int
}

// NewDayComponent creates a day component.
func NewDayComponent(day render.Day, width int, selected bool, cursor int) *DayComponent {
	if !selected {
		cursor = -1
	}
	return &DayComponent{Day: day, Width: width, Selected: selected, Cursor: cursor}
}

// View renders the day section.
func (dc *DayComponent) View() string {
	var content strings.Builder

	done := 0
	for _, it := range dc.Day.Items {
		if it.Completed {
			done++
		}
	}
	header := dc.Day.Label
	if n := len(dc.Day.Items); n > 0 {
		header = fmt.Sprintf("%s %s", header, StyleSubtitle.Render(fmt.Sprintf("%d/%d", done, n)))
	}
	if dc.Selected {
		content.WriteString(StyleDaySelected.Render(header))
	} else {
		content.WriteString(StyleDay.Render(header))
	}

	if len(dc.Day.Items) == 0 {
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render("no tasks"))
	}
	for i, it := range dc.Day.Items {
		content.WriteString("\n")
		content.WriteString(dc.itemLine(it, i == dc.Cursor))
	}

	box := StyleDayBox
	if dc.Selected {
		box = StyleDayBoxSelected
	}
	if dc.Width > 4 {
		box = box.Width(dc.Width - 4)
	}
	return box.Render(content.String())
}

// contentWidth is the room inside the box once its border and padding are
// taken off, or 0 when the width is unconstrained.
func (dc *DayComponent) contentWidth() int {
	if dc.Width <= 4 {
		return 0
	}
	return dc.Width - 4 - StyleDayBox.GetHorizontalPadding()
}

func (dc *DayComponent) itemLine(it render.Item, selected bool) string {
	cursor := "  "
	if selected {
		cursor = StyleCursor.Render("> ")
	}
	name := it.Name
	// Cursor, checkbox and icon take ten cells of the content width.
	if room := dc.contentWidth() - 10; dc.Width > 4 && room > 3 {
		name = validate.TruncateString(name, room)
	}
	if it.Completed {
		name = StyleDone.Render(name)
	} else if selected {
		name = StyleCursor.Render(name)
	}
	icon := iconStyles[it.Icon].Render(output.IconGlyph(it.Icon))
	return fmt.Sprintf("%s%s %s %s", cursor, output.Checkbox(it.Completed), icon, name)
}

// HelpBar renders the key bindings for the current mode.
func HelpBar(editing bool) string {
	keys := []struct{ key, desc string }{
		{"←/→", "day"},
		{"↑/↓", "task"},
		{"space", "toggle"},
		{"a", "add"},
		{"r", "rename"},
		{"d", "remove"},
		{"u", "undo"},
		{"ctrl+r", "refresh"},
		{"q", "quit"},
	}
	if editing {
		keys = []struct{ key, desc string }{
			{"enter", "save"},
			{"esc", "cancel"},
		}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, StyleHelpKey.Render(k.key)+" "+StyleHelpDesc.Render(k.desc))
	}
	return StyleHelp.Render(strings.Join(parts, "  "))
}
