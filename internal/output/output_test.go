package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/week"
)

func sampleDays() []render.Day {
	w := week.Group([]model.Task{
		{Name: "Pay rent", Day: model.Monday, Priority: model.PriorityHigh},
		{Name: "Gym", Day: model.Monday, Checked: true},
		{Name: "Read", Day: model.Friday, Priority: model.PriorityLow},
	})
	return render.Week(w, model.LocaleEN)
}

func plainFormatter(buf *bytes.Buffer) *Formatter {
	return &Formatter{Writer: buf, Format: FormatCLI, ColorMode: ColorNever}
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterWidth(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}
	assert.Equal(t, DefaultWidth, f.Width())
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	f.Println(" world")
	f.Printf("%d", 7)
	assert.Equal(t, "hello world\n7", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.JSON(map[string]string{"key": "value"}))
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"cli", "JSON", " plain ", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("yaml")
	assert.True(t, errors.IsUserError(err))
	assert.Equal(t, "unknown format: 'yaml'", err.Error())
	assert.Equal(t, "Use cli, json or plain.", errors.GetSuggestion(err))
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)

	m, err = ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, m)

	_, err = ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", FormatAgo(now.Add(-10*time.Second), now))
	assert.Equal(t, "5 minutes ago", FormatAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 hours ago", FormatAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", FormatAgo(now.Add(-50*time.Hour), now))
}

// =============================================================================
// CLI Formatter Tests
// =============================================================================

func TestIconGlyph(t *testing.T) {
	assert.Equal(t, "▂▄▆", IconGlyph(render.IconHigh))
	assert.Equal(t, "▂▄ ", IconGlyph(render.IconMedium))
	assert.Equal(t, "▂  ", IconGlyph(render.IconLow))
	assert.Equal(t, "   ", IconGlyph(render.IconNone))
}

func TestCLIFormatterMessages(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	cli.Success("added")
	cli.Warning("careful")
	cli.Error("failed")
	cli.Muted("quiet")
	cli.Title("Week")

	assert.Equal(t, "✓ added\n⚠ careful\n✗ failed\nquiet\nWeek\n", buf.String())
}

func TestCLIFormatterItemLine(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	line := cli.ItemLine(render.Item{Name: "Pay rent", Icon: render.IconHigh})
	assert.Equal(t, "[ ] ▂▄▆ Pay rent", line)

	line = cli.ItemLine(render.Item{Name: "Gym", Completed: true, Icon: render.IconNone})
	assert.Equal(t, "[x]     Gym", line)
}

func TestCLIFormatterPrintWeek(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	cli.PrintWeek(sampleDays(), false)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Monday (1/2)\n"))
	assert.Contains(t, out, "  [ ] ▂▄▆ Pay rent\n  [x]     Gym\n")
	assert.Contains(t, out, "Tuesday\n  no tasks\n")
	assert.Contains(t, out, "Friday (0/1)\n  [ ] ▂   Read\n")
	assert.Less(t, strings.Index(out, "Pay rent"), strings.Index(out, "Gym"))
}

func TestCLIFormatterPrintWeekHideEmpty(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	cli.PrintWeek(sampleDays(), true)
	assert.NotContains(t, buf.String(), "Tuesday")

	buf.Reset()
	cli.PrintWeek(render.Week(week.Week{}, model.LocaleEN), true)
	assert.Contains(t, buf.String(), "No tasks this week")
}

func TestCLIFormatterPrintWeekTruncates(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	long := strings.Repeat("a", 200)
	days := render.Week(week.Group([]model.Task{{Name: long}}), model.LocaleEN)
	cli.PrintWeek(days, true)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), DefaultWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestCLIFormatterPrintWeekColor(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(&Formatter{Writer: &buf, ColorMode: ColorAlways})

	cli.PrintWeek(sampleDays(), true)
	assert.Contains(t, buf.String(), "Pay rent")
	assert.Contains(t, buf.String(), "Monday (1/2)")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", ProgressBar(0, 4))
	assert.Equal(t, "██░░", ProgressBar(50, 4))
	assert.Equal(t, "████", ProgressBar(150, 4))
	assert.Equal(t, "░░░░", ProgressBar(-5, 4))
}

func TestCLIFormatterPrintStats(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	days := sampleDays()
	w := week.Group([]model.Task{
		{Name: "Pay rent", Day: model.Monday, Priority: model.PriorityHigh},
		{Name: "Gym", Day: model.Monday, Checked: true},
		{Name: "Read", Day: model.Friday, Priority: model.PriorityLow},
	})
	cli.PrintStats(days, w.Stats())

	out := buf.String()
	assert.Contains(t, out, "Day")
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Total: 1/3 done (33%)")
}

func TestCLIFormatterPrintTable(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(plainFormatter(&buf))

	cli.PrintTable([]string{"A", "B"}, nil)
	assert.Empty(t, buf.String())

	cli.PrintTable([]string{"Name", "N"}, []TableRow{{Columns: []string{"x", "10"}}})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name  N", lines[0])
	assert.Equal(t, "x     10", lines[2])
}

// =============================================================================
// JSON Formatter Tests
// =============================================================================

func TestJSONFormatterPrintWeek(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	require.NoError(t, j.PrintWeek(sampleDays()))

	var resp WeekResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Done)
	require.Len(t, resp.Days, model.DaysInWeek)
	assert.Equal(t, "Monday", resp.Days[0].Label)
	require.Len(t, resp.Days[0].Items, 2)
	assert.Equal(t, render.IconHigh, resp.Days[0].Items[0].Icon)
	assert.NotNil(t, resp.Days[1].Items)
}

func TestJSONFormatterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	task := model.NewTask("Pay rent", model.Tuesday, model.PriorityLow)
	require.NoError(t, j.PrintTask("add", &task, model.LocalePT))

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "add", resp.Action)
	require.NotNil(t, resp.Task)
	assert.Equal(t, "Terça-feira", resp.Task.DayLabel)
	assert.Equal(t, "low", resp.Task.Icon)
}

func TestJSONFormatterPrintUndo(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	require.NoError(t, j.PrintUndo(model.NewUndoState(model.UndoActionRemove, "Gym", nil)))
	assert.Contains(t, buf.String(), `"action": "remove"`)
	assert.Contains(t, buf.String(), `"task": "Gym"`)
}

func TestJSONFormatterPrintStats(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	w := week.Group([]model.Task{{Name: "a", Checked: true}, {Name: "b"}})
	require.NoError(t, j.PrintStats(w.Stats()))

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.InDelta(t, 50.0, resp.Percent, 0.01)
}

func TestJSONFormatterPrintError(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	require.NoError(t, j.PrintError(errors.Invalid(errors.ErrDuplicateName, "name", "Gym")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "duplicate_name", resp.Kind)
	assert.Equal(t, "user", resp.Category)
	assert.NotEmpty(t, resp.Suggestion)
}

// =============================================================================
// Plain Formatter Tests
// =============================================================================

func TestPlainFormatterPrintWeek(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainFormatter(&Formatter{Writer: &buf})

	p.PrintWeek(sampleDays())
	assert.Equal(t, "0\t0\t1\tPay rent\n0\t1\t-\tGym\n4\t0\t3\tRead\n", buf.String())
}
