package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/storage"
	"github.com/manav03panchal/weekly/internal/store"
	"github.com/manav03panchal/weekly/internal/week"
)

// monday is 2026-10-19, a Monday.
var monday = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func setupBoard(t *testing.T) (*BoardModel, *store.Store) {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.New(db, model.KeyTasks)
	m := NewBoardModel(BoardConfig{Store: s, Now: func() time.Time { return monday }})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command, feeding its message
// back into the model the way the bubbletea runtime would.
func press(t *testing.T, m *BoardModel, k tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(k)
	if cmd == nil {
		return
	}
	m.Update(cmd())
	reload(t, m)
}

func reload(t *testing.T, m *BoardModel) {
	t.Helper()
	m.Update(m.loadCmd()())
}

func typeText(t *testing.T, m *BoardModel, text string) {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			press(t, m, key("space"))
			continue
		}
		press(t, m, key(string(r)))
	}
}

// =============================================================================
// Navigation Tests
// =============================================================================

func TestBoardStartsOnToday(t *testing.T) {
	m, _ := setupBoard(t)
	assert.Equal(t, model.Monday, m.day)

	sunday := NewBoardModel(BoardConfig{Now: func() time.Time { return monday.AddDate(0, 0, 6) }})
	assert.Equal(t, model.Sunday, sunday.day)
	assert.Equal(t, model.LocaleEN, sunday.locale)
}

func TestBoardDayNavigationWraps(t *testing.T) {
	m, _ := setupBoard(t)

	press(t, m, key("left"))
	assert.Equal(t, model.Sunday, m.day)

	press(t, m, key("right"))
	press(t, m, key("l"))
	assert.Equal(t, model.Tuesday, m.day)
}

func TestBoardRowNavigationClamps(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("a", model.Monday, model.PriorityNone))
	require.NoError(t, s.Add("b", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("up"))
	assert.Equal(t, 0, m.row)

	press(t, m, key("down"))
	press(t, m, key("j"))
	assert.Equal(t, 1, m.row)

	// Moving to an empty day resets the row.
	press(t, m, key("right"))
	assert.Equal(t, 0, m.row)
	_, ok := m.selected()
	assert.False(t, ok)
}

// =============================================================================
// Mutation Tests
// =============================================================================

func TestBoardAdd(t *testing.T) {
	m, s := setupBoard(t)

	press(t, m, key("right"))
	press(t, m, key("a"))
	assert.Equal(t, modeAdd, m.mode)

	typeText(t, m, "Pay rent !1")
	press(t, m, key("enter"))
	assert.Equal(t, modeNormal, m.mode)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.NewTask("Pay rent", model.Tuesday, model.PriorityHigh), tasks[0])

	require.Len(t, m.days[model.Tuesday].Items, 1)
	assert.Equal(t, render.IconHigh, m.days[model.Tuesday].Items[0].Icon)
}

func TestBoardAddDuplicateShowsError(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("a", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("a"))
	typeText(t, m, "a")
	press(t, m, key("enter"))

	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, errors.ErrDuplicateName)
	assert.Contains(t, m.View(), "Error:")
}

func TestBoardAddBadPriority(t *testing.T) {
	m, s := setupBoard(t)

	press(t, m, key("a"))
	typeText(t, m, "x !9")
	press(t, m, key("enter"))

	assert.ErrorIs(t, m.err, errors.ErrInvalidPriority)
	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestBoardToggle(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("a", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("space"))
	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.True(t, tasks[0].Checked)
	assert.True(t, m.days[model.Monday].Items[0].Completed)

	press(t, m, key("x"))
	tasks, err = s.Tasks()
	require.NoError(t, err)
	assert.False(t, tasks[0].Checked)
}

func TestBoardRename(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("milk", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("r"))
	assert.Equal(t, modeRename, m.mode)
	assert.Equal(t, "milk", string(m.input))

	for range 4 {
		press(t, m, key("backspace"))
	}
	typeText(t, m, "bread")
	press(t, m, key("enter"))

	exists, err := s.Exists("bread")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBoardRenameCancel(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("milk", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("r"))
	typeText(t, m, "zzz")
	press(t, m, key("esc"))
	assert.Equal(t, modeNormal, m.mode)
	assert.Nil(t, m.input)

	exists, err := s.Exists("milk")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBoardRemoveAndUndo(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("a", model.Monday, model.PriorityNone))
	reload(t, m)

	press(t, m, key("d"))
	assert.Empty(t, m.days[model.Monday].Items)
	assert.Equal(t, "Removed a", m.message)

	press(t, m, key("u"))
	assert.Equal(t, "Undid remove", m.message)
	require.Len(t, m.days[model.Monday].Items, 1)

	exists, err := s.Exists("a")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBoardUndoNothing(t *testing.T) {
	m, _ := setupBoard(t)
	press(t, m, key("u"))
	assert.ErrorIs(t, m.err, errors.ErrNothingToUndo)
}

func TestBoardKeysIgnoredOnEmptyDay(t *testing.T) {
	m, _ := setupBoard(t)
	for _, k := range []string{"space", "r", "d"} {
		_, cmd := m.Update(key(k))
		assert.Nil(t, cmd, k)
	}
	assert.Equal(t, modeNormal, m.mode)
}

func TestBoardListenerRedraws(t *testing.T) {
	m, s := setupBoard(t)
	unsubscribe := s.OnChange(func(w week.Week) { m.Update(weekMsg(w)) })
	defer unsubscribe()

	require.NoError(t, s.Add("a", model.Friday, model.PriorityLow))
	require.Len(t, m.days[model.Friday].Items, 1)
	assert.Equal(t, render.IconLow, m.days[model.Friday].Items[0].Icon)
}

func TestBoardQuit(t *testing.T) {
	m, _ := setupBoard(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBoardMessageExpires(t *testing.T) {
	m, _ := setupBoard(t)
	m.setMessage("hello", time.Second)

	m.now = func() time.Time { return monday.Add(2 * time.Second) }
	m.Update(tickMsg(monday))
	assert.Empty(t, m.message)
}

// =============================================================================
// splitPriority Tests
// =============================================================================

func TestSplitPriority(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		priority model.Priority
		wantErr  bool
	}{
		{"Pay rent", "Pay rent", model.PriorityNone, false},
		{"Pay rent !1", "Pay rent", model.PriorityHigh, false},
		{"  Gym !low ", "Gym", model.PriorityLow, false},
		{"Wow!", "Wow!", model.PriorityNone, false},
		{"x !urgent", "", model.PriorityNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, prio, err := splitPriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.priority, prio)
		})
	}
}

// =============================================================================
// View Tests
// =============================================================================

func TestBoardViewLoading(t *testing.T) {
	m := NewBoardModel(BoardConfig{Now: func() time.Time { return monday }})
	assert.Equal(t, "Loading...", m.View())
}

func TestBoardView(t *testing.T) {
	m, s := setupBoard(t)
	require.NoError(t, s.Add("Pay rent", model.Monday, model.PriorityHigh))
	reload(t, m)

	view := m.View()
	assert.Contains(t, view, "Weekly")
	assert.Contains(t, view, "Mon Oct 19")
	assert.Contains(t, view, "Pay rent")
	assert.Contains(t, view, "Sunday")
	assert.Contains(t, view, "quit")

	press(t, m, key("a"))
	view = m.View()
	assert.Contains(t, view, "New task on Monday: ")
	assert.Contains(t, view, "cancel")
}

func TestBoardViewWideColumns(t *testing.T) {
	m, _ := setupBoard(t)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	view := m.View()
	for _, d := range model.Days {
		assert.Contains(t, view, d.Label())
	}
}

// =============================================================================
// DayComponent Tests
// =============================================================================

func TestDayComponent(t *testing.T) {
	day := render.Day{
		Day:   model.Monday,
		Label: "Monday",
		Items: []render.Item{
			render.NewItem(model.Task{Name: "a", Priority: model.PriorityHigh}),
			render.NewItem(model.Task{Name: "b", Checked: true}),
		},
	}

	view := NewDayComponent(day, 60, true, 0).View()
	assert.Contains(t, view, "Monday")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "> ")
	assert.Contains(t, view, "[x]")

	unfocused := NewDayComponent(day, 60, false, 0)
	assert.Equal(t, -1, unfocused.Cursor)
	assert.NotContains(t, unfocused.View(), "> ")
}

func TestDayComponentTruncatesLongNames(t *testing.T) {
	day := render.Day{
		Day:   model.Friday,
		Label: "Friday",
		Items: []render.Item{render.NewItem(model.Task{Name: "Renew the passport before the trip"})},
	}

	view := NewDayComponent(day, 28, true, 0).View()
	assert.Contains(t, view, "Renew the...")
	assert.NotContains(t, view, "trip")
	// Header plus one item row, framed by two border lines.
	assert.Len(t, strings.Split(view, "\n"), 4)

	short := render.Day{
		Day:   model.Friday,
		Label: "Friday",
		Items: []render.Item{render.NewItem(model.Task{Name: "abcdefghijklmn"})},
	}
	view = NewDayComponent(short, 28, true, 0).View()
	assert.Contains(t, view, "abcdefghi...")
	assert.Len(t, strings.Split(view, "\n"), 4)
}

func TestDayComponentEmpty(t *testing.T) {
	view := NewDayComponent(render.Day{Day: model.Sunday, Label: "Sunday"}, 40, false, 0).View()
	assert.Contains(t, view, "no tasks")
	assert.NotContains(t, view, "0/0")
}

func TestHelpBar(t *testing.T) {
	normal := HelpBar(false)
	assert.Contains(t, normal, "toggle")
	assert.Contains(t, normal, "undo")

	editing := HelpBar(true)
	assert.Contains(t, editing, "save")
	assert.NotContains(t, editing, "undo")
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		filled     int
	}{
		{"zero", 0, 0},
		{"half", 50, 5},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, 10)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"))
		})
	}
}
