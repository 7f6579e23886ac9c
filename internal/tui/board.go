package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/parser"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/store"
	"github.com/manav03panchal/weekly/internal/week"
)

// Store is the part of the task store the board drives.
type Store interface {
	Week() (week.Week, error)
	Add(name string, day model.Day, priority model.Priority) error
	Remove(name string) error
	Rename(oldName, newName string) error
	ToggleChecked(name string) error
	Undo() (*model.UndoState, error)
	OnChange(fn store.Listener) func()
}

// weekMsg carries a regrouped week, sent by the store after a mutation.
type weekMsg week.Week

// doneMsg reports a finished mutation.
type doneMsg struct {
	message string
	err     error
}

// tickMsg is sent when the message timer ticks.
type tickMsg time.Time

// mode is the input state of the board.
type mode int

const (
	modeNormal mode = iota
	modeRename
	modeAdd
)

// BoardModel is the bubbletea model of the weekly board.
type BoardModel struct {
	store  Store
	locale model.Locale

	// Data
	week week.Week
	days []render.Day

	// Cursor
	day model.Day
	row int

	// Input
	mode   mode
	input  []rune
	target string

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time
	now        func() time.Time
}

// BoardConfig holds configuration for the board.
type BoardConfig struct {
	Store  Store
	Locale model.Locale
	// Now is the clock used to focus today's column. Defaults to time.Now.
	Now func() time.Time
}

// NewBoardModel creates a board focused on today.
func NewBoardModel(cfg BoardConfig) *BoardModel {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Locale == "" {
		cfg.Locale = model.LocaleEN
	}
	return &BoardModel{
		store:  cfg.Store,
		locale: cfg.Locale,
		day:    model.DayOf(cfg.Now()),
		now:    cfg.Now,
	}
}

// Init loads the week.
func (m *BoardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

// Update handles messages and updates the model.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.handleInput(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case weekMsg:
		m.setWeek(week.Week(msg))
		return m, nil

	case doneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.message != "" {
			m.setMessage(msg.message, 2*time.Second)
		}
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// handleKeyPress handles keyboard input in normal mode.
func (m *BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h", "shift+tab":
		m.moveDay(-1)
	case "right", "l", "tab":
		m.moveDay(1)
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)

	case " ", "enter", "x":
		if it, ok := m.selected(); ok {
			name := it.Name
			return m, m.mutateCmd(func() error { return m.store.ToggleChecked(name) }, "")
		}

	case "a":
		m.startInput(modeAdd, "", "")

	case "r":
		if it, ok := m.selected(); ok {
			m.startInput(modeRename, it.Name, it.Name)
		}

	case "d", "delete":
		if it, ok := m.selected(); ok {
			name := it.Name
			return m, m.mutateCmd(func() error { return m.store.Remove(name) }, "Removed "+name)
		}

	case "u":
		return m, m.undoCmd()

	case "ctrl+r":
		m.setMessage("Refreshed", time.Second)
		return m, m.loadCmd()
	}
	return m, nil
}

// handleInput edits the add or rename prompt.
func (m *BoardModel) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.stopInput()
		return m, nil

	case tea.KeyEnter:
		text := string(m.input)
		target := m.target
		md := m.mode
		m.stopInput()
		if md == modeRename {
			return m, m.mutateCmd(func() error { return m.store.Rename(target, text) }, "")
		}
		name, prio, err := splitPriority(text)
		if err != nil {
			m.err = err
			return m, nil
		}
		day := m.day
		return m, m.mutateCmd(func() error { return m.store.Add(name, day, prio) }, "")

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// splitPriority reads an optional trailing "!N" priority from an add
// prompt, e.g. "Pay rent !1".
func splitPriority(text string) (string, model.Priority, error) {
	text = strings.TrimSpace(text)
	i := strings.LastIndex(text, " !")
	if i < 0 {
		return text, model.PriorityNone, nil
	}
	prio, err := parser.ParsePriority(text[i+2:])
	if err != nil {
		return "", model.PriorityNone, err
	}
	return strings.TrimSpace(text[:i]), prio, nil
}

func (m *BoardModel) startInput(md mode, initial, target string) {
	m.mode = md
	m.input = []rune(initial)
	m.target = target
	m.err = nil
}

func (m *BoardModel) stopInput() {
	m.mode = modeNormal
	m.input = nil
	m.target = ""
}

func (m *BoardModel) moveDay(delta int) {
	m.day = model.Day((int(m.day) + delta + model.DaysInWeek) % model.DaysInWeek)
	m.clampRow()
}

func (m *BoardModel) moveRow(delta int) {
	m.row += delta
	m.clampRow()
}

func (m *BoardModel) clampRow() {
	n := len(m.week.Bucket(m.day))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// selected returns the item under the cursor.
func (m *BoardModel) selected() (render.Item, bool) {
	if len(m.days) == 0 {
		return render.Item{}, false
	}
	items := m.days[m.day].Items
	if m.row < 0 || m.row >= len(items) {
		return render.Item{}, false
	}
	return items[m.row], true
}

func (m *BoardModel) setWeek(w week.Week) {
	m.week = w
	m.days = render.Week(w, m.locale)
	m.clampRow()
}

// setMessage sets a temporary message.
func (m *BoardModel) setMessage(msg string, d time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(d)
}

// View renders the board.
func (m *BoardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}

	if m.err != nil {
		text := "Error: " + m.err.Error()
		if s := errors.GetSuggestion(m.err); s != "" {
			text += "  " + s
		}
		sections = append(sections, StyleError.Render(text))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, m.renderDays())

	if m.mode != modeNormal {
		label := "New task on " + m.day.LocalLabel(m.locale) + ": "
		if m.mode == modeRename {
			label = "Rename: "
		}
		sections = append(sections, StyleInput.Render(label+string(m.input)+"█"))
	}

	sections = append(sections, HelpBar(m.mode != modeNormal))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDays lays days out in columns when the terminal is wide enough,
// otherwise one under the other.
func (m *BoardModel) renderDays() string {
	const minColumn = 24
	days := m.days
	if len(days) == 0 {
		days = render.Week(week.Week{}, m.locale)
	}

	if m.width >= minColumn*model.DaysInWeek {
		colWidth := m.width / model.DaysInWeek
		cols := make([]string, 0, len(days))
		for _, d := range days {
			cols = append(cols, NewDayComponent(d, colWidth, d.Day == m.day, m.row).View())
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	rows := make([]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, NewDayComponent(d, m.width, d.Day == m.day, m.row).View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHeader renders the board header with the week's progress.
func (m *BoardModel) renderHeader() string {
	title := StyleTitle.Render("Weekly")
	stats := m.week.Stats()
	progress := fmt.Sprintf("%s %d/%d", ProgressBar(stats.Percent(), 10), stats.Done, stats.Total)
	date := StyleSubtitle.Render(m.now().Format("Mon Jan 2"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", progress, "  ", date) + "\n"
}

// loadCmd re-reads the week from the store.
func (m *BoardModel) loadCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		w, err := s.Week()
		if err != nil {
			return doneMsg{err: err}
		}
		return weekMsg(w)
	}
}

// mutateCmd runs a store mutation. The new week arrives through the
// store's change listener.
func (m *BoardModel) mutateCmd(fn func() error, message string) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{message: message, err: fn()}
	}
}

func (m *BoardModel) undoCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		state, err := s.Undo()
		if err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{message: "Undid " + string(state.Action)}
	}
}

// tickCmd returns a command that sends a tick message.
func (m *BoardModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the board and redraws it whenever the store changes.
func Run(cfg BoardConfig) error {
	p := tea.NewProgram(NewBoardModel(cfg), tea.WithAltScreen())
	unsubscribe := cfg.Store.OnChange(func(w week.Week) {
		p.Send(weekMsg(w))
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
