// Package store owns the task collection. Every mutation goes through it:
// load, change, persist, then regroup and notify subscribers so views
// can redraw.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/storage"
	"github.com/manav03panchal/weekly/internal/validate"
	"github.com/manav03panchal/weekly/internal/week"
)

// Listener receives the regrouped week after every mutation.
type Listener func(week.Week)

// Store is the single writer of the task collection.
type Store struct {
	mu     sync.Mutex
	tasks  *storage.Adapter
	undo   *storage.UndoRepo
	log    *slog.Logger
	noUndo bool

	subsMu sync.Mutex
	subs   map[int]Listener
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for operation logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithoutUndo disables undo snapshots.
func WithoutUndo() Option {
	return func(s *Store) {
		s.noUndo = true
	}
}

// New creates a store over kv, keeping tasks under key.
func New(kv storage.KV, key string, opts ...Option) *Store {
	s := &Store{
		tasks: storage.NewAdapter(kv, key),
		undo:  storage.NewUndoRepo(kv),
		log:   logging.Logger(),
		subs:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called after each mutation. The returned
// function removes the registration.
func (s *Store) OnChange(fn Listener) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(w week.Week) {
	s.subsMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn(w)
	}
}

// Tasks returns the persisted collection in insertion order.
func (s *Store) Tasks() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Load()
}

// Week re-reads the collection and groups it by day.
func (s *Store) Week() (week.Week, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return week.Week{}, err
	}
	return week.Group(tasks), nil
}

// indexOf finds the first task whose name matches name once both are
// sanitized the way Add stores them. Blank keys only match exactly.
func indexOf(tasks []model.Task, name string) int {
	key := validate.SanitizeName(name)
	if key == "" {
		return model.IndexOf(tasks, name)
	}
	return slices.IndexFunc(tasks, func(t model.Task) bool {
		return validate.SanitizeName(t.Name) == key
	})
}

// Exists reports whether a task with this name is stored. Names compare
// after sanitizing, so " Gym" finds "Gym".
func (s *Store) Exists(name string) (bool, error) {
	t, err := s.Find(name)
	return t != nil, err
}

// Find returns a copy of the first task with this name, or nil.
func (s *Store) Find(name string) (*model.Task, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	if i := indexOf(tasks, name); i >= 0 {
		return &tasks[i], nil
	}
	return nil, nil
}

// Add creates an unchecked task. Checks run in order: empty name, missing
// day, record validity (day range, priority, length), duplicate name.
func (s *Store) Add(name string, day model.Day, priority model.Priority) error {
	name = validate.SanitizeName(name)
	if name == "" {
		return errors.Invalid(errors.ErrEmptyName, "name", "")
	}
	if day == model.NoDay {
		return errors.Invalid(errors.ErrMissingDay, "day", "")
	}
	task := model.NewTask(name, day, priority)
	if err := validate.Task(task); err != nil {
		return err
	}

	return s.mutate(model.UndoActionAdd, name, func(tasks []model.Task) ([]model.Task, bool, error) {
		if indexOf(tasks, name) >= 0 {
			return nil, false, errors.Invalid(errors.ErrDuplicateName, "name", name)
		}
		return append(tasks, task), true, nil
	}, logging.KeyDay, int(day), logging.KeyPriority, string(priority))
}

// Remove deletes the first task with this name. A missing name is a no-op.
func (s *Store) Remove(name string) error {
	return s.mutate(model.UndoActionRemove, name, func(tasks []model.Task) ([]model.Task, bool, error) {
		i := indexOf(tasks, name)
		if i < 0 {
			return tasks, false, nil
		}
		return append(tasks[:i], tasks[i+1:]...), true, nil
	})
}

// Rename changes the name of the first task named oldName. Uniqueness is
// not re-checked. An empty new name or a missing task is a no-op.
func (s *Store) Rename(oldName, newName string) error {
	newName = validate.SanitizeName(newName)
	if newName == "" {
		return nil
	}
	if err := validate.Name(newName); err != nil {
		return err
	}
	return s.mutate(model.UndoActionRename, oldName, func(tasks []model.Task) ([]model.Task, bool, error) {
		i := indexOf(tasks, oldName)
		if i < 0 || tasks[i].Name == newName {
			return tasks, false, nil
		}
		tasks[i].Name = newName
		return tasks, true, nil
	}, "new_name", newName)
}

// ToggleChecked flips the completion flag of the first task with this
// name. A missing name is a no-op.
func (s *Store) ToggleChecked(name string) error {
	return s.mutate(model.UndoActionToggle, name, func(tasks []model.Task) ([]model.Task, bool, error) {
		i := indexOf(tasks, name)
		if i < 0 {
			return tasks, false, nil
		}
		tasks[i].Toggle()
		return tasks, true, nil
	})
}

// mutateFunc changes the loaded collection. It reports whether anything
// changed; unchanged collections are not written.
type mutateFunc func([]model.Task) ([]model.Task, bool, error)

func (s *Store) mutate(action model.UndoAction, name string, fn mutateFunc, attrs ...any) error {
	log := s.log.With(logging.KeyOperation, string(action), logging.KeyTask, name)

	w, err := s.apply(action, name, fn, log)
	if err != nil {
		log.Debug("operation failed", logging.KeyError, err)
		return err
	}
	log.Debug("operation done", append(attrs, logging.KeyCount, w.Len())...)
	s.notify(w)
	return nil
}

func (s *Store) apply(action model.UndoAction, name string, fn mutateFunc, log *slog.Logger) (week.Week, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.Load()
	if err != nil {
		return week.Week{}, err
	}
	before := model.Clone(tasks)

	updated, changed, err := fn(tasks)
	if err != nil {
		return week.Week{}, err
	}
	if !changed {
		log.Debug("nothing to change")
		return week.Group(before), nil
	}

	if err := s.snapshot(action, name, before); err != nil {
		return week.Week{}, err
	}
	if err := s.tasks.Save(updated); err != nil {
		return week.Week{}, err
	}

	reloaded, err := s.tasks.Load()
	if err != nil {
		return week.Week{}, err
	}
	return week.Group(reloaded), nil
}

func (s *Store) snapshot(action model.UndoAction, name string, before []model.Task) error {
	if s.noUndo {
		return nil
	}
	return s.undo.Record(action, name, before)
}

// Undo restores the collection saved before the last mutation and returns
// the undone state. Only one level is kept.
func (s *Store) Undo() (*model.UndoState, error) {
	s.mu.Lock()
	state, err := s.undo.Get()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if state == nil {
		s.mu.Unlock()
		return nil, errors.Invalid(errors.ErrNothingToUndo, "", "")
	}
	if err := s.tasks.Save(state.Snapshot); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.undo.Clear(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	reloaded, err := s.tasks.Load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Debug("operation done",
		logging.KeyOperation, "undo",
		"undone", string(state.Action),
		logging.KeyTask, state.TaskName,
		logging.KeyCount, len(reloaded))
	s.notify(week.Group(reloaded))
	return state, nil
}

// CanUndo reports whether an undo snapshot is stored.
func (s *Store) CanUndo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.undo.Get()
	return state != nil, err
}

// ImportMode selects how imported tasks combine with stored ones.
type ImportMode string

const (
	// ImportReplace drops the stored collection.
	ImportReplace ImportMode = "replace"
	// ImportMerge appends imported tasks whose names are not stored yet.
	ImportMerge ImportMode = "merge"
)

// ImportResult reports what an import did.
type ImportResult struct {
	Mode     ImportMode `json:"mode"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
}

// Import validates tasks and writes them using mode.
func (s *Store) Import(tasks []model.Task, mode ImportMode) (ImportResult, error) {
	res := ImportResult{Mode: mode}
	clean := make([]model.Task, len(tasks))
	for i, t := range tasks {
		t.Name = validate.SanitizeName(t.Name)
		clean[i] = t
	}
	if err := validate.Tasks(clean); err != nil {
		return res, err
	}

	var fn mutateFunc
	switch mode {
	case ImportReplace:
		fn = func([]model.Task) ([]model.Task, bool, error) {
			res.Imported = len(clean)
			return clean, true, nil
		}
	case ImportMerge:
		fn = func(stored []model.Task) ([]model.Task, bool, error) {
			for _, t := range clean {
				if indexOf(stored, t.Name) >= 0 {
					res.Skipped++
					continue
				}
				stored = append(stored, t)
				res.Imported++
			}
			return stored, res.Imported > 0, nil
		}
	default:
		return res, errors.NewUserErrorWithField("mode", string(mode),
			"unknown import mode", "Use 'replace' or 'merge'.")
	}

	if err := s.mutate(model.UndoActionImport, "", fn, "mode", string(mode)); err != nil {
		return ImportResult{Mode: mode}, err
	}
	return res, nil
}

// Reset backs up the raw stored value and clears the collection. It also
// works when the stored data is unreadable.
func (s *Store) Reset() error {
	s.mu.Lock()
	if err := s.tasks.Backup(); err != nil {
		s.mu.Unlock()
		return err
	}
	// A readable collection can be restored with undo.
	if before, err := s.tasks.Load(); err == nil && len(before) > 0 {
		if err := s.snapshot(model.UndoActionReset, "", before); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	if err := s.tasks.Clear(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.log.Info("task data reset", logging.KeyOperation, "reset", "backup", s.tasks.Key()+model.SuffixBackup)
	s.notify(week.Week{})
	return nil
}
