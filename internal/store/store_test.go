package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/storage"
	"github.com/manav03panchal/weekly/internal/week"
)

func setupTestKV(t *testing.T) storage.KV {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return New(setupTestKV(t), "")
}

func names(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Name)
	}
	return out
}

// =============================================================================
// Add Tests
// =============================================================================

func TestAdd(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Add("Pay rent", model.Monday, model.PriorityHigh))

	tasks, err := s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.Task{Name: "Pay rent", Day: model.Monday, Priority: model.PriorityHigh}, tasks[0])
}

func TestAddValidationOrder(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("A", model.Monday, ""))

	tests := []struct {
		name     string
		taskName string
		day      model.Day
		priority model.Priority
		want     error
	}{
		{"empty_name_and_no_day", "", model.NoDay, "", errors.ErrEmptyName},
		{"whitespace_name", "   ", model.Tuesday, "", errors.ErrEmptyName},
		{"missing_day_on_duplicate", "A", model.NoDay, "", errors.ErrMissingDay},
		{"duplicate", "A", model.Friday, "", errors.ErrDuplicateName},
		{"invalid_day", "B", 8, "", errors.ErrInvalidDay},
		{"invalid_priority", "B", model.Monday, "5", errors.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Add(tt.taskName, tt.day, tt.priority)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.IsUserError(err))
		})
	}

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestAddTrimsName(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("  Gym ", model.Saturday, ""))

	ok, err := s.Exists("Gym")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLookupMatchesSanitizedName(t *testing.T) {
	tests := []struct {
		name   string
		added  string
		stored string
	}{
		{"leading_space", " Pay rent", "Pay rent"},
		{"trailing_space", "Pay rent  ", "Pay rent"},
		{"control_chars", "Pay\trent\a", "Pay rent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStore(t)
			require.NoError(t, s.Add(tt.added, model.Monday, ""))

			tasks, err := s.Tasks()
			require.NoError(t, err)
			assert.Equal(t, []string{tt.stored}, names(tasks))

			ok, err := s.Exists(tt.added)
			require.NoError(t, err)
			assert.True(t, ok)

			assert.ErrorIs(t, s.Add(tt.added, model.Tuesday, ""), errors.ErrDuplicateName)

			require.NoError(t, s.ToggleChecked(tt.added))
			task, err := s.Find(tt.added)
			require.NoError(t, err)
			require.NotNil(t, task)
			assert.True(t, task.Checked)

			require.NoError(t, s.Rename(tt.added, "Rent"))
			ok, err = s.Exists("Rent")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, s.Remove(" Rent "))
			tasks, err = s.Tasks()
			require.NoError(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestLookupFindsLegacyUntrimmedName(t *testing.T) {
	kv := setupTestKV(t)
	require.NoError(t, kv.Set(model.KeyTasks, `[{"name":" Gym ","checked":false,"day":5,"priority":""}]`))
	s := New(kv, "")

	ok, err := s.Exists("Gym")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.ToggleChecked("Gym"))
	task, err := s.Find(" Gym ")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.True(t, task.Checked)
	assert.Equal(t, " Gym ", task.Name)
}

// =============================================================================
// Exists / Remove / Rename / Toggle Tests
// =============================================================================

func TestExists(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("Read", model.Sunday, ""))

	ok, err := s.Exists("Read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists("read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("a", model.Monday, ""))
	require.NoError(t, s.Add("b", model.Monday, ""))

	require.NoError(t, s.Remove("a"))
	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"b"}, names(tasks))

	// Missing name is a no-op.
	require.NoError(t, s.Remove("missing"))
	tasks, _ = s.Tasks()
	assert.Len(t, tasks, 1)
}

func TestRename(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("old", model.Wednesday, model.PriorityLow))
	require.NoError(t, s.Add("other", model.Wednesday, ""))

	require.NoError(t, s.Rename("old", "new"))
	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"new", "other"}, names(tasks))
	assert.Equal(t, model.PriorityLow, tasks[0].Priority)

	t.Run("empty_new_name_is_noop", func(t *testing.T) {
		require.NoError(t, s.Rename("new", "  "))
		ok, _ := s.Exists("new")
		assert.True(t, ok)
	})

	t.Run("missing_is_noop", func(t *testing.T) {
		require.NoError(t, s.Rename("ghost", "x"))
		ok, _ := s.Exists("x")
		assert.False(t, ok)
	})

	t.Run("no_uniqueness_check", func(t *testing.T) {
		require.NoError(t, s.Rename("new", "other"))
		tasks, _ := s.Tasks()
		assert.Equal(t, []string{"other", "other"}, names(tasks))
	})
}

func TestToggleChecked(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("a", model.Monday, ""))

	require.NoError(t, s.ToggleChecked("a"))
	tasks, _ := s.Tasks()
	assert.True(t, tasks[0].Checked)

	require.NoError(t, s.ToggleChecked("a"))
	tasks, _ = s.Tasks()
	assert.False(t, tasks[0].Checked)

	require.NoError(t, s.ToggleChecked("missing"))
}

func TestDuplicatesAffectFirstOnly(t *testing.T) {
	kv := setupTestKV(t)
	adapter := storage.NewAdapter(kv, "")
	require.NoError(t, adapter.Save([]model.Task{
		{Name: "dup", Day: model.Monday},
		{Name: "dup", Day: model.Tuesday},
	}))
	s := New(kv, "")

	require.NoError(t, s.ToggleChecked("dup"))
	tasks, _ := s.Tasks()
	assert.True(t, tasks[0].Checked)
	assert.False(t, tasks[1].Checked)

	require.NoError(t, s.Remove("dup"))
	tasks, _ = s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.Tuesday, tasks[0].Day)
}

// =============================================================================
// Week / Notification Tests
// =============================================================================

func TestWeekOrdering(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("A", model.Monday, model.PriorityLow))
	require.NoError(t, s.Add("B", model.Monday, model.PriorityHigh))
	require.NoError(t, s.Add("C", model.Monday, model.PriorityMedium))
	require.NoError(t, s.Add("D", model.Monday, ""))

	w, err := s.Week()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A", "D"}, names(w.Bucket(model.Monday)))

	// Insertion order is kept in storage.
	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(tasks))
}

func TestOnChange(t *testing.T) {
	s := setupTestStore(t)

	var calls int
	var last week.Week
	unsubscribe := s.OnChange(func(w week.Week) {
		calls++
		last = w
	})

	require.NoError(t, s.Add("a", model.Thursday, ""))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a"}, names(last.Bucket(model.Thursday)))

	require.NoError(t, s.ToggleChecked("a"))
	assert.Equal(t, 2, calls)
	assert.True(t, last.Bucket(model.Thursday)[0].Checked)

	// Failed mutations do not notify.
	assert.Error(t, s.Add("a", model.Thursday, ""))
	assert.Equal(t, 2, calls)

	unsubscribe()
	require.NoError(t, s.Remove("a"))
	assert.Equal(t, 2, calls)
}

func TestCorruptDataSurfaces(t *testing.T) {
	kv := setupTestKV(t)
	require.NoError(t, kv.Set(model.KeyTasks, "{not json"))
	s := New(kv, "")

	_, err := s.Week()
	assert.ErrorIs(t, err, errors.ErrCorruptData)

	err = s.Add("a", model.Monday, "")
	assert.ErrorIs(t, err, errors.ErrCorruptData)

	// Reset recovers and keeps a backup.
	require.NoError(t, s.Reset())
	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	backup, ok, err := kv.Get(model.KeyTasks + model.SuffixBackup)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", backup)
}

// =============================================================================
// Undo Tests
// =============================================================================

func TestUndo(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Undo()
	assert.ErrorIs(t, err, errors.ErrNothingToUndo)

	require.NoError(t, s.Add("a", model.Monday, ""))
	require.NoError(t, s.Remove("a"))

	can, err := s.CanUndo()
	require.NoError(t, err)
	assert.True(t, can)

	state, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, model.UndoActionRemove, state.Action)
	assert.Equal(t, "a", state.TaskName)

	ok, _ := s.Exists("a")
	assert.True(t, ok)

	// Only one level is kept.
	_, err = s.Undo()
	assert.ErrorIs(t, err, errors.ErrNothingToUndo)
}

func TestUndoSkippedForNoop(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("a", model.Monday, ""))
	require.NoError(t, s.Remove("missing"))

	state, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, model.UndoActionAdd, state.Action)

	tasks, _ := s.Tasks()
	assert.Empty(t, tasks)
}

func TestUndoReset(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("a", model.Monday, ""))
	require.NoError(t, s.Reset())

	state, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, model.UndoActionReset, state.Action)

	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"a"}, names(tasks))
}

func TestWithoutUndo(t *testing.T) {
	s := New(setupTestKV(t), "", WithoutUndo())
	require.NoError(t, s.Add("a", model.Monday, ""))

	can, err := s.CanUndo()
	require.NoError(t, err)
	assert.False(t, can)
}

// =============================================================================
// Import Tests
// =============================================================================

func TestImportReplace(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("old", model.Monday, ""))

	res, err := s.Import([]model.Task{
		{Name: "x", Day: model.Friday, Priority: model.PriorityHigh},
		{Name: " y ", Day: model.Sunday, Checked: true},
	}, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"x", "y"}, names(tasks))
	assert.True(t, tasks[1].Checked)
}

func TestImportMerge(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Add("a", model.Monday, ""))

	res, err := s.Import([]model.Task{
		{Name: "a", Day: model.Friday},
		{Name: "b", Day: model.Friday},
	}, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Mode: ImportMerge, Imported: 1, Skipped: 1}, res)

	tasks, _ := s.Tasks()
	assert.Equal(t, []string{"a", "b"}, names(tasks))
	assert.Equal(t, model.Monday, tasks[0].Day)
}

func TestImportRejectsInvalid(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Import([]model.Task{{Name: "a", Day: 12}}, ImportReplace)
	assert.ErrorIs(t, err, errors.ErrInvalidDay)

	_, err = s.Import([]model.Task{{Name: "a"}}, ImportMode("append"))
	assert.True(t, errors.IsUserError(err))

	tasks, _ := s.Tasks()
	assert.Empty(t, tasks)
}

// =============================================================================
// Backend Tests
// =============================================================================

func TestStoreOnSQLite(t *testing.T) {
	kv, err := storage.OpenSQLite("")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	s := New(kv, "")
	require.NoError(t, s.Add("Call mom", model.Tuesday, model.PriorityMedium))
	require.NoError(t, s.ToggleChecked("Call mom"))

	w, err := s.Week()
	require.NoError(t, err)
	require.Len(t, w.Bucket(model.Tuesday), 1)
	assert.True(t, w.Bucket(model.Tuesday)[0].Checked)
}

func TestCustomKey(t *testing.T) {
	kv := setupTestKV(t)
	s := New(kv, "work")
	require.NoError(t, s.Add("a", model.Monday, ""))

	_, ok, err := kv.Get("work")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = kv.Get(model.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)
}
