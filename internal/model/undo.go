package model

import "time"

// UndoAction represents the type of mutation that can be undone.
type UndoAction string

const (
	UndoActionAdd    UndoAction = "add"
	UndoActionRemove UndoAction = "remove"
	UndoActionRename UndoAction = "rename"
	UndoActionToggle UndoAction = "toggle"
	UndoActionImport UndoAction = "import"
	UndoActionReset  UndoAction = "reset"
)

// UndoState stores the collection as it was before the last mutation.
type UndoState struct {
	Key      string     `json:"key"`
	Action   UndoAction `json:"action"`
	TaskName string     `json:"task_name,omitempty"`
	Snapshot []Task     `json:"snapshot"`
	SavedAt  time.Time  `json:"saved_at"`
}

// SetKey sets the storage key for this undo state.
func (u *UndoState) SetKey(key string) {
	u.Key = key
}

// GetKey returns the storage key for this undo state.
func (u *UndoState) GetKey() string {
	return u.Key
}

// NewUndoState creates an undo state holding a copy of snapshot.
func NewUndoState(action UndoAction, taskName string, snapshot []Task) *UndoState {
	snap := Clone(snapshot)
	if snap == nil {
		snap = []Task{}
	}
	return &UndoState{
		Key:      KeyUndo,
		Action:   action,
		TaskName: taskName,
		Snapshot: snap,
		SavedAt:  time.Now(),
	}
}
