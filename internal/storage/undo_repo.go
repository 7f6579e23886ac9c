package storage

import (
	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
)

// UndoRepo keeps a single undo level: the collection as it was before the
// most recent mutation. Recording a new snapshot replaces the old one.
type UndoRepo struct{ kv KV }

func NewUndoRepo(kv KV) *UndoRepo { return &UndoRepo{kv: kv} }

// Record stores a copy of before as the state undo will restore.
func (r *UndoRepo) Record(action model.UndoAction, task string, before []model.Task) error {
	return r.Set(model.NewUndoState(action, task, before))
}

// Get returns the stored snapshot, or nil when nothing can be undone.
func (r *UndoRepo) Get() (*model.UndoState, error) {
	var state model.UndoState
	err := GetJSON(r.kv, model.KeyUndo, &state)
	switch {
	case IsErrKeyNotFound(err):
		return nil, nil
	case err != nil:
		return nil, errors.WithContext(err, "reading undo snapshot")
	}
	return &state, nil
}

func (r *UndoRepo) Set(state *model.UndoState) error {
	state.SetKey(model.KeyUndo)
	return SetJSON(r.kv, state)
}

// Clear forgets the snapshot. Clearing an empty repo is not an error.
func (r *UndoRepo) Clear() error { return r.kv.Delete(model.KeyUndo) }
