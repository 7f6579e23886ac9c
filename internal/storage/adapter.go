package storage

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/logging"
	"github.com/manav03panchal/weekly/internal/model"
)

// Adapter reads and writes the task collection as one JSON array under a
// single key. The schema version lives under a sibling key so the array
// layout stays the one the browser version wrote.
type Adapter struct {
	kv  KV
	key string
}

// NewAdapter creates an adapter for key. An empty key uses model.KeyTasks.
func NewAdapter(kv KV, key string) *Adapter {
	if key == "" {
		key = model.KeyTasks
	}
	return &Adapter{kv: kv, key: key}
}

// Key returns the key holding the task array.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored tasks, or an empty slice when nothing is stored.
func (a *Adapter) Load() ([]model.Task, error) {
	if err := a.checkVersion(); err != nil {
		return nil, err
	}

	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("load", "cannot read tasks", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}, nil
	}

	if err := ValidateDocument([]byte(raw)); err != nil {
		logging.Warn("stored tasks failed validation", "key", a.key, logging.KeyError, err)
		return nil, errors.NewSystemErrorWithOp("load", "cannot read tasks",
			errors.WithContext(errors.ErrCorruptData, err.Error()))
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, errors.NewSystemErrorWithOp("load", "cannot read tasks",
			errors.WithContext(errors.ErrCorruptData, err.Error()))
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Save writes the whole collection and the schema version.
func (a *Adapter) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return errors.NewSystemErrorWithOp("save", "cannot encode tasks", err)
	}
	if err := a.kv.Set(a.key, string(data)); err != nil {
		return errors.NewSystemErrorWithOp("save", "cannot write tasks", err)
	}
	if err := a.kv.Set(a.key+model.SuffixVersion, strconv.Itoa(model.SchemaVersion)); err != nil {
		return errors.NewSystemErrorWithOp("save", "cannot write schema version", err)
	}
	logging.DebugLog("tasks saved", logging.KeyCount, len(tasks))
	return nil
}

// Raw returns the stored string without decoding it.
func (a *Adapter) Raw() (string, bool, error) {
	return a.kv.Get(a.key)
}

// Backup copies the raw stored string to the backup key.
func (a *Adapter) Backup() error {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil || !ok {
		return err
	}
	return a.kv.Set(a.key+model.SuffixBackup, raw)
}

// Clear removes the task array and its version.
func (a *Adapter) Clear() error {
	if err := a.kv.Delete(a.key); err != nil {
		return err
	}
	return a.kv.Delete(a.key + model.SuffixVersion)
}

// Version returns the stored schema version. Data without a version tag
// was written by the browser version and counts as version 1.
func (a *Adapter) Version() (int, error) {
	raw, ok, err := a.kv.Get(a.key + model.SuffixVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return model.SchemaVersion, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.WithContextf(errors.ErrCorruptData, "bad schema version %q", raw)
	}
	return v, nil
}

func (a *Adapter) checkVersion() error {
	v, err := a.Version()
	if err != nil {
		return errors.NewSystemErrorWithOp("load", "cannot read schema version", err)
	}
	if v > model.SchemaVersion {
		return errors.NewSystemErrorWithOp("load", "cannot read tasks",
			errors.WithContextf(errors.ErrUnsupportedVersion, "version %d", v))
	}
	return nil
}
