// Package model defines the domain models for weekly.
package model

// Model is the interface implemented by records stored under their own key.
type Model interface {
	// SetKey sets the storage key for this model.
	SetKey(key string)
	// GetKey returns the storage key for this model.
	GetKey() string
}

// Storage key constants.
const (
	// KeyTasks is the key holding the JSON array of task records. It
	// matches the key the browser version of the organizer used.
	KeyTasks = "to-do-list-gn"
	// SuffixVersion is appended to the tasks key to store the schema version.
	SuffixVersion = ":version"
	// SuffixBackup is appended to the tasks key to store the last reset backup.
	SuffixBackup = ":backup"
	// KeyUndo is the key for the undo snapshot.
	KeyUndo = "undo"
)

// SchemaVersion is the current version of the persisted task array.
const SchemaVersion = 1
