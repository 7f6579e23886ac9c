package storage

import (
	"path/filepath"

	"github.com/manav03panchal/weekly/internal/errors"
)

// KV is a string-keyed, string-valued store.
type KV interface {
	// Get returns the value under key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
	// Delete removes key. Missing keys are ignored.
	Delete(key string) error
	// Close releases the store.
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendBadger Backend = "badger"
	BackendSQLite Backend = "sqlite"
)

// BackendOptions selects and configures a backend.
type BackendOptions struct {
	Backend  Backend
	Path     string
	InMemory bool
	// NoLock skips the data directory lock.
	NoLock bool
}

// Store is an opened KV together with the lock guarding it.
type Store struct {
	KV
	lock *FileLock
}

// Close closes the KV and releases the lock.
func (s *Store) Close() error {
	err := s.KV.Close()
	if s.lock != nil {
		if lerr := s.lock.Release(); err == nil {
			err = lerr
		}
	}
	return err
}

// OpenBackend opens the configured backend. File-backed stores take an
// exclusive lock in their parent directory so only one process writes.
func OpenBackend(opts BackendOptions) (*Store, error) {
	if opts.Backend == "" {
		opts.Backend = BackendBadger
	}

	var lock *FileLock
	if !opts.InMemory && opts.Path != "" {
		dir := filepath.Dir(opts.Path)
		if err := EnsureDirectory(dir); err != nil {
			return nil, err
		}
		if !opts.NoLock {
			lock = NewFileLock(dir)
			if err := lock.Acquire(); err != nil {
				return nil, NewLockError(err)
			}
		}
	}

	kv, err := openKV(opts)
	if err != nil {
		if lock != nil {
			lock.Release()
		}
		return nil, err
	}

	return &Store{KV: kv, lock: lock}, nil
}

func openKV(opts BackendOptions) (KV, error) {
	switch opts.Backend {
	case BackendBadger:
		return OpenWithIntegrityCheck(Options{Path: opts.Path, InMemory: opts.InMemory})
	case BackendSQLite:
		path := opts.Path
		if opts.InMemory {
			path = ""
		}
		return OpenSQLite(path)
	default:
		return nil, errors.Invalid(errors.ErrUnknownBackend, "backend", string(opts.Backend))
	}
}
