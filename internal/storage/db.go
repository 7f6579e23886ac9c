// Package storage provides the persistence layer for weekly.
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/weekly/internal/logging"
)

// AppName names the XDG data directory.
const AppName = "weekly"

// DataDir is $XDG_DATA_HOME/weekly.
func DataDir() string { return filepath.Join(xdg.DataHome, AppName) }

// DefaultPath is where the Badger backend lives unless configured.
func DefaultPath() string { return filepath.Join(DataDir(), "db") }

// Options configures Open. An empty Path means in-memory.
type Options struct {
	Path     string
	InMemory bool
}

func (o Options) inMemory() bool { return o.InMemory || o.Path == "" }

// DB is the Badger implementation of KV.
type DB struct {
	db   *badger.DB
	path string
}

// Open opens the Badger database described by opts, creating its
// directory when needed.
func Open(opts Options) (*DB, error) {
	bopts := badger.DefaultOptions(opts.Path)
	path := opts.Path
	if opts.inMemory() {
		bopts, path = badger.DefaultOptions("").WithInMemory(true), ""
	} else if err := EnsureDirectory(path); err != nil {
		return nil, err
	}

	bopts = bopts.
		WithLogger(badgerLogger{logging.With(logging.KeyBackend, BackendBadger)}).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &DB{db: db, path: path}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Path is the database directory, or "" in memory.
func (d *DB) Path() string { return d.path }

// Badger exposes the underlying handle.
func (d *DB) Badger() *badger.DB { return d.db }

// badgerLogger sends Badger's printf logging through slog.
type badgerLogger struct{ l *slog.Logger }

func (b badgerLogger) Errorf(f string, a ...any)   { b.l.Error(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Warningf(f string, a ...any) { b.l.Warn(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Infof(f string, a ...any)    { b.l.Info(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Debugf(f string, a ...any)   { b.l.Debug(fmt.Sprintf(f, a...)) }
