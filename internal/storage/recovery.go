package storage

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/logging"
)

// RecoveryStatus is the outcome of an integrity pass over a Badger store.
type RecoveryStatus struct {
	Healthy    bool      `json:"healthy"`
	Corrupted  bool      `json:"corrupted"`
	LastCheck  time.Time `json:"last_check"`
	ErrorCount int       `json:"error_count"`
	Errors     []string  `json:"errors,omitempty"`
}

func (s *RecoveryStatus) fail(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
	s.ErrorCount++
	s.Healthy, s.Corrupted = false, true
}

// CheckDatabaseIntegrity verifies table checksums of an on-disk store and
// then reads every value once. A nil db is reported as corrupted.
func CheckDatabaseIntegrity(db *DB) *RecoveryStatus {
	status := &RecoveryStatus{Healthy: true, LastCheck: time.Now()}
	if db == nil || db.db == nil {
		status.fail("database not initialized")
		return status
	}

	if db.path != "" {
		if err := db.db.VerifyChecksum(); err != nil {
			status.fail("checksum: %v", err)
		}
	}

	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if err := item.Value(func([]byte) error { return nil }); err != nil {
				status.fail("unreadable value at key %q: %v", item.Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		status.fail("iterate: %v", err)
	}
	return status
}

// CheckIntegrity wraps CheckDatabaseIntegrity as an ErrCorruptData error.
func (d *DB) CheckIntegrity() error {
	if status := CheckDatabaseIntegrity(d); !status.Healthy {
		return errors.NewSystemErrorWithOp("integrity check",
			fmt.Sprintf("%d corrupted entries", status.ErrorCount), errors.ErrCorruptData)
	}
	return nil
}

// OpenWithIntegrityCheck is Open followed by CheckIntegrity. The database
// is closed again when the check fails.
func OpenWithIntegrityCheck(opts Options) (*DB, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("open", "cannot open task database", err)
	}
	if err := db.CheckIntegrity(); err != nil {
		logging.Error("database integrity check failed", "path", db.Path(), logging.KeyError, err)
		db.Close()
		return nil, err
	}
	return db, nil
}
