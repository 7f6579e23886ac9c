package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	werrors "github.com/manav03panchal/weekly/internal/errors"
)

// LockFileName is created next to the database while a process owns it.
const LockFileName = "weekly.lock"

var (
	ErrLockAcquireFailed = errors.New("failed to acquire database lock")
	ErrLockAlreadyHeld   = werrors.ErrLockHeld
)

// heldError records which process owns a lock we could not take.
type heldError struct{ pid int }

func (e heldError) Error() string {
	return fmt.Sprintf("%v: PID %d", ErrLockAlreadyHeld, e.pid)
}

func (e heldError) Unwrap() error { return ErrLockAlreadyHeld }

// FileLock keeps a single weekly process writing to a data directory.
// The lock file holds the owner's PID so a crashed owner can be detected.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unacquired lock for dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, LockFileName)}
}

// Acquire takes the lock without blocking. It fails with
// ErrLockAlreadyHeld while another live process owns it.
func (l *FileLock) Acquire() error {
	if pid := l.readPID(); pid > 0 && !isProcessRunning(pid) {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: removing stale lock: %v", ErrLockAcquireFailed, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	if err := flockAcquire(f); err != nil {
		f.Close()
		if pid := l.readPID(); pid > 0 && errors.Is(err, ErrLockAlreadyHeld) {
			return heldError{pid: pid}
		}
		return err
	}

	if err := stampPID(f); err != nil {
		flockRelease(f)
		f.Close()
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	l.file = f
	return nil
}

// Release drops the lock and removes the lock file. Releasing an
// unacquired lock does nothing.
func (l *FileLock) Release() error {
	f := l.file
	if f == nil {
		return nil
	}
	l.file = nil

	unlockErr := flockRelease(f)
	closeErr := f.Close()
	if err := errors.Join(unlockErr, closeErr); err != nil {
		return err
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func stampPID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		return err
	}
	return f.Sync()
}

// readPID returns the PID stored in the lock file, or 0 when there is none.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return pid
}

// LockError is what OpenBackend returns when the data directory is busy.
type LockError struct {
	Err error
	PID int
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("cannot access task data: another weekly instance (PID %d) is running", e.PID)
	}
	return "cannot access task data: " + e.Err.Error()
}

func (e *LockError) Unwrap() error { return e.Err }

// NewLockError wraps an Acquire failure, keeping the owner's PID when known.
func NewLockError(err error) *LockError {
	lockErr := &LockError{Err: err}
	var held heldError
	if errors.As(err, &held) {
		lockErr.PID = held.pid
	}
	return lockErr
}
