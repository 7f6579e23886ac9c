//go:build !windows

package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

func flockAcquire(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.EWOULDBLOCK):
		return ErrLockAlreadyHeld
	default:
		return fmt.Errorf("%w: flock: %v", ErrLockAcquireFailed, err)
	}
}

func flockRelease(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// isProcessRunning probes pid with signal 0.
func isProcessRunning(pid int) bool {
	p, err := os.FindProcess(pid)
	return err == nil && p.Signal(syscall.Signal(0)) == nil
}
