package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/manav03panchal/weekly/internal/errors"
)

const (
	// MinFreeSpace is the free space SafeWrite and EnsureDirectory require.
	MinFreeSpace = 10 * humanize.MiByte
	// MinFreeSpaceWarning is where a low space warning starts.
	MinFreeSpaceWarning = 50 * humanize.MiByte
)

// DiskSpaceInfo describes the file system holding a path.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// CheckDiskSpace requires MinFreeSpace at path.
func CheckDiskSpace(path string) error {
	return CheckDiskSpaceAtLeast(path, MinFreeSpace)
}

// CheckDiskSpaceAtLeast returns ErrDiskFull when less than minBytes are
// free at path. Zero disables the check, and so does a file system that
// cannot report its size.
func CheckDiskSpaceAtLeast(path string, minBytes uint64) error {
	if minBytes == 0 {
		return nil
	}
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= minBytes {
		return nil
	}
	return errors.NewSystemError(
		fmt.Sprintf("insufficient disk space: %s free, need at least %s",
			humanize.IBytes(info.FreeBytes), humanize.IBytes(minBytes)),
		errors.ErrDiskFull,
	)
}

// CheckDiskSpaceWarning returns a warning when space at path is low, or "".
func CheckDiskSpaceWarning(path string) string {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= MinFreeSpaceWarning {
		return ""
	}
	return fmt.Sprintf("low disk space: %s free", humanize.IBytes(info.FreeBytes))
}

// existingAncestor walks up from path until it finds something that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// fsError turns a file system error from op into a SystemError when the
// disk is full or access is denied.
func fsError(op string, err error) error {
	switch {
	case isDiskFullError(err):
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	case os.IsPermission(err):
		return errors.NewSystemErrorWithOp(op, "permission denied", errors.ErrPermissionDenied)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// SafeWrite replaces path with data through a synced temp file in the same
// directory, so readers never see a partial file.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := CheckDiskSpace(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekly-*.tmp")
	if err != nil {
		return fsError("create temp file", err)
	}
	tmpPath := tmp.Name()

	err = func() error {
		defer tmp.Close()
		if _, err := tmp.Write(data); err != nil {
			return fsError("write", err)
		}
		if err := tmp.Sync(); err != nil {
			return fsError("sync", err)
		}
		return nil
	}()
	if err == nil {
		err = os.Chmod(tmpPath, perm)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// EnsureDirectory creates path with owner-only permissions.
func EnsureDirectory(path string) error {
	if err := CheckDiskSpace(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fsError("mkdir", err)
	}
	return nil
}
