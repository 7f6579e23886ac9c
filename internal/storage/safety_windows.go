//go:build windows

package storage

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// GetDiskSpace reports the space of the volume holding path, or of its
// nearest existing parent.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = existingAncestor(path)

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("disk space %s: %w", path, err)
	}
	var avail, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &avail, &total, &totalFree); err != nil {
		return nil, fmt.Errorf("disk space %s: %w", path, err)
	}
	return &DiskSpaceInfo{Path: path, TotalBytes: total, FreeBytes: avail, UsedBytes: total - avail}, nil
}

func isDiskFullError(err error) bool {
	return errors.Is(err, windows.ERROR_DISK_FULL) || errors.Is(err, windows.ERROR_HANDLE_DISK_FULL)
}
