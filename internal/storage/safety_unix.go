//go:build !windows

package storage

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// GetDiskSpace reports the space of the file system holding path, or of
// its nearest existing parent.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = existingAncestor(path)

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fmt.Errorf("statfs %s: %w", path, err)
	}

	bsize := uint64(st.Bsize)
	total, free := uint64(st.Blocks)*bsize, uint64(st.Bavail)*bsize
	return &DiskSpaceInfo{Path: path, TotalBytes: total, FreeBytes: free, UsedBytes: total - free}, nil
}

func isDiskFullError(err error) bool {
	return errors.Is(err, unix.ENOSPC) || errors.Is(err, unix.EDQUOT)
}
