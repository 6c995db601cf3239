//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package fsx

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// CreationTime returns the inode change time of path, which is what the
// platform exposes as a file's "ctime".
func CreationTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return time.Unix(st.Ctim.Unix()), nil
}
