//go:build unix

package linkfs

import (
	"golang.org/x/sys/unix"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// sameFilesystem compares device IDs from stat(2).
func sameFilesystem(path1, path2 string) (bool, error) {
	var st1, st2 unix.Stat_t
	if err := unix.Stat(path1, &st1); err != nil {
		return false, errors.Wrapf(err, "stat %s", path1)
	}
	if err := unix.Stat(path2, &st2); err != nil {
		return false, errors.Wrapf(err, "stat %s", path2)
	}
	return st1.Dev == st2.Dev, nil
}
