//go:build darwin

package linkfs

import (
	"os"

	"golang.org/x/sys/unix"
)

func symlink(target, link string, _ bool) error {
	return os.Symlink(target, link)
}

// hardlink uses linkat(2) with AT_SYMLINK_FOLLOW; link(2) on macOS may
// refuse on some filesystems when the flag is not set.
func hardlink(existing, link string) error {
	if err := unix.Linkat(unix.AT_FDCWD, existing, unix.AT_FDCWD, link, unix.AT_SYMLINK_FOLLOW); err != nil {
		return &os.LinkError{Op: "linkat", Old: existing, New: link, Err: err}
	}
	return nil
}
