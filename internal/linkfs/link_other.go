//go:build !unix && !windows

package linkfs

import "os"

func symlink(target, link string, _ bool) error {
	return os.Symlink(target, link)
}

func hardlink(existing, link string) error {
	return os.Link(existing, link)
}

func sameFilesystem(_, _ string) (bool, error) {
	return false, ErrNoDeviceInfo
}
