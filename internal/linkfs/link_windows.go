//go:build windows

package linkfs

import (
	"os"

	"golang.org/x/sys/windows"
)

// symbolicLinkFlagAllowUnprivilegedCreate lets non-elevated processes
// create symlinks when Developer Mode is on (Windows 10 1703+).
const symbolicLinkFlagAllowUnprivilegedCreate = 0x2

func symlink(target, link string, isDir bool) error {
	linkp, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return err
	}
	targetp, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return err
	}

	var flags uint32
	if isDir {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}
	if on, _ := developerMode(); on {
		flags |= symbolicLinkFlagAllowUnprivilegedCreate
	}

	if err := windows.CreateSymbolicLink(linkp, targetp, flags); err != nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: err}
	}
	return nil
}

func hardlink(existing, link string) error {
	linkp, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return err
	}
	existingp, err := windows.UTF16PtrFromString(existing)
	if err != nil {
		return err
	}
	if err := windows.CreateHardLink(linkp, existingp, 0); err != nil {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: err}
	}
	return nil
}
