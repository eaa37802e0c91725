//go:build windows

package linkfs

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// sameFilesystem compares volume serial numbers. Hard links on Windows
// require the same volume.
func sameFilesystem(path1, path2 string) (bool, error) {
	vol1, err := volumeSerial(path1)
	if err != nil {
		return false, errors.Wrapf(err, "get volume for %s", path1)
	}
	vol2, err := volumeSerial(path2)
	if err != nil {
		return false, errors.Wrapf(err, "get volume for %s", path2)
	}
	return vol1 == vol2, nil
}

func volumeSerial(path string) (uint32, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, errors.Wrap(err, "abs path")
	}
	pathp, err := windows.UTF16PtrFromString(absPath)
	if err != nil {
		return 0, errors.Wrap(err, "convert path")
	}

	volumePath := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumePathName(pathp, &volumePath[0], uint32(len(volumePath))); err != nil {
		return 0, errors.Wrap(err, "get volume path name")
	}

	root := windows.UTF16ToString(volumePath)
	if !strings.HasSuffix(root, `\`) {
		root += `\`
	}
	rootp, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return 0, errors.Wrap(err, "convert volume path")
	}

	var serial uint32
	if err := windows.GetVolumeInformation(rootp, nil, 0, &serial, nil, nil, nil, 0); err != nil {
		return 0, errors.Wrap(err, "get volume information")
	}
	return serial, nil
}
