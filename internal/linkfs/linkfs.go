package linkfs

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// Sentinel errors describing why a link could not be created.
var (
	// ErrTargetMissing indicates the symlink target or hardlink source does not exist.
	ErrTargetMissing = errors.New("link target does not exist")

	// ErrExists indicates something already occupies the link path.
	ErrExists = errors.New("link path already exists")

	// ErrCrossDevice indicates a hard link between different filesystems or volumes.
	ErrCrossDevice = errors.New("hard link across filesystems")

	// ErrNotRegular indicates a hard link to something other than a regular file.
	ErrNotRegular = errors.New("hard link source is not a regular file")

	// ErrNoDeviceInfo indicates the host does not expose filesystem identity.
	ErrNoDeviceInfo = errors.New("filesystem identity unavailable")
)

// SameFilesystemFunc reports whether two existing paths share a filesystem.
type SameFilesystemFunc func(path1, path2 string) (bool, error)

// Config carries the settings shared by every adapter.
type Config struct {
	// Logger receives the cause of failed link attempts. Defaults to slog.Default().
	Logger *slog.Logger

	// ProbeRoot is the directory under which capability probes create a
	// private scratch directory. Defaults to os.TempDir().
	ProbeRoot string

	// SameFilesystem overrides the filesystem identity check used before
	// creating hard links. Defaults to [SameFilesystem].
	SameFilesystem SameFilesystemFunc
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.ProbeRoot == "" {
		c.ProbeRoot = os.TempDir()
	}
	if c.SameFilesystem == nil {
		c.SameFilesystem = SameFilesystem
	}
	return c
}

// Symlink creates linkPath pointing at targetPath. A relative target is
// resolved against the directory of linkPath when checking that it exists.
// isDir selects a directory link where the OS distinguishes them and is
// ignored elsewhere.
func Symlink(linkPath, targetPath string, isDir bool) error {
	if linkPath == "" || targetPath == "" {
		return errors.Wrap(ErrTargetMissing, "empty path")
	}
	if _, err := os.Stat(resolveTarget(linkPath, targetPath)); err != nil {
		return errors.Wrapf(ErrTargetMissing, "%s: %v", targetPath, err)
	}
	if err := ensureFree(linkPath); err != nil {
		return err
	}
	if err := symlink(targetPath, linkPath, isDir); err != nil {
		return errors.Wrapf(err, "symlink %s -> %s", linkPath, targetPath)
	}
	return nil
}

// Hardlink creates linkPath as a second name for the regular file at
// existingPath. A symlink at existingPath is rejected rather than followed.
// Both must live on the same filesystem according to sameFS; a nil sameFS
// uses [SameFilesystem].
func Hardlink(linkPath, existingPath string, sameFS SameFilesystemFunc) error {
	if linkPath == "" || existingPath == "" {
		return errors.Wrap(ErrTargetMissing, "empty path")
	}
	info, err := os.Lstat(existingPath)
	if err != nil {
		return errors.Wrapf(ErrTargetMissing, "%s: %v", existingPath, err)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrNotRegular, "%s", existingPath)
	}
	if err := ensureFree(linkPath); err != nil {
		return err
	}

	if sameFS == nil {
		sameFS = SameFilesystem
	}
	same, err := sameFS(filepath.Dir(linkPath), existingPath)
	if err != nil {
		return errors.Wrap(err, "comparing filesystems")
	}
	if !same {
		return errors.Wrapf(ErrCrossDevice, "%s and %s", linkPath, existingPath)
	}

	if err := hardlink(existingPath, linkPath); err != nil {
		return errors.Wrapf(err, "hardlink %s -> %s", linkPath, existingPath)
	}
	return nil
}

// SameFilesystem reports whether path1 and path2 are on the same filesystem.
// Both paths must exist.
func SameFilesystem(path1, path2 string) (bool, error) {
	if path1 == "" || path2 == "" {
		return false, errors.New("path must not be empty")
	}
	return sameFilesystem(path1, path2)
}

func resolveTarget(linkPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	return filepath.Join(filepath.Dir(linkPath), targetPath)
}

func ensureFree(linkPath string) error {
	_, err := os.Lstat(linkPath)
	switch {
	case err == nil:
		return errors.Wrapf(ErrExists, "%s", linkPath)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return errors.Wrapf(err, "checking %s", linkPath)
	}
}
