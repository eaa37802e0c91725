package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "gitlink"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/gitlink.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns <StateHome>/gitlink/backups, where materialize keeps
// copies of the files it replaces.
func BackupDir() string {
	return filepath.Join(xdg.StateHome, AppName, "backups")
}

// ProbeRoot returns the directory under which capability probes create their
// throwaway entries. An empty override selects os.TempDir().
func ProbeRoot(override string) string {
	if override != "" {
		return override
	}
	return os.TempDir()
}

// Within joins rel onto root and rejects results that leave root.
// Absolute rel values are rejected too.
func Within(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", errors.Wrapf(errors.ErrPathEscape, "%q", rel)
	}
	cleanRoot := filepath.Clean(root)
	joined := filepath.Join(cleanRoot, filepath.FromSlash(rel))
	back, err := filepath.Rel(cleanRoot, joined)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(errors.ErrPathEscape, "%q", rel)
	}
	return joined, nil
}

// Contained is Within plus a walk of the directories between root and the
// result's parent: if any that exist is a symlink the path is rejected with
// ErrPathEscape. The final component is not inspected, so callers that
// replace it (rename over it, or remove it first) never follow it.
func Contained(root, rel string) (string, error) {
	joined, err := Within(root, rel)
	if err != nil {
		return "", err
	}
	cleanRoot := filepath.Clean(root)
	if joined == cleanRoot {
		return joined, nil
	}
	parent, err := filepath.Rel(cleanRoot, filepath.Dir(joined))
	if err != nil {
		return "", errors.Wrapf(errors.ErrPathEscape, "%q", rel)
	}
	if parent == "." {
		return joined, nil
	}

	cur := cleanRoot
	for _, part := range strings.Split(parent, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "inspecting %s", cur)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			dir, _ := filepath.Rel(cleanRoot, cur)
			return "", errors.Wrapf(errors.ErrPathEscape, "%q passes through symlink %q", rel, filepath.ToSlash(dir))
		}
	}
	return joined, nil
}
