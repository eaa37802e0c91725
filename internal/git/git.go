// Package git reads and writes the repository settings that decide whether
// Git checks symbolic links out as links or as plain files.
package git

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// SymlinksKey is the setting Git consults before creating a symlink on checkout.
const SymlinksKey = "core.symlinks"

// ErrNotRepository indicates the directory is not inside a Git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is inside a Git work tree.
func IsRepo(dir string) bool {
	out, err := run(dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// ConfigBool reads a boolean setting as Git would apply it in dir. set is
// false when the key is not configured at any level.
func ConfigBool(dir, key string) (value, set bool, err error) {
	if !IsRepo(dir) {
		return false, false, errors.Wrapf(ErrNotRepository, "%s", dir)
	}

	out, err := run(dir, "config", "--bool", "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, false, nil
		}
		return false, false, err
	}

	value, err = strconv.ParseBool(out)
	if err != nil {
		return false, false, errors.Wrapf(err, "parsing %s", key)
	}
	return value, true, nil
}

// SetConfigBool writes a boolean setting to the repository config of dir.
func SetConfigBool(dir, key string, value bool) error {
	if !IsRepo(dir) {
		return errors.Wrapf(ErrNotRepository, "%s", dir)
	}
	_, err := run(dir, "config", "--local", "--bool", key, strconv.FormatBool(value))
	return err
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", errors.Wrapf(err, "git %s", args[0])
		}
		return "", errors.Wrapf(err, "git %s: %s", args[0], msg)
	}
	return strings.TrimSpace(string(out)), nil
}
