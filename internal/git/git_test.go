package git

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/thoreinstein/gitlink/internal/errors"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not installed")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s failed: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
}

func TestIsRepo(t *testing.T) {
	requireGit(t)

	if IsRepo(t.TempDir()) {
		t.Error("IsRepo(empty dir) = true, want false")
	}
	if !IsRepo(initRepo(t)) {
		t.Error("IsRepo(initialized repo) = false, want true")
	}
}

func TestConfigBool_RoundTrip(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)

	for _, want := range []bool{false, true} {
		if err := SetConfigBool(dir, SymlinksKey, want); err != nil {
			t.Fatalf("SetConfigBool(%v) error = %v", want, err)
		}
		got, set, err := ConfigBool(dir, SymlinksKey)
		if err != nil {
			t.Fatalf("ConfigBool() error = %v", err)
		}
		if !set || got != want {
			t.Errorf("ConfigBool() = %v, set=%v, want %v, set=true", got, set, want)
		}
	}
}

func TestConfigBool_Unset(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)

	_, set, err := ConfigBool(dir, "gitlink.nosuchkey")
	if err != nil {
		t.Fatalf("ConfigBool() error = %v", err)
	}
	if set {
		t.Error("ConfigBool() set = true for missing key")
	}
}

func TestConfigBool_NotRepository(t *testing.T) {
	requireGit(t)

	_, _, err := ConfigBool(t.TempDir(), SymlinksKey)
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("ConfigBool() error = %v, want ErrNotRepository", err)
	}
	if err := SetConfigBool(t.TempDir(), SymlinksKey, true); !errors.Is(err, ErrNotRepository) {
		t.Errorf("SetConfigBool() error = %v, want ErrNotRepository", err)
	}
}
