package mac

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/gitlink/internal/linkfs"
	"github.com/thoreinstein/gitlink/internal/logging"
)

// Probe caching, collisions and missing targets go through the same linkfs
// calls as the unix adapter and are covered there; these tests pin what the
// Apple adapter adds.

func TestAdapter_Name(t *testing.T) {
	a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: t.TempDir()})
	if got := a.Name(); got != "mac" {
		t.Errorf("Name() = %q, want %q", got, "mac")
	}
}

func TestAdapter_CreateSymlink_LogsDirFlag(t *testing.T) {
	var buf bytes.Buffer
	a := New(linkfs.Config{
		Logger:    slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		ProbeRoot: t.TempDir(),
	})

	dir := t.TempDir()
	if a.CreateSymlink(filepath.Join(dir, "link"), filepath.Join(dir, "missing"), true) {
		t.Fatal("CreateSymlink() = true for missing target")
	}

	out := buf.String()
	for _, want := range []string{"symlink failed", "adapter=mac", "dir=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestAdapter_CreateHardlink_SharesFile(t *testing.T) {
	a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: t.TempDir()})
	if !a.IsHardlinkSupported() {
		t.Skip("hard links not available")
	}

	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if !a.CreateHardlink(link, existing) {
		t.Fatal("CreateHardlink() = false, want true")
	}

	a1, err := os.Stat(existing)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := os.Stat(link)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(a1, a2) {
		t.Error("link and existing are different files")
	}
}

func TestAdapter_CreateHardlink_CrossDevice(t *testing.T) {
	a := New(linkfs.Config{
		Logger:    logging.ForTest(t),
		ProbeRoot: t.TempDir(),
		SameFilesystem: func(string, string) (bool, error) {
			return false, nil
		},
	})

	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link")
	if a.CreateHardlink(link, existing) {
		t.Fatal("CreateHardlink() across devices = true, want false")
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Errorf("link path exists after cross-device failure: %v", err)
	}
}
