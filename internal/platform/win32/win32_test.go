package win32

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/linkfs"
	"github.com/thoreinstein/gitlink/internal/logging"
)

func fixedGate(g linkfs.Gate, calls *atomic.Int32) Option {
	return WithGate(func() linkfs.Gate {
		if calls != nil {
			calls.Add(1)
		}
		return g
	})
}

func TestAdapter_Name(t *testing.T) {
	a := New(linkfs.Config{Logger: logging.ForTest(t)})
	assert.Equal(t, "win32", a.Name())
}

func TestAdapter_SymlinkGate(t *testing.T) {
	// An unusable probe root proves the answer came from the gate.
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		gate linkfs.Gate
		want bool
	}{
		{name: "elevated", gate: linkfs.Gate{Known: true, Allowed: true, Reason: "elevated"}, want: true},
		{name: "developer mode", gate: linkfs.Gate{Known: true, Allowed: true, Reason: "developer mode"}, want: true},
		{name: "denied", gate: linkfs.Gate{Known: true, Allowed: false, Reason: "unprivileged"}, want: false},
		{name: "unknown falls back to probe", gate: linkfs.Gate{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: missing}, fixedGate(tt.gate, nil))
			assert.Equal(t, tt.want, a.IsSymlinkSupported())
		})
	}
}

func TestAdapter_SymlinkGateUnknownProbes(t *testing.T) {
	probeRoot := t.TempDir()
	a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: probeRoot}, fixedGate(linkfs.Gate{}, nil))

	want := linkfs.ProbeSymlink(t.TempDir()) == nil
	assert.Equal(t, want, a.IsSymlinkSupported())

	entries, err := os.ReadDir(probeRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe must clean up after itself")
}

func TestAdapter_SymlinkGateCached(t *testing.T) {
	var calls atomic.Int32
	a := New(linkfs.Config{Logger: logging.ForTest(t)}, fixedGate(linkfs.Gate{Known: true, Allowed: true}, &calls))

	for range 4 {
		assert.True(t, a.IsSymlinkSupported())
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestAdapter_CreateSymlinkDirectory(t *testing.T) {
	if linkfs.ProbeSymlink(t.TempDir()) != nil {
		t.Skip("symlinks not available")
	}
	a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: t.TempDir()})

	dir := t.TempDir()
	target := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "inner"), []byte("x"), 0o644))

	link := filepath.Join(dir, "link")
	require.True(t, a.CreateSymlink(link, target, true))

	entries, err := os.ReadDir(link)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inner", entries[0].Name())
}

func TestAdapter_CreateSymlinkMissingTarget(t *testing.T) {
	a := New(linkfs.Config{Logger: logging.ForTest(t), ProbeRoot: t.TempDir()})
	dir := t.TempDir()

	assert.False(t, a.CreateSymlink(filepath.Join(dir, "link"), filepath.Join(dir, "nope"), false))
	assert.False(t, a.CreateSymlink(filepath.Join(dir, "link"), filepath.Join(dir, "nope"), true))
}

func TestAdapter_CreateHardlinkCrossVolume(t *testing.T) {
	a := New(linkfs.Config{
		Logger:    logging.ForTest(t),
		ProbeRoot: t.TempDir(),
		SameFilesystem: func(string, string) (bool, error) {
			return false, nil
		},
	})

	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	link := filepath.Join(dir, "link")
	assert.False(t, a.CreateHardlink(link, existing))
	_, err := os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}
