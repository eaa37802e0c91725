package linkfs

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeHardlink_LeavesNoTrace(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, ProbeHardlink(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe must not leave entries behind")
}

func TestProbeSymlink_LeavesNoTrace(t *testing.T) {
	root := t.TempDir()

	// The outcome depends on the host; the cleanup must hold either way.
	_ = ProbeSymlink(root)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe must not leave entries behind")
}

func TestProbe_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	assert.Error(t, ProbeHardlink(missing))
	assert.Error(t, ProbeSymlink(missing))
}

func TestCapability_RunsOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewCapability(func() (bool, error) {
		calls.Add(1)
		return true, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.Get()
			assert.True(t, ok)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
