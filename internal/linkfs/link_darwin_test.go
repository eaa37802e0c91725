//go:build darwin

package linkfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/errors"
)

func TestHardlink_Linkat(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "blob")
	writeFile(t, existing, "content")
	link := filepath.Join(dir, "link")

	require.NoError(t, hardlink(existing, link))

	a, err := os.Stat(existing)
	require.NoError(t, err)
	b, err := os.Stat(link)
	require.NoError(t, err)
	assert.True(t, os.SameFile(a, b))
}

func TestHardlink_LinkatReportsLinkError(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "blob")
	writeFile(t, existing, "content")

	err := hardlink(existing, existing)
	require.Error(t, err)

	var linkErr *os.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "linkat", linkErr.Op)
	assert.True(t, os.IsExist(err))

	err = hardlink(filepath.Join(dir, "missing"), filepath.Join(dir, "other"))
	assert.True(t, os.IsNotExist(err))
}
