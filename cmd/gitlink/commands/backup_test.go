package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/errors"
)

func TestBackupCmd_MaterializeListRestore(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.yaml"), testManifest)
	root := filepath.Join(dir, "out")
	tool := writeFile(t, filepath.Join(root, "bin", "tool"), "hand edited\n")

	out, _, err := runCLI(t, "materialize", "links.yaml", "--root", root, "--backup")
	require.NoError(t, err)
	assert.Contains(t, out, "saved as backup")

	out, _, err = runCLI(t, "backup", "list", root, "--json")
	require.NoError(t, err)
	var infos []struct {
		ID    string `json:"id"`
		Files int    `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Files)

	out, _, err = runCLI(t, "backup", "restore", root)
	require.NoError(t, err)
	assert.Contains(t, out, infos[0].ID)

	data, err := os.ReadFile(tool)
	require.NoError(t, err)
	assert.Equal(t, "hand edited\n", string(data))
}

func TestBackupCmd_ListEmpty(t *testing.T) {
	dir := isolate(t)

	out, _, err := runCLI(t, "backup", "list", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No backups")
}

func TestBackupCmd_RestoreNothing(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, "backup", "restore", dir)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestBackupCmd_RestoreUnknownID(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, "backup", "restore", dir, "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
