package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/materialize"
)

const testManifest = `version: 1
entries:
  - path: bin/tool
    kind: file
    content: "#!/bin/sh\n"
  - path: bin/alias
    kind: hardlink
    existing: bin/tool
  - path: current
    kind: symlink
    target: bin
    dir: true
`

func TestMaterializeCmd(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.yaml"), testManifest)
	root := filepath.Join(dir, "out")

	out, _, err := runCLI(t, "materialize", "links.yaml", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "bin/tool")
	assert.Contains(t, out, "0 failed")

	data, err := os.ReadFile(filepath.Join(root, "bin", "alias"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	if runtime.GOOS != "windows" {
		got, err := os.Readlink(filepath.Join(root, "current"))
		require.NoError(t, err)
		assert.Equal(t, "bin", got)
	}
}

func TestMaterializeCmd_JSONAndReport(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.yaml"), testManifest)
	root := filepath.Join(dir, "out")
	reportPath := filepath.Join(dir, "result.yaml")

	out, _, err := runCLI(t, "materialize", "links.yaml", "--root", root, "--json", "--report", reportPath)
	require.NoError(t, err)

	var fromStdout materialize.Result
	require.NoError(t, json.Unmarshal([]byte(out), &fromStdout))
	require.Len(t, fromStdout.Outcomes, 3)
	assert.Equal(t, materialize.StatusWritten, fromStdout.Outcomes[0].Status)
	assert.Empty(t, fromStdout.Failed)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var fromReport materialize.Result
	require.NoError(t, yaml.Unmarshal(data, &fromReport))
	assert.Equal(t, fromStdout.Root, fromReport.Root)
	assert.Len(t, fromReport.Outcomes, 3)
}

func TestMaterializeCmd_Only(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.yaml"), testManifest)
	root := filepath.Join(dir, "out")

	_, _, err := runCLI(t, "materialize", "links.yaml", "--root", root, "--only", "bin/tool", "-q")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "bin", "tool"))
	_, statErr := os.Lstat(filepath.Join(root, "current"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterializeCmd_InvalidManifest(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "bad.yaml"), "version: 1\nentries:\n  - path: ../escape\n    kind: file\n")

	_, _, err := runCLI(t, "materialize", "bad.yaml", "--root", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.True(t, errors.Is(err, errors.ErrInvalidManifest))

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, exitErr.Suggestion, "gitlink validate")
}

func TestMaterializeCmd_FailedEntryExitCode(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.toml"), `version = 1

[[entries]]
path = "alias"
kind = "hardlink"
existing = "missing"
`)

	_, _, err := runCLI(t, "materialize", "links.toml", "--root", filepath.Join(dir, "out"), "-q")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Silent())
}

func TestMaterializeCmd_WatchStopsWithContext(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "links.yaml"), testManifest)
	root := filepath.Join(dir, "out")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"materialize", "links.yaml", "--root", root, "--watch", "-q"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.FileExists(t, filepath.Join(root, "bin", "tool"))
}
