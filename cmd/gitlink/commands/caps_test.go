package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/platform"
)

func TestCapsCmd_JSON(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "caps", "--json")
	require.NoError(t, err)

	var report platform.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, runtime.GOOS, report.GOOS)
	assert.Equal(t, platform.Classify().String(), report.Family)
	assert.NotEmpty(t, report.Adapter)
	if runtime.GOOS != "windows" {
		assert.True(t, report.Symlink)
		assert.True(t, report.Hardlink)
	}
}

func TestCapsCmd_Text(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "caps")
	require.NoError(t, err)
	assert.Contains(t, out, "os:       "+runtime.GOOS)
	assert.Contains(t, out, "adapter:")
	assert.Contains(t, out, "symlink:")
	assert.Contains(t, out, "hardlink:")
}

func TestCapsCmd_GOOSOverride(t *testing.T) {
	isolate(t)
	goos := "freebsd"
	if runtime.GOOS == "windows" {
		goos = "windows"
	}

	out, _, err := runCLI(t, "caps", "--json", "--goos", goos)
	require.NoError(t, err)

	var report platform.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, goos, report.GOOS)
	assert.Equal(t, platform.ClassifyGOOS(goos).String(), report.Family)
}
