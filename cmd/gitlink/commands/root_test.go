package commands

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/errors"
)

func TestRoot_Help(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t)
	require.NoError(t, err)
	for _, name := range []string{"caps", "symlink", "hardlink", "materialize", "validate", "doctor", "version"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "--goos")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gitlink version")
	assert.Contains(t, out, "commit:")
}

func TestSetup_QuietAndVerbose(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "caps", "-q", "-v")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestSetup_InvalidLogFormat(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "caps", "--log-format", "xml")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "xml")
}

func TestSetup_MissingConfigFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, "caps", "--config", filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSetup_ConfigFromWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	probe := filepath.Join(dir, "probe")
	require.NoError(t, os.Mkdir(probe, 0o700))
	writeFile(t, filepath.Join(dir, "config.yaml"), "version: 1\nprobe_dir: "+filepath.ToSlash(probe)+"\n")

	out, _, err := runCLI(t, "caps", "--json")
	require.NoError(t, err)

	var got struct {
		ProbeRoot string `json:"probe_root"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, filepath.ToSlash(probe), filepath.ToSlash(got.ProbeRoot))
}

func TestSetup_VerboseLogsToStderr(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, "caps", "-vv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "resolver ready")
}

func TestSetup_DebugEnv(t *testing.T) {
	isolate(t)
	t.Setenv(debugEnv, "1")

	_, stderr, err := runCLI(t, "caps")
	require.NoError(t, err)
	assert.Contains(t, stderr, "resolver ready")
}

func TestSetup_DefaultIsQuietOnStderr(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, "caps")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "resolver ready")
}

func TestSetup_LogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "gitlink.log")

	_, _, err := runCLI(t, "caps", "-vv", "--log-file", logPath)
	require.NoError(t, err)

	f, err := os.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	found := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "log line is not JSON: %s", sc.Text())
		if rec["msg"] == "resolver ready" {
			found = true
			assert.NotEmpty(t, rec["goos"])
		}
	}
	require.NoError(t, sc.Err())
	assert.True(t, found, "log file lacks resolver record")
}

func TestPlatformErr(t *testing.T) {
	err := platformErr(errors.Wrap(errors.ErrUnsupportedPlatform, "loading"))
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))

	other := errors.New("boom")
	assert.Same(t, other, platformErr(other))
}

func TestUnsupportedOS_AllCommands(t *testing.T) {
	tests := [][]string{
		{"caps"},
		{"symlink", "l", "t"},
		{"hardlink", "l", "e"},
		{"materialize", "m.yaml"},
		{"doctor"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, "t"), "target")
			writeFile(t, filepath.Join(dir, "e"), "existing")
			writeFile(t, filepath.Join(dir, "m.yaml"), "version: 1\nentries:\n  - path: a.txt\n    kind: file\n    content: hi\n")

			_, _, err := runCLI(t, append(args, "--goos", "plan9")...)
			require.Error(t, err)
			assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))

			for _, name := range []string{"l", "a.txt"} {
				_, statErr := os.Lstat(filepath.Join(dir, name))
				assert.True(t, os.IsNotExist(statErr), "%s was created", name)
			}
		})
	}
}
