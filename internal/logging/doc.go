// Package logging provides structured logging for gitlink using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("symlink created", "link", "/tmp/link")
//
// Link adapters report ordinary failures as booleans and log the cause at
// Debug, so running with -vv shows why a link fell back to a copy.
//
// # Context
//
// The CLI stores its logger on the command context with [NewContext];
// library code retrieves it with [FromContext], which falls back to
// [slog.Default].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
