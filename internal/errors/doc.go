// Package errors provides error handling conventions for gitlink.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors so the
// rest of the module imports a single errors package, defines sentinel errors
// for common failure conditions, and provides an ExitError type for CLI exit
// code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrUnsupportedPlatform) {
//	    // the host OS cannot be served; abort
//	}
//
// [ErrUnsupportedPlatform] is the only error the link facade ever returns.
// Ordinary link failures (permissions, cross-device links, missing targets)
// are reported as boolean results instead.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (unsupported OS, I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
