package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (unsupported OS, I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnsupportedPlatform indicates the host operating system is not one of
	// the recognized families. It is a configuration failure, not a retryable one.
	ErrUnsupportedPlatform = crdb.New("unsupported platform")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrInvalidManifest indicates a materialization manifest failed validation.
	ErrInvalidManifest = crdb.New("invalid manifest")

	// ErrPathEscape indicates a relative path resolved outside its root.
	ErrPathEscape = crdb.New("path escapes root")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New        = crdb.New
	Newf       = crdb.Newf
	Wrap       = crdb.Wrap
	Wrapf      = crdb.Wrapf
	WithDetail = crdb.WithDetail
	Mark       = crdb.Mark
	Is         = crdb.Is
	As         = crdb.As
	Unwrap     = crdb.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: gitlink doctor",
	}
}

// NewPlatformError creates an ExitError for an unrecognized host OS.
func NewPlatformError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: "gitlink supports Unix-like systems, macOS and Windows",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Silent reports whether the error carries only an exit code. The command
// that returned it has already reported the outcome.
func (e *ExitError) Silent() bool {
	return e.Err == nil
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err. Errors that are not an
// ExitError map to ExitUser, nil maps to ExitSuccess.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	if Is(err, ErrUnsupportedPlatform) {
		return ExitSystem
	}
	return ExitUser
}
