package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/paths"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// probeDirPerm is the permission for a probe directory gitlink creates.
const probeDirPerm os.FileMode = paths.DefaultDirPerm

type dirProblem int

const (
	dirOK dirProblem = iota
	dirMissing
	dirNotDirectory
	dirReadOnly
	dirUnreadable
)

// dirFixer creates or repairs the probe directory after ProbeDirCheck found
// a fixable problem.
type dirFixer struct {
	path    string
	problem dirProblem
	// shared marks a directory gitlink does not own, such as os.TempDir().
	shared bool
}

// CanFix returns true if the last Run found a problem gitlink may repair.
func (f *dirFixer) CanFix() bool {
	switch f.problem {
	case dirMissing:
		return true
	case dirReadOnly:
		return !f.shared
	default:
		return false
	}
}

// Fix repairs the problem found by the last Run.
func (f *dirFixer) Fix() []FixResult {
	if !f.CanFix() {
		return nil
	}

	result := FixResult{Path: f.path}
	switch f.problem {
	case dirMissing:
		if err := paths.EnsureDir(f.path, probeDirPerm); err != nil {
			result.Description = "failed to create directory"
			result.Error = errors.Wrapf(err, "mkdir %s", f.path)
			return []FixResult{result}
		}
		result.Description = fmt.Sprintf("created with mode %04o", probeDirPerm)
	case dirReadOnly:
		if err := os.Chmod(f.path, probeDirPerm); err != nil {
			result.Description = fmt.Sprintf("failed to chmod %04o", probeDirPerm)
			result.Error = errors.Wrapf(err, "chmod %04o %s", probeDirPerm, f.path)
			return []FixResult{result}
		}
		result.Description = fmt.Sprintf("chmod %04o", probeDirPerm)
	}

	result.Fixed = true
	f.problem = dirOK
	return []FixResult{result}
}

// RunFixes applies every fixable check in the runner, in order. Run must
// have been called first.
func (r *Runner) RunFixes() []FixResult {
	var results []FixResult
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix()...)
		}
	}
	return results
}
