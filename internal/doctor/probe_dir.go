package doctor

import (
	"os"
	"path/filepath"
)

// ProbeDirCheck verifies that capability probes have a writable directory.
type ProbeDirCheck struct {
	dirFixer
}

var (
	_ Check = (*ProbeDirCheck)(nil)
	_ Fixer = (*ProbeDirCheck)(nil)
)

// NewProbeDirCheck creates a check for the probe directory dir.
func NewProbeDirCheck(dir string) *ProbeDirCheck {
	return &ProbeDirCheck{dirFixer: dirFixer{
		path:   dir,
		shared: filepath.Clean(dir) == filepath.Clean(os.TempDir()),
	}}
}

// Name returns the unique identifier for this check.
func (c *ProbeDirCheck) Name() string { return "probe-dir" }

// Category returns the grouping for this check.
func (c *ProbeDirCheck) Category() string { return "filesystem" }

// Run checks that the directory exists and accepts new entries.
func (c *ProbeDirCheck) Run() *CheckResult {
	c.problem = inspectDir(c.path)
	details := map[string]any{"path": c.path}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  details,
		Fixable:  c.CanFix(),
	}

	switch c.problem {
	case dirOK:
		result.Status = SeverityPass
		result.Message = "probe directory is writable"
	case dirMissing:
		result.Status = SeverityError
		result.Message = "probe directory does not exist"
		result.FixHint = "run: gitlink doctor --fix"
	case dirNotDirectory:
		result.Status = SeverityError
		result.Message = "probe path is not a directory"
		result.FixHint = "set probe_dir to a directory"
	case dirReadOnly:
		result.Status = SeverityError
		result.Message = "probe directory is not writable"
		if c.CanFix() {
			result.FixHint = "run: gitlink doctor --fix"
		} else {
			result.FixHint = "set probe_dir to a writable directory"
		}
	case dirUnreadable:
		result.Status = SeverityError
		result.Message = "probe directory cannot be inspected"
		result.FixHint = "check permissions on the parent directories"
	}
	return result
}

func inspectDir(dir string) dirProblem {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return dirMissing
	case err != nil:
		return dirUnreadable
	case !info.IsDir():
		return dirNotDirectory
	}

	f, err := os.CreateTemp(dir, ".gitlink-doctor-*")
	if err != nil {
		return dirReadOnly
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return dirOK
}
