package doctor

import (
	"strconv"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/git"
	"github.com/thoreinstein/gitlink/internal/platform"
)

// GitSymlinksCheck compares core.symlinks in a Git work tree with what the
// host can actually do.
type GitSymlinksCheck struct {
	resolver *platform.Resolver
	dir      string

	available func() bool
	get       func(dir string) (value, set bool, err error)
	set       func(dir string, value bool) error

	// want is the value core.symlinks should have; mismatch marks it fixable.
	want     bool
	mismatch bool
}

var (
	_ Check = (*GitSymlinksCheck)(nil)
	_ Fixer = (*GitSymlinksCheck)(nil)
)

// NewGitSymlinksCheck creates a check for the work tree containing dir.
func NewGitSymlinksCheck(r *platform.Resolver, dir string) *GitSymlinksCheck {
	return &GitSymlinksCheck{
		resolver:  r,
		dir:       dir,
		available: git.Available,
		get: func(dir string) (bool, bool, error) {
			return git.ConfigBool(dir, git.SymlinksKey)
		},
		set: func(dir string, value bool) error {
			return git.SetConfigBool(dir, git.SymlinksKey, value)
		},
	}
}

// Name returns the unique identifier for this check.
func (c *GitSymlinksCheck) Name() string { return "git-symlinks" }

// Category returns the grouping for this check.
func (c *GitSymlinksCheck) Category() string { return "git" }

// Run reads core.symlinks and compares it with the symlink capability.
func (c *GitSymlinksCheck) Run() *CheckResult {
	c.mismatch = false

	if !c.available() {
		return skipped(c, "git not found on PATH")
	}
	supported, err := c.resolver.IsSymlinkSupported()
	if err != nil {
		return skipped(c, "no adapter for this operating system")
	}
	c.want = supported

	value, set, err := c.get(c.dir)
	if errors.Is(err, git.ErrNotRepository) {
		return skipped(c, "not inside a git work tree")
	}
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "cannot read " + git.SymlinksKey + ": " + err.Error(),
		}
	}

	// Git treats an unset key as true.
	effective := value || !set
	details := map[string]any{
		"configured": set,
		"value":      effective,
		"supported":  supported,
	}

	if effective == supported {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  git.SymlinksKey + " matches symlink support",
			Details:  details,
		}
	}

	c.mismatch = true
	msg := git.SymlinksKey + " is true but this machine cannot create symbolic links"
	if !effective {
		msg = git.SymlinksKey + " is false; symbolic links are checked out as plain files"
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  msg,
		Details:  details,
		Fixable:  true,
		FixHint:  "run: gitlink doctor --fix (sets " + git.SymlinksKey + "=" + strconv.FormatBool(supported) + ")",
	}
}

// CanFix returns true when the last Run found a mismatch.
func (c *GitSymlinksCheck) CanFix() bool {
	return c.mismatch
}

// Fix writes the supported value to the repository config.
func (c *GitSymlinksCheck) Fix() []FixResult {
	if !c.CanFix() {
		return nil
	}

	desc := "set " + git.SymlinksKey + "=" + strconv.FormatBool(c.want)
	result := FixResult{Path: c.dir, Description: desc}
	if err := c.set(c.dir, c.want); err != nil {
		result.Description = "failed to " + desc
		result.Error = err
		return []FixResult{result}
	}

	result.Fixed = true
	c.mismatch = false
	return []FixResult{result}
}
