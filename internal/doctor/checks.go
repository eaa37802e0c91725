package doctor

import (
	"runtime"

	"github.com/thoreinstein/gitlink/internal/platform"
)

const categoryPlatform = "platform"

// FamilyCheck verifies that the host OS maps to a link adapter.
type FamilyCheck struct {
	resolver *platform.Resolver
}

var _ Check = (*FamilyCheck)(nil)

// NewFamilyCheck creates a new OS family check.
func NewFamilyCheck(r *platform.Resolver) *FamilyCheck {
	return &FamilyCheck{resolver: r}
}

// Name returns the unique identifier for this check.
func (c *FamilyCheck) Name() string { return "platform-family" }

// Category returns the grouping for this check.
func (c *FamilyCheck) Category() string { return categoryPlatform }

// Run classifies the host and loads its adapter.
func (c *FamilyCheck) Run() *CheckResult {
	details := map[string]any{
		"goos":   c.resolver.GOOS(),
		"goarch": runtime.GOARCH,
		"family": c.resolver.Family().String(),
	}

	p, err := c.resolver.Load()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "operating system " + c.resolver.GOOS() + " is not supported",
			Details:  details,
			FixHint:  "gitlink supports Unix-like systems, macOS and Windows",
		}
	}

	details["adapter"] = p.Name()
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  c.resolver.Family().String() + " family, " + p.Name() + " adapter",
		Details:  details,
	}
}

// SymlinkCheck reports whether this process can create symbolic links.
type SymlinkCheck struct {
	resolver *platform.Resolver
}

var _ Check = (*SymlinkCheck)(nil)

// NewSymlinkCheck creates a new symlink capability check.
func NewSymlinkCheck(r *platform.Resolver) *SymlinkCheck {
	return &SymlinkCheck{resolver: r}
}

// Name returns the unique identifier for this check.
func (c *SymlinkCheck) Name() string { return "symlink-support" }

// Category returns the grouping for this check.
func (c *SymlinkCheck) Category() string { return categoryPlatform }

// Run queries symlink capability through the resolver.
func (c *SymlinkCheck) Run() *CheckResult {
	ok, err := c.resolver.IsSymlinkSupported()
	if err != nil {
		return skipped(c, "no adapter for this operating system")
	}
	if ok {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "symbolic links can be created",
		}
	}

	hint := "check that the probe directory is on a filesystem with symlink support"
	if c.resolver.Family() == platform.FamilyWindows {
		hint = "enable Developer Mode or run from an elevated shell"
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  "symbolic links cannot be created; symlink entries fall back to plain files",
		FixHint:  hint,
	}
}

// HardlinkCheck reports whether this process can create hard links.
type HardlinkCheck struct {
	resolver *platform.Resolver
}

var _ Check = (*HardlinkCheck)(nil)

// NewHardlinkCheck creates a new hard link capability check.
func NewHardlinkCheck(r *platform.Resolver) *HardlinkCheck {
	return &HardlinkCheck{resolver: r}
}

// Name returns the unique identifier for this check.
func (c *HardlinkCheck) Name() string { return "hardlink-support" }

// Category returns the grouping for this check.
func (c *HardlinkCheck) Category() string { return categoryPlatform }

// Run queries hard link capability through the resolver.
func (c *HardlinkCheck) Run() *CheckResult {
	ok, err := c.resolver.IsHardlinkSupported()
	if err != nil {
		return skipped(c, "no adapter for this operating system")
	}
	if ok {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "hard links can be created",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  "hard links cannot be created; hardlink entries fall back to copies",
		FixHint:  "use a probe directory on a filesystem that supports hard links (not FAT or some network shares)",
	}
}

func skipped(c Check, why string) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Message:  "skipped: " + why,
	}
}
