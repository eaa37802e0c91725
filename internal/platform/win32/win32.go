package win32

import (
	"log/slog"

	"github.com/thoreinstein/gitlink/internal/linkfs"
)

// Name is the adapter identifier.
const Name = "win32"

// Adapter is the Windows link adapter. It is safe for concurrent use.
type Adapter struct {
	cfg      linkfs.Config
	log      *slog.Logger
	gate     func() linkfs.Gate
	symlink  *linkfs.Capability
	hardlink *linkfs.Capability
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithGate replaces the privilege gate consulted by IsSymlinkSupported.
func WithGate(gate func() linkfs.Gate) Option {
	return func(a *Adapter) {
		a.gate = gate
	}
}

// New creates a Windows adapter. Zero fields of cfg take their defaults.
func New(cfg linkfs.Config, opts ...Option) *Adapter {
	cfg = cfg.WithDefaults()
	a := &Adapter{
		cfg:  cfg,
		log:  cfg.Logger.With("adapter", Name),
		gate: linkfs.SymlinkGate,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.symlink = linkfs.NewCapability(a.probeSymlink)
	a.hardlink = linkfs.NewCapability(func() (bool, error) {
		if err := linkfs.ProbeHardlink(cfg.ProbeRoot); err != nil {
			return false, err
		}
		return true, nil
	})
	return a
}

func (a *Adapter) probeSymlink() (bool, error) {
	if g := a.gate(); g.Known {
		a.log.Debug("symlink privilege gate", "allowed", g.Allowed, "reason", g.Reason)
		return g.Allowed, nil
	}
	if err := linkfs.ProbeSymlink(a.cfg.ProbeRoot); err != nil {
		return false, err
	}
	return true, nil
}

// Name returns "win32".
func (a *Adapter) Name() string { return Name }

// IsSymlinkSupported reports whether this process may create symlinks.
func (a *Adapter) IsSymlinkSupported() bool {
	ok, err := a.symlink.Get()
	if err != nil {
		a.log.Debug("symlink probe failed", "probe_root", a.cfg.ProbeRoot, "err", err)
	}
	return ok
}

// IsHardlinkSupported reports the cached outcome of a throwaway hard link probe.
func (a *Adapter) IsHardlinkSupported() bool {
	ok, err := a.hardlink.Get()
	if err != nil {
		a.log.Debug("hardlink probe failed", "probe_root", a.cfg.ProbeRoot, "err", err)
	}
	return ok
}

// CreateSymlink creates linkPath pointing at targetPath as a directory link
// when isDir is set and as a file link otherwise.
func (a *Adapter) CreateSymlink(linkPath, targetPath string, isDir bool) bool {
	if err := linkfs.Symlink(linkPath, targetPath, isDir); err != nil {
		a.log.Debug("symlink failed", "link", linkPath, "target", targetPath, "dir", isDir, "err", err)
		return false
	}
	return true
}

// CreateHardlink creates linkPath as another name for existingPath.
func (a *Adapter) CreateHardlink(linkPath, existingPath string) bool {
	if err := linkfs.Hardlink(linkPath, existingPath, a.cfg.SameFilesystem); err != nil {
		a.log.Debug("hardlink failed", "link", linkPath, "existing", existingPath, "err", err)
		return false
	}
	return true
}
