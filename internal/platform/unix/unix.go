package unix

import (
	"log/slog"

	"github.com/thoreinstein/gitlink/internal/linkfs"
)

// Name is the adapter identifier.
const Name = "unix"

// Adapter is the Unix-like link adapter. It is safe for concurrent use.
type Adapter struct {
	cfg      linkfs.Config
	log      *slog.Logger
	symlink  *linkfs.Capability
	hardlink *linkfs.Capability
}

// New creates a Unix adapter. Zero fields of cfg take their defaults.
func New(cfg linkfs.Config) *Adapter {
	cfg = cfg.WithDefaults()
	a := &Adapter{cfg: cfg, log: cfg.Logger.With("adapter", Name)}
	a.symlink = linkfs.NewCapability(func() (bool, error) {
		err := linkfs.ProbeSymlink(cfg.ProbeRoot)
		return err == nil, err
	})
	a.hardlink = linkfs.NewCapability(func() (bool, error) {
		err := linkfs.ProbeHardlink(cfg.ProbeRoot)
		return err == nil, err
	})
	return a
}

// Name returns "unix".
func (a *Adapter) Name() string { return Name }

// IsSymlinkSupported probes symlink creation once per adapter.
func (a *Adapter) IsSymlinkSupported() bool {
	ok, err := a.symlink.Get()
	if err != nil {
		a.log.Debug("symlink probe failed", "probe_root", a.cfg.ProbeRoot, "err", err)
	}
	return ok
}

// IsHardlinkSupported probes hard link creation once per adapter.
func (a *Adapter) IsHardlinkSupported() bool {
	ok, err := a.hardlink.Get()
	if err != nil {
		a.log.Debug("hardlink probe failed", "probe_root", a.cfg.ProbeRoot, "err", err)
	}
	return ok
}

// CreateSymlink creates linkPath pointing at targetPath. isDir has no
// effect on Unix-like systems.
func (a *Adapter) CreateSymlink(linkPath, targetPath string, _ bool) bool {
	if err := linkfs.Symlink(linkPath, targetPath, false); err != nil {
		a.log.Debug("symlink failed", "link", linkPath, "target", targetPath, "err", err)
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
