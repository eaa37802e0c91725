package mac

import (
	"log/slog"

	"github.com/thoreinstein/gitlink/internal/linkfs"
)

// Name is the adapter identifier.
const Name = "mac"

// Adapter is the Apple link adapter. It is safe for concurrent use.
type Adapter struct {
	cfg      linkfs.Config
	log      *slog.Logger
	symlink  *linkfs.Capability
	hardlink *linkfs.Capability
}

// New creates an Apple adapter. Zero fields of cfg take their defaults.
func New(cfg linkfs.Config) *Adapter {
	cfg = cfg.WithDefaults()
	return &Adapter{
		cfg: cfg,
		log: cfg.Logger.With("adapter", Name),
		symlink: linkfs.NewCapability(func() (bool, error) {
			if err := linkfs.ProbeSymlink(cfg.ProbeRoot); err != nil {
				return false, err
			}
			return true, nil
		}),
		hardlink: linkfs.NewCapability(func() (bool, error) {
			if err := linkfs.ProbeHardlink(cfg.ProbeRoot); err != nil {
				return false, err
			}
			return true, nil
		}),
	}
}

// Name returns "mac".
func (a *Adapter) Name() string { return Name }

// IsSymlinkSupported reports the cached outcome of a throwaway symlink probe.
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

// CreateSymlink creates linkPath pointing at targetPath. The directory flag
// is accepted for contract compatibility and ignored.
func (a *Adapter) CreateSymlink(linkPath, targetPath string, isDir bool) bool {
	if err := linkfs.Symlink(linkPath, targetPath, false); err != nil {
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
