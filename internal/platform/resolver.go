package platform

import (
	"log/slog"
	"runtime"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/linkfs"
)

// Resolver classifies one GOOS value and dispatches every operation to the
// adapter of its family. It is safe for concurrent use.
type Resolver struct {
	goos     string
	logger   *slog.Logger
	cfg      linkfs.Config
	registry *Registry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGOOS overrides the GOOS value that is classified. Defaults to
// runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(r *Resolver) {
		r.goos = goos
	}
}

// WithLogger sets the logger used by the resolver and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithProbeRoot sets the directory under which capability probes run.
func WithProbeRoot(dir string) Option {
	return func(r *Resolver) {
		r.cfg.ProbeRoot = dir
	}
}

// WithSameFilesystem replaces the filesystem identity check used before
// creating hard links.
func WithSameFilesystem(fn linkfs.SameFilesystemFunc) Option {
	return func(r *Resolver) {
		r.cfg.SameFilesystem = fn
	}
}

// WithRegistry replaces the adapter registry. The registry's own config
// applies to the adapters it builds.
func WithRegistry(reg *Registry) Option {
	return func(r *Resolver) {
		r.registry = reg
	}
}

// NewResolver creates a Resolver for the running OS unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.cfg.Logger = r.logger
	r.cfg = r.cfg.WithDefaults()

	if r.registry == nil {
		r.registry = NewDefaultRegistry(r.cfg)
	}
	return r
}

// GOOS returns the operating system name this resolver classifies.
func (r *Resolver) GOOS() string { return r.goos }

// Family returns the family of the resolver's GOOS.
func (r *Resolver) Family() Family { return ClassifyGOOS(r.goos) }

// ProbeRoot returns the directory capability probes run under.
func (r *Resolver) ProbeRoot() string { return r.cfg.ProbeRoot }

// Load returns the adapter for the resolver's OS family. An unrecognized
// family yields an error wrapping errors.ErrUnsupportedPlatform and no
// adapter.
func (r *Resolver) Load() (Platform, error) {
	family := r.Family()
	if !family.Recognized() {
		return nil, r.unsupported("no adapter for operating system")
	}

	p, ok := r.registry.Get(family)
	if !ok {
		return nil, r.unsupported("no adapter registered for " + family.String())
	}
	return p, nil
}

// MustLoad is like Load but panics when the OS is unsupported.
func (r *Resolver) MustLoad() Platform {
	p, err := r.Load()
	if err != nil {
		panic(err)
	}
	return p
}

// IsSymlinkSupported reports whether symlinks can be created on this OS.
func (r *Resolver) IsSymlinkSupported() (bool, error) {
	p, err := r.Load()
	if err != nil {
		return false, err
	}
	return p.IsSymlinkSupported(), nil
}

// IsHardlinkSupported reports whether hard links can be created on this OS.
func (r *Resolver) IsHardlinkSupported() (bool, error) {
	p, err := r.Load()
	if err != nil {
		return false, err
	}
	return p.IsHardlinkSupported(), nil
}

// CreateSymlink creates linkPath pointing at targetPath with the adapter of
// this OS. The boolean is the adapter's verdict; the error is set only for
// an unsupported OS.
func (r *Resolver) CreateSymlink(linkPath, targetPath string, isDir bool) (bool, error) {
	p, err := r.Load()
	if err != nil {
		return false, err
	}
	ok := p.CreateSymlink(linkPath, targetPath, isDir)
	r.logger.Debug("create symlink",
		"adapter", p.Name(), "link", linkPath, "target", targetPath, "dir", isDir, "ok", ok)
	return ok, nil
}

// CreateHardlink creates linkPath as another name for existingPath with the
// adapter of this OS. The boolean is the adapter's verdict; the error is set
// only for an unsupported OS.
func (r *Resolver) CreateHardlink(linkPath, existingPath string) (bool, error) {
	p, err := r.Load()
	if err != nil {
		return false, err
	}
	ok := p.CreateHardlink(linkPath, existingPath)
	r.logger.Debug("create hardlink",
		"adapter", p.Name(), "link", linkPath, "existing", existingPath, "ok", ok)
	return ok, nil
}

// unsupported builds the error returned for an unrecognized OS.
func (r *Resolver) unsupported(msg string) error {
	err := errors.Newf("unsupported platform: %s: GOOS %q", msg, r.goos)
	return errors.WithDetail(errors.Mark(err, errors.ErrUnsupportedPlatform), "goos="+r.goos)
}
