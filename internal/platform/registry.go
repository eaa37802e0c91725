package platform

import (
	"slices"
	"sync"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/linkfs"
	"github.com/thoreinstein/gitlink/internal/platform/mac"
	"github.com/thoreinstein/gitlink/internal/platform/unix"
	"github.com/thoreinstein/gitlink/internal/platform/win32"
)

// Sentinel errors for registry operations.
var (
	// ErrFamilyAlreadyRegistered is returned when attempting to register
	// a second factory for the same family.
	ErrFamilyAlreadyRegistered = errors.New("family already registered")

	// ErrInvalidFamily is returned when attempting to register a factory
	// for FamilyUnrecognized.
	ErrInvalidFamily = errors.New("invalid family")
)

// Factory builds the adapter for one family.
type Factory func(cfg linkfs.Config) Platform

// Registry maps families to adapter factories and memoizes the adapter
// each factory builds, so that capability probes cached inside an adapter
// survive across calls. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	cfg       linkfs.Config
	factories map[Family]Factory
	adapters  map[Family]Platform
}

// NewRegistry creates an empty registry whose adapters receive cfg.
func NewRegistry(cfg linkfs.Config) *Registry {
	return &Registry{
		cfg:       cfg.WithDefaults(),
		factories: make(map[Family]Factory),
		adapters:  make(map[Family]Platform),
	}
}

// NewDefaultRegistry creates a registry with the built-in adapter for
// every recognized family.
func NewDefaultRegistry(cfg linkfs.Config) *Registry {
	r := NewRegistry(cfg)
	// Registration into a fresh registry cannot collide.
	_ = r.Register(FamilyUnix, func(cfg linkfs.Config) Platform { return unix.New(cfg) })
	_ = r.Register(FamilyApple, func(cfg linkfs.Config) Platform { return mac.New(cfg) })
	_ = r.Register(FamilyWindows, func(cfg linkfs.Config) Platform { return win32.New(cfg) })
	return r
}

// Register adds the factory for a family.
// Returns an error if:
//   - family is FamilyUnrecognized or out of range
//   - a factory for family is already registered
func (r *Registry) Register(family Family, factory Factory) error {
	if !slices.Contains(Families(), family) || factory == nil {
		return errors.Wrapf(ErrInvalidFamily, "%s", family)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[family]; exists {
		return errors.Wrapf(ErrFamilyAlreadyRegistered, "%s", family)
	}

	r.factories[family] = factory
	return nil
}

// Get returns the adapter for family, building it on first use.
// The second result is false when no factory is registered for family.
func (r *Registry) Get(family Family) (Platform, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.adapters[family]; ok {
		return p, true
	}

	factory, ok := r.factories[family]
	if !ok {
		return nil, false
	}

	p := factory(r.cfg)
	r.adapters[family] = p
	return p, true
}

// All returns the registered families in the order defined by Families().
func (r *Registry) All() []Family {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []Family
	for _, family := range Families() {
		if _, registered := r.factories[family]; registered {
			results = append(results, family)
		}
	}
	return results
}
