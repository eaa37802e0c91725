package linkfs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// ProbeSymlink creates a throwaway file and a symlink to it inside a private
// scratch directory under root, then removes the scratch directory.
// It returns nil when the symlink could be created.
func ProbeSymlink(root string) error {
	return withScratch(root, func(dir string) error {
		target := filepath.Join(dir, uuid.NewString())
		if err := os.WriteFile(target, nil, 0o600); err != nil {
			return errors.Wrap(err, "writing probe target")
		}
		return Symlink(filepath.Join(dir, uuid.NewString()), target, false)
	})
}

// ProbeHardlink creates a throwaway file and a hard link to it inside a
// private scratch directory under root, then removes the scratch directory.
func ProbeHardlink(root string) error {
	return withScratch(root, func(dir string) error {
		existing := filepath.Join(dir, uuid.NewString())
		if err := os.WriteFile(existing, nil, 0o600); err != nil {
			return errors.Wrap(err, "writing probe source")
		}
		return Hardlink(filepath.Join(dir, uuid.NewString()), existing, nil)
	})
}

func withScratch(root string, fn func(dir string) error) (err error) {
	if root == "" {
		root = os.TempDir()
	}
	dir, err := os.MkdirTemp(root, ".gitlink-probe-*")
	if err != nil {
		return errors.Wrap(err, "creating probe directory")
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = errors.Wrap(rmErr, "removing probe directory")
		}
	}()
	return fn(dir)
}

// Capability caches the outcome of a capability check for the lifetime of
// the value. It is safe for concurrent use.
type Capability struct {
	once sync.Once
	ok   bool
	err  error
	fn   func() (bool, error)
}

// NewCapability returns a Capability that runs fn at most once.
func NewCapability(fn func() (bool, error)) *Capability {
	return &Capability{fn: fn}
}

// Get returns the cached result, running the check on first use.
func (c *Capability) Get() (bool, error) {
	c.once.Do(func() {
		c.ok, c.err = c.fn()
	})
	return c.ok, c.err
}
