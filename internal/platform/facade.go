package platform

import (
	"sync"
)

var (
	defaultMu       sync.RWMutex
	defaultResolver *Resolver
)

// Default returns the process-wide resolver used by the package-level
// functions, creating it on first use.
func Default() *Resolver {
	defaultMu.RLock()
	r := defaultResolver
	defaultMu.RUnlock()
	if r != nil {
		return r
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultResolver == nil {
		defaultResolver = NewResolver()
	}
	return defaultResolver
}

// SetDefault replaces the process-wide resolver. Passing nil restores a
// fresh resolver on next use.
func SetDefault(r *Resolver) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultResolver = r
}

// Load returns the adapter for the running OS.
func Load() (Platform, error) {
	return Default().Load()
}

// MustLoad returns the adapter for the running OS and panics when the OS is
// unsupported.
func MustLoad() Platform {
	return Default().MustLoad()
}

// IsSymlinkSupported reports whether symlinks can be created on the running OS.
func IsSymlinkSupported() (bool, error) {
	return Default().IsSymlinkSupported()
}

// IsHardlinkSupported reports whether hard links can be created on the running OS.
func IsHardlinkSupported() (bool, error) {
	return Default().IsHardlinkSupported()
}

// CreateSymlink creates linkPath pointing at targetPath on the running OS.
func CreateSymlink(linkPath, targetPath string, isDir bool) (bool, error) {
	return Default().CreateSymlink(linkPath, targetPath, isDir)
}

// CreateHardlink creates linkPath as another name for existingPath on the
// running OS.
func CreateHardlink(linkPath, existingPath string) (bool, error) {
	return Default().CreateHardlink(linkPath, existingPath)
}
