package platform

// Platform defines the contract for OS link adapters.
// Each recognized OS family (Unix, Apple, Windows) implements this
// interface with the native link primitives of that family.
//
// Implementations must be safe for concurrent use. None of the methods
// return errors: a capability that is absent and a creation that failed
// are both ordinary outcomes reported as false.
type Platform interface {
	// Name returns the adapter identifier (unix, mac, win32).
	Name() string

	// IsSymlinkSupported reports whether this process can create symbolic
	// links on the host.
	IsSymlinkSupported() bool

	// IsHardlinkSupported reports whether this process can create hard
	// links on the host.
	IsHardlinkSupported() bool

	// CreateSymlink creates linkPath pointing at targetPath. isDir marks
	// the target as a directory on systems that distinguish the two kinds
	// of link and is ignored elsewhere.
	CreateSymlink(linkPath, targetPath string, isDir bool) bool

	// CreateHardlink creates linkPath as another name for existingPath.
	CreateHardlink(linkPath, existingPath string) bool
}
