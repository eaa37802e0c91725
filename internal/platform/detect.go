package platform

import (
	"runtime"
)

// Family is the coarse operating-system class that selects an adapter.
type Family int

const (
	// FamilyUnrecognized is any OS without an adapter. It is the zero value.
	FamilyUnrecognized Family = iota

	// FamilyUnix covers Linux, Android, the BSDs, Solaris, illumos and AIX.
	FamilyUnix

	// FamilyApple covers darwin and iOS.
	FamilyApple

	// FamilyWindows covers Windows.
	FamilyWindows
)

// String returns the lowercase family name.
func (f Family) String() string {
	switch f {
	case FamilyUnix:
		return "unix"
	case FamilyApple:
		return "apple"
	case FamilyWindows:
		return "windows"
	default:
		return "unrecognized"
	}
}

// Recognized reports whether f has an adapter.
func (f Family) Recognized() bool {
	return f != FamilyUnrecognized
}

// Families returns the recognized families in a stable order.
func Families() []Family {
	return []Family{FamilyUnix, FamilyApple, FamilyWindows}
}

// ClassifyGOOS maps a GOOS value to its family. The mapping is pure: the
// same input always yields the same family.
func ClassifyGOOS(goos string) Family {
	switch goos {
	case "darwin", "ios":
		return FamilyApple
	case "windows":
		return FamilyWindows
	case "linux", "android",
		"freebsd", "openbsd", "netbsd", "dragonfly",
		"solaris", "illumos", "aix":
		return FamilyUnix
	default:
		return FamilyUnrecognized
	}
}

// Classify returns the family of the running operating system.
func Classify() Family {
	return ClassifyGOOS(runtime.GOOS)
}
