// Package platform resolves the link adapter for the running operating
// system and exposes symlink and hard link capability through it.
//
// The host is classified into one of four families by [ClassifyGOOS]:
//
//   - [FamilyUnix]: Linux, Android, the BSDs, Solaris, illumos, AIX
//   - [FamilyApple]: darwin and iOS
//   - [FamilyWindows]: Windows
//   - [FamilyUnrecognized]: everything else
//
// Each recognized family maps to one adapter implementing [Platform].
// Callers never name an adapter; they go through the package-level facade
// or a [Resolver]:
//
//	ok, err := platform.CreateSymlink("/tmp/link", "/tmp/target", false)
//	if err != nil {
//	    // host OS is not supported; treat as fatal
//	}
//	if !ok {
//	    // link could not be created here; fall back
//	}
//
// # Error Contract
//
// The only error these functions return wraps errors.ErrUnsupportedPlatform
// and signals an unrecognized host. Everything that can go wrong at runtime
// (missing target, occupied link path, cross-device hard link, missing
// privilege) is reported as false and logged at debug level.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. Adapters are
// created once per family and resolver, so capability probes run at most
// once per process for the default resolver.
package platform
