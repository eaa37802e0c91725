// Package materialize writes manifest entries under a root directory using
// the link primitives of the host.
//
// Symlink and hardlink entries become real links when the host adapter can
// create them. Otherwise they degrade the way a checkout on a filesystem
// without link support does: a symlink becomes a plain file whose content
// is the link target, and a hardlink becomes an independent copy of its
// source. Fallback can be disabled, in which case such entries fail.
//
// An unsupported host OS aborts the whole run before anything is written.
package materialize
