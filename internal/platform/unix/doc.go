// Package unix implements the link adapter for Unix-like systems (Linux,
// the BSDs, Solaris/illumos, AIX, Android).
//
// Symlinks are first-class filesystem objects, so the directory flag is
// accepted and ignored. Hard links require the link and the existing file to
// share a filesystem; the adapter checks device IDs first so a cross-device
// request fails without touching the filesystem.
package unix
