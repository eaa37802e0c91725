// Package win32 implements the link adapter for Windows.
//
// Windows distinguishes file and directory symbolic links at creation time,
// so the directory flag selects SYMBOLIC_LINK_FLAG_DIRECTORY. Creating
// symlinks needs either an elevated token or Developer Mode. The capability
// query consults that gate first and only falls back to a throwaway probe
// when the gate cannot be read. Hard links need both names on one volume.
package win32
