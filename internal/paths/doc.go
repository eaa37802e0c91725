// Package paths resolves the directories gitlink reads and writes.
//
// It wraps github.com/adrg/xdg for XDG Base Directory compliance. On Linux
// paths follow XDG conventions (~/.config, ~/.cache); macOS and Windows use
// their native equivalents.
//
//	paths.ConfigDir()  // <ConfigHome>/gitlink
//	paths.ProbeRoot("") // os.TempDir()
package paths
