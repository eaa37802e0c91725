// Package linkfs holds the operating-system primitives behind the link
// adapters: symbolic and hard link creation, same-filesystem detection,
// throwaway capability probes and the Windows symlink privilege gate.
//
// Functions here return errors. The adapters in internal/platform turn those
// errors into the boolean results of the link contract and log the cause.
//
// Implementation is split by build constraint:
//   - unix (not darwin): os.Symlink, os.Link, device IDs from stat(2)
//   - darwin: linkat(2) with AT_SYMLINK_FOLLOW for hard links
//   - windows: CreateSymbolicLinkW, CreateHardLinkW, volume serial numbers,
//     token elevation and the Developer Mode registry value
//   - anything else: os package fallbacks with no device information
package linkfs
