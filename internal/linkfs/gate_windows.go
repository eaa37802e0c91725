//go:build windows

package linkfs

import (
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const appModelUnlockKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\AppModelUnlock`

// SymlinkGate reports whether this process may create symlinks without
// trying: an elevated token or Developer Mode both allow it. When neither
// holds and the registry value cannot be read, the gate is unknown.
func SymlinkGate() Gate {
	if windows.GetCurrentProcessToken().IsElevated() {
		return Gate{Known: true, Allowed: true, Reason: "elevated"}
	}
	on, err := developerMode()
	if err != nil {
		return Gate{}
	}
	if on {
		return Gate{Known: true, Allowed: true, Reason: "developer mode"}
	}
	return Gate{Known: true, Allowed: false, Reason: "not elevated and developer mode off"}
}

func developerMode() (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, appModelUnlockKey, registry.QUERY_VALUE)
	if err != nil {
		return false, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("AllowDevelopmentWithoutDevLicense")
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
