package linkfs

// Gate is the non-mutating answer to "may this process create symlinks".
// Known is false on systems without such a gate, in which case callers
// fall back to a probe.
type Gate struct {
	Known   bool
	Allowed bool
	// Reason names the condition that decided Allowed, e.g. "elevated".
	Reason string
}
