package platform

// Report summarizes the link capabilities of one resolver.
type Report struct {
	GOOS      string `json:"goos"`
	Family    string `json:"family"`
	Adapter   string `json:"adapter"`
	ProbeRoot string `json:"probe_root"`
	Symlink   bool   `json:"symlink"`
	Hardlink  bool   `json:"hardlink"`
}

// Report probes both capabilities and returns them with the identity of
// the adapter that answered. It fails only for an unsupported OS.
func (r *Resolver) Report() (*Report, error) {
	p, err := r.Load()
	if err != nil {
		return nil, err
	}
	return &Report{
		GOOS:      r.goos,
		Family:    r.Family().String(),
		Adapter:   p.Name(),
		ProbeRoot: r.cfg.ProbeRoot,
		Symlink:   p.IsSymlinkSupported(),
		Hardlink:  p.IsHardlinkSupported(),
	}, nil
}
