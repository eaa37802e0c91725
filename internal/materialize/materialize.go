package materialize

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/gitlink/internal/backup"
	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/manifest"
	"github.com/thoreinstein/gitlink/internal/paths"
	"github.com/thoreinstein/gitlink/internal/platform"
	"github.com/thoreinstein/gitlink/pkg/fileutil"
)

const dirPerm = 0o755

// Status is the outcome of one entry.
type Status string

const (
	// StatusWritten means a file entry was written.
	StatusWritten Status = "written"
	// StatusLinked means a real symlink or hard link was created.
	StatusLinked Status = "linked"
	// StatusFallback means a link entry was written as a plain file or copy.
	StatusFallback Status = "fallback"
	// StatusSkipped means the entry did not match the include filter.
	StatusSkipped Status = "skipped"
	// StatusFailed means the entry could not be materialized.
	StatusFailed Status = "failed"
)

// Outcome records what happened to one entry.
type Outcome struct {
	Path   string        `json:"path" yaml:"path"`
	Kind   manifest.Kind `json:"kind" yaml:"kind"`
	Status Status        `json:"status" yaml:"status"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result summarizes a run. Outcomes are in manifest order.
type Result struct {
	Root     string `json:"root" yaml:"root"`
	Adapter  string `json:"adapter" yaml:"adapter"`
	Symlink  bool   `json:"symlink" yaml:"symlink"`
	Hardlink bool   `json:"hardlink" yaml:"hardlink"`
	// Backup is the ID of the snapshot taken before the run, if any.
	Backup   string    `json:"backup,omitempty" yaml:"backup,omitempty"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
	Failed   []Outcome `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Count returns the number of outcomes with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Materializer creates manifest entries on disk.
type Materializer struct {
	resolver     *platform.Resolver
	logger       *slog.Logger
	copyFallback bool
	only         []string
	backup       *backup.Manager
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithResolver sets the platform resolver. Defaults to platform.Default().
func WithResolver(r *platform.Resolver) Option {
	return func(m *Materializer) {
		m.resolver = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Materializer) {
		m.logger = logger
	}
}

// WithCopyFallback enables or disables writing plain files when a link
// cannot be created. Enabled by default.
func WithCopyFallback(enabled bool) Option {
	return func(m *Materializer) {
		m.copyFallback = enabled
	}
}

// WithBackup snapshots every regular file the run would replace before
// the first entry is written.
func WithBackup(mgr *backup.Manager) Option {
	return func(m *Materializer) {
		m.backup = mgr
	}
}

// WithOnly restricts the run to entries whose slash-separated path matches
// at least one doublestar pattern.
func WithOnly(patterns ...string) Option {
	return func(m *Materializer) {
		m.only = append(m.only, patterns...)
	}
}

// New creates a Materializer.
func New(opts ...Option) *Materializer {
	m := &Materializer{copyFallback: true}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = platform.Default()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Materialize creates entries under root, creating root if needed.
//
// The returned error is set for an unsupported OS, an invalid filter
// pattern, an unusable root, or context cancellation. Failures of single
// entries are recorded in Result.Failed and do not stop the run.
func (m *Materializer) Materialize(ctx context.Context, root string, entries []manifest.Entry) (*Result, error) {
	for _, pattern := range m.only {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf("invalid include pattern %q", pattern)
		}
	}

	p, err := m.resolver.Load()
	if err != nil {
		return nil, err
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving root")
	}
	if err := paths.EnsureDir(root, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "creating root %s", root)
	}

	res := &Result{
		Root:     root,
		Adapter:  p.Name(),
		Symlink:  p.IsSymlinkSupported(),
		Hardlink: p.IsHardlinkSupported(),
		Outcomes: make([]Outcome, len(entries)),
	}
	log := m.logger.With("root", root, "adapter", res.Adapter)

	if m.backup != nil {
		snap, err := m.backup.Backup(root, m.replaced(root, entries))
		if snap == nil && err != nil {
			return nil, errors.Wrap(err, "backing up replaced files")
		}
		if err != nil {
			log.Warn("backup taken with errors", "err", err)
		}
		if snap != nil {
			res.Backup = snap.ID
			log.Info("backed up replaced files", "backup", snap.ID, "files", len(snap.Files))
		}
	}

	run := &run{m: m, p: p, root: root, res: res, log: log}
	for _, i := range order(entries) {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "materialize interrupted")
		}
		res.Outcomes[i] = run.entry(entries[i])
	}

	for _, o := range res.Outcomes {
		if o.Status == StatusFailed {
			res.Failed = append(res.Failed, o)
		}
	}

	log.Info("materialized",
		"written", res.Count(StatusWritten),
		"linked", res.Count(StatusLinked),
		"fallback", res.Count(StatusFallback),
		"skipped", res.Count(StatusSkipped),
		"failed", len(res.Failed))
	return res, nil
}

// order returns entry indexes with files first, then hardlinks, then
// symlinks, so link sources and targets declared in the same manifest
// exist before the links that need them.
func order(entries []manifest.Entry) []int {
	idx := make([]int, 0, len(entries))
	for _, kind := range []manifest.Kind{manifest.KindFile, manifest.KindHardlink, manifest.KindSymlink} {
		for i, e := range entries {
			if e.Kind == kind {
				idx = append(idx, i)
			}
		}
	}
	for i, e := range entries {
		if !e.Kind.Valid() {
			idx = append(idx, i)
		}
	}
	return idx
}

type run struct {
	m    *Materializer
	p    platform.Platform
	root string
	res  *Result
	log  *slog.Logger
}

func (r *run) entry(e manifest.Entry) Outcome {
	out := Outcome{Path: e.Path, Kind: e.Kind}

	if !r.m.included(e.Path) {
		out.Status = StatusSkipped
		return out
	}

	status, err := r.create(e)
	if err != nil {
		out.Status = StatusFailed
		out.Error = err.Error()
		r.log.Warn("entry failed", "path", e.Path, "kind", e.Kind, "err", err)
		return out
	}

	out.Status = status
	r.log.Debug("entry done", "path", e.Path, "kind", e.Kind, "status", status)
	return out
}

func (r *run) create(e manifest.Entry) (Status, error) {
	dst, err := paths.Contained(r.root, e.Path)
	if err != nil {
		return "", err
	}
	if err := paths.EnsureDir(filepath.Dir(dst), dirPerm); err != nil {
		return "", errors.Wrap(err, "creating parent directory")
	}

	switch e.Kind {
	case manifest.KindFile:
		if err := fileutil.AtomicWriteFile(dst, []byte(e.Content), 0o644); err != nil {
			return "", err
		}
		return StatusWritten, nil

	case manifest.KindSymlink:
		if err := removeExisting(dst); err != nil {
			return "", err
		}
		if r.res.Symlink && r.p.CreateSymlink(dst, e.Target, e.Dir) {
			return StatusLinked, nil
		}
		if !r.m.copyFallback {
			return "", errors.Newf("symlink to %q not created", e.Target)
		}
		if err := fileutil.AtomicWriteFile(dst, []byte(e.Target), 0o644); err != nil {
			return "", err
		}
		return StatusFallback, nil

	case manifest.KindHardlink:
		src, err := source(r.root, e.Existing)
		if err != nil {
			return "", err
		}
		if err := removeExisting(dst); err != nil {
			return "", err
		}
		if r.res.Hardlink && r.p.CreateHardlink(dst, src) {
			return StatusLinked, nil
		}
		if !r.m.copyFallback {
			return "", errors.Newf("hardlink to %q not created", e.Existing)
		}
		if err := fileutil.AtomicCopyFile(dst, src); err != nil {
			return "", err
		}
		return StatusFallback, nil

	default:
		return "", errors.Wrapf(errors.ErrInvalidManifest, "unknown kind %q", e.Kind)
	}
}

// replaced lists the included, well-formed entry paths that already exist
// under root.
func (m *Materializer) replaced(root string, entries []manifest.Entry) []string {
	var rels []string
	for _, e := range entries {
		if !e.Kind.Valid() || !m.included(e.Path) {
			continue
		}
		dst, err := paths.Contained(root, e.Path)
		if err != nil {
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			rels = append(rels, e.Path)
		}
	}
	return rels
}

// source resolves a hardlink's existing path. Unlike a destination, the
// final component is read, so it must not be a symlink either.
func source(root, rel string) (string, error) {
	src, err := paths.Contained(root, rel)
	if err != nil {
		return "", err
	}
	info, err := os.Lstat(src)
	if err == nil && info.Mode()&fs.ModeSymlink != 0 {
		return "", errors.Wrapf(errors.ErrPathEscape, "hardlink source %q is a symlink", rel)
	}
	return src, nil
}

func (m *Materializer) included(rel string) bool {
	if len(m.only) == 0 {
		return true
	}
	rel = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	for _, pattern := range m.only {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// removeExisting removes a non-directory entry at path so a link can take its place.
func removeExisting(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "inspecting existing entry")
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", path)
	}
	return errors.Wrap(os.Remove(path), "removing existing entry")
}
