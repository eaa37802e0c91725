package backup

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/paths"
	"github.com/thoreinstein/gitlink/pkg/fileutil"
)

const (
	snapshotFile = "snapshot.json"
	filesDir     = "files"
)

// Manager creates, lists, restores and prunes snapshots.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the directory snapshots are stored under.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots to keep per root.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a Manager storing snapshots under paths.BackupDir().
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the regular files among rels (relative to root) into a new
// snapshot. Missing paths, directories and links are skipped. It returns
// nil and no error when nothing needed copying.
func (m *Manager) Backup(root string, rels []string) (*Snapshot, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving root")
	}

	var sources []string
	for _, rel := range rels {
		src, err := paths.Contained(root, rel)
		if err != nil {
			return nil, err
		}
		info, err := os.Lstat(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", rel)
		}
		if info.Mode().IsRegular() {
			sources = append(sources, rel)
		}
	}
	if len(sources) == 0 {
		return nil, nil
	}

	created := m.now().UTC()
	id := created.Format("20060102T150405") + "-" + uuid.NewString()[:8]
	dir := m.snapshotDir(root, id)
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	snap := &Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: created,
		Root:      root,
		ID:        id,
	}
	for _, rel := range sources {
		src := filepath.Join(root, filepath.FromSlash(rel))
		dst := filepath.Join(dir, filesDir, filepath.FromSlash(rel))
		if err := paths.EnsureDir(filepath.Dir(dst), paths.DefaultDirPerm); err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrap(err, "creating parent directory")
		}
		hash, mode, err := copyFile(src, dst)
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up %s", rel)
		}
		snap.Files = append(snap.Files, File{Path: filepath.ToSlash(rel), SHA256: hash, Mode: mode})
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, snapshotFile), snap); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing snapshot")
	}

	if err := m.Prune(root, m.retentionCount); err != nil {
		return snap, errors.Wrap(err, "pruning old backups")
	}
	return snap, nil
}

// Restore writes every file of the snapshot back under its root. All
// stored copies are verified before the first write.
func (m *Manager) Restore(root, id string) (*Snapshot, error) {
	snap, err := m.Get(root, id)
	if err != nil {
		return nil, err
	}
	dir := m.snapshotDir(snap.Root, id)

	for _, f := range snap.Files {
		hash, err := hashFile(filepath.Join(dir, filesDir, filepath.FromSlash(f.Path)))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup of %s", f.Path)
		}
		if hash != f.SHA256 {
			return nil, errors.Wrapf(ErrBackupCorrupted, "%s hash mismatch", f.Path)
		}
	}

	for _, f := range snap.Files {
		dst, err := paths.Contained(snap.Root, f.Path)
		if err != nil {
			return nil, err
		}
		if err := paths.EnsureDir(filepath.Dir(dst), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.Path)
		}
		if err := fileutil.AtomicCopyFile(dst, filepath.Join(dir, filesDir, filepath.FromSlash(f.Path))); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.Path)
		}
		if err := os.Chmod(dst, f.Mode); err != nil {
			return nil, errors.Wrapf(err, "setting permissions for %s", f.Path)
		}
	}
	return snap, nil
}

// List returns the snapshots of root, newest first.
func (m *Manager) List(root string) ([]Snapshot, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving root")
	}

	entries, err := os.ReadDir(m.scopeDir(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		snap, err := m.Get(root, entry.Name())
		if err != nil {
			// Skip directories without a readable snapshot.json.
			continue
		}
		snaps = append(snaps, *snap)
	}
	if len(snaps) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return snaps, nil
}

// Latest returns the newest snapshot of root.
func (m *Manager) Latest(root string) (*Snapshot, error) {
	snaps, err := m.List(root)
	if err != nil {
		return nil, err
	}
	return &snaps[0], nil
}

// Prune removes all but the newest keep snapshots of root.
func (m *Manager) Prune(root string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	snaps, err := m.List(root)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(snaps); i++ {
		if err := os.RemoveAll(m.snapshotDir(snaps[i].Root, snaps[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", snaps[i].ID)
		}
	}
	return nil
}

// Get loads one snapshot of root.
func (m *Manager) Get(root, id string) (*Snapshot, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving root")
	}

	path := filepath.Join(m.snapshotDir(root, id), snapshotFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
	}
	data, err := fileutil.ReadFileWithLimit(path, fileutil.MaxFileSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	snap.ID = id
	return &snap, nil
}

func (m *Manager) scopeDir(root string) string {
	sum := sha256.Sum256([]byte(root))
	return filepath.Join(m.rootDir, hex.EncodeToString(sum[:8]))
}

func (m *Manager) snapshotDir(root, id string) string {
	return filepath.Join(m.scopeDir(root), id)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the SHA256 of the content and the
// mode of src, which dst receives too.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode().Perm()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
