package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// SnapshotVersion is the snapshot.json format version.
const SnapshotVersion = 1

// DefaultRetentionCount is the number of snapshots kept per root.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist for the root.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a stored copy no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Snapshot describes one backup of files under a materialize root.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Root is the absolute materialize root the files belong to.
	Root  string `json:"root"`
	Files []File `json:"files"`

	// ID names the snapshot directory. Populated on load.
	ID string `json:"-"`
}

// File is one copied file.
type File struct {
	// Path is relative to the snapshot root, slash separated.
	Path   string      `json:"path"`
	SHA256 string      `json:"sha256"`
	Mode   fs.FileMode `json:"mode"`
}
