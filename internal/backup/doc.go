// Package backup keeps copies of files that materialize is about to replace.
//
// Snapshots are grouped by materialize root. Each root gets a scope
// directory named after a hash of its absolute path, and each snapshot a
// directory named by its ID:
//
//	<state home>/gitlink/backups/
//	└── {scope}/
//	    └── {id}/
//	        ├── snapshot.json
//	        └── files/{root-relative paths...}
//
// snapshot.json records the root-relative path, SHA256 and mode of every
// copied file. [Manager.Restore] verifies all hashes before writing
// anything back, returning [ErrBackupCorrupted] on a mismatch.
//
// [Manager.Backup] prunes the oldest snapshots of a root beyond the
// retention count, five by default.
package backup
