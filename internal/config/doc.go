// Package config provides configuration management for the gitlink CLI.
//
// Settings come from, in increasing precedence: built-in defaults, a
// config.yaml found in the working directory or <xdg config home>/gitlink,
// GITLINK_* environment variables, and an explicit --config file.
//
//	version: 1
//	probe_dir: /var/tmp/gitlink
//	copy_fallback: true
//	backup: false
//	backup_keep: 5
//	log_format: text
package config
