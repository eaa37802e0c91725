// Package mac implements the link adapter for Apple systems.
//
// Behavior matches the Unix adapter: symlinks ignore the directory flag and
// hard links require a shared filesystem. On darwin builds hard links go
// through linkat(2) with AT_SYMLINK_FOLLOW.
package mac
