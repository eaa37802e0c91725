// Package cmd holds build metadata for the gitlink binary.
package cmd

// Set at link time:
//
//	go build -ldflags "-X github.com/thoreinstein/gitlink/cmd.Version=v0.3.0 -X github.com/thoreinstein/gitlink/cmd.Commit=$(git rev-parse --short HEAD)" ./cmd/gitlink
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
