// Package manifest reads the list of entries that gitlink materializes
// under a root directory.
//
// A manifest is YAML or TOML, chosen by file extension:
//
//	version: 1
//	entries:
//	  - path: README
//	    kind: file
//	    content: "hello\n"
//	  - path: docs/latest
//	    kind: symlink
//	    target: v2
//	    dir: true
//	  - path: bin/tool-alias
//	    kind: hardlink
//	    existing: bin/tool
//
// All paths are relative to the root and may not escape it. A symlink
// target is stored verbatim and may be relative to the link's directory.
package manifest
