package manifest

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/pkg/fileutil"
)

// CurrentVersion is the manifest schema version this package understands.
const CurrentVersion = 1

// MaxSize bounds the manifest file size.
const MaxSize int64 = 4 << 20

// Kind is the type of filesystem entry to materialize.
type Kind string

const (
	KindFile     Kind = "file"
	KindSymlink  Kind = "symlink"
	KindHardlink Kind = "hardlink"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFile, KindSymlink, KindHardlink:
		return true
	}
	return false
}

// Format identifies the manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Entry is one path to materialize.
type Entry struct {
	Path string `yaml:"path" toml:"path" json:"path"`
	Kind Kind   `yaml:"kind" toml:"kind" json:"kind"`

	// Content is the body of a file entry.
	Content string `yaml:"content,omitempty" toml:"content,omitempty" json:"content,omitempty"`

	// Target is what a symlink points at, stored as written.
	Target string `yaml:"target,omitempty" toml:"target,omitempty" json:"target,omitempty"`
	// Dir marks a symlink whose target is a directory.
	Dir bool `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty"`

	// Existing is the root-relative file a hardlink entry shares data with.
	Existing string `yaml:"existing,omitempty" toml:"existing,omitempty" json:"existing,omitempty"`
}

// Manifest is a versioned list of entries.
type Manifest struct {
	Version int     `yaml:"version" toml:"version" json:"version"`
	Entries []Entry `yaml:"entries" toml:"entries" json:"entries"`
}

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidManifest, "unsupported manifest extension %q", filepath.Ext(path))
	}
}

// Read reads and decodes the manifest at path without validating it.
func Read(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(path, MaxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	return m, nil
}

// Load reads, decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	m, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(m).Err(errors.ErrInvalidManifest); err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, nil
}

// Parse decodes data in the given format. Unknown fields are rejected.
// A missing version defaults to CurrentVersion.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !isEmptyYAML(err) {
			return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidManifest), "decoding YAML")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidManifest), "decoding TOML")
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidManifest, "unknown format %q", format)
	}

	if m.Version == 0 {
		m.Version = CurrentVersion
	}
	return &m, nil
}

// isEmptyYAML reports the io.EOF a yaml decoder returns for an empty document.
func isEmptyYAML(err error) bool {
	return errors.Is(err, io.EOF)
}

// Marshal encodes m in the given format.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(m)
		return data, errors.Wrap(err, "encoding YAML")
	case FormatTOML:
		data, err := toml.Marshal(m)
		return data, errors.Wrap(err, "encoding TOML")
	default:
		return nil, errors.Wrapf(errors.ErrInvalidManifest, "unknown format %q", format)
	}
}
