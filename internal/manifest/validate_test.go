package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gitlink/internal/validator"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		entries    []Entry
		wantErrors []string
		wantWarns  int
	}{
		{
			name:    "valid sample",
			entries: wantSample().Entries,
		},
		{
			name:       "empty path",
			entries:    []Entry{{Kind: KindFile}},
			wantErrors: []string{"path"},
		},
		{
			name:       "absolute path",
			entries:    []Entry{{Path: "/etc/passwd", Kind: KindFile}},
			wantErrors: []string{"path"},
		},
		{
			name:       "symlink without target",
			entries:    []Entry{{Path: "l", Kind: KindSymlink}},
			wantErrors: []string{"target"},
		},
		{
			name:       "hardlink escaping",
			entries:    []Entry{{Path: "l", Kind: KindHardlink, Existing: "../../x"}},
			wantErrors: []string{"existing"},
		},
		{
			name:       "hardlink to itself",
			entries:    []Entry{{Path: "a/l", Kind: KindHardlink, Existing: "a/./l"}},
			wantErrors: []string{"existing"},
		},
		{
			name:       "duplicate path",
			entries:    []Entry{{Path: "a", Kind: KindFile}, {Path: "./a", Kind: KindFile}},
			wantErrors: []string{"path"},
		},
		{
			name:      "ignored fields warn",
			entries:   []Entry{{Path: "a", Kind: KindFile, Target: "x"}, {Path: "b", Kind: KindSymlink, Target: "a", Content: "c"}},
			wantWarns: 2,
		},
		{
			name:       "missing kind",
			entries:    []Entry{{Path: "a"}},
			wantErrors: []string{"kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(&Manifest{Version: CurrentVersion, Entries: tt.entries})

			var fields []string
			for _, i := range res.Errors() {
				fields = append(fields, i.Field)
			}
			assert.Equal(t, tt.wantErrors, fields)
			assert.Len(t, res.Warnings(), tt.wantWarns)
		})
	}
}

func TestValidate_ManifestLevel(t *testing.T) {
	res := Validate(nil)
	require.True(t, res.HasErrors())

	res = Validate(&Manifest{Version: 2})
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, "version", res.Errors()[0].Field)
	assert.Equal(t, validator.NoEntry, res.Errors()[0].Entry)

	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, "entries", res.Warnings()[0].Field)
}

func TestKind_Valid(t *testing.T) {
	for _, k := range []Kind{KindFile, KindSymlink, KindHardlink} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("fifo").Valid())
	assert.False(t, Kind("").Valid())
}
