package manifest

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/gitlink/internal/validator"
)

// Validate checks m for structural problems. It never touches the
// filesystem; existence of hardlink sources is checked at materialize time.
func Validate(m *Manifest) *validator.Result {
	result := &validator.Result{}
	if m == nil {
		result.AddError(validator.NoEntry, "", "manifest is nil", nil)
		return result
	}

	if m.Version != CurrentVersion {
		result.AddError(validator.NoEntry, "version", "unsupported manifest version", m.Version)
	}
	if len(m.Entries) == 0 {
		result.AddWarning(validator.NoEntry, "entries", "manifest has no entries", nil)
	}

	seen := make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		validateEntry(result, i, e)

		key := filepath.Clean(filepath.FromSlash(e.Path))
		if first, dup := seen[key]; dup && e.Path != "" {
			result.AddError(i, "path", "duplicates entry "+strconv.Itoa(first), e.Path)
			continue
		}
		seen[key] = i
	}
	return result
}

func validateEntry(result *validator.Result, i int, e Entry) {
	if !localPath(e.Path) {
		result.AddError(i, "path", "must be a non-empty path inside the root", e.Path)
	}

	switch e.Kind {
	case KindFile:
		if e.Target != "" || e.Existing != "" {
			result.AddWarning(i, "kind", "file entry ignores target and existing", nil)
		}
	case KindSymlink:
		if e.Target == "" {
			result.AddError(i, "target", "is required for symlink entries", nil)
		}
		if strings.ContainsRune(e.Target, 0) {
			result.AddError(i, "target", "contains a NUL byte", nil)
		}
		if e.Content != "" {
			result.AddWarning(i, "content", "symlink entry ignores content", nil)
		}
	case KindHardlink:
		if !localPath(e.Existing) {
			result.AddError(i, "existing", "must be a non-empty path inside the root", e.Existing)
		}
		if e.Existing != "" && filepath.Clean(e.Existing) == filepath.Clean(e.Path) {
			result.AddError(i, "existing", "hardlink cannot point at itself", e.Existing)
		}
		if e.Content != "" {
			result.AddWarning(i, "content", "hardlink entry ignores content", nil)
		}
	default:
		result.AddError(i, "kind", "must be one of file, symlink, hardlink", string(e.Kind))
	}
}

func localPath(p string) bool {
	return p != "" && !strings.ContainsRune(p, 0) && filepath.IsLocal(filepath.FromSlash(p))
}
