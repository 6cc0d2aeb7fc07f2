//go:build darwin || windows

package paths

import "strings"

// Fold returns the comparison key for a normalized path value on
// case-insensitive filesystems (macOS, Windows): the lowercased value, so
// lookups cannot miss an entry that differs only in case. Equality on
// LocalPath itself is always ordinal; Fold exists only for layers that
// deduplicate by host convention, such as the path index.
func Fold(value string) string {
	return strings.ToLower(value)
}
