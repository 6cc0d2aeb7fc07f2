//go:build !darwin && !windows

package paths

// Fold returns the comparison key for a normalized path value on
// case-sensitive filesystems (Linux, BSDs, etc.): the value itself.
// Equality on LocalPath is always ordinal; Fold exists only for layers that
// deduplicate by host convention, such as the path index.
func Fold(value string) string {
	return value
}
