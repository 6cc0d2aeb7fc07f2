package paths

import "strings"

// Normalize returns the canonical form of a raw path string for the running
// operating system. It is purely lexical: no filesystem access, no symlink
// resolution.
//
// Normalization rules:
//   - Alternate separators ('/' and '\') are collapsed to the platform
//     separator, as are runs of redundant separators.
//   - "." segments are removed and ".." segments are collapsed lexically,
//     so "a/b/../c" becomes "a/c". Leading ".." segments of a relative
//     path are preserved.
//   - A trailing separator is stripped unless the path denotes a root.
//   - The empty string normalizes to ".".
//
// Normalize is idempotent and never turns a relative path absolute or
// vice versa.
func Normalize(raw string) string {
	return NormalizeOn(host, raw)
}

// NormalizeOn is Normalize parameterized over the platform primitives.
func NormalizeOn(pl Platform, raw string) string {
	if raw == "" {
		return "."
	}

	sep := string(pl.Separator())
	s := strings.ReplaceAll(raw, "\\", sep)
	s = strings.ReplaceAll(s, "/", sep)

	// Clean collapses separator runs and "."/".." segments and strips any
	// trailing separator except at a root.
	return pl.Clean(s)
}
