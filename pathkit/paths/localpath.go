package paths

import "strings"

// LocalPath is a filesystem path, absolute or relative, held in normalized
// form. The zero value is not meaningful; construct values with New so the
// invariant Value == Normalize(Value) holds at all times.
//
// Because LocalPath is a string type, `==` and map-key hashing compare the
// normalized values byte for byte (ordinal and case-sensitive), so equality
// and hashing stay mutually consistent for free.
type LocalPath string

// New constructs a LocalPath from a raw string, normalizing it for the
// running operating system.
func New(raw string) LocalPath {
	return LocalPath(Normalize(raw))
}

// NewOn constructs a LocalPath normalized for the given platform.
func NewOn(pl Platform, raw string) LocalPath {
	return LocalPath(NormalizeOn(pl, raw))
}

// String returns the normalized path value.
func (p LocalPath) String() string { return string(p) }

// IsAbs reports whether the path is rooted. Absoluteness is derived from the
// value itself; there is no separate flag to fall out of sync.
func (p LocalPath) IsAbs() bool { return host.IsAbs(string(p)) }

// Parent returns the parent directory of p. The second return is false when
// p has no parent: at a filesystem root, or when a relative path has no
// further decomposable segment ("."). Absence is a valid outcome, never an
// error.
func (p LocalPath) Parent() (LocalPath, bool) {
	return parentOn(host, p)
}

// FileName returns the last segment of the path, or the empty string at a
// bare root.
func (p LocalPath) FileName() string {
	return fileNameOn(host, p)
}

// IsPrefixOf reports whether other lies at or below p. The test is
// non-strict (p.IsPrefixOf(p) is true) and separator-guarded, so "/foo" is
// not treated as a prefix of "/foobar".
func (p LocalPath) IsPrefixOf(other LocalPath) bool {
	return isPrefixOfOn(host, p, other)
}

// RelativeTo returns the path that denotes the same location as p when
// interpreted relative to base. The computation is lexical. When p and base
// share no common root the underlying platform error is returned as-is.
func (p LocalPath) RelativeTo(base LocalPath) (LocalPath, error) {
	return relativeToOn(host, p, base)
}

// Join composes p with b. If b is absolute it overrides p entirely and the
// result is exactly b; otherwise the result is the normalized concatenation
// of p and b with a single separator between them.
func (p LocalPath) Join(b LocalPath) LocalPath {
	return joinOn(host, p, b)
}

// JoinString is Join with a raw string operand; the string is normalized
// first, so p.JoinString(s) == p.Join(New(s)).
func (p LocalPath) JoinString(b string) LocalPath {
	return joinOn(host, p, New(b))
}

func parentOn(pl Platform, p LocalPath) (LocalPath, bool) {
	s := string(p)
	if s == "" || s == "." {
		return "", false
	}
	dir := pl.Dir(s)
	if dir == s {
		// Dir is a fixpoint only at roots ("/", "C:\").
		return "", false
	}
	return LocalPath(dir), true
}

func fileNameOn(pl Platform, p LocalPath) string {
	s := string(p)
	if pl.IsAbs(s) && pl.Dir(s) == s {
		// Bare root has no last segment.
		return ""
	}
	return pl.Base(s)
}

func isPrefixOfOn(pl Platform, p, other LocalPath) bool {
	if p == other {
		return true
	}
	ps, os := string(p), string(other)
	if ps == "" || !strings.HasPrefix(os, ps) {
		return false
	}
	sep := pl.Separator()
	if ps[len(ps)-1] == sep {
		// p is a root; anything under it matches.
		return true
	}
	return os[len(ps)] == sep
}

func relativeToOn(pl Platform, p, base LocalPath) (LocalPath, error) {
	rel, err := pl.Rel(string(base), string(p))
	if err != nil {
		return "", err
	}
	return NewOn(pl, rel), nil
}

func joinOn(pl Platform, a, b LocalPath) LocalPath {
	if pl.IsAbs(string(b)) {
		// Absolute right-hand side discards the base entirely.
		return b
	}
	return NewOn(pl, string(a)+string(pl.Separator())+string(b))
}
