package paths

import (
	"errors"
	"fmt"
)

// ErrNotAbsolute is returned by NewAbsolute for a path that is not rooted.
var ErrNotAbsolute = errors.New("path is not absolute")

// AbsolutePath is a LocalPath refinement guaranteeing the value is rooted.
// Every AbsolutePath is representable as a LocalPath without loss; the
// reverse requires the explicit absoluteness check in NewAbsolute.
type AbsolutePath string

// NewAbsolute constructs an AbsolutePath from a raw string. It fails with
// ErrNotAbsolute when the normalized value is not rooted.
func NewAbsolute(raw string) (AbsolutePath, error) {
	p := New(raw)
	if !p.IsAbs() {
		return "", fmt.Errorf("%w: %q", ErrNotAbsolute, raw)
	}
	return AbsolutePath(p), nil
}

// NewAbsoluteOn is NewAbsolute parameterized over the platform primitives.
func NewAbsoluteOn(pl Platform, raw string) (AbsolutePath, error) {
	p := NewOn(pl, raw)
	if !pl.IsAbs(string(p)) {
		return "", fmt.Errorf("%w: %q", ErrNotAbsolute, raw)
	}
	return AbsolutePath(p), nil
}

// Local converts the absolute path into a general LocalPath. The conversion
// is lossless and cannot fail: the normalized value carries over verbatim.
func (a AbsolutePath) Local() LocalPath { return LocalPath(a) }

// String returns the normalized path value.
func (a AbsolutePath) String() string { return string(a) }

// Parent returns the parent directory, or false at the root.
func (a AbsolutePath) Parent() (AbsolutePath, bool) {
	parent, ok := parentOn(host, LocalPath(a))
	if !ok {
		return "", false
	}
	return AbsolutePath(parent), true
}

// FileName returns the last segment of the path, or the empty string at a
// bare root.
func (a AbsolutePath) FileName() string { return a.Local().FileName() }

// IsPrefixOf reports whether other lies at or below a, separator-guarded.
func (a AbsolutePath) IsPrefixOf(other AbsolutePath) bool {
	return a.Local().IsPrefixOf(other.Local())
}

// RelativeTo returns the path denoting the same location as a, expressed
// relative to base. Relating paths with no common root returns the platform
// error as-is.
func (a AbsolutePath) RelativeTo(base AbsolutePath) (LocalPath, error) {
	return a.Local().RelativeTo(base.Local())
}

// Join composes a with b. Joining an absolute b overrides a; the result
// stays absolute either way.
func (a AbsolutePath) Join(b LocalPath) AbsolutePath {
	return AbsolutePath(a.Local().Join(b))
}
