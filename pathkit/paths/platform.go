package paths

import "path/filepath"

// Platform encapsulates the host-specific path primitives the path algebra
// depends on. All platform knowledge (POSIX vs Windows roots, separators,
// relative path computation) lives behind this interface so the core logic
// can be exercised against a fake platform in tests.
type Platform interface {
	// Separator returns the canonical directory separator for the platform.
	Separator() byte

	// IsAbs reports whether the path is rooted per platform convention
	// (drive root, UNC root, or POSIX root).
	IsAbs(path string) bool

	// Clean returns the shortest lexical equivalent of path for the
	// platform. It never consults the filesystem.
	Clean(path string) string

	// Rel computes the relative path from base to target. It returns an
	// error when the two paths share no common root (e.g. different
	// drive letters).
	Rel(base, target string) (string, error)

	// Dir returns the parent directory component of path.
	Dir(path string) string

	// Base returns the last element of path.
	Base(path string) string
}

// hostPlatform delegates to path/filepath and therefore follows the rules of
// the operating system the process is running on.
type hostPlatform struct{}

// HostPlatform returns the Platform for the running operating system.
func HostPlatform() Platform { return hostPlatform{} }

// host is the platform used by the LocalPath and AbsolutePath methods.
var host Platform = hostPlatform{}

func (hostPlatform) Separator() byte { return filepath.Separator }

func (hostPlatform) IsAbs(path string) bool { return filepath.IsAbs(path) }

func (hostPlatform) Clean(path string) string { return filepath.Clean(path) }

func (hostPlatform) Rel(base, target string) (string, error) {
	return filepath.Rel(base, target)
}

func (hostPlatform) Dir(path string) string { return filepath.Dir(path) }

func (hostPlatform) Base(path string) string { return filepath.Base(path) }
