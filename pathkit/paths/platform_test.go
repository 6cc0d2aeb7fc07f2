package paths

import (
	"fmt"
	gopath "path"
	"strings"
)

// posixPlatform is a pure in-memory stand-in for the host primitives. It
// follows POSIX conventions regardless of the operating system the tests run
// on, so the algebra can be exercised without depending on host path rules.
type posixPlatform struct{}

func (posixPlatform) Separator() byte { return '/' }

func (posixPlatform) IsAbs(p string) bool { return strings.HasPrefix(p, "/") }

func (posixPlatform) Clean(p string) string { return gopath.Clean(p) }

func (posixPlatform) Dir(p string) string { return gopath.Dir(p) }

func (posixPlatform) Base(p string) string { return gopath.Base(p) }

func (pl posixPlatform) Rel(base, target string) (string, error) {
	b := gopath.Clean(base)
	t := gopath.Clean(target)
	if strings.HasPrefix(b, "/") != strings.HasPrefix(t, "/") {
		return "", fmt.Errorf("Rel: can't make %s relative to %s", target, base)
	}

	bs := relSegments(b)
	ts := relSegments(t)

	common := 0
	for common < len(bs) && common < len(ts) && bs[common] == ts[common] {
		common++
	}

	var out []string
	for range bs[common:] {
		out = append(out, "..")
	}
	out = append(out, ts[common:]...)
	if len(out) == 0 {
		return ".", nil
	}
	return strings.Join(out, "/"), nil
}

func relSegments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
