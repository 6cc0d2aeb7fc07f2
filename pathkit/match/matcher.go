// Package match applies gitignore-style patterns to normalized path values.
package match

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	ignore "github.com/sabhiram/go-gitignore"
)

// Matcher tests LocalPath values against a compiled gitignore-style pattern
// set. Matching is lexical over the slash form of the normalized value; the
// filesystem is never consulted for the paths being tested.
type Matcher struct {
	patterns *ignore.GitIgnore
}

// Compile builds a Matcher from pattern lines.
func Compile(lines ...string) *Matcher {
	return &Matcher{patterns: ignore.CompileIgnoreLines(lines...)}
}

// CompileFile builds a Matcher from an ignore file on disk.
func CompileFile(path paths.LocalPath) (*Matcher, error) {
	patterns, err := ignore.CompileIgnoreFile(path.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ignore file does not exist: %s: %w", path, err)
		}
		return nil, fmt.Errorf("error reading ignore file %s: %w", path, err)
	}
	return &Matcher{patterns: patterns}, nil
}

// Matches reports whether the path is selected by the pattern set.
func (m *Matcher) Matches(p paths.LocalPath) bool {
	return m.patterns.MatchesPath(slashForm(p))
}

// MatchLine reports whether the path is selected, along with the pattern
// line responsible for the decision.
func (m *Matcher) MatchLine(p paths.LocalPath) (bool, string) {
	matched, pattern := m.patterns.MatchesPathHow(slashForm(p))
	if pattern == nil {
		return matched, ""
	}
	return matched, pattern.Line
}

// Filter returns the subset of values not selected by the pattern set,
// preserving order.
func (m *Matcher) Filter(values []paths.LocalPath) []paths.LocalPath {
	var kept []paths.LocalPath
	for _, p := range values {
		if !m.Matches(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// slashForm converts a normalized value to the forward-slash form gitignore
// patterns are written in.
func slashForm(p paths.LocalPath) string {
	sep := paths.HostPlatform().Separator()
	if sep == '/' {
		return p.String()
	}
	return strings.ReplaceAll(p.String(), string(sep), "/")
}
