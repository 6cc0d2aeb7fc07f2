package indexing

import (
	"sort"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"
)

// SimplePathIDMapper is a compact map-based mapper from folded path value ->
// PathID. It is designed to be replaced by an MPH-backed implementation
// without changing callers.
type SimplePathIDMapper struct {
	pathToID map[string]PathID
}

func NewSimplePathIDMapper() *SimplePathIDMapper {
	return &SimplePathIDMapper{pathToID: make(map[string]PathID)}
}

func (m *SimplePathIDMapper) Lookup(p paths.LocalPath) (PathID, bool) {
	id, ok := m.pathToID[paths.Fold(p.String())]
	return id, ok
}

func (m *SimplePathIDMapper) Size() int { return len(m.pathToID) }

// Build assigns stable PathIDs in lexical order of the folded values for
// determinism, deduplicating spellings that fold to the same key. It returns
// the ordered list of folded keys corresponding to PathIDs [0..N-1].
func (m *SimplePathIDMapper) Build(values []paths.LocalPath) []string {
	seen := make(map[string]struct{}, len(values))
	keys := make([]string, 0, len(values))
	for _, p := range values {
		key := paths.Fold(p.String())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	// Stable ordering for deterministic IDs
	sort.Strings(keys)
	m.pathToID = make(map[string]PathID, len(keys))
	for i, key := range keys {
		m.pathToID[key] = PathID(i)
	}
	return keys
}
