package trees

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/armon/go-radix"
)

// PathIndexStats tracks performance metrics for the path index
type PathIndexStats struct {
	TotalEntries     int64
	PathLookups      int64
	PrefixLookups    int64
	Insertions       int64
	Deletions        int64
	AveragePathDepth float64
	mu               sync.RWMutex
}

// Entry associates a normalized path value with an optional caller payload.
type Entry struct {
	Path paths.LocalPath
	Data any
}

// PathIndex provides O(k) lookups over a set of LocalPath values using a
// compressed trie (patricia tree), where k is the length of the path being
// searched, not the number of entries in the index.
//
// Keys are folded with paths.Fold so lookups follow the host's case
// convention; the stored entries retain the exact normalized values.
type PathIndex struct {
	tree    *radix.Tree       // Core patricia tree for path storage
	mu      sync.RWMutex      // Read-write mutex for concurrent access
	stats   *PathIndexStats   // Performance tracking
	entries map[string]*Entry // Folded key -> entry mapping for verification
}

// NewPathIndex creates a new patricia tree-based path index
func NewPathIndex() *PathIndex {
	return &PathIndex{
		tree:    radix.New(),
		stats:   &PathIndexStats{},
		entries: make(map[string]*Entry),
	}
}

// Insert adds a path to the index with O(k) complexity, attaching data to
// the entry. Inserting a path that is already present replaces its payload.
func (idx *PathIndex) Insert(p paths.LocalPath, data any) error {
	if p == "" {
		return fmt.Errorf("invalid input: path cannot be the zero value")
	}

	key := idx.foldKey(p)
	entry := &Entry{Path: p, Data: data}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, updated := idx.tree.Insert(key, entry)
	idx.entries[key] = entry

	idx.stats.mu.Lock()
	if !updated {
		idx.stats.TotalEntries++
	}
	idx.stats.Insertions++
	idx.updateAverageDepth()
	idx.stats.mu.Unlock()

	slog.Debug("Path index insertion completed",
		"path", p.String(),
		"was_update", updated,
		"total_entries", idx.stats.TotalEntries)

	return nil
}

// Lookup finds an entry by its exact path with O(k) complexity. The query
// key is the folded form of the value; LocalPath construction already
// normalized it, so any spelling that constructs the same value matches.
func (idx *PathIndex) Lookup(p paths.LocalPath) (*Entry, bool) {
	key := idx.foldKey(p)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	value, found := idx.tree.Get(key)

	idx.stats.mu.Lock()
	idx.stats.PathLookups++
	idx.stats.mu.Unlock()

	if !found {
		slog.Debug("Path lookup miss", "path", p.String())
		return nil, false
	}

	return value.(*Entry), true
}

// PrefixLookup finds all entries whose paths lie at or below the given
// prefix. The test is separator-guarded, so a prefix of "/foo" never
// matches "/foobar".
func (idx *PathIndex) PrefixLookup(prefix paths.LocalPath) []*Entry {
	key := idx.foldKey(prefix)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var results []*Entry

	idx.tree.WalkPrefix(key, func(k string, value interface{}) bool {
		if !prefixGuard(key, k) {
			return false
		}
		if entry, ok := value.(*Entry); ok {
			results = append(results, entry)
		}
		return false // Continue walking
	})

	idx.stats.mu.Lock()
	idx.stats.PrefixLookups++
	idx.stats.mu.Unlock()

	slog.Debug("Prefix lookup completed",
		"prefix", prefix.String(),
		"results_count", len(results))

	return results
}

// Remove deletes a path from the index, reporting whether it was present.
func (idx *PathIndex) Remove(p paths.LocalPath) bool {
	key := idx.foldKey(p)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, deleted := idx.tree.Delete(key)
	if deleted {
		delete(idx.entries, key)
	}

	idx.stats.mu.Lock()
	if deleted {
		idx.stats.TotalEntries--
	}
	idx.stats.Deletions++
	idx.updateAverageDepth()
	idx.stats.mu.Unlock()

	slog.Debug("Path index removal completed",
		"path", p.String(),
		"was_deleted", deleted,
		"total_entries", idx.stats.TotalEntries)

	return deleted
}

// Children returns the entries that are direct children of the given path.
// This is more efficient than walking the whole index.
func (idx *PathIndex) Children(parent paths.LocalPath) []*Entry {
	sep := string(separator())
	key := idx.foldKey(parent)
	if !strings.HasSuffix(key, sep) {
		key += sep
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var children []*Entry

	idx.tree.WalkPrefix(key, func(k string, value interface{}) bool {
		// Skip the parent itself
		if k == strings.TrimSuffix(key, sep) {
			return false
		}

		// Only include direct children (no further separators after parent)
		remaining := strings.TrimPrefix(k, key)
		if remaining != "" && !strings.Contains(remaining, sep) {
			if entry, ok := value.(*Entry); ok {
				children = append(children, entry)
			}
		}
		return false // Continue walking
	})

	slog.Debug("Children lookup completed",
		"parent", parent.String(),
		"children_count", len(children))

	return children
}

// Size returns the total number of entries in the path index
func (idx *PathIndex) Size() int64 {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()
	return idx.stats.TotalEntries
}

// GetStats returns a copy of the current path index statistics
func (idx *PathIndex) GetStats() PathIndexStats {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()

	return PathIndexStats{
		TotalEntries:     idx.stats.TotalEntries,
		PathLookups:      idx.stats.PathLookups,
		PrefixLookups:    idx.stats.PrefixLookups,
		Insertions:       idx.stats.Insertions,
		Deletions:        idx.stats.Deletions,
		AveragePathDepth: idx.stats.AveragePathDepth,
	}
}

// Clear removes all entries from the path index
func (idx *PathIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tree = radix.New()
	idx.entries = make(map[string]*Entry)

	idx.stats.mu.Lock()
	idx.stats.TotalEntries = 0
	idx.stats.AveragePathDepth = 0
	idx.stats.mu.Unlock()

	slog.Info("Path index cleared")
}

// Validate performs integrity checking between the patricia tree and the
// direct mapping.
func (idx *PathIndex) Validate() []error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var errs []error

	treeCount := 0
	idx.tree.Walk(func(key string, value interface{}) bool {
		treeCount++

		if _, exists := idx.entries[key]; !exists {
			errs = append(errs, fmt.Errorf("patricia_tree_mapping_missing: path exists in patricia tree but missing from direct mapping: %s", key))
		}

		entry, ok := value.(*Entry)
		if !ok {
			errs = append(errs, fmt.Errorf("invalid_entry_type: invalid entry type in patricia tree: %s", key))
			return false
		}

		// Entries must hold normalized values at all times.
		if entry.Path.String() != paths.Normalize(entry.Path.String()) {
			errs = append(errs, fmt.Errorf("unnormalized_entry: entry value is not in normalized form: %s", entry.Path))
		}

		return false // Continue walking
	})

	if treeCount != len(idx.entries) {
		errs = append(errs, fmt.Errorf("count_mismatch: patricia tree and direct mapping have different counts"))
	}

	if idx.stats.TotalEntries != int64(treeCount) {
		errs = append(errs, fmt.Errorf("stats_mismatch: statistics don't match actual counts"))
	}

	if len(errs) > 0 {
		slog.Warn("Path index validation found issues", "error_count", len(errs))
	} else {
		slog.Debug("Path index validation passed", "total_entries", treeCount)
	}

	return errs
}

// Walk executes fn for each entry in the index in key order. Returning true
// from fn stops the walk.
func (idx *PathIndex) Walk(fn func(entry *Entry) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.tree.Walk(func(key string, value interface{}) bool {
		if entry, ok := value.(*Entry); ok {
			return fn(entry)
		}
		return false // Continue if type assertion fails
	})
}

// LongestCommonPrefix finds the longest common key prefix among all indexed
// paths.
func (idx *PathIndex) LongestCommonPrefix() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.stats.TotalEntries == 0 {
		return ""
	}

	var longest string
	first := true

	idx.tree.Walk(func(key string, value interface{}) bool {
		if first {
			longest = key
			first = false
		} else {
			longest = commonPrefix(longest, key)
		}
		return len(longest) == 0 // Stop if no common prefix
	})

	return longest
}

// foldKey derives the radix key for a path: the normalized value folded per
// the host case convention.
func (idx *PathIndex) foldKey(p paths.LocalPath) string {
	return paths.Fold(p.String())
}

// updateAverageDepth recalculates the average path depth (called with stats mutex held)
func (idx *PathIndex) updateAverageDepth() {
	if idx.stats.TotalEntries == 0 {
		idx.stats.AveragePathDepth = 0
		return
	}

	sep := string(separator())
	totalDepth := 0
	for key := range idx.entries {
		depth := strings.Count(key, sep)
		if key != sep { // Root has depth 0, everything else adds 1
			depth++
		}
		totalDepth += depth
	}

	idx.stats.AveragePathDepth = float64(totalDepth) / float64(idx.stats.TotalEntries)
}

// prefixGuard reports whether candidate lies at or below prefix, guarding
// against the substring trap (prefix "/foo" matching "/foobar").
func prefixGuard(prefix, candidate string) bool {
	if prefix == candidate {
		return true
	}
	if prefix == "" || !strings.HasPrefix(candidate, prefix) {
		return false
	}
	sep := separator()
	if prefix[len(prefix)-1] == sep {
		return true
	}
	return candidate[len(prefix)] == sep
}

func commonPrefix(a, b string) string {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:minLen]
}

func separator() byte {
	return paths.HostPlatform().Separator()
}
