package trees

import (
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathIndex(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"BasicInsertAndLookup", testPathIndexBasicInsertAndLookup},
		{"PrefixLookup", testPathIndexPrefixLookup},
		{"PrefixGuard", testPathIndexPrefixGuard},
		{"Children", testPathIndexChildren},
		{"Remove", testPathIndexRemove},
		{"NormalizedKeys", testPathIndexNormalizedKeys},
		{"Statistics", testPathIndexStatistics},
		{"ConcurrentAccess", testPathIndexConcurrentAccess},
		{"Validation", testPathIndexValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testPathIndexBasicInsertAndLookup(t *testing.T) {
	idx := NewPathIndex()

	// Test data
	values := []string{
		"/home/user/documents",
		"/home/user/downloads",
		"/home/user/pictures",
		"/var/log/system",
		"/usr/local/bin",
	}

	for i, value := range values {
		err := idx.Insert(paths.New(value), i)
		require.NoError(t, err, "Insert should succeed for path: %s", value)
	}

	// Test exact lookups
	for i, value := range values {
		entry, exists := idx.Lookup(paths.New(value))
		assert.True(t, exists, "Path should exist: %s", value)
		require.NotNil(t, entry)
		assert.Equal(t, paths.New(value), entry.Path, "Entry path should match: %s", value)
		assert.Equal(t, i, entry.Data, "Entry payload should match: %s", value)
	}

	// Test non-existent paths
	nonExistent := []string{
		"/home/user/videos",
		"/nonexistent",
	}

	for _, value := range nonExistent {
		entry, exists := idx.Lookup(paths.New(value))
		assert.False(t, exists, "Non-existent path should not be found: %s", value)
		assert.Nil(t, entry, "Should return nil for non-existent path: %s", value)
	}

	// The zero value is rejected outright.
	err := idx.Insert(paths.LocalPath(""), nil)
	assert.Error(t, err)

	// Verify size
	assert.Equal(t, int64(len(values)), idx.Size(), "Size should match number of inserted entries")
}

func testPathIndexPrefixLookup(t *testing.T) {
	idx := NewPathIndex()

	// Test data with common prefixes
	values := []string{
		"/home/user/documents",
		"/home/user/documents/work",
		"/home/user/documents/personal",
		"/home/user/downloads",
		"/home/admin/config",
		"/var/log/app",
		"/var/log/system",
	}

	for _, value := range values {
		err := idx.Insert(paths.New(value), nil)
		require.NoError(t, err)
	}

	testCases := []struct {
		prefix   string
		expected []string
	}{
		{
			prefix:   "/home/user/documents",
			expected: []string{"/home/user/documents", "/home/user/documents/work", "/home/user/documents/personal"},
		},
		{
			prefix:   "/home/user",
			expected: []string{"/home/user/documents", "/home/user/documents/work", "/home/user/documents/personal", "/home/user/downloads"},
		},
		{
			prefix:   "/var/log",
			expected: []string{"/var/log/app", "/var/log/system"},
		},
		{
			prefix:   "/home",
			expected: []string{"/home/user/documents", "/home/user/documents/work", "/home/user/documents/personal", "/home/user/downloads", "/home/admin/config"},
		},
		{
			prefix:   "/nonexistent",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		results := idx.PrefixLookup(paths.New(tc.prefix))
		assert.Len(t, results, len(tc.expected), "Should find correct number of results for prefix: %s", tc.prefix)

		resultValues := make([]string, len(results))
		for i, entry := range results {
			resultValues[i] = entry.Path.String()
		}

		for _, expected := range tc.expected {
			assert.Contains(t, resultValues, expected, "Should contain path: %s for prefix: %s", expected, tc.prefix)
		}
	}
}

func testPathIndexPrefixGuard(t *testing.T) {
	idx := NewPathIndex()

	require.NoError(t, idx.Insert(paths.New("/foo"), nil))
	require.NoError(t, idx.Insert(paths.New("/foobar"), nil))
	require.NoError(t, idx.Insert(paths.New("/foo/bar"), nil))

	// "/foo" must match itself and "/foo/bar" but never "/foobar".
	results := idx.PrefixLookup(paths.New("/foo"))
	require.Len(t, results, 2)

	found := make([]string, len(results))
	for i, entry := range results {
		found[i] = entry.Path.String()
	}
	assert.Contains(t, found, "/foo")
	assert.Contains(t, found, "/foo/bar")
	assert.NotContains(t, found, "/foobar")
}

func testPathIndexChildren(t *testing.T) {
	idx := NewPathIndex()

	// Build a tree structure
	values := []string{
		"/home",
		"/home/user",
		"/home/admin",
		"/home/user/documents",
		"/home/user/downloads",
		"/home/admin/config",
		"/var",
		"/var/log",
		"/var/cache",
	}

	for _, value := range values {
		err := idx.Insert(paths.New(value), nil)
		require.NoError(t, err)
	}

	testCases := []struct {
		parent   string
		expected []string
	}{
		{
			parent:   "/home",
			expected: []string{"/home/user", "/home/admin"},
		},
		{
			parent:   "/home/user",
			expected: []string{"/home/user/documents", "/home/user/downloads"},
		},
		{
			parent:   "/var",
			expected: []string{"/var/log", "/var/cache"},
		},
		{
			parent:   "/home/user/documents", // Leaf entry
			expected: []string{},
		},
		{
			parent:   "/nonexistent",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		children := idx.Children(paths.New(tc.parent))
		assert.Len(t, children, len(tc.expected), "Should find correct number of children for: %s", tc.parent)

		childValues := make([]string, len(children))
		for i, child := range children {
			childValues[i] = child.Path.String()
		}

		for _, expected := range tc.expected {
			assert.Contains(t, childValues, expected, "Should contain child: %s for parent: %s", expected, tc.parent)
		}
	}
}

func testPathIndexRemove(t *testing.T) {
	idx := NewPathIndex()

	values := []string{
		"/home/user/documents",
		"/home/user/downloads",
		"/var/log/system",
	}

	for _, value := range values {
		err := idx.Insert(paths.New(value), nil)
		require.NoError(t, err)
	}

	initialSize := idx.Size()

	// Remove existing entry
	removed := idx.Remove(paths.New("/home/user/documents"))
	assert.True(t, removed, "Should successfully remove existing entry")
	assert.Equal(t, initialSize-1, idx.Size(), "Size should decrease after removal")

	// Verify entry is gone
	_, exists := idx.Lookup(paths.New("/home/user/documents"))
	assert.False(t, exists, "Removed entry should not be found")

	// Remove non-existent entry
	removed = idx.Remove(paths.New("/nonexistent"))
	assert.False(t, removed, "Should return false for non-existent entry")
	assert.Equal(t, initialSize-1, idx.Size(), "Size should not change for non-existent removal")

	// Verify other entries still exist
	for _, value := range []string{"/home/user/downloads", "/var/log/system"} {
		_, exists := idx.Lookup(paths.New(value))
		assert.True(t, exists, "Other entries should still exist: %s", value)
	}
}

func testPathIndexNormalizedKeys(t *testing.T) {
	idx := NewPathIndex()

	// Any spelling of the same location hits the same entry.
	require.NoError(t, idx.Insert(paths.New("/home/user/"), "payload"))

	spellings := []string{
		"/home/user",
		"/home//user",
		"/home/./user",
		"/home/admin/../user",
	}

	for _, spelling := range spellings {
		entry, exists := idx.Lookup(paths.New(spelling))
		assert.True(t, exists, "Spelling should resolve to the same entry: %s", spelling)
		require.NotNil(t, entry)
		assert.Equal(t, "payload", entry.Data)
	}

	assert.Equal(t, int64(1), idx.Size())
}

func testPathIndexStatistics(t *testing.T) {
	idx := NewPathIndex()

	values := []string{
		"/home/user/documents",
		"/home/user/downloads",
		"/var/log/system",
	}

	for _, value := range values {
		err := idx.Insert(paths.New(value), nil)
		require.NoError(t, err)
	}

	// Perform lookups
	for _, value := range values {
		idx.Lookup(paths.New(value))
	}

	// Perform prefix lookups
	idx.PrefixLookup(paths.New("/home"))
	idx.PrefixLookup(paths.New("/var"))

	// Remove an entry
	idx.Remove(paths.New("/var/log/system"))

	stats := idx.GetStats()

	assert.Equal(t, int64(2), stats.TotalEntries, "Should track total entries correctly")
	assert.Equal(t, int64(3), stats.PathLookups, "Should track path lookups")
	assert.Equal(t, int64(2), stats.PrefixLookups, "Should track prefix lookups")
	assert.Equal(t, int64(3), stats.Insertions, "Should track insertions")
	assert.Equal(t, int64(1), stats.Deletions, "Should track deletions")
	assert.Greater(t, stats.AveragePathDepth, 0.0, "Should calculate average path depth")
}

func testPathIndexConcurrentAccess(t *testing.T) {
	idx := NewPathIndex()

	const numGoroutines = 10
	const pathsPerGoroutine = 100

	done := make(chan bool, numGoroutines)

	// Concurrent insertions
	for i := 0; i < numGoroutines; i++ {
		go func(workerID int) {
			defer func() { done <- true }()

			for j := 0; j < pathsPerGoroutine; j++ {
				p := paths.New(fmt.Sprintf("/worker%d/path%d", workerID, j))
				err := idx.Insert(p, nil)
				assert.NoError(t, err, "Concurrent insert should succeed")
			}
		}(i)
	}

	// Wait for all insertions to complete
	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	// Verify total count
	expectedTotal := int64(numGoroutines * pathsPerGoroutine)
	assert.Equal(t, expectedTotal, idx.Size(), "Should handle concurrent insertions correctly")

	// Concurrent lookups
	for i := 0; i < numGoroutines; i++ {
		go func(workerID int) {
			defer func() { done <- true }()

			for j := 0; j < pathsPerGoroutine; j++ {
				p := paths.New(fmt.Sprintf("/worker%d/path%d", workerID, j))
				entry, exists := idx.Lookup(p)
				assert.True(t, exists, "Concurrent lookup should find entry")
				assert.Equal(t, p, entry.Path, "Should return correct entry")
			}
		}(i)
	}

	// Wait for all lookups to complete
	for i := 0; i < numGoroutines; i++ {
		<-done
	}
}

func testPathIndexValidation(t *testing.T) {
	idx := NewPathIndex()

	values := []string{
		"/home/user",
		"/var/log",
		"/usr/bin",
	}

	for _, value := range values {
		err := idx.Insert(paths.New(value), nil)
		require.NoError(t, err)
	}

	// Validation should pass
	errs := idx.Validate()
	assert.Empty(t, errs, "Validation should pass for healthy index")

	// Test validation after clearing
	idx.Clear()
	errs = idx.Validate()
	assert.Empty(t, errs, "Validation should pass for empty index")

	// Verify clear worked
	assert.Equal(t, int64(0), idx.Size(), "Index should be empty after clear")
}

// Benchmark tests for performance validation

func BenchmarkPathIndexInsert(b *testing.B) {
	idx := NewPathIndex()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Insert(paths.New(fmt.Sprintf("/benchmark/path/%d", i)), nil)
	}
}

func BenchmarkPathIndexLookup(b *testing.B) {
	idx := NewPathIndex()

	// Pre-populate index
	for i := 0; i < 10000; i++ {
		idx.Insert(paths.New(fmt.Sprintf("/benchmark/path/%d", i)), nil)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Lookup(paths.New(fmt.Sprintf("/benchmark/path/%d", i%10000)))
	}
}
