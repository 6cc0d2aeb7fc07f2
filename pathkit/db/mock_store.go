package db

import (
	"fmt"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/google/uuid"
)

// MockSnapshotStore is an in-memory mock for ISnapshotStore
type MockSnapshotStore struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*PathSet
}

func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{sets: make(map[uuid.UUID]*PathSet)}
}

func (m *MockSnapshotStore) SavePathSet(name string, values []paths.LocalPath) (*PathSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := &PathSet{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: time.Now(),
	}

	seen := make(map[paths.LocalPath]struct{}, len(values))
	for _, p := range values {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		set.Values = append(set.Values, p)
	}

	m.sets[set.ID] = set
	return set, nil
}

func (m *MockSnapshotStore) GetPathSet(id uuid.UUID) (*PathSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[id]
	if !ok {
		return nil, fmt.Errorf("path set not found: %s", id)
	}
	cp := *set
	return &cp, nil
}

func (m *MockSnapshotStore) LatestPathSet() (*PathSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *PathSet
	for _, set := range m.sets {
		if latest == nil || set.Timestamp.After(latest.Timestamp) {
			latest = set
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no path sets saved")
	}
	cp := *latest
	return &cp, nil
}

func (m *MockSnapshotStore) ListPathSets() ([]PathSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sets := make([]PathSet, 0, len(m.sets))
	for _, set := range m.sets {
		sets = append(sets, PathSet{ID: set.ID, Name: set.Name, Timestamp: set.Timestamp})
	}
	return sets, nil
}

func (m *MockSnapshotStore) DeletePathSet(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sets[id]; !ok {
		return fmt.Errorf("path set not found: %s", id)
	}
	delete(m.sets, id)
	return nil
}

func (m *MockSnapshotStore) Close() error { return nil }
