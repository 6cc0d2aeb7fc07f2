package db

import (
	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/google/uuid"
)

// ISnapshotStore is the interface for path set persistence (using I prefix
// to avoid naming conflict with the concrete store).
type ISnapshotStore interface {
	SavePathSet(name string, values []paths.LocalPath) (*PathSet, error)
	GetPathSet(id uuid.UUID) (*PathSet, error)
	LatestPathSet() (*PathSet, error)
	ListPathSets() ([]PathSet, error)
	DeletePathSet(id uuid.UUID) error
	Close() error
}
