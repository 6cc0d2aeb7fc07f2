package indexing

import (
	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/google/uuid"
)

// PathID is a stable identifier for a path within a population.
// It is intentionally small and contiguous to support compact columnar
// layouts and roaring bitmap usage.
type PathID = uint32

// PathRecord holds the derived attributes needed for set-algebra queries.
// The attributes are pure functions of the normalized value; nothing here
// touches the filesystem.
type PathRecord struct {
	Path  paths.LocalPath
	IsAbs bool
	ExtID uint32 // small integer for extension dictionary
	Depth uint16 // number of path segments
}

// PopulationMeta captures summary information for a built population.
type PopulationMeta struct {
	ID           uuid.UUID
	NumPaths     int
	NumAbsolute  int
	BuildUnixSec int64
}

// PathIDMapper maps canonicalized path values to stable PathIDs.
// Implementations may use Minimal Perfect Hash (MPH) or a fallback map.
type PathIDMapper interface {
	Lookup(p paths.LocalPath) (PathID, bool)
	Size() int
}
