package indexing

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	roaring "github.com/RoaringBitmap/roaring"
	"github.com/google/uuid"
)

// Population is an immutable set of paths indexed for set-algebra queries:
// stable PathIDs, an extension dictionary, per-path attribute records, and
// roaring bitmaps over the attributes. All attributes are derived lexically
// from the normalized values.
type Population struct {
	Meta    PopulationMeta
	ExtDict []string // extID -> ".pdf" etc; extID 0 is the empty extension

	mapper  *SimplePathIDMapper
	records []PathRecord
	bitmaps *AttributeBitmaps
}

// BuildPopulation indexes the given paths. Spellings that fold to the same
// key on the host collapse into one member; the first spelling seen is kept
// as the representative value.
func BuildPopulation(values []paths.LocalPath) *Population {
	reps := make(map[string]paths.LocalPath, len(values))
	for _, p := range values {
		key := paths.Fold(p.String())
		if _, ok := reps[key]; !ok {
			reps[key] = p
		}
	}

	mapper := NewSimplePathIDMapper()
	keys := mapper.Build(values)

	pop := &Population{
		ExtDict: []string{""},
		mapper:  mapper,
		records: make([]PathRecord, len(keys)),
		bitmaps: NewAttributeBitmaps(),
	}

	extIDs := map[string]uint32{"": 0}
	numAbs := 0

	for pid, key := range keys {
		p := reps[key]

		ext := strings.ToLower(filepath.Ext(p.FileName()))
		extID, ok := extIDs[ext]
		if !ok {
			extID = uint32(len(pop.ExtDict))
			extIDs[ext] = extID
			pop.ExtDict = append(pop.ExtDict, ext)
		}

		rec := PathRecord{
			Path:  p,
			IsAbs: p.IsAbs(),
			ExtID: extID,
			Depth: pathDepth(key),
		}
		pop.records[pid] = rec

		pop.bitmaps.AddExt(extID, PathID(pid))
		pop.bitmaps.AddDepth(rec.Depth, PathID(pid))
		if rec.IsAbs {
			pop.bitmaps.AddAbs(PathID(pid))
			numAbs++
		}
	}

	pop.Meta = PopulationMeta{
		ID:           uuid.New(),
		NumPaths:     len(keys),
		NumAbsolute:  numAbs,
		BuildUnixSec: time.Now().Unix(),
	}

	return pop
}

// IDOf returns the PathID of a path, following the host case convention.
func (pop *Population) IDOf(p paths.LocalPath) (PathID, bool) {
	return pop.mapper.Lookup(p)
}

// Record returns the attribute record for a PathID.
func (pop *Population) Record(pid PathID) (PathRecord, bool) {
	if int(pid) >= len(pop.records) {
		return PathRecord{}, false
	}
	return pop.records[pid], true
}

// Size returns the number of members.
func (pop *Population) Size() int { return len(pop.records) }

// WithExt returns the bitmap of members carrying the given extension
// (lowercased, including the dot).
func (pop *Population) WithExt(ext string) *roaring.Bitmap {
	ext = strings.ToLower(ext)
	for id, s := range pop.ExtDict {
		if s == ext {
			return pop.bitmaps.OrExt(uint32(id))
		}
	}
	return roaring.New()
}

// Absolute returns the bitmap of absolute members.
func (pop *Population) Absolute() *roaring.Bitmap {
	return pop.bitmaps.clone(pop.bitmaps.Abs)
}

// AtDepth returns the bitmap of members with the given segment count.
func (pop *Population) AtDepth(depth uint16) *roaring.Bitmap {
	return pop.bitmaps.clone(pop.bitmaps.Depth[depth])
}

// pathDepth counts the segments of a normalized, folded key. A bare root
// has depth zero; "." likewise.
func pathDepth(key string) uint16 {
	sep := string(paths.HostPlatform().Separator())
	if key == sep || key == "." {
		return 0
	}
	key = strings.TrimPrefix(key, sep)
	return uint16(strings.Count(key, sep) + 1)
}
