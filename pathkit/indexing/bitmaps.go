package indexing

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// AttributeBitmaps holds roaring bitmaps keyed by attribute value id.
// Example: ExtID -> bitmap of PathIDs with that extension.
type AttributeBitmaps struct {
	Ext   map[uint32]*roaring.Bitmap
	Depth map[uint16]*roaring.Bitmap
	Abs   *roaring.Bitmap // PathIDs of absolute paths
}

func NewAttributeBitmaps() *AttributeBitmaps {
	return &AttributeBitmaps{
		Ext:   make(map[uint32]*roaring.Bitmap),
		Depth: make(map[uint16]*roaring.Bitmap),
		Abs:   roaring.New(),
	}
}

func (ab *AttributeBitmaps) AddExt(extID uint32, pid PathID) {
	bm, ok := ab.Ext[extID]
	if !ok {
		bm = roaring.New()
		ab.Ext[extID] = bm
	}
	bm.Add(uint32(pid))
}

func (ab *AttributeBitmaps) AddDepth(depth uint16, pid PathID) {
	bm, ok := ab.Depth[depth]
	if !ok {
		bm = roaring.New()
		ab.Depth[depth] = bm
	}
	bm.Add(uint32(pid))
}

func (ab *AttributeBitmaps) AddAbs(pid PathID) {
	ab.Abs.Add(uint32(pid))
}

// AndExt returns the intersection of multiple extension bitmaps. An ID with
// no bitmap has an empty population, so the whole intersection is empty.
func (ab *AttributeBitmaps) AndExt(extIDs ...uint32) *roaring.Bitmap {
	if len(extIDs) == 0 {
		return roaring.New()
	}
	// copy first
	res := ab.clone(ab.Ext[extIDs[0]])
	for _, id := range extIDs[1:] {
		bm, ok := ab.Ext[id]
		if !ok {
			return roaring.New()
		}
		res.And(bm)
	}
	return res
}

// OrExt returns the union of multiple extension bitmaps.
func (ab *AttributeBitmaps) OrExt(extIDs ...uint32) *roaring.Bitmap {
	res := roaring.New()
	for _, id := range extIDs {
		if bm := ab.Ext[id]; bm != nil {
			res.Or(bm)
		}
	}
	return res
}

// AbsoluteWithDepth intersects the absolute population with a depth bucket.
func (ab *AttributeBitmaps) AbsoluteWithDepth(depth uint16) *roaring.Bitmap {
	res := ab.clone(ab.Depth[depth])
	res.And(ab.Abs)
	return res
}

func (ab *AttributeBitmaps) clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b) // copy
	return c
}
