// Package grid converts buildable polygons into discrete sets of fixed-size
// construction-grid cells, and derives the row spans, boundary wireframes,
// and per-floor clipped footprints consumed by placement editors.
//
// A cell is addressed by an integer pair (gx, gz) packed into a single
// 64-bit CellKey. Cell membership is decided solely by whether the cell's
// center point lies inside a polygon; partial overlap is ignored. All
// operations return new values and never mutate their inputs, so independent
// invocations are safe to run concurrently.
package grid

import "github.com/jinwoohan/plotgrid/pkg/geom"

// DefaultSize is the construction grid pitch in meters.
const DefaultSize = 0.6

// MaxCells bounds the number of candidate cells a single rasterization will
// consider. A corrupted polygon spanning kilometers would otherwise allocate
// unbounded memory; past the bound the rasterizer degrades to an empty set.
const MaxCells = 4_000_000

// CellKey packs the integer cell coordinates (gx, gz) into one 64-bit key.
type CellKey uint64

// Cell builds the key for cell (gx, gz).
func Cell(gx, gz int32) CellKey {
	return CellKey(uint64(uint32(gx))<<32 | uint64(uint32(gz)))
}

// GX returns the cell's x index.
func (k CellKey) GX() int32 {
	return int32(uint32(k >> 32))
}

// GZ returns the cell's z index.
func (k CellKey) GZ() int32 {
	return int32(uint32(k))
}

// CellSet is a set of occupied grid cells.
type CellSet map[CellKey]struct{}

// NewCellSet creates an empty cell set.
func NewCellSet() CellSet {
	return make(CellSet)
}

// Add inserts a cell into the set.
func (s CellSet) Add(k CellKey) {
	s[k] = struct{}{}
}

// Has reports whether the cell is in the set.
func (s CellSet) Has(k CellKey) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of occupied cells.
func (s CellSet) Len() int {
	return len(s)
}

// Clone returns a copy of the set.
func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Grid describes the construction grid: cell pitch and world offset. The
// world origin of cell (gx, gz) is (gx*Size+OffsetX, gz*Size+OffsetZ).
type Grid struct {
	Size    float64 `json:"size"`
	OffsetX float64 `json:"offsetX"`
	OffsetZ float64 `json:"offsetZ"`
}

// New creates a grid with the given pitch and offsets.
// A non-positive size falls back to DefaultSize.
func New(size, offsetX, offsetZ float64) Grid {
	if size <= 0 {
		size = DefaultSize
	}
	return Grid{Size: size, OffsetX: offsetX, OffsetZ: offsetZ}
}

// CellOrigin returns the world coordinates of the cell's minimum corner.
func (g Grid) CellOrigin(gx, gz int32) geom.Point {
	return geom.Pt(float64(gx)*g.Size+g.OffsetX, float64(gz)*g.Size+g.OffsetZ)
}

// CellCenter returns the world coordinates of the cell's center point.
func (g Grid) CellCenter(gx, gz int32) geom.Point {
	o := g.CellOrigin(gx, gz)
	return geom.Pt(o.X+g.Size/2, o.Z+g.Size/2)
}

// CellRect returns the world-space rectangle covered by the cell.
func (g Grid) CellRect(k CellKey) geom.Rect {
	o := g.CellOrigin(k.GX(), k.GZ())
	return geom.Rect{MinX: o.X, MinZ: o.Z, MaxX: o.X + g.Size, MaxZ: o.Z + g.Size}
}
