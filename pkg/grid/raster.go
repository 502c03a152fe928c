package grid

import (
	"math"

	"github.com/jinwoohan/plotgrid/pkg/geom"
)

// CellsInPolygon rasterizes the polygon onto the grid and returns the set of
// cells whose center point lies inside it.
//
// The polygon's bounding box is expanded by one cell in every direction
// before scanning, so cells straddling the boundary are always considered.
// A cell is included or excluded as a unit; there is no partial-cell area
// accounting. Degenerate polygons and scans exceeding MaxCells candidate
// cells yield an empty set.
func (g Grid) CellsInPolygon(poly geom.Polygon) CellSet {
	cells := NewCellSet()
	if poly.IsEmpty() {
		return cells
	}

	minP, maxP := poly.BoundingBox()
	if maxP.X < minP.X || maxP.Z < minP.Z {
		return cells
	}

	gxMin := int64(math.Floor((minP.X-g.OffsetX)/g.Size)) - 1
	gxMax := int64(math.Floor((maxP.X-g.OffsetX)/g.Size)) + 1
	gzMin := int64(math.Floor((minP.Z-g.OffsetZ)/g.Size)) - 1
	gzMax := int64(math.Floor((maxP.Z-g.OffsetZ)/g.Size)) + 1

	cols := gxMax - gxMin + 1
	rows := gzMax - gzMin + 1
	if cols <= 0 || rows <= 0 || cols*rows > MaxCells {
		return cells
	}

	for gz := gzMin; gz <= gzMax; gz++ {
		for gx := gxMin; gx <= gxMax; gx++ {
			if poly.Contains(g.CellCenter(int32(gx), int32(gz))) {
				cells.Add(Cell(int32(gx), int32(gz)))
			}
		}
	}
	return cells
}

// ClipNorth returns a copy of the set without the cells whose center z
// exceeds maxZ. Upper floors of residential buildings call this with
// progressively smaller maxZ to apply solar-access stepping.
func (g Grid) ClipNorth(cells CellSet, maxZ float64) CellSet {
	out := make(CellSet, len(cells))
	for k := range cells {
		if g.CellCenter(k.GX(), k.GZ()).Z <= maxZ {
			out[k] = struct{}{}
		}
	}
	return out
}
