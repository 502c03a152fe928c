package grid

import "sort"

// Span is a maximal contiguous run of occupied cells in one grid row.
type Span struct {
	Z    int32 `json:"z"`
	MinX int32 `json:"minX"`
	MaxX int32 `json:"maxX"`
}

// RowSpans groups the cells by row and collapses each row's sorted x indices
// into maximal contiguous runs. A row with a gap yields multiple spans.
// Spans are ordered by row, then by MinX, for deterministic output.
func RowSpans(cells CellSet) []Span {
	rows := make(map[int32][]int32)
	for k := range cells {
		rows[k.GZ()] = append(rows[k.GZ()], k.GX())
	}

	zs := make([]int32, 0, len(rows))
	for z := range rows {
		zs = append(zs, z)
	}
	sort.Slice(zs, func(i, j int) bool { return zs[i] < zs[j] })

	var spans []Span
	for _, z := range zs {
		xs := rows[z]
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })

		run := Span{Z: z, MinX: xs[0], MaxX: xs[0]}
		for _, x := range xs[1:] {
			if x == run.MaxX+1 {
				run.MaxX = x
				continue
			}
			spans = append(spans, run)
			run = Span{Z: z, MinX: x, MaxX: x}
		}
		spans = append(spans, run)
	}
	return spans
}

// Edge is a horizontal wireframe segment at height Y in world coordinates.
type Edge struct {
	AX float64 `json:"ax"`
	AZ float64 `json:"az"`
	BX float64 `json:"bx"`
	BZ float64 `json:"bz"`
	Y  float64 `json:"y"`
}

// BoundaryEdges extracts the exposed-face wireframe of the cell set at the
// given height: for every occupied cell, each of its four sides whose
// neighbor cell is absent becomes one segment.
func (g Grid) BoundaryEdges(cells CellSet, y float64) []Edge {
	var edges []Edge
	for k := range cells {
		gx, gz := k.GX(), k.GZ()
		o := g.CellOrigin(gx, gz)
		x0, z0 := o.X, o.Z
		x1, z1 := o.X+g.Size, o.Z+g.Size

		if !cells.Has(Cell(gx, gz-1)) { // south
			edges = append(edges, Edge{AX: x0, AZ: z0, BX: x1, BZ: z0, Y: y})
		}
		if !cells.Has(Cell(gx, gz+1)) { // north
			edges = append(edges, Edge{AX: x0, AZ: z1, BX: x1, BZ: z1, Y: y})
		}
		if !cells.Has(Cell(gx-1, gz)) { // west
			edges = append(edges, Edge{AX: x0, AZ: z0, BX: x0, BZ: z1, Y: y})
		}
		if !cells.Has(Cell(gx+1, gz)) { // east
			edges = append(edges, Edge{AX: x1, AZ: z0, BX: x1, BZ: z1, Y: y})
		}
	}
	return edges
}

// Bounds returns the integer bounding box over the occupied cells.
// ok is false when the set is empty.
func Bounds(cells CellSet) (minGX, maxGX, minGZ, maxGZ int32, ok bool) {
	first := true
	for k := range cells {
		gx, gz := k.GX(), k.GZ()
		if first {
			minGX, maxGX, minGZ, maxGZ = gx, gx, gz, gz
			first = false
			continue
		}
		if gx < minGX {
			minGX = gx
		}
		if gx > maxGX {
			maxGX = gx
		}
		if gz < minGZ {
			minGZ = gz
		}
		if gz > maxGZ {
			maxGZ = gz
		}
	}
	return minGX, maxGX, minGZ, maxGZ, !first
}
