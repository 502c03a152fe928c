package geom

import "sort"

// Segment is a 1D interval along a scanline, produced by clipping the line
// against a polygon's interior.
type Segment struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ClipHorizontal intersects the horizontal line at z with the polygon
// interior and returns the interior segments, clamped to [xMin, xMax].
//
// Every edge crossing at the constant coordinate is collected, sorted
// ascending, and consecutive crossings are paired into interior runs.
// This requires the polygon to be simple (even crossing count); behavior on
// a self-intersecting polygon is undefined.
func (p Polygon) ClipHorizontal(z, xMin, xMax float64) []Segment {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}
	var xs []float64
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		if (a.Z > z) != (b.Z > z) {
			t := (z - a.Z) / (b.Z - a.Z)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	return pairCrossings(xs, xMin, xMax)
}

// ClipVertical is the vertical counterpart of ClipHorizontal: it intersects
// the line at x with the polygon interior and returns segments clamped to
// [zMin, zMax].
func (p Polygon) ClipVertical(x, zMin, zMax float64) []Segment {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}
	var zs []float64
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		if (a.X > x) != (b.X > x) {
			t := (x - a.X) / (b.X - a.X)
			zs = append(zs, a.Z+t*(b.Z-a.Z))
		}
	}
	return pairCrossings(zs, zMin, zMax)
}

// pairCrossings sorts the crossing coordinates and pairs them ([0,1], [2,3],
// ...) into interior segments clamped to [lo, hi]. Segments that collapse
// after clamping are dropped.
func pairCrossings(crossings []float64, lo, hi float64) []Segment {
	if len(crossings) < 2 {
		return nil
	}
	sort.Float64s(crossings)

	var segs []Segment
	for i := 0; i+1 < len(crossings); i += 2 {
		a, b := crossings[i], crossings[i+1]
		if a < lo {
			a = lo
		}
		if b > hi {
			b = hi
		}
		if b > a {
			segs = append(segs, Segment{Min: a, Max: b})
		}
	}
	return segs
}
