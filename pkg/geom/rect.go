package geom

import "math"

// Inscribed-rectangle search resolution bounds. The sampling cost grows
// quadratically with steps, so the upper bound protects interactive callers
// from pathological inputs.
const (
	DefaultInscribedSteps = 60
	MaxInscribedSteps     = 512
)

// Rect is an axis-aligned rectangle in the XZ plane.
type Rect struct {
	MinX float64 `json:"minX"`
	MinZ float64 `json:"minZ"`
	MaxX float64 `json:"maxX"`
	MaxZ float64 `json:"maxZ"`
}

// Width returns the X extent of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Depth returns the Z extent of the rectangle.
func (r Rect) Depth() float64 {
	return r.MaxZ - r.MinZ
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Depth()
}

// ContainsRect returns true if all four corners of the rectangle lie inside
// the polygon. Edge crossings through concave notches are not detected; the
// rectangles tested here come from the rasterized grid, whose cells already
// respect the polygon boundary.
func (p Polygon) ContainsRect(r Rect) bool {
	return p.Contains(Pt(r.MinX, r.MinZ)) &&
		p.Contains(Pt(r.MaxX, r.MinZ)) &&
		p.Contains(Pt(r.MaxX, r.MaxZ)) &&
		p.Contains(Pt(r.MinX, r.MaxZ))
}

// MaxInscribedRect searches for the largest axis-aligned rectangle inscribed
// in the polygon by sampling steps+1 evenly spaced horizontal rows across the
// polygon's Z range and testing every ordered pair of interior row segments.
//
// Concave polygons yielding multiple segments per row are supported. The
// result is a grid-sampled heuristic, not an exact largest-inscribed
// rectangle; accuracy improves with steps at quadratic cost. steps is clamped
// to [1, MaxInscribedSteps], with non-positive values replaced by
// DefaultInscribedSteps.
//
// Returns false if the polygon is degenerate or no candidate rectangle with
// positive area exists.
func (p Polygon) MaxInscribedRect(steps int) (Rect, bool) {
	if p.IsEmpty() {
		return Rect{}, false
	}
	if steps <= 0 {
		steps = DefaultInscribedSteps
	}
	if steps > MaxInscribedSteps {
		steps = MaxInscribedSteps
	}

	minP, maxP := p.BoundingBox()
	if maxP.Z <= minP.Z || maxP.X <= minP.X {
		return Rect{}, false
	}

	type row struct {
		z    float64
		segs []Segment
	}
	rows := make([]row, 0, steps+1)
	dz := (maxP.Z - minP.Z) / float64(steps)
	for k := 0; k <= steps; k++ {
		z := minP.Z + float64(k)*dz
		segs := p.ClipHorizontal(z, minP.X, maxP.X)
		if len(segs) > 0 {
			rows = append(rows, row{z: z, segs: segs})
		}
	}

	var best Rect
	bestArea := 0.0
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			h := rows[j].z - rows[i].z
			if h <= 0 {
				continue
			}
			for _, si := range rows[i].segs {
				for _, sj := range rows[j].segs {
					left := math.Max(si.Min, sj.Min)
					right := math.Min(si.Max, sj.Max)
					if right <= left {
						continue
					}
					if area := (right - left) * h; area > bestArea {
						bestArea = area
						best = Rect{MinX: left, MinZ: rows[i].z, MaxX: right, MaxZ: rows[j].z}
					}
				}
			}
		}
	}

	if bestArea <= 0 {
		return Rect{}, false
	}
	return best, true
}
