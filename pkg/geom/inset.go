package geom

import "math"

// parallelEps is the cross-product magnitude below which two offset edges are
// treated as parallel during insetting.
const parallelEps = 1e-10

// Inset returns the polygon shrunk inward by distance meters.
//
// For distance <= 0 or fewer than 3 vertices, the polygon is returned
// unchanged. Winding is detected from the signed area so the offset always
// points to the interior regardless of input orientation.
//
// Each edge is translated along its inward normal by distance, and the new
// vertex ring is formed by intersecting each offset line with its successor.
// When two consecutive offset lines are parallel, the midpoint of their two
// offset endpoints substitutes for the intersection. This is an approximation
// of a true polygon erosion: it can distort very acute or highly concave
// shapes, but is adequate for the near-rectangular cadastral parcels it is
// applied to.
func (p Polygon) Inset(distance float64) Polygon {
	n := len(p.Vertices)
	if distance <= 0 || n < 3 {
		return p
	}

	winding := 1.0
	if p.SignedArea() < 0 {
		winding = -1.0
	}

	// Offset line per edge: origin point plus direction.
	starts := make([]Point, n)
	ends := make([]Point, n)
	dirs := make([]Point, n)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		dir := b.Sub(a).Normalize()
		inward := dir.Perp().Scale(winding)
		shift := inward.Scale(distance)
		starts[i] = a.Add(shift)
		ends[i] = b.Add(shift)
		dirs[i] = dir
	}

	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		denom := dirs[i].Cross(dirs[j])
		if math.Abs(denom) < parallelEps {
			// Parallel offset edges: fall back to the midpoint of the two
			// offset endpoints at the shared original vertex.
			out = append(out, MidPoint(ends[i], starts[j]))
			continue
		}
		t := starts[j].Sub(starts[i]).Cross(dirs[j]) / denom
		out = append(out, starts[i].Add(dirs[i].Scale(t)))
	}

	return Polygon{Vertices: out}
}
