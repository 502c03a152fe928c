package geom

import (
	"math"
	"testing"
)

func TestFrameForRing(t *testing.T) {
	// Roughly 100m x 100m parcel near Seoul.
	ring := []GeoPoint{
		{Lat: 37.5665, Lng: 126.9780},
		{Lat: 37.5665, Lng: 126.9791},
		{Lat: 37.5674, Lng: 126.9791},
		{Lat: 37.5674, Lng: 126.9780},
	}

	frame, poly := FrameForRing(ring)
	if poly.IsEmpty() {
		t.Fatal("converted polygon is empty")
	}

	// Origin at the vertex average means the polygon is centered near zero.
	c := poly.Centroid()
	if math.Abs(c.X) > 1 || math.Abs(c.Z) > 1 {
		t.Errorf("centroid = %v, want near origin", c)
	}

	// The 0.0011 degree longitude span at this latitude is ~97m.
	minP, maxP := poly.BoundingBox()
	width := maxP.X - minP.X
	if width < 80 || width > 120 {
		t.Errorf("width = %v m, want ~97", width)
	}
	depth := maxP.Z - minP.Z
	if depth < 80 || depth > 120 {
		t.Errorf("depth = %v m, want ~100", depth)
	}

	// North is +Z: the higher-latitude edge must map to larger Z.
	north := frame.ToLocal(GeoPoint{Lat: 37.5674, Lng: 126.9780})
	south := frame.ToLocal(GeoPoint{Lat: 37.5665, Lng: 126.9780})
	if north.Z <= south.Z {
		t.Errorf("north.Z = %v not greater than south.Z = %v", north.Z, south.Z)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	frame := NewLocalFrame(GeoPoint{Lat: 37.5665, Lng: 126.9780})

	pts := []Point{Pt(0, 0), Pt(50, -30), Pt(-120, 75)}
	for _, pt := range pts {
		back := frame.ToLocal(frame.ToGeo(pt))
		if math.Abs(back.X-pt.X) > 1e-6 || math.Abs(back.Z-pt.Z) > 1e-6 {
			t.Errorf("round trip %v = %v", pt, back)
		}
	}
}

func TestFrameEmptyRing(t *testing.T) {
	_, poly := FrameForRing(nil)
	if !poly.IsEmpty() {
		t.Errorf("empty ring polygon = %v, want empty", poly)
	}
}
