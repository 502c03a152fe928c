package geom

import "testing"

// uShape is a concave polygon: a 10x10 square with a 4-wide notch cut from
// the top edge down to z=4.
func uShape() Polygon {
	return NewPolygon(
		Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(7, 10),
		Pt(7, 4), Pt(3, 4), Pt(3, 10), Pt(0, 10),
	)
}

func TestClipHorizontalConvex(t *testing.T) {
	poly := square(10)
	segs := poly.ClipHorizontal(5, 0, 10)

	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if !almostEqual(segs[0].Min, 0, 1e-9) || !almostEqual(segs[0].Max, 10, 1e-9) {
		t.Errorf("segment = %+v, want [0, 10]", segs[0])
	}
}

func TestClipHorizontalConcave(t *testing.T) {
	segs := uShape().ClipHorizontal(7, 0, 10)

	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}
	if !almostEqual(segs[0].Min, 0, 1e-9) || !almostEqual(segs[0].Max, 3, 1e-9) {
		t.Errorf("left segment = %+v, want [0, 3]", segs[0])
	}
	if !almostEqual(segs[1].Min, 7, 1e-9) || !almostEqual(segs[1].Max, 10, 1e-9) {
		t.Errorf("right segment = %+v, want [7, 10]", segs[1])
	}
}

func TestClipHorizontalClamped(t *testing.T) {
	segs := square(10).ClipHorizontal(5, 2, 6)

	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if !almostEqual(segs[0].Min, 2, 1e-9) || !almostEqual(segs[0].Max, 6, 1e-9) {
		t.Errorf("segment = %+v, want [2, 6]", segs[0])
	}
}

func TestClipHorizontalOutside(t *testing.T) {
	if segs := square(10).ClipHorizontal(20, 0, 10); segs != nil {
		t.Errorf("segments above polygon = %v, want nil", segs)
	}
}

func TestClipVertical(t *testing.T) {
	segs := uShape().ClipVertical(5, 0, 10)

	// x=5 runs through the notch: interior only below z=4.
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if !almostEqual(segs[0].Min, 0, 1e-9) || !almostEqual(segs[0].Max, 4, 1e-9) {
		t.Errorf("segment = %+v, want [0, 4]", segs[0])
	}
}

func TestClipDegenerate(t *testing.T) {
	degenerate := NewPolygon(Pt(0, 0), Pt(1, 1))
	if segs := degenerate.ClipHorizontal(0.5, 0, 1); segs != nil {
		t.Errorf("degenerate ClipHorizontal = %v, want nil", segs)
	}
	if segs := degenerate.ClipVertical(0.5, 0, 1); segs != nil {
		t.Errorf("degenerate ClipVertical = %v, want nil", segs)
	}
}
