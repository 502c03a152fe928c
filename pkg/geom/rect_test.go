package geom

import "testing"

func TestContainsRect(t *testing.T) {
	poly := square(10)

	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"fully inside", Rect{MinX: 2, MinZ: 2, MaxX: 8, MaxZ: 8}, true},
		{"corner outside", Rect{MinX: 5, MinZ: 5, MaxX: 12, MaxZ: 8}, false},
		{"fully outside", Rect{MinX: 20, MinZ: 20, MaxX: 30, MaxZ: 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := poly.ContainsRect(tt.rect); got != tt.want {
				t.Errorf("ContainsRect(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestMaxInscribedRectRectangle(t *testing.T) {
	poly := NewPolygon(Pt(0, 0), Pt(12, 0), Pt(12, 8), Pt(0, 8))

	rect, ok := poly.MaxInscribedRect(60)
	if !ok {
		t.Fatal("MaxInscribedRect returned no candidate")
	}

	// Sampling tolerance: one row spacing in each direction.
	tol := 8.0 / 60 * 2
	if !almostEqual(rect.MinX, 0, tol) || !almostEqual(rect.MaxX, 12, tol) ||
		!almostEqual(rect.MinZ, 0, tol) || !almostEqual(rect.MaxZ, 8, tol) {
		t.Errorf("rect = %+v, want approx [0,0]-[12,8]", rect)
	}
	if rect.Area() < 12*8*0.9 {
		t.Errorf("area = %v, want >= %v", rect.Area(), 12*8*0.9)
	}
}

func TestMaxInscribedRectConcave(t *testing.T) {
	rect, ok := uShape().MaxInscribedRect(80)
	if !ok {
		t.Fatal("MaxInscribedRect returned no candidate")
	}

	// The widest inscribed rectangle in the U is the 10x4 base.
	if rect.Area() < 10*4*0.85 {
		t.Errorf("area = %v, want >= %v", rect.Area(), 10*4*0.85)
	}
	if !square(10).ContainsRect(Rect{
		MinX: rect.MinX + 1e-6, MinZ: rect.MinZ + 1e-6,
		MaxX: rect.MaxX - 1e-6, MaxZ: rect.MaxZ - 1e-6,
	}) {
		t.Errorf("rect %+v escapes the outer square", rect)
	}
}

func TestMaxInscribedRectDegenerate(t *testing.T) {
	if _, ok := (Polygon{}).MaxInscribedRect(60); ok {
		t.Error("empty polygon should yield no rectangle")
	}
	if _, ok := NewPolygon(Pt(0, 0), Pt(1, 1)).MaxInscribedRect(60); ok {
		t.Error("two-point polygon should yield no rectangle")
	}
	// Zero-height bounding box.
	if _, ok := NewPolygon(Pt(0, 0), Pt(5, 0), Pt(10, 0)).MaxInscribedRect(60); ok {
		t.Error("collinear polygon should yield no rectangle")
	}
}

func TestMaxInscribedRectStepsClamped(t *testing.T) {
	poly := square(10)

	// Non-positive and absurd step counts must still terminate and produce
	// a sane result.
	for _, steps := range []int{-5, 0, 1 << 20} {
		rect, ok := poly.MaxInscribedRect(steps)
		if !ok {
			t.Fatalf("steps=%d: no candidate", steps)
		}
		if rect.Area() <= 0 || rect.Area() > 100+1e-6 {
			t.Errorf("steps=%d: area = %v", steps, rect.Area())
		}
	}
}
