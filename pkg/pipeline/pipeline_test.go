package pipeline

import (
	"context"
	"testing"

	"github.com/jinwoohan/plotgrid/pkg/cache"
	"github.com/jinwoohan/plotgrid/pkg/compliance"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// squareParcel is a 12x12 m parcel with its north edge at z=12.
func squareParcel() []geom.Point {
	return []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(12, 0),
		geom.Pt(12, 12),
		geom.Pt(0, 12),
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "missing zone",
			opts:     Options{Points: squareParcel()},
			wantCode: errors.ErrCodeInvalidZoneType,
		},
		{
			name:     "missing boundary",
			opts:     Options{Zone: zoning.ZoneR2General},
			wantCode: errors.ErrCodeInvalidPolygon,
		},
		{
			name: "ring and points together",
			opts: Options{
				Zone:   zoning.ZoneR2General,
				Points: squareParcel(),
				Ring:   []geom.GeoPoint{{Lat: 37, Lng: 127}, {Lat: 37, Lng: 127.1}, {Lat: 37.1, Lng: 127}},
			},
			wantCode: errors.ErrCodeInvalidPolygon,
		},
		{
			name: "too few vertices",
			opts: Options{
				Zone:   zoning.ZoneR2General,
				Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)},
			},
			wantCode: errors.ErrCodeInvalidPolygon,
		},
		{
			name: "negative parcel area",
			opts: Options{
				Zone:       zoning.ZoneR2General,
				Points:     squareParcel(),
				ParcelArea: -1,
			},
			wantCode: errors.ErrCodeInvalidParcelArea,
		},
		{
			name: "negative grid size",
			opts: Options{
				Zone:     zoning.ZoneR2General,
				Points:   squareParcel(),
				GridSize: -0.6,
			},
			wantCode: errors.ErrCodeInvalidGrid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Zone: zoning.ZoneR2General, Points: squareParcel()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.GridSize != DefaultGridSize {
		t.Errorf("GridSize = %v, want %v", opts.GridSize, DefaultGridSize)
	}
	if opts.Steps != DefaultSteps {
		t.Errorf("Steps = %d, want %d", opts.Steps, DefaultSteps)
	}
	if opts.Table.Len() == 0 {
		t.Error("Table should default to the built-in regulation table")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent: second call must not fail or re-clamp
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error: %v", err)
	}

	// Over-limit steps are clamped, not rejected
	clamped := Options{Zone: zoning.ZoneR2General, Points: squareParcel(), Steps: 1 << 20}
	if err := clamped.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if clamped.Steps != MaxSteps {
		t.Errorf("Steps = %d, want clamp to %d", clamped.Steps, MaxSteps)
	}
}

func TestEvaluate(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneR2General,
		Points: squareParcel(),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if result.Regulation.ZoneType != zoning.ZoneR2General {
		t.Errorf("zone = %s", result.Regulation.ZoneType)
	}
	if result.Frame != nil {
		t.Error("local points should not produce a geo frame")
	}

	// R2 general setbacks are 2/1/1/1, so the buildable polygon is the
	// parcel inset by 2 m on every edge: a 8x8 square.
	if got := result.Buildable.Area(); got < 63.9 || got > 64.1 {
		t.Errorf("buildable area = %v, want 64", got)
	}

	if result.Cells.Len() == 0 {
		t.Fatal("expected buildable cells")
	}
	if result.Stats.CellCount != result.Cells.Len() {
		t.Errorf("CellCount stat = %d, cells = %d", result.Stats.CellCount, result.Cells.Len())
	}
	if len(result.Spans) == 0 {
		t.Error("expected row spans")
	}
	if len(result.Edges) == 0 {
		t.Error("expected boundary edges")
	}
	if !result.RectOK {
		t.Error("expected an inscribed rectangle")
	}
	if got := result.Rect.Area(); got < 55 || got > 64.1 {
		t.Errorf("inscribed rect area = %v, want close to 64", got)
	}
}

func TestEvaluateSolarProfiles(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneR2General, // residential, 15 floor limit
		Points: squareParcel(),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if len(result.Floors) == 0 {
		t.Fatal("expected floor profiles")
	}
	if result.Floors[0].Floor != 1 || result.Floors[0].TopHeight != 3 {
		t.Errorf("first floor = %+v", result.Floors[0])
	}

	// Floors topping out at or below 9 m need no north setback.
	for _, f := range result.Floors[:3] {
		if f.Setback != 0 {
			t.Errorf("floor %d setback = %v, want 0", f.Floor, f.Setback)
		}
	}

	// Floor 4 tops out at 12 m: setback (12-9)/2 = 1.5 m from the north
	// boundary. That still falls inside the 2 m regulation setback, so the
	// footprint is unchanged.
	f4 := result.Floors[3]
	if f4.Setback != 1.5 {
		t.Errorf("floor 4 setback = %v, want 1.5", f4.Setback)
	}
	if f4.CellCount != result.Floors[0].CellCount {
		t.Errorf("floor 4 cells = %d, want full footprint %d",
			f4.CellCount, result.Floors[0].CellCount)
	}

	// Floor 5 tops out at 15 m: 3 m setback finally bites into the
	// buildable footprint.
	f5 := result.Floors[4]
	if f5.Setback != 3 {
		t.Errorf("floor 5 setback = %v, want 3", f5.Setback)
	}
	if f5.CellCount >= result.Floors[0].CellCount {
		t.Errorf("floor 5 cells = %d, want fewer than ground %d",
			f5.CellCount, result.Floors[0].CellCount)
	}

	// Higher floors never regain cells.
	for i := 1; i < len(result.Floors); i++ {
		if result.Floors[i].CellCount > result.Floors[i-1].CellCount {
			t.Errorf("floor %d gained cells over floor %d",
				result.Floors[i].Floor, result.Floors[i-1].Floor)
		}
	}
}

func TestEvaluateNonResidentialSkipsSolar(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneCGeneral,
		Points: squareParcel(),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	for _, f := range result.Floors {
		if f.Setback != 0 {
			t.Errorf("floor %d setback = %v, want 0 in commercial zone", f.Floor, f.Setback)
		}
		if f.CellCount != result.Cells.Len() {
			t.Errorf("floor %d cells = %d, want full footprint %d",
				f.Floor, f.CellCount, result.Cells.Len())
		}
	}
}

func TestEvaluateRing(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	// Roughly 90x110 m block near Seoul city hall.
	ring := []geom.GeoPoint{
		{Lat: 37.5665, Lng: 126.9780},
		{Lat: 37.5665, Lng: 126.9790},
		{Lat: 37.5675, Lng: 126.9790},
		{Lat: 37.5675, Lng: 126.9780},
	}

	result, err := r.Evaluate(context.Background(), Options{
		Zone: zoning.ZoneR3General,
		Ring: ring,
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if result.Frame == nil {
		t.Fatal("ring input should produce a geo frame")
	}
	if area := result.Parcel.Area(); area < 8000 || area > 12000 {
		t.Errorf("parcel area = %v, want roughly 9800", area)
	}
	if result.Cells.Len() == 0 {
		t.Error("expected buildable cells")
	}
}

func TestEvaluateCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Zone: zoning.ZoneR2General, Points: squareParcel()}

	first, err := r.Evaluate(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Evaluate error: %v", err)
	}
	if first.CacheInfo.InsetHit || first.CacheInfo.RasterHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Evaluate(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Evaluate error: %v", err)
	}
	if !second.CacheInfo.InsetHit || !second.CacheInfo.RasterHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.Buildable.Area() != first.Buildable.Area() {
		t.Error("cached buildable differs from computed one")
	}
	if second.Cells.Len() != first.Cells.Len() {
		t.Error("cached cell set differs from computed one")
	}

	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := r.Evaluate(context.Background(), refreshOpts)
	if err != nil {
		t.Fatalf("refresh Evaluate error: %v", err)
	}
	if third.CacheInfo.InsetHit || third.CacheInfo.RasterHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestEvaluateCompliance(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneR2General,
		Points: squareParcel(),
		Placements: []compliance.Placement{
			{ModuleID: "unit-3x3", GridX: 7, GridZ: 7, Floor: 1},
		},
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if result.Compliance == nil {
		t.Fatal("expected compliance status")
	}
	if result.Compliance.Overall != compliance.LevelOK {
		t.Errorf("overall = %s, want ok (messages: %v)",
			result.Compliance.Overall, result.Compliance.Messages)
	}
}

func TestEvaluateErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	// Unknown zone
	_, err := r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneType("ZONE_MOON_BASE"),
		Points: squareParcel(),
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidZoneType {
		t.Errorf("unknown zone code = %s", errors.GetCode(err))
	}

	// Degenerate boundary with zero area
	_, err = r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneR2General,
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(10, 0)},
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidParcelArea {
		t.Errorf("degenerate boundary code = %s", errors.GetCode(err))
	}

	// Unknown module in placements
	_, err = r.Evaluate(context.Background(), Options{
		Zone:   zoning.ZoneR2General,
		Points: squareParcel(),
		Placements: []compliance.Placement{
			{ModuleID: "unit-99x99", GridX: 7, GridZ: 7, Floor: 1},
		},
	})
	if errors.GetCode(err) != errors.ErrCodeModuleNotFound {
		t.Errorf("unknown module code = %s", errors.GetCode(err))
	}
}
