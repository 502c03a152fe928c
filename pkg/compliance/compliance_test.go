package compliance

import (
	"strings"
	"testing"

	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

func regR2(t *testing.T) zoning.Result {
	t.Helper()
	res, err := zoning.DefaultTable().CalculateRegulations(zoning.ParcelInput{
		Area: 200, Zone: zoning.ZoneR2General,
	})
	if err != nil {
		t.Fatalf("CalculateRegulations error: %v", err)
	}
	return res
}

func TestCheckAllOK(t *testing.T) {
	status := Check(PlacementSummary{
		TotalFootprintArea: 80, // 40% of 200 against a 60% cap
		TotalFloorArea:     240,
		MaxHeight:          9,
		MaxFloor:           3,
		AllWithinBoundary:  true,
		ParcelArea:         200,
	}, regR2(t))

	if status.Overall != LevelOK {
		t.Errorf("Overall = %v, want ok", status.Overall)
	}
	if len(status.Messages) != 0 {
		t.Errorf("Messages = %v, want none", status.Messages)
	}
	if status.CoverageRatio.Current != 40 {
		t.Errorf("coverage current = %v, want 40", status.CoverageRatio.Current)
	}
}

func TestCheckCoverageViolation(t *testing.T) {
	// 130/200 = 65% against a 60% cap.
	status := Check(PlacementSummary{
		TotalFootprintArea: 130,
		AllWithinBoundary:  true,
		ParcelArea:         200,
	}, regR2(t))

	if status.CoverageRatio.Current != 65 {
		t.Errorf("coverage current = %v, want 65", status.CoverageRatio.Current)
	}
	if status.CoverageRatio.Level != LevelViolation {
		t.Errorf("coverage level = %v, want violation", status.CoverageRatio.Level)
	}
	if status.Overall != LevelViolation {
		t.Errorf("Overall = %v, want violation", status.Overall)
	}

	found := false
	for _, msg := range status.Messages {
		if strings.Contains(msg, "건폐율") {
			found = true
		}
	}
	if !found {
		t.Errorf("no coverage message in %v", status.Messages)
	}
}

func TestCheckWarningBand(t *testing.T) {
	// 55% of a 60% cap is within the 90% warning band.
	status := Check(PlacementSummary{
		TotalFootprintArea: 110,
		AllWithinBoundary:  true,
		ParcelArea:         200,
	}, regR2(t))

	if status.CoverageRatio.Level != LevelWarning {
		t.Errorf("coverage level = %v, want warning", status.CoverageRatio.Level)
	}
	if status.Overall != LevelWarning {
		t.Errorf("Overall = %v, want warning", status.Overall)
	}
	if len(status.Messages) == 0 {
		t.Error("warning produced no message")
	}
}

func TestCheckBoundaryViolationDominates(t *testing.T) {
	// Everything else passes; only the boundary flag is down.
	status := Check(PlacementSummary{
		TotalFootprintArea: 10,
		TotalFloorArea:     10,
		MaxHeight:          3,
		MaxFloor:           1,
		AllWithinBoundary:  false,
		ParcelArea:         200,
	}, regR2(t))

	if status.Boundary.Level != LevelViolation {
		t.Errorf("boundary level = %v, want violation", status.Boundary.Level)
	}
	if status.Overall != LevelViolation {
		t.Errorf("Overall = %v, want violation", status.Overall)
	}
}

func TestCheckUnlimitedCapsPass(t *testing.T) {
	// ZONE_R3_GENERAL has no height or floor caps; absurd values still pass
	// those metrics.
	res, err := zoning.DefaultTable().CalculateRegulations(zoning.ParcelInput{
		Area: 200, Zone: zoning.ZoneR3General,
	})
	if err != nil {
		t.Fatalf("CalculateRegulations error: %v", err)
	}

	status := Check(PlacementSummary{
		MaxHeight:         300,
		MaxFloor:          99,
		AllWithinBoundary: true,
		ParcelArea:        200,
	}, res)

	if status.Height.Level != LevelOK {
		t.Errorf("height level = %v, want ok", status.Height.Level)
	}
	if status.Floors.Level != LevelOK {
		t.Errorf("floors level = %v, want ok", status.Floors.Level)
	}
}

func TestCheckZeroParcelArea(t *testing.T) {
	// Percentage metrics degrade to zero instead of dividing by zero.
	status := Check(PlacementSummary{
		TotalFootprintArea: 100,
		TotalFloorArea:     400,
		AllWithinBoundary:  true,
		ParcelArea:         0,
	}, regR2(t))

	if status.CoverageRatio.Current != 0 || status.FloorAreaRatio.Current != 0 {
		t.Errorf("ratio currents = %v, %v, want 0, 0",
			status.CoverageRatio.Current, status.FloorAreaRatio.Current)
	}
}

func TestWorse(t *testing.T) {
	tests := []struct {
		a, b, want Level
	}{
		{LevelOK, LevelOK, LevelOK},
		{LevelOK, LevelWarning, LevelWarning},
		{LevelWarning, LevelViolation, LevelViolation},
		{LevelViolation, LevelOK, LevelViolation},
	}
	for _, tt := range tests {
		if got := Worse(tt.a, tt.b); got != tt.want {
			t.Errorf("Worse(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
