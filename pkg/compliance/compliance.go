// Package compliance scores a set of placed building modules against the
// legal limits derived by the zoning engine.
//
// Checking is pure and stateless: the full status is recomputed on every
// call from the current placement summary, so the external editor can simply
// re-invoke Check after each edit. Nothing here mutates its inputs or keeps
// state between calls.
package compliance

import (
	"fmt"

	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// Level classifies a metric or the overall verdict.
type Level string

const (
	LevelOK        Level = "ok"
	LevelWarning   Level = "warning"
	LevelViolation Level = "violation"
)

// rank orders levels by severity for worst-of aggregation.
func rank(l Level) int {
	switch l {
	case LevelViolation:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two levels.
func Worse(a, b Level) Level {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// warnThreshold is the fraction of a limit at which a metric turns from OK
// to WARNING.
const warnThreshold = 0.9

// Metric is one scored limit: the current value, the legal maximum, and the
// resulting level. For ratio metrics both values are percentages.
type Metric struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`
	Level   Level   `json:"level"`
}

// PlacementSummary is the aggregated state of all placed modules, recomputed
// by the builder on every edit.
type PlacementSummary struct {
	TotalFootprintArea float64 `json:"totalFootprintArea"`
	TotalFloorArea     float64 `json:"totalFloorArea"`
	MaxHeight          float64 `json:"maxHeight"`
	MaxFloor           int     `json:"maxFloor"`
	AllWithinBoundary  bool    `json:"allWithinBoundary"`
	ParcelArea         float64 `json:"parcelArea"`
}

// Status is the full compliance verdict: the worst level across the five
// metrics plus human-readable messages for everything at warning level or
// above. Consumed by the editor's status bar.
type Status struct {
	Overall        Level    `json:"overall"`
	CoverageRatio  Metric   `json:"coverageRatio"`
	FloorAreaRatio Metric   `json:"floorAreaRatio"`
	Height         Metric   `json:"height"`
	Floors         Metric   `json:"floors"`
	Boundary       Metric   `json:"boundary"`
	Messages       []string `json:"messages"`
}

// checkRatio classifies a percentage metric against its cap. A cap of zero
// or below means the zone imposes no limit and always passes.
func checkRatio(current, max float64) Level {
	if max <= 0 {
		return LevelOK
	}
	ratio := current / max
	switch {
	case ratio > 1:
		return LevelViolation
	case ratio >= warnThreshold:
		return LevelWarning
	default:
		return LevelOK
	}
}

// checkValue classifies an absolute metric against its cap, with the same
// zero-means-unlimited rule.
func checkValue(current, max float64) Level {
	if max <= 0 {
		return LevelOK
	}
	switch {
	case current > max:
		return LevelViolation
	case current >= max*warnThreshold:
		return LevelWarning
	default:
		return LevelOK
	}
}

// Check scores the placement summary against the regulation result.
func Check(summary PlacementSummary, reg zoning.Result) Status {
	var status Status
	var messages []string

	// Percentage metrics are expressed relative to the parcel area.
	coverage := 0.0
	floorArea := 0.0
	if summary.ParcelArea > 0 {
		coverage = summary.TotalFootprintArea / summary.ParcelArea * 100
		floorArea = summary.TotalFloorArea / summary.ParcelArea * 100
	}

	status.CoverageRatio = Metric{
		Current: coverage,
		Max:     reg.MaxCoverageRatio,
		Level:   checkRatio(coverage, reg.MaxCoverageRatio),
	}
	switch status.CoverageRatio.Level {
	case LevelViolation:
		messages = append(messages, fmt.Sprintf(
			"건폐율 위반: building coverage %.1f%% exceeds the %.0f%% limit", coverage, reg.MaxCoverageRatio))
	case LevelWarning:
		messages = append(messages, fmt.Sprintf(
			"building coverage %.1f%% is approaching the %.0f%% limit", coverage, reg.MaxCoverageRatio))
	}

	status.FloorAreaRatio = Metric{
		Current: floorArea,
		Max:     reg.MaxFloorAreaRatio,
		Level:   checkRatio(floorArea, reg.MaxFloorAreaRatio),
	}
	switch status.FloorAreaRatio.Level {
	case LevelViolation:
		messages = append(messages, fmt.Sprintf(
			"용적률 위반: floor area ratio %.1f%% exceeds the %.0f%% limit", floorArea, reg.MaxFloorAreaRatio))
	case LevelWarning:
		messages = append(messages, fmt.Sprintf(
			"floor area ratio %.1f%% is approaching the %.0f%% limit", floorArea, reg.MaxFloorAreaRatio))
	}

	status.Height = Metric{
		Current: summary.MaxHeight,
		Max:     reg.MaxHeight,
		Level:   checkValue(summary.MaxHeight, reg.MaxHeight),
	}
	switch status.Height.Level {
	case LevelViolation:
		messages = append(messages, fmt.Sprintf(
			"building height %.1fm exceeds the %.1fm limit", summary.MaxHeight, reg.MaxHeight))
	case LevelWarning:
		messages = append(messages, fmt.Sprintf(
			"building height %.1fm is approaching the %.1fm limit", summary.MaxHeight, reg.MaxHeight))
	}

	status.Floors = Metric{
		Current: float64(summary.MaxFloor),
		Max:     float64(reg.EffectiveMaxFloors),
		Level:   checkValue(float64(summary.MaxFloor), float64(reg.EffectiveMaxFloors)),
	}
	switch status.Floors.Level {
	case LevelViolation:
		messages = append(messages, fmt.Sprintf(
			"floor count %d exceeds the %d floor limit", summary.MaxFloor, reg.EffectiveMaxFloors))
	case LevelWarning:
		messages = append(messages, fmt.Sprintf(
			"floor count %d is approaching the %d floor limit", summary.MaxFloor, reg.EffectiveMaxFloors))
	}

	status.Boundary = Metric{Current: 1, Max: 1, Level: LevelOK}
	if !summary.AllWithinBoundary {
		status.Boundary = Metric{Current: 0, Max: 1, Level: LevelViolation}
		messages = append(messages, "one or more modules extend beyond the buildable boundary")
	}

	status.Overall = LevelOK
	for _, m := range []Metric{status.CoverageRatio, status.FloorAreaRatio, status.Height, status.Floors, status.Boundary} {
		status.Overall = Worse(status.Overall, m.Level)
	}
	status.Messages = messages
	return status
}
