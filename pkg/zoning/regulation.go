package zoning

import (
	"math"

	"github.com/jinwoohan/plotgrid/pkg/errors"
)

// FloorHeight is the nominal story height in meters used to convert a height
// cap into a floor count.
const FloorHeight = 3.0

// ParcelInput describes the parcel a regulation calculation runs against.
// Width and Depth are optional; when zero, both default to sqrt(Area) under
// the square-parcel assumption.
type ParcelInput struct {
	Area  float64  `json:"area"`
	Zone  ZoneType `json:"zoneType"`
	Width float64  `json:"width,omitempty"`
	Depth float64  `json:"depth,omitempty"`
}

// Result is the resolved regulation plus the limits derived from the parcel
// dimensions. It serializes as a single flat record; the field keys are part
// of the persisted/transmitted representation and must not change.
//
// EffectiveMaxFloors of 0 means no cap at all (both the height-derived and
// statutory floor limits are unlimited).
type Result struct {
	ZoneType          ZoneType `json:"zoneType"`
	ZoneNameKo        string   `json:"zoneNameKo"`
	MaxCoverageRatio  float64  `json:"maxCoverageRatio"`
	MaxFloorAreaRatio float64  `json:"maxFloorAreaRatio"`
	MaxHeight         float64  `json:"maxHeight"`
	MaxFloors         int      `json:"maxFloors"`
	SetbackFront      float64  `json:"setbackFront"`
	SetbackRear       float64  `json:"setbackRear"`
	SetbackLeft       float64  `json:"setbackLeft"`
	SetbackRight      float64  `json:"setbackRight"`

	BuildableArea        float64 `json:"buildableArea"`
	MaxBuildingFootprint float64 `json:"maxBuildingFootprint"`
	MaxTotalFloorArea    float64 `json:"maxTotalFloorArea"`
	EffectiveMaxFloors   int     `json:"effectiveMaxFloors"`
}

// Regulation returns the zone regulation embedded in the result.
func (r Result) Regulation() Regulation {
	return Regulation{
		Zone:              r.ZoneType,
		NameKo:            r.ZoneNameKo,
		MaxCoverageRatio:  r.MaxCoverageRatio,
		MaxFloorAreaRatio: r.MaxFloorAreaRatio,
		MaxHeight:         r.MaxHeight,
		MaxFloors:         r.MaxFloors,
		SetbackFront:      r.SetbackFront,
		SetbackRear:       r.SetbackRear,
		SetbackLeft:       r.SetbackLeft,
		SetbackRight:      r.SetbackRight,
	}
}

// CalculateRegulations derives the legal building limits for a parcel.
//
// Preconditions are enforced loudly: a non-positive area or a zone type
// absent from the table is a caller error, returned with the matching error
// code. The calculation itself is pure and deterministic; identical input
// always yields identical output.
func (t Table) CalculateRegulations(parcel ParcelInput) (Result, error) {
	if parcel.Area <= 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidParcelArea,
			"parcel area must be positive, got %g", parcel.Area)
	}
	reg, ok := t.Lookup(parcel.Zone)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeInvalidZoneType,
			"unknown zone type: %s", parcel.Zone)
	}

	side := math.Sqrt(parcel.Area)
	width := parcel.Width
	if width <= 0 {
		width = side
	}
	depth := parcel.Depth
	if depth <= 0 {
		depth = side
	}

	innerWidth := math.Max(0, width-reg.SetbackLeft-reg.SetbackRight)
	innerDepth := math.Max(0, depth-reg.SetbackFront-reg.SetbackRear)

	floorsByHeight := math.MaxInt
	if reg.MaxHeight > 0 {
		floorsByHeight = int(math.Floor(reg.MaxHeight / FloorHeight))
	}
	floorsByLimit := math.MaxInt
	if reg.MaxFloors > 0 {
		floorsByLimit = reg.MaxFloors
	}
	effectiveFloors := 0
	if floorsByHeight != math.MaxInt || floorsByLimit != math.MaxInt {
		effectiveFloors = min(floorsByHeight, floorsByLimit)
	}

	return Result{
		ZoneType:          reg.Zone,
		ZoneNameKo:        reg.NameKo,
		MaxCoverageRatio:  reg.MaxCoverageRatio,
		MaxFloorAreaRatio: reg.MaxFloorAreaRatio,
		MaxHeight:         reg.MaxHeight,
		MaxFloors:         reg.MaxFloors,
		SetbackFront:      reg.SetbackFront,
		SetbackRear:       reg.SetbackRear,
		SetbackLeft:       reg.SetbackLeft,
		SetbackRight:      reg.SetbackRight,

		BuildableArea:        innerWidth * innerDepth,
		MaxBuildingFootprint: parcel.Area * reg.MaxCoverageRatio / 100,
		MaxTotalFloorArea:    parcel.Area * reg.MaxFloorAreaRatio / 100,
		EffectiveMaxFloors:   effectiveFloors,
	}, nil
}
