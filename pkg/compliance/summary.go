package compliance

import (
	"github.com/jinwoohan/plotgrid/pkg/catalog"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/grid"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// Placement is one module placed by the external builder: a catalog module
// ID, the grid cell of the module's minimum corner, a cardinal rotation, and
// the floor number (1-based).
type Placement struct {
	ModuleID string `json:"moduleId"`
	GridX    int32  `json:"gridX"`
	GridZ    int32  `json:"gridZ"`
	Rotation int    `json:"rotation"`
	Floor    int    `json:"floor"`
}

// footprint returns the placement's world-space rectangle. Rotations of 90
// and 270 degrees swap the module's width and depth.
func (p Placement) footprint(m catalog.Module, g grid.Grid) geom.Rect {
	w, d := m.Width, m.Depth
	if p.Rotation == 90 || p.Rotation == 270 {
		w, d = d, w
	}
	o := g.CellOrigin(p.GridX, p.GridZ)
	return geom.Rect{MinX: o.X, MinZ: o.Z, MaxX: o.X + w, MaxZ: o.Z + d}
}

// Summarize aggregates a placement list into the PlacementSummary consumed
// by Check. Footprint area counts ground-floor modules only; floor area
// counts every module; the height of a placement is its floor number times
// the nominal story height. Boundary containment is evaluated against the
// buildable polygon for every placement on every floor.
//
// Unknown module IDs and non-cardinal rotations are caller errors and are
// rejected with coded errors.
func Summarize(placements []Placement, cat catalog.Catalog, g grid.Grid, buildable geom.Polygon, parcelArea float64) (PlacementSummary, error) {
	summary := PlacementSummary{
		AllWithinBoundary: true,
		ParcelArea:        parcelArea,
	}

	for _, p := range placements {
		if err := errors.ValidateModuleID(p.ModuleID); err != nil {
			return PlacementSummary{}, err
		}
		if err := errors.ValidateRotation(p.Rotation); err != nil {
			return PlacementSummary{}, err
		}
		if p.Floor < 1 {
			return PlacementSummary{}, errors.New(errors.ErrCodeInvalidPlacement,
				"floor must be >= 1, got %d", p.Floor)
		}
		m, ok := cat.Resolve(p.ModuleID)
		if !ok {
			return PlacementSummary{}, errors.New(errors.ErrCodeModuleNotFound,
				"module %q not in catalog", p.ModuleID)
		}

		rect := p.footprint(m, g)
		area := rect.Area()

		if p.Floor == 1 {
			summary.TotalFootprintArea += area
		}
		summary.TotalFloorArea += area

		if top := float64(p.Floor-1)*zoning.FloorHeight + m.Height; top > summary.MaxHeight {
			summary.MaxHeight = top
		}
		if p.Floor > summary.MaxFloor {
			summary.MaxFloor = p.Floor
		}
		if !buildable.ContainsRect(rect) {
			summary.AllWithinBoundary = false
		}
	}

	return summary, nil
}
