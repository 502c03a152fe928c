// Package pipeline provides the core evaluation pipeline for Plotgrid.
//
// This package implements the complete regulate → inset → rasterize → solar
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Regulate: Resolve the zoning regulation limits for the parcel
//  2. Inset: Shrink the parcel polygon by the largest setback distance
//  3. Rasterize: Project the buildable polygon onto the construction grid
//  4. Solar: Clip each floor's cells against the solar-access envelope
//
// When module placements are supplied, a fifth compliance stage checks them
// against the regulation limits.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Zone: zoning.ZoneR2General,
//	    Ring: ring, // WGS84 parcel boundary
//	}
//	result, err := runner.Evaluate(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Regulation.BuildableArea)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/jinwoohan/plotgrid/pkg/cache"
	"github.com/jinwoohan/plotgrid/pkg/compliance"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/grid"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultGridSize is the construction grid cell size in meters.
	DefaultGridSize = grid.DefaultSize

	// DefaultSteps is the default sampling resolution for the largest
	// inscribed rectangle search.
	DefaultSteps = geom.DefaultInscribedSteps

	// MaxSteps bounds the inscribed-rectangle sampling resolution; higher
	// requests are clamped rather than rejected.
	MaxSteps = geom.MaxInscribedSteps

	// DefaultMaxFloors bounds the per-floor solar profiles when the zone
	// imposes no floor limit of its own.
	DefaultMaxFloors = 30
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the evaluation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Zone selects the regulation row; required.
	Zone zoning.ZoneType `json:"zone"`

	// Ring is the parcel boundary as WGS84 coordinates. Exactly one of
	// Ring or Points must be set.
	Ring []geom.GeoPoint `json:"ring,omitempty"`

	// Points is the parcel boundary in local meters, +Z north.
	Points []geom.Point `json:"points,omitempty"`

	// ParcelArea overrides the area derived from the boundary polygon.
	// Cadastral records and surveyed polygons rarely agree exactly.
	ParcelArea float64 `json:"parcel_area,omitempty"`

	// Grid options
	GridSize float64 `json:"grid_size,omitempty"`
	OffsetX  float64 `json:"offset_x,omitempty"`
	OffsetZ  float64 `json:"offset_z,omitempty"`

	// Steps is the inscribed-rectangle sampling resolution.
	Steps int `json:"steps,omitempty"`

	// Placements are optional module placements to check for compliance.
	Placements []compliance.Placement `json:"placements,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger  `json:"-"`
	Table  zoning.Table `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Regulation holds the computed regulation limits.
	Regulation zoning.Result

	// Parcel is the boundary polygon in local meters.
	Parcel geom.Polygon

	// Frame maps local coordinates back to WGS84 when the input was a ring.
	Frame *geom.LocalFrame

	// Buildable is the parcel inset by the largest setback.
	Buildable geom.Polygon

	// Grid is the construction grid the cells were rasterized on.
	Grid grid.Grid

	// Cells are the buildable grid cells at ground level.
	Cells grid.CellSet

	// Spans are the ground cells grouped into per-row runs.
	Spans []grid.Span

	// Edges are the exposed boundary faces of the ground cells.
	Edges []grid.Edge

	// Rect is the largest axis-aligned rectangle inside the buildable
	// polygon; RectOK reports whether one was found.
	Rect   geom.Rect
	RectOK bool

	// Floors are the per-floor buildable profiles after solar clipping.
	Floors []FloorProfile

	// Compliance is set when placements were supplied.
	Compliance *compliance.Status

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// FloorProfile is the buildable footprint of a single floor after the
// solar-access envelope has been applied.
type FloorProfile struct {
	// Floor is the 1-based floor number.
	Floor int `json:"floor"`

	// TopHeight is the height of the floor's ceiling in meters.
	TopHeight float64 `json:"topHeight"`

	// Setback is the required distance from the north boundary in meters.
	Setback float64 `json:"setback"`

	// CellCount is the number of buildable cells remaining on this floor.
	CellCount int `json:"cellCount"`

	// Spans are the remaining cells grouped into per-row runs.
	Spans []grid.Span `json:"spans,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	FloorCount int
	Regulate   Timing
	Inset      Timing
	Raster     Timing
	Solar      Timing
}

// Timing is a stage duration in milliseconds.
type Timing float64

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	InsetHit  bool // Whether the buildable polygon came from cache
	RasterHit bool // Whether the ground cell set came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Zone == "" {
		return errors.New(errors.ErrCodeInvalidZoneType, "zone is required")
	}
	if len(o.Ring) == 0 && len(o.Points) == 0 {
		return errors.New(errors.ErrCodeInvalidPolygon, "ring or points is required")
	}
	if len(o.Ring) > 0 && len(o.Points) > 0 {
		return errors.New(errors.ErrCodeInvalidPolygon, "ring and points are mutually exclusive")
	}
	n := len(o.Ring)
	if len(o.Points) > n {
		n = len(o.Points)
	}
	if n < 3 {
		return errors.New(errors.ErrCodeInvalidPolygon, "boundary needs at least 3 vertices")
	}
	if o.ParcelArea < 0 {
		return errors.New(errors.ErrCodeInvalidParcelArea, "parcel area must not be negative")
	}

	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	if o.GridSize < 0 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid size must be positive")
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Steps > MaxSteps {
		o.Steps = MaxSteps
	}
	if o.Table.Len() == 0 {
		o.Table = zoning.DefaultTable()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// GridKeyOpts returns cache key options for rasterization.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{
		Size:    o.GridSize,
		OffsetX: o.OffsetX,
		OffsetZ: o.OffsetZ,
	}
}
