package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jinwoohan/plotgrid/pkg/cache"
	"github.com/jinwoohan/plotgrid/pkg/catalog"
	"github.com/jinwoohan/plotgrid/pkg/compliance"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/grid"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Catalog catalog.Catalog
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Catalog: catalog.Default(),
	}
}

// Evaluate runs the complete regulate → inset → rasterize → solar pipeline
// with caching, plus the compliance stage when placements are supplied.
func (r *Runner) Evaluate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Boundary: local points or a WGS84 ring projected onto a local frame.
	parcel, frame := localBoundary(opts)
	result.Parcel = parcel
	result.Frame = frame

	area := opts.ParcelArea
	if area == 0 {
		area = parcel.Area()
	}
	minP, maxP := parcel.BoundingBox()

	// Stage 1: Regulate
	regStart := time.Now()
	reg, err := opts.Table.CalculateRegulations(zoning.ParcelInput{
		Area:  area,
		Zone:  opts.Zone,
		Width: maxP.X - minP.X,
		Depth: maxP.Z - minP.Z,
	})
	if err != nil {
		return nil, err
	}
	result.Regulation = reg
	result.Stats.Regulate = since(regStart)

	r.Logger.Info("resolved regulation",
		"zone", reg.ZoneType,
		"coverage", reg.MaxCoverageRatio,
		"far", reg.MaxFloorAreaRatio,
		"floors", reg.EffectiveMaxFloors)

	// Stage 2: Inset
	insetStart := time.Now()
	buildable, insetHit, err := r.InsetWithCacheInfo(ctx, parcel, reg.Regulation().MaxSetback(), opts)
	if err != nil {
		return nil, err
	}
	result.Buildable = buildable
	result.CacheInfo.InsetHit = insetHit
	result.Stats.Inset = since(insetStart)

	r.Logger.Info("inset boundary",
		"setback", reg.Regulation().MaxSetback(),
		"area", buildable.Area(),
		"cached", insetHit)

	// Stage 3: Rasterize
	rasterStart := time.Now()
	g := grid.New(opts.GridSize, opts.OffsetX, opts.OffsetZ)
	cells, rasterHit, err := r.RasterizeWithCacheInfo(ctx, g, buildable, opts)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Cells = cells
	result.Spans = grid.RowSpans(cells)
	result.Edges = g.BoundaryEdges(cells, 0)
	result.CacheInfo.RasterHit = rasterHit
	result.Stats.Raster = since(rasterStart)
	result.Stats.CellCount = cells.Len()

	r.Logger.Info("rasterized cells",
		"cells", cells.Len(),
		"spans", len(result.Spans),
		"cached", rasterHit)

	result.Rect, result.RectOK = buildable.MaxInscribedRect(opts.Steps)

	// Stage 4: Solar
	solarStart := time.Now()
	result.Floors = r.solarProfiles(g, cells, maxP.Z, reg)
	result.Stats.Solar = since(solarStart)
	result.Stats.FloorCount = len(result.Floors)

	r.Logger.Info("computed solar envelope",
		"floors", len(result.Floors),
		"residential", zoning.IsResidential(reg.ZoneType))

	// Stage 5: Compliance (optional)
	if len(opts.Placements) > 0 {
		summary, err := compliance.Summarize(opts.Placements, r.Catalog, g, buildable, area)
		if err != nil {
			return nil, err
		}
		status := compliance.Check(summary, reg)
		result.Compliance = &status

		r.Logger.Info("checked compliance",
			"placements", len(opts.Placements),
			"overall", status.Overall)
	}

	return result, nil
}

// InsetWithCacheInfo computes the buildable polygon with caching and returns
// cache hit info. A setback of zero is returned directly without touching
// the cache.
func (r *Runner) InsetWithCacheInfo(ctx context.Context, parcel geom.Polygon, setback float64, opts Options) (geom.Polygon, bool, error) {
	if setback <= 0 {
		return parcel, false, nil
	}

	key := r.Keyer.InsetKey(hashPolygon(parcel), setback)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if poly, err := unmarshalPolygon(data); err == nil {
				return poly, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	buildable := parcel.Inset(setback)

	if data, err := marshalPolygon(buildable); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLInset)
	}

	return buildable, false, nil // Cache miss
}

// RasterizeWithCacheInfo rasterizes the polygon onto the grid with caching
// and returns cache hit info.
func (r *Runner) RasterizeWithCacheInfo(ctx context.Context, g grid.Grid, poly geom.Polygon, opts Options) (grid.CellSet, bool, error) {
	key := r.Keyer.GridKey(hashPolygon(poly), opts.GridKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cells, err := unmarshalCells(data); err == nil {
				return cells, true, nil // Cache hit
			}
		}
	}

	cells := g.CellsInPolygon(poly)

	if data, err := marshalCells(cells); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLGrid)
	}

	return cells, false, nil // Cache miss
}

// solarProfiles builds the per-floor buildable profiles. Floors are clipped
// from the north boundary down in residential zones; other zones keep the
// full ground footprint on every floor.
func (r *Runner) solarProfiles(g grid.Grid, cells grid.CellSet, northZ float64, reg zoning.Result) []FloorProfile {
	floors := reg.EffectiveMaxFloors
	if floors <= 0 || floors > DefaultMaxFloors {
		floors = DefaultMaxFloors
	}
	residential := zoning.IsResidential(reg.ZoneType)

	profiles := make([]FloorProfile, 0, floors)
	for f := 1; f <= floors; f++ {
		top := float64(f) * zoning.FloorHeight
		var setback float64
		floorCells := cells
		if residential {
			setback = zoning.SolarMinDistance(top)
			if setback > 0 {
				floorCells = g.ClipNorth(cells, northZ-setback)
			}
		}
		profiles = append(profiles, FloorProfile{
			Floor:     f,
			TopHeight: top,
			Setback:   setback,
			CellCount: floorCells.Len(),
			Spans:     grid.RowSpans(floorCells),
		})
		// Once the envelope eats the whole footprint, higher floors stay empty.
		if floorCells.Len() == 0 {
			break
		}
	}
	return profiles
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// localBoundary converts the configured boundary into a local polygon.
// Rings are projected through an equirectangular frame centered on the ring.
func localBoundary(opts Options) (geom.Polygon, *geom.LocalFrame) {
	if len(opts.Points) > 0 {
		return geom.NewPolygon(opts.Points...), nil
	}
	frame, poly := geom.FrameForRing(opts.Ring)
	return poly, &frame
}

func since(start time.Time) Timing {
	return Timing(float64(time.Since(start)) / float64(time.Millisecond))
}

// =============================================================================
// Cache Serialization
// =============================================================================

// hashPolygon produces a content hash of a polygon's vertices. Vertex order
// matters: the same ring rotated or reversed hashes differently, which is
// fine for memoization.
func hashPolygon(p geom.Polygon) string {
	data, err := marshalPolygon(p)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func marshalPolygon(p geom.Polygon) ([]byte, error) {
	coords := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = [2]float64{v.X, v.Z}
	}
	return json.Marshal(coords)
}

func unmarshalPolygon(data []byte) (geom.Polygon, error) {
	var coords [][2]float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return geom.Polygon{}, err
	}
	pts := make([]geom.Point, len(coords))
	for i, c := range coords {
		pts[i] = geom.Pt(c[0], c[1])
	}
	return geom.NewPolygon(pts...), nil
}

// marshalCells serializes a cell set as a sorted key list so identical sets
// always produce identical bytes.
func marshalCells(cells grid.CellSet) ([]byte, error) {
	keys := make([]uint64, 0, len(cells))
	for k := range cells {
		keys = append(keys, uint64(k))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return json.Marshal(keys)
}

func unmarshalCells(data []byte) (grid.CellSet, error) {
	var keys []uint64
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	cells := grid.NewCellSet()
	for _, k := range keys {
		cells.Add(grid.CellKey(k))
	}
	return cells, nil
}
