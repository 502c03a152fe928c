// Package render draws evaluation results as PNG site diagrams.
//
// The diagram is a top-down plan view: north is up, one meter maps to a
// configurable number of pixels. The parcel boundary, the buildable area
// after setbacks, the rasterized grid cells of the selected floor, and the
// largest inscribed rectangle are drawn as stacked layers.
package render

import (
	"bytes"
	"os"

	"github.com/fogleman/gg"

	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/pipeline"
)

// Layer colors. The palette mirrors the CLI status colors so PNG output and
// terminal output read the same way.
const (
	colorBackground = "#FFFFFF"
	colorParcelFill = "#F4F1EA"
	colorParcelLine = "#8A8578"
	colorBuildable  = "#DDEBDD"
	colorCellFill   = "#7FB285"
	colorCellLine   = "#5E8A63"
	colorRectLine   = "#C2543A"
	colorEdgeLine   = "#2F4838"
)

// Default rendering parameters.
const (
	DefaultScale  = 10.0 // pixels per meter
	DefaultMargin = 24.0 // pixels around the drawing
)

// Options controls the rendered diagram.
type Options struct {
	// Scale is the number of pixels per meter. Zero means DefaultScale.
	Scale float64

	// Margin is the padding around the parcel in pixels.
	Margin float64

	// Floor selects which floor's cells to draw, 1-based. Zero draws the
	// ground cells before solar clipping.
	Floor int

	// ShowRect draws the largest inscribed rectangle outline.
	ShowRect bool

	// ShowEdges draws the exposed boundary faces of the cell set.
	ShowEdges bool
}

// plan maps local meters onto the pixel canvas with north up.
type plan struct {
	minX, minZ float64
	maxZ       float64
	scale      float64
	margin     float64
}

func (p plan) px(pt geom.Point) (float64, float64) {
	x := p.margin + (pt.X-p.minX)*p.scale
	// +Z is north; image y grows downward.
	y := p.margin + (p.maxZ-pt.Z)*p.scale
	return x, y
}

// PNG renders the evaluation result as a PNG image.
func PNG(result *pipeline.Result, opts Options) ([]byte, error) {
	if result == nil || result.Parcel.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidPolygon, "nothing to render")
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Margin <= 0 {
		opts.Margin = DefaultMargin
	}

	minP, maxP := result.Parcel.BoundingBox()
	p := plan{
		minX:   minP.X,
		minZ:   minP.Z,
		maxZ:   maxP.Z,
		scale:  opts.Scale,
		margin: opts.Margin,
	}
	width := int((maxP.X-minP.X)*opts.Scale + 2*opts.Margin)
	height := int((maxP.Z-minP.Z)*opts.Scale + 2*opts.Margin)
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidPolygon, "degenerate parcel bounds")
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	// Parcel outline
	tracePolygon(dc, p, result.Parcel)
	dc.SetHexColor(colorParcelFill)
	dc.FillPreserve()
	dc.SetHexColor(colorParcelLine)
	dc.SetLineWidth(2)
	dc.Stroke()

	// Buildable area after setbacks
	if !result.Buildable.IsEmpty() {
		tracePolygon(dc, p, result.Buildable)
		dc.SetHexColor(colorBuildable)
		dc.Fill()
	}

	drawCells(dc, p, result, opts.Floor)

	if opts.ShowEdges {
		dc.SetHexColor(colorEdgeLine)
		dc.SetLineWidth(2)
		for _, e := range result.Edges {
			x1, y1 := p.px(geom.Pt(e.AX, e.AZ))
			x2, y2 := p.px(geom.Pt(e.BX, e.BZ))
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
	}

	if opts.ShowRect && result.RectOK {
		x, y := p.px(geom.Pt(result.Rect.MinX, result.Rect.MaxZ))
		dc.SetHexColor(colorRectLine)
		dc.SetLineWidth(2)
		dc.DrawRectangle(x, y, result.Rect.Width()*p.scale, result.Rect.Depth()*p.scale)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// SavePNG renders the result and writes it to path.
func SavePNG(path string, result *pipeline.Result, opts Options) error {
	data, err := PNG(result, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func tracePolygon(dc *gg.Context, p plan, poly geom.Polygon) {
	for i, v := range poly.Vertices {
		x, y := p.px(v)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// drawCells draws the cell spans of the selected floor. Spans keep the draw
// call count proportional to rows rather than cells.
func drawCells(dc *gg.Context, p plan, result *pipeline.Result, floor int) {
	spans := result.Spans
	if floor > 0 {
		spans = nil
		for _, f := range result.Floors {
			if f.Floor == floor {
				spans = f.Spans
				break
			}
		}
	}

	size := result.Grid.Size
	dc.SetLineWidth(1)
	for _, s := range spans {
		origin := result.Grid.CellOrigin(s.MinX, s.Z)
		// Top-left pixel corner is the north-west corner of the span.
		x, y := p.px(geom.Pt(origin.X, origin.Z+size))
		w := float64(s.MaxX-s.MinX+1) * size * p.scale
		h := size * p.scale
		dc.DrawRectangle(x, y, w, h)
		dc.SetHexColor(colorCellFill)
		dc.FillPreserve()
		dc.SetHexColor(colorCellLine)
		dc.Stroke()
	}
}
