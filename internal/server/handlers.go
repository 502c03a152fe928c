package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jinwoohan/plotgrid/pkg/compliance"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/grid"
	"github.com/jinwoohan/plotgrid/pkg/pipeline"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// evaluateResponse is the wire form of a pipeline result. Cell sets are
// flattened to spans; callers reconstruct geometry from those.
type evaluateResponse struct {
	Regulation zoning.Result           `json:"regulation"`
	Parcel     [][2]float64            `json:"parcel"`
	Buildable  [][2]float64            `json:"buildable"`
	CellCount  int                     `json:"cellCount"`
	Spans      []grid.Span             `json:"spans"`
	Rect       *rectResponse           `json:"rect,omitempty"`
	Floors     []pipeline.FloorProfile `json:"floors"`
	Compliance *compliance.Status      `json:"compliance,omitempty"`
	Cache      cacheResponse           `json:"cache"`
}

type rectResponse struct {
	MinX  float64 `json:"minX"`
	MinZ  float64 `json:"minZ"`
	MaxX  float64 `json:"maxX"`
	MaxZ  float64 `json:"maxZ"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
	Area  float64 `json:"area"`
}

type cacheResponse struct {
	InsetHit  bool `json:"insetHit"`
	RasterHit bool `json:"rasterHit"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	opts.Logger = s.logger
	opts.Table = s.table

	result, err := s.runner.Evaluate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := evaluateResponse{
		Regulation: result.Regulation,
		Parcel:     ringCoords(result.Parcel),
		Buildable:  ringCoords(result.Buildable),
		CellCount:  result.Cells.Len(),
		Spans:      result.Spans,
		Floors:     result.Floors,
		Compliance: result.Compliance,
		Cache: cacheResponse{
			InsetHit:  result.CacheInfo.InsetHit,
			RasterHit: result.CacheInfo.RasterHit,
		},
	}
	if result.RectOK {
		resp.Rect = &rectResponse{
			MinX:  result.Rect.MinX,
			MinZ:  result.Rect.MinZ,
			MaxX:  result.Rect.MaxX,
			MaxZ:  result.Rect.MaxZ,
			Width: result.Rect.Width(),
			Depth: result.Rect.Depth(),
			Area:  result.Rect.Area(),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"zones": s.table.Regulations(),
	})
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	zone := zoning.ZoneType(chi.URLParam(r, "zone"))
	reg, ok := s.table.Lookup(zone)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "unknown zone type %q", zone))
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func ringCoords(p geom.Polygon) [][2]float64 {
	coords := make([][2]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = [2]float64{v.X, v.Z}
	}
	return coords
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidZoneType,
		errors.ErrCodeInvalidParcelArea,
		errors.ErrCodeInvalidPolygon,
		errors.ErrCodeInvalidGrid,
		errors.ErrCodeInvalidPlacement,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeModuleNotFound,
		errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}

	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}
