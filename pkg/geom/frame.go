package geom

import "math"

// earthRadius is the WGS84 equatorial radius in meters.
const earthRadius = 6378137.0

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocalFrame converts between WGS84 coordinates and a local metric XZ plane
// centered on an origin, using an equirectangular approximation: X scales by
// cos(latitude), Z follows latitude directly, so north is +Z.
//
// The approximation is only valid for extents under roughly 10 km, which
// comfortably covers cadastral parcels.
type LocalFrame struct {
	Origin GeoPoint
	cosLat float64
}

// NewLocalFrame creates a frame centered on origin.
func NewLocalFrame(origin GeoPoint) LocalFrame {
	return LocalFrame{
		Origin: origin,
		cosLat: math.Cos(origin.Lat * math.Pi / 180),
	}
}

// FrameForRing creates a frame centered on the ring's vertex average and
// converts the ring into a local polygon. An empty ring yields an empty
// polygon and a frame at the zero origin.
func FrameForRing(ring []GeoPoint) (LocalFrame, Polygon) {
	if len(ring) == 0 {
		return NewLocalFrame(GeoPoint{}), Polygon{}
	}
	var lat, lng float64
	for _, g := range ring {
		lat += g.Lat
		lng += g.Lng
	}
	n := float64(len(ring))
	frame := NewLocalFrame(GeoPoint{Lat: lat / n, Lng: lng / n})

	pts := make([]Point, len(ring))
	for i, g := range ring {
		pts[i] = frame.ToLocal(g)
	}
	return frame, Polygon{Vertices: pts}
}

// ToLocal converts a WGS84 coordinate to local meters relative to the origin.
func (f LocalFrame) ToLocal(g GeoPoint) Point {
	return Point{
		X: (g.Lng - f.Origin.Lng) * math.Pi / 180 * earthRadius * f.cosLat,
		Z: (g.Lat - f.Origin.Lat) * math.Pi / 180 * earthRadius,
	}
}

// ToGeo converts a local point back to a WGS84 coordinate.
func (f LocalFrame) ToGeo(pt Point) GeoPoint {
	lng := f.Origin.Lng
	if f.cosLat > 1e-12 {
		lng += pt.X / (earthRadius * f.cosLat) * 180 / math.Pi
	}
	return GeoPoint{
		Lat: f.Origin.Lat + pt.Z/earthRadius*180/math.Pi,
		Lng: lng,
	}
}
