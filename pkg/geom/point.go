// Package geom provides the 2D computational geometry used by the
// site-regulation engine: polygon area and winding, inward offsetting,
// point-in-polygon tests, scanline clipping, and inscribed-rectangle search.
//
// All coordinates live in the XZ plane in meters (Y is up in the 3D scene).
// Every operation in this package is total: malformed or degenerate input
// produces an empty or zero-valued result, never a panic. The polygon
// functions drive live rendering in downstream editors, so degrading
// gracefully matters more than rejecting bad geometry.
package geom

import "math"

// Point represents a point in the XZ plane (Y is up in the 3D scene).
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, z float64) Point {
	return Point{X: x, Z: z}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Z * s}
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Z)
}

// Normalize returns the unit vector in the same direction.
// Returns the zero vector if length is zero.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Z / l}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Z*q.Z
}

// Cross returns the 2D cross product (z-component of the 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Z - p.Z*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Perp returns p rotated 90 degrees counterclockwise.
func (p Point) Perp() Point {
	return Point{-p.Z, p.X}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Z + q.Z) / 2}
}
