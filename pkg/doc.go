// Package pkg provides the core libraries for Plotgrid buildable-geometry
// evaluation.
//
// # Overview
//
// Plotgrid answers one question: given a parcel and its zoning designation
// under Korean land-use law, what can legally be built there? The pkg
// directory is organized into five main areas:
//
//  1. [zoning] - The regulation table, derived limits, and solar-access rules
//  2. [geom] / [grid] - Polygon geometry and the 0.6 m construction grid
//  3. [compliance] - Placement aggregation and limit checking
//  4. [pipeline] - Orchestration (regulate → inset → rasterize → solar)
//  5. [cache] / [render] - Result memoization and PNG site diagrams
//
// # Architecture
//
// The typical data flow through Plotgrid:
//
//	Parcel boundary (WGS84 ring or local meters)
//	         ↓
//	zoning.Table.CalculateRegulations   (coverage, FAR, height, setbacks)
//	         ↓
//	geom.Polygon.Inset            (buildable polygon after setbacks)
//	         ↓
//	grid.Grid.CellsInPolygon      (cells, row spans, boundary edges)
//	         ↓
//	grid.Grid.ClipNorth per floor (solar-access stepping)
//	         ↓
//	compliance.Check              (optional, when placements are given)
//
// All stages are pure functions of their inputs; the pipeline package adds
// caching and logging around them without changing their results.
package pkg
