// Package catalog resolves building module identifiers to physical
// dimensions. The placement editor stores only module IDs and grid
// positions; everything that needs real geometry (compliance scoring,
// boundary checks) resolves through a Catalog.
package catalog

// Module is one placeable building module. Dimensions are meters; Width runs
// along X and Depth along Z at rotation 0.
type Module struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// FootprintArea returns the module's footprint in square meters.
func (m Module) FootprintArea() float64 {
	return m.Width * m.Depth
}

// Catalog resolves module IDs to modules.
type Catalog interface {
	// Resolve returns the module for an ID, with ok false when unknown.
	Resolve(id string) (Module, bool)
}

// Static is an immutable map-backed catalog.
type Static map[string]Module

// NewStatic builds a catalog from a module list.
func NewStatic(modules ...Module) Static {
	s := make(Static, len(modules))
	for _, m := range modules {
		s[m.ID] = m
	}
	return s
}

// Resolve implements Catalog.
func (s Static) Resolve(id string) (Module, bool) {
	m, ok := s[id]
	return m, ok
}

// Ensure Static implements Catalog.
var _ Catalog = (Static)(nil)

// Default returns the built-in module set used by the CLI. Dimensions are
// multiples of the 0.6 m construction grid.
func Default() Static {
	return NewStatic(
		Module{ID: "unit-3x3", Name: "Room 3x3", Width: 3, Depth: 3, Height: 3},
		Module{ID: "unit-3x6", Name: "Room 3x6", Width: 3, Depth: 6, Height: 3},
		Module{ID: "unit-6x6", Name: "Room 6x6", Width: 6, Depth: 6, Height: 3},
		Module{ID: "unit-6x9", Name: "Hall 6x9", Width: 6, Depth: 9, Height: 3},
		Module{ID: "core-stair", Name: "Stair core", Width: 2.4, Depth: 2.4, Height: 3},
		Module{ID: "core-lift", Name: "Lift core", Width: 2.4, Depth: 3, Height: 3},
	)
}
