package zoning

// residentialZones enumerates the zone categories subject to the solar-access
// (daylight) height rule of 건축법 제61조. Quasi-residential is excluded.
var residentialZones = map[ZoneType]struct{}{
	ZoneR1Exclusive: {},
	ZoneR2Exclusive: {},
	ZoneR1General:   {},
	ZoneR2General:   {},
	ZoneR3General:   {},
}

// IsResidential reports whether the zone type falls under the solar-access rule.
func IsResidential(zone ZoneType) bool {
	_, ok := residentialZones[zone]
	return ok
}

// SolarMaxHeight returns the maximum legal building height at distance d
// meters south of the relevant north-facing boundary line.
//
// At or behind the boundary (d <= 0) the flat allowance is 9 m; beyond it the
// allowance grows at a 2:1 slope, 2 m of height per meter of southward
// distance. Monotonically non-decreasing in d.
func SolarMaxHeight(d float64) float64 {
	if d <= 0 {
		return 9
	}
	return 9 + 2*d
}

// SolarMinDistance inverts SolarMaxHeight: it returns the minimum distance
// from the north boundary at which a building part of the given height is
// legal. Heights within the flat 9 m allowance need no distance at all.
func SolarMinDistance(height float64) float64 {
	if height <= 9 {
		return 0
	}
	return (height - 9) / 2
}
