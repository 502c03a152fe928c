package errors

import (
	"regexp"
	"unicode"
)

// zoneTypeRegex matches the zone type identifier format used throughout the
// application (e.g. "ZONE_R2_GENERAL", "ZONE_C1_CENTRAL").
var zoneTypeRegex = regexp.MustCompile(`^ZONE_[A-Z0-9]+(_[A-Z0-9]+)*$`)

// ValidateZoneTypeString validates the shape of a zone type identifier.
// It does not check membership in the regulation table; that is the zoning
// package's responsibility. This guard rejects obviously malformed or unsafe
// strings before they reach lookups, logs, or cache keys.
func ValidateZoneTypeString(zone string) error {
	if zone == "" {
		return New(ErrCodeInvalidZoneType, "zone type cannot be empty")
	}

	if len(zone) > 64 {
		return New(ErrCodeInvalidZoneType, "zone type too long (max 64 characters)")
	}

	for _, r := range zone {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidZoneType, "zone type contains control characters")
		}
	}

	if !zoneTypeRegex.MatchString(zone) {
		return New(ErrCodeInvalidZoneType, "invalid zone type identifier: %q", zone)
	}

	return nil
}

// moduleIDRegex matches valid building module identifiers from the catalog
// (e.g. "unit-3x3", "core_stair", "M2").
var moduleIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateModuleID validates a building module identifier.
func ValidateModuleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPlacement, "module id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidPlacement, "module id too long (max 128 characters)")
	}

	if !moduleIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPlacement, "invalid module id: %q", id)
	}

	return nil
}

// ValidateRotation validates a placement rotation in degrees.
// Only the four cardinal rotations are representable on the construction grid.
func ValidateRotation(deg int) error {
	switch deg {
	case 0, 90, 180, 270:
		return nil
	}
	return New(ErrCodeInvalidPlacement, "rotation must be one of 0, 90, 180, 270; got %d", deg)
}
