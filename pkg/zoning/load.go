package zoning

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jinwoohan/plotgrid/pkg/errors"
)

// tableFile is the TOML shape of a zone-table override file:
//
//	[[zone]]
//	zone = "ZONE_R2_GENERAL"
//	name_ko = "제2종일반주거지역"
//	max_coverage_ratio = 60.0
//	max_floor_area_ratio = 250.0
//	...
type tableFile struct {
	Zones []Regulation `toml:"zone"`
}

// LoadTable reads a zone-table override file and layers it on top of the
// default table. Zones present in the file replace the built-in entries;
// all other zones keep their statutory defaults.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "zone table file %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read zone table %s", path)
	}
	return parseTable(data)
}

func parseTable(data []byte) (Table, error) {
	var file tableFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse zone table")
	}

	for _, r := range file.Zones {
		if err := errors.ValidateZoneTypeString(string(r.Zone)); err != nil {
			return Table{}, err
		}
		if r.MaxCoverageRatio <= 0 || r.MaxFloorAreaRatio <= 0 {
			return Table{}, errors.New(errors.ErrCodeInvalidConfig,
				"zone %s: coverage and floor-area ratios must be positive", r.Zone)
		}
		if r.MaxHeight < 0 || r.MaxFloors < 0 ||
			r.SetbackFront < 0 || r.SetbackRear < 0 || r.SetbackLeft < 0 || r.SetbackRight < 0 {
			return Table{}, errors.New(errors.ErrCodeInvalidConfig,
				"zone %s: limits and setbacks must be non-negative", r.Zone)
		}
	}

	return NewTable(append(DefaultTable().Regulations(), file.Zones...)), nil
}
