// Package zoning implements the site-regulation engine: the zone regulation
// lookup table, the derivation of legal building limits for a parcel, and the
// residential solar-access height rule.
//
// Regulation constants follow the Korean land-use framework (국토의 계획 및
// 이용에 관한 법률): each use district carries a building coverage ratio
// (건폐율), a floor area ratio (용적률), optional height and floor caps, and
// per-side setbacks. A zero cap always means "unlimited", never "zero
// allowed".
//
// The default table is immutable. Deployments with municipal ordinance
// overrides construct a replacement table via NewTable or LoadTable; nothing
// in this package holds global mutable state.
package zoning

import "sort"

// ZoneType is a legal land-use classification governing permitted building bulk.
type ZoneType string

// The fixed zone type enumeration.
const (
	ZoneR1Exclusive ZoneType = "ZONE_R1_EXCLUSIVE" // 제1종전용주거지역
	ZoneR2Exclusive ZoneType = "ZONE_R2_EXCLUSIVE" // 제2종전용주거지역
	ZoneR1General   ZoneType = "ZONE_R1_GENERAL"   // 제1종일반주거지역
	ZoneR2General   ZoneType = "ZONE_R2_GENERAL"   // 제2종일반주거지역
	ZoneR3General   ZoneType = "ZONE_R3_GENERAL"   // 제3종일반주거지역
	ZoneRQuasi      ZoneType = "ZONE_R_QUASI"      // 준주거지역

	ZoneCCentral      ZoneType = "ZONE_C_CENTRAL"      // 중심상업지역
	ZoneCGeneral      ZoneType = "ZONE_C_GENERAL"      // 일반상업지역
	ZoneCNeighborhood ZoneType = "ZONE_C_NEIGHBORHOOD" // 근린상업지역
	ZoneCDistribution ZoneType = "ZONE_C_DISTRIBUTION" // 유통상업지역

	ZoneIExclusive ZoneType = "ZONE_I_EXCLUSIVE" // 전용공업지역
	ZoneIGeneral   ZoneType = "ZONE_I_GENERAL"   // 일반공업지역
	ZoneIQuasi     ZoneType = "ZONE_I_QUASI"     // 준공업지역

	ZoneGConservation ZoneType = "ZONE_G_CONSERVATION" // 보전녹지지역
	ZoneGProduction   ZoneType = "ZONE_G_PRODUCTION"   // 생산녹지지역
	ZoneGNatural      ZoneType = "ZONE_G_NATURAL"      // 자연녹지지역
)

// Regulation is the immutable set of bulk limits for one zone type.
// Percentages are whole percent values (60 = 60%); lengths are meters.
// A MaxHeight or MaxFloors of 0 means the zone imposes no cap.
type Regulation struct {
	Zone              ZoneType `json:"zoneType" toml:"zone"`
	NameKo            string   `json:"zoneNameKo" toml:"name_ko"`
	MaxCoverageRatio  float64  `json:"maxCoverageRatio" toml:"max_coverage_ratio"`
	MaxFloorAreaRatio float64  `json:"maxFloorAreaRatio" toml:"max_floor_area_ratio"`
	MaxHeight         float64  `json:"maxHeight" toml:"max_height"`
	MaxFloors         int      `json:"maxFloors" toml:"max_floors"`
	SetbackFront      float64  `json:"setbackFront" toml:"setback_front"`
	SetbackRear       float64  `json:"setbackRear" toml:"setback_rear"`
	SetbackLeft       float64  `json:"setbackLeft" toml:"setback_left"`
	SetbackRight      float64  `json:"setbackRight" toml:"setback_right"`
}

// MaxSetback returns the largest of the four setbacks. This is the governing
// inset distance when shrinking a parcel polygon to its buildable polygon.
func (r Regulation) MaxSetback() float64 {
	max := r.SetbackFront
	for _, s := range []float64{r.SetbackRear, r.SetbackLeft, r.SetbackRight} {
		if s > max {
			max = s
		}
	}
	return max
}

// Table maps zone types to their regulations.
type Table struct {
	regs map[ZoneType]Regulation
}

// NewTable builds a table from a regulation list. Later entries for the same
// zone type overwrite earlier ones, which lets callers layer municipal
// overrides on top of DefaultTable().Regulations().
func NewTable(regs []Regulation) Table {
	m := make(map[ZoneType]Regulation, len(regs))
	for _, r := range regs {
		m[r.Zone] = r
	}
	return Table{regs: m}
}

// Lookup returns the regulation for a zone type.
func (t Table) Lookup(zone ZoneType) (Regulation, bool) {
	r, ok := t.regs[zone]
	return r, ok
}

// Types returns the zone types in the table, sorted for deterministic output.
func (t Table) Types() []ZoneType {
	out := make([]ZoneType, 0, len(t.regs))
	for z := range t.regs {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Regulations returns all regulations ordered by zone type.
func (t Table) Regulations() []Regulation {
	types := t.Types()
	out := make([]Regulation, len(types))
	for i, z := range types {
		out[i] = t.regs[z]
	}
	return out
}

// Len returns the number of zone types in the table.
func (t Table) Len() int {
	return len(t.regs)
}

// defaultRegulations carries the statutory caps of 국토계획법 시행령 and the
// setback practice this engine was built against.
var defaultRegulations = []Regulation{
	{Zone: ZoneR1Exclusive, NameKo: "제1종전용주거지역", MaxCoverageRatio: 50, MaxFloorAreaRatio: 100, MaxHeight: 0, MaxFloors: 2, SetbackFront: 1, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneR2Exclusive, NameKo: "제2종전용주거지역", MaxCoverageRatio: 50, MaxFloorAreaRatio: 150, MaxHeight: 21, MaxFloors: 0, SetbackFront: 1, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneR1General, NameKo: "제1종일반주거지역", MaxCoverageRatio: 60, MaxFloorAreaRatio: 150, MaxHeight: 12, MaxFloors: 4, SetbackFront: 1, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneR2General, NameKo: "제2종일반주거지역", MaxCoverageRatio: 60, MaxFloorAreaRatio: 200, MaxHeight: 0, MaxFloors: 15, SetbackFront: 2, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneR3General, NameKo: "제3종일반주거지역", MaxCoverageRatio: 50, MaxFloorAreaRatio: 300, MaxHeight: 0, MaxFloors: 0, SetbackFront: 2, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneRQuasi, NameKo: "준주거지역", MaxCoverageRatio: 70, MaxFloorAreaRatio: 500, MaxHeight: 0, MaxFloors: 0, SetbackFront: 2, SetbackRear: 1, SetbackLeft: 1, SetbackRight: 1},

	{Zone: ZoneCCentral, NameKo: "중심상업지역", MaxCoverageRatio: 90, MaxFloorAreaRatio: 1500, MaxHeight: 0, MaxFloors: 0},
	{Zone: ZoneCGeneral, NameKo: "일반상업지역", MaxCoverageRatio: 80, MaxFloorAreaRatio: 1300, MaxHeight: 0, MaxFloors: 0},
	{Zone: ZoneCNeighborhood, NameKo: "근린상업지역", MaxCoverageRatio: 70, MaxFloorAreaRatio: 900, MaxHeight: 0, MaxFloors: 0},
	{Zone: ZoneCDistribution, NameKo: "유통상업지역", MaxCoverageRatio: 80, MaxFloorAreaRatio: 1100, MaxHeight: 0, MaxFloors: 0},

	{Zone: ZoneIExclusive, NameKo: "전용공업지역", MaxCoverageRatio: 70, MaxFloorAreaRatio: 300, MaxHeight: 0, MaxFloors: 0, SetbackFront: 3, SetbackRear: 3, SetbackLeft: 3, SetbackRight: 3},
	{Zone: ZoneIGeneral, NameKo: "일반공업지역", MaxCoverageRatio: 70, MaxFloorAreaRatio: 350, MaxHeight: 0, MaxFloors: 0, SetbackFront: 3, SetbackRear: 2, SetbackLeft: 1, SetbackRight: 1},
	{Zone: ZoneIQuasi, NameKo: "준공업지역", MaxCoverageRatio: 70, MaxFloorAreaRatio: 400, MaxHeight: 0, MaxFloors: 0, SetbackFront: 2, SetbackRear: 2, SetbackLeft: 2, SetbackRight: 2},

	{Zone: ZoneGConservation, NameKo: "보전녹지지역", MaxCoverageRatio: 20, MaxFloorAreaRatio: 80, MaxHeight: 12, MaxFloors: 4, SetbackFront: 2, SetbackRear: 2, SetbackLeft: 2, SetbackRight: 2},
	{Zone: ZoneGProduction, NameKo: "생산녹지지역", MaxCoverageRatio: 20, MaxFloorAreaRatio: 100, MaxHeight: 12, MaxFloors: 4, SetbackFront: 2, SetbackRear: 2, SetbackLeft: 2, SetbackRight: 2},
	{Zone: ZoneGNatural, NameKo: "자연녹지지역", MaxCoverageRatio: 20, MaxFloorAreaRatio: 100, MaxHeight: 12, MaxFloors: 4, SetbackFront: 2, SetbackRear: 2, SetbackLeft: 2, SetbackRight: 2},
}

// DefaultTable returns the built-in statutory regulation table.
// The returned value shares no mutable state with the package.
func DefaultTable() Table {
	return NewTable(defaultRegulations)
}
