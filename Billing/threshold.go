package Billing

import (
	"fmt"
	"strconv"

	"PalkhiTrans/Models"

	"gorm.io/gorm"
)

// DefaultMinKmPerDay is the hard-coded floor used when the organization has
// not configured a value.
const DefaultMinKmPerDay = 300.0

// ThresholdPolicy supplies the minimum-distance-per-day constants. The per_km
// and hybrid floors are independently configurable. Constants are fetched
// fresh per billing run; nothing is cached beyond the run.
type ThresholdPolicy struct {
	PerKmFloorPerDay  float64
	HybridFloorPerDay float64
}

// LoadThresholdPolicy reads the organization settings, falling back to the
// default for keys that are absent or unparseable.
func LoadThresholdPolicy(db *gorm.DB) ThresholdPolicy {
	return ThresholdPolicy{
		PerKmFloorPerDay:  settingFloat(db, Models.SettingMinKmPerDay),
		HybridFloorPerDay: settingFloat(db, Models.SettingHybridMinKmPerDay),
	}
}

func settingFloat(db *gorm.DB, key string) float64 {
	raw, ok := Models.GetSetting(db, key)
	if !ok {
		return DefaultMinKmPerDay
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return DefaultMinKmPerDay
	}
	return v
}

// FloorPerDay returns the per-day floor for the variant; variants without a
// distance component have no floor.
func (p ThresholdPolicy) FloorPerDay(kind RateKind) float64 {
	switch kind {
	case RatePerKm:
		return p.PerKmFloorPerDay
	case RateHybrid:
		return p.HybridFloorPerDay
	default:
		return 0
	}
}

// ThresholdNote renders the human-readable note attached to a bill when the
// floor changed the billed distance. It names the per-day floor, the day
// count, the resulting floor, and the actual distance so a dispute can be
// resolved by reading the bill alone.
func ThresholdNote(floorPerDay float64, days int, minimumKm, actualKm float64) string {
	return fmt.Sprintf(
		"Minimum usage policy applied: %.0f km/day x %d days = %.0f km minimum. Actual distance %.0f km billed as %.0f km.",
		floorPerDay, days, minimumKm, actualKm, minimumKm,
	)
}
