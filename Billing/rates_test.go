package Billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestResolveTotal(t *testing.T) {
	// Scenario A: fixed total 5000, no floor involvement
	charge := Resolve(TotalRate(d(5000)), 3, 700, 0)

	assert.True(t, charge.FinalAmount.Equal(d(5000)), "got %s", charge.FinalAmount)
	assert.Equal(t, "total", charge.Breakdown.RateType)
	assert.False(t, charge.Breakdown.ThresholdApplied)
	assert.Zero(t, charge.Breakdown.ChargedKm)
	assert.True(t, charge.Breakdown.DayAmount.IsZero())
	assert.True(t, charge.Breakdown.DistanceAmount.IsZero())
}

func TestResolvePerDay(t *testing.T) {
	charge := Resolve(PerDayRate(d(1500)), 4, 0, 0)

	assert.True(t, charge.FinalAmount.Equal(d(6000)), "got %s", charge.FinalAmount)
	assert.Equal(t, 4, charge.Breakdown.Days)
	assert.True(t, charge.Breakdown.DayAmount.Equal(d(6000)))
}

func TestResolvePerKmBelowFloor(t *testing.T) {
	// Scenario B: 12/km, 3 days, 300 km/day floor, 700 actual
	// floor = 900 > actual -> charged 900, amount 10800
	charge := Resolve(PerKmRate(d(12)), 3, 700, 300)

	require.True(t, charge.FinalAmount.Equal(d(10800)), "got %s", charge.FinalAmount)
	assert.Equal(t, 900.0, charge.Breakdown.ChargedKm)
	assert.Equal(t, 900.0, charge.Breakdown.MinimumKm)
	assert.Equal(t, 700.0, charge.Breakdown.ActualKm)
	assert.True(t, charge.Breakdown.ThresholdApplied)
}

func TestResolvePerKmAboveFloor(t *testing.T) {
	charge := Resolve(PerKmRate(d(10)), 2, 800, 300)

	require.True(t, charge.FinalAmount.Equal(d(8000)), "got %s", charge.FinalAmount)
	assert.Equal(t, 800.0, charge.Breakdown.ChargedKm)
	assert.False(t, charge.Breakdown.ThresholdApplied)
}

func TestResolveHybrid(t *testing.T) {
	// Scenario C: 2000/day, 2 days, 10/km, 250 km/day floor, 600 actual
	// floor = 500 <= actual -> charged 600; 4000 + 6000 = 10000
	charge := Resolve(HybridRate(d(2000), d(10)), 2, 600, 250)

	require.True(t, charge.FinalAmount.Equal(d(10000)), "got %s", charge.FinalAmount)
	assert.True(t, charge.Breakdown.DayAmount.Equal(d(4000)))
	assert.True(t, charge.Breakdown.DistanceAmount.Equal(d(6000)))
	assert.Equal(t, 600.0, charge.Breakdown.ChargedKm)
	assert.False(t, charge.Breakdown.ThresholdApplied)
}

func TestResolveHybridBelowFloor(t *testing.T) {
	charge := Resolve(HybridRate(d(1000), d(8)), 3, 200, 300)

	// floor 900 > actual 200 -> charged 900; 3000 + 7200 = 10200
	require.True(t, charge.FinalAmount.Equal(d(10200)), "got %s", charge.FinalAmount)
	assert.Equal(t, 900.0, charge.Breakdown.ChargedKm)
	assert.True(t, charge.Breakdown.ThresholdApplied)
}

// chargedKm == max(actualKm, floorPerDay x days) for every combination.
func TestChargedKmIsMax(t *testing.T) {
	cases := []struct {
		actual, floor float64
		days          int
		want          float64
	}{
		{0, 300, 1, 300},
		{299, 300, 1, 300},
		{300, 300, 1, 300},
		{301, 300, 1, 301},
		{700, 300, 3, 900},
		{1200, 300, 3, 1200},
		{500, 0, 5, 500},
	}
	for _, tc := range cases {
		charge := Resolve(PerKmRate(d(1)), tc.days, tc.actual, tc.floor)
		assert.Equal(t, tc.want, charge.Breakdown.ChargedKm,
			"actual=%v floor=%v days=%d", tc.actual, tc.floor, tc.days)
		assert.Equal(t, tc.actual < tc.floor*float64(tc.days), charge.Breakdown.ThresholdApplied)
	}
}

func TestResolveNeverNegative(t *testing.T) {
	quotes := []RateQuote{
		TotalRate(d(-100)),
		PerDayRate(d(-50)),
		PerKmRate(d(-2)),
		HybridRate(d(-10), d(-1)),
	}
	for _, q := range quotes {
		charge := Resolve(q, 3, -500, -300)
		assert.False(t, charge.FinalAmount.IsNegative(), "kind %s produced %s", q.Kind(), charge.FinalAmount)
	}
}

func TestResolveClampsDays(t *testing.T) {
	charge := Resolve(PerDayRate(d(1000)), 0, 0, 0)
	assert.Equal(t, 1, charge.Breakdown.Days)
	assert.True(t, charge.FinalAmount.Equal(d(1000)))
}

func TestQuoteFromFields(t *testing.T) {
	q, ok := QuoteFromFields("per_km", d(0), d(0), d(12))
	require.True(t, ok)
	assert.Equal(t, RatePerKm, q.Kind())

	q, ok = QuoteFromFields("hybrid", d(0), d(2000), d(10))
	require.True(t, ok)
	assert.Equal(t, RateHybrid, q.Kind())

	_, ok = QuoteFromFields("", d(5000), d(0), d(0))
	assert.False(t, ok)

	_, ok = QuoteFromFields("weekly", d(0), d(0), d(0))
	assert.False(t, ok)
}

func TestZeroQuoteIsNotBillable(t *testing.T) {
	var q RateQuote
	assert.True(t, q.IsZero())

	charge := Resolve(q, 2, 500, 300)
	assert.True(t, charge.FinalAmount.IsZero())
}
