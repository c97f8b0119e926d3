package Billing

import (
	"github.com/shopspring/decimal"
)

// RateKind selects one of the four pricing shapes a vehicle can be billed
// under.
type RateKind string

const (
	RateTotal  RateKind = "total"
	RatePerDay RateKind = "per_day"
	RatePerKm  RateKind = "per_km"
	RateHybrid RateKind = "hybrid"
)

// RateQuote is a closed variant over the four rate shapes. Quotes can only be
// built through the constructors below, so a quote never carries values for an
// inactive shape and a missing-field mistake cannot slip through as a silent
// zero. The zero RateQuote has no kind and is not billable.
type RateQuote struct {
	kind   RateKind
	total  decimal.Decimal
	perDay decimal.Decimal
	perKm  decimal.Decimal
}

// TotalRate builds a fixed-total quote.
func TotalRate(amount decimal.Decimal) RateQuote {
	return RateQuote{kind: RateTotal, total: clampRate(amount)}
}

// PerDayRate builds a per-day quote.
func PerDayRate(rate decimal.Decimal) RateQuote {
	return RateQuote{kind: RatePerDay, perDay: clampRate(rate)}
}

// PerKmRate builds a per-distance quote.
func PerKmRate(rate decimal.Decimal) RateQuote {
	return RateQuote{kind: RatePerKm, perKm: clampRate(rate)}
}

// HybridRate builds a quote charging a per-day rate and a per-distance rate
// together.
func HybridRate(perDay, perKm decimal.Decimal) RateQuote {
	return RateQuote{kind: RateHybrid, perDay: clampRate(perDay), perKm: clampRate(perKm)}
}

// QuoteFromFields converts a stored loose rate record (tag plus columns) into
// a RateQuote. Returns false when the tag is absent or unknown, which callers
// treat as "this record cannot be priced".
func QuoteFromFields(rateType string, total, perDay, perKm decimal.Decimal) (RateQuote, bool) {
	switch RateKind(rateType) {
	case RateTotal:
		return TotalRate(total), true
	case RatePerDay:
		return PerDayRate(perDay), true
	case RatePerKm:
		return PerKmRate(perKm), true
	case RateHybrid:
		return HybridRate(perDay, perKm), true
	default:
		return RateQuote{}, false
	}
}

func (q RateQuote) Kind() RateKind { return q.kind }

// IsZero reports whether the quote was never constructed.
func (q RateQuote) IsZero() bool { return q.kind == "" }

// Negative rates are treated as 0, never as an error; upstream validation owns
// rejecting bad input before billing runs.
func clampRate(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Breakdown carries every intermediate number needed to reproduce the final
// amount. Only the fields relevant to the variant are populated.
type Breakdown struct {
	RateType   string
	RateTotal  decimal.Decimal
	RatePerDay decimal.Decimal
	RatePerKm  decimal.Decimal

	Days             int
	ActualKm         float64
	MinimumKm        float64
	ChargedKm        float64
	ThresholdApplied bool

	DayAmount      decimal.Decimal
	DistanceAmount decimal.Decimal
}

// Charge is the priced result for one vehicle.
type Charge struct {
	FinalAmount decimal.Decimal
	Breakdown   Breakdown
}

// Resolve computes the final charge for one vehicle. It is a pure function of
// its inputs: the quote, the day count, the actual distance, and the per-day
// floor supplied by the threshold policy (zero for variants without a floor).
// The result is never negative.
func Resolve(quote RateQuote, days int, actualKm float64, floorPerDay float64) Charge {
	if days < 1 {
		days = 1
	}
	if actualKm < 0 {
		actualKm = 0
	}

	b := Breakdown{RateType: string(quote.kind), Days: days}

	switch quote.kind {
	case RateTotal:
		b.RateTotal = quote.total
		return Charge{FinalAmount: quote.total, Breakdown: b}

	case RatePerDay:
		b.RatePerDay = quote.perDay
		b.DayAmount = quote.perDay.Mul(decimal.NewFromInt(int64(days)))
		return Charge{FinalAmount: b.DayAmount, Breakdown: b}

	case RatePerKm:
		b.RatePerKm = quote.perKm
		fillDistance(&b, actualKm, floorPerDay, days)
		b.DistanceAmount = quote.perKm.Mul(decimal.NewFromFloat(b.ChargedKm))
		return Charge{FinalAmount: b.DistanceAmount, Breakdown: b}

	case RateHybrid:
		b.RatePerDay = quote.perDay
		b.RatePerKm = quote.perKm
		b.DayAmount = quote.perDay.Mul(decimal.NewFromInt(int64(days)))
		fillDistance(&b, actualKm, floorPerDay, days)
		b.DistanceAmount = quote.perKm.Mul(decimal.NewFromFloat(b.ChargedKm))
		return Charge{FinalAmount: b.DayAmount.Add(b.DistanceAmount), Breakdown: b}

	default:
		// Unpriceable quote; the reconciler should have skipped it.
		return Charge{FinalAmount: decimal.Zero, Breakdown: b}
	}
}

// fillDistance applies the minimum-usage floor: chargedKm is the greater of
// the actual distance and floorPerDay x days.
func fillDistance(b *Breakdown, actualKm, floorPerDay float64, days int) {
	if floorPerDay < 0 {
		floorPerDay = 0
	}
	b.ActualKm = actualKm
	b.MinimumKm = floorPerDay * float64(days)
	b.ChargedKm = actualKm
	if b.MinimumKm > actualKm {
		b.ChargedKm = b.MinimumKm
		b.ThresholdApplied = true
	}
}
