package Billing

import (
	"fmt"
	"log"
	"math"
	"time"

	"PalkhiTrans/Models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TripInput holds the billing-relevant date pair and locations. Zero fields
// fall back to the booking's own values, so a run can override the dates
// without touching the booking.
type TripInput struct {
	StartDate time.Time
	EndDate   time.Time
	Pickup    string
	Dropoff   string
}

// DistanceInput resolves the charged distance from either an odometer pair or
// a manual figure.
type DistanceInput struct {
	Method        string // Models.DistanceOdometer or Models.DistanceManual
	StartOdometer float64
	EndOdometer   float64
	ManualKm      float64
}

// ManualVehicle is a caller-entered vehicle+quote pair for standalone bills
// that have no booking behind them.
type ManualVehicle struct {
	Name            string
	NoPlate         string
	DriverName      string
	Quote           RateQuote
	AllowancePerDay decimal.Decimal
}

// AdvanceInput supplies advance metadata for standalone bills, or overrides
// the booking's advance when set.
type AdvanceInput struct {
	Amount        decimal.Decimal
	PaymentMethod string
	AccountType   string
	AccountRef    string
	CollectedBy   string
}

// GenerateRequest is one bill-generation invocation. Booking is nil for
// standalone bills, in which case Manual supplies the vehicles and Advance the
// advance metadata.
type GenerateRequest struct {
	Booking     *Models.Booking
	Trip        TripInput
	Distance    DistanceInput
	Manual      []ManualVehicle
	Advance     *AdvanceInput
	GeneratedBy string
}

// GenerateResult bundles both bills plus the trip snapshot a downstream
// transfer-confirmation step needs to render without re-querying.
type GenerateResult struct {
	CustomerBill *Models.CustomerBill
	CompanyBill  *Models.CompanyBill
	Days         int
	TotalKm      float64
	StartDate    time.Time
	EndDate      time.Time
}

// GenerateBill runs the full billing pipeline: validate, resolve vehicles,
// price each one, aggregate, number and persist the customer bill together
// with its company twin in one transaction, then apply best-effort write-backs
// (vehicle final distance, booking status).
//
// Re-running for the same booking always creates an additional bill; prior
// bills are never mutated.
func GenerateBill(db *gorm.DB, req GenerateRequest) (*GenerateResult, error) {
	start, end := req.Trip.StartDate, req.Trip.EndDate
	if req.Booking != nil {
		if start.IsZero() {
			start = req.Booking.StartDate
		}
		if end.IsZero() {
			end = req.Booking.EndDate
		}
	}
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingDates
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}

	days := dayCount(start, end)

	totalKm, err := resolveDistance(req.Distance)
	if err != nil {
		return nil, err
	}

	sources, err := resolveSources(req)
	if err != nil {
		return nil, err
	}

	policy := LoadThresholdPolicy(db)

	bill := &Models.CustomerBill{
		Status:         Models.BillDraft,
		StartDate:      start,
		EndDate:        end,
		Pickup:         req.Trip.Pickup,
		Dropoff:        req.Trip.Dropoff,
		DistanceMethod: req.Distance.Method,
		TotalKm:        totalKm,
		Days:           days,
		GeneratedBy:    req.GeneratedBy,
	}
	if req.Booking != nil {
		bill.BookingID = &req.Booking.ID
		if bill.Pickup == "" {
			bill.Pickup = req.Booking.Pickup
		}
		if bill.Dropoff == "" {
			bill.Dropoff = req.Booking.Dropoff
		}
	}

	total := decimal.Zero
	allowanceTotal := decimal.Zero
	for _, src := range sources {
		charge := Resolve(src.Quote, days, totalKm, policy.FloorPerDay(src.Quote.Kind()))
		line := lineFromCharge(src, charge)

		if src.AllowancePerDay.IsPositive() {
			line.AllowancePerDay = src.AllowancePerDay
			line.AllowanceDays = days
			line.AllowanceTotal = src.AllowancePerDay.Mul(decimal.NewFromInt(int64(days)))
			allowanceTotal = allowanceTotal.Add(line.AllowanceTotal)
		}

		// First threshold note wins as the bill-level note; later vehicles'
		// notes are not merged.
		if charge.Breakdown.ThresholdApplied && bill.ThresholdNote == "" {
			bill.ThresholdNote = ThresholdNote(
				policy.FloorPerDay(src.Quote.Kind()), days,
				charge.Breakdown.MinimumKm, charge.Breakdown.ActualKm,
			)
		}

		total = total.Add(charge.FinalAmount)
		bill.Vehicles = append(bill.Vehicles, line)
	}

	adv := resolveAdvanceMeta(req)

	bill.TotalAmount = total
	bill.TotalDriverAllowance = allowanceTotal
	bill.AdvanceAmount = adv.Amount
	// Driver allowance is out-of-band cash paid to the driver; it never enters
	// the balance owed to the company.
	bill.BalanceAmount = total.Sub(adv.Amount)

	var company *Models.CompanyBill
	year := time.Now().Year()

	// The customer bill and its company twin are created in one transaction.
	// Bounded retry covers the case where two concurrent runs derive the same
	// next bill number and collide on the unique index.
	const maxAttempts = 3
	for attempt := 1; ; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			number, err := NextBillNumber(tx, year)
			if err != nil {
				return err
			}
			bill.BillNumber = number

			if err := tx.Create(bill).Error; err != nil {
				return err
			}

			company = BuildCompanyBill(bill, adv)
			return tx.Create(company).Error
		})
		if err == nil {
			break
		}
		if isDuplicateBillNumber(err) && attempt < maxAttempts {
			bill.ID = 0
			bill.Vehicles = resetLineIDs(bill.Vehicles)
			company = nil
			continue
		}
		return nil, fmt.Errorf("generate bill: %w", err)
	}

	// Write-backs discovered by the run are best-effort follow-ups; their
	// failure never rolls back the already-created bill.
	if req.Booking != nil {
		applySideEffects(db, req.Booking, totalKm)
	}

	return &GenerateResult{
		CustomerBill: bill,
		CompanyBill:  company,
		Days:         days,
		TotalKm:      totalKm,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// dayCount is ceil((end-start)/1 day), floored at 1.
func dayCount(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func resolveDistance(d DistanceInput) (float64, error) {
	switch d.Method {
	case Models.DistanceOdometer:
		if d.EndOdometer < d.StartOdometer {
			return 0, ErrOdometerOrder
		}
		return d.EndOdometer - d.StartOdometer, nil
	case Models.DistanceManual:
		if d.ManualKm < 0 {
			return 0, ErrNegativeDistance
		}
		return d.ManualKm, nil
	default:
		return 0, ErrUnknownDistanceMethod
	}
}

func resolveSources(req GenerateRequest) ([]BillSource, error) {
	var sources []BillSource
	if req.Booking != nil {
		sources = ResolveBillSources(req.Booking)
	} else {
		for _, mv := range req.Manual {
			if mv.Quote.IsZero() {
				continue
			}
			sources = append(sources, BillSource{
				VehicleName:     mv.Name,
				NoPlate:         mv.NoPlate,
				DriverName:      mv.DriverName,
				Quote:           mv.Quote,
				AllowancePerDay: mv.AllowancePerDay,
			})
		}
	}
	if len(sources) == 0 {
		return nil, ErrNoBillableVehicles
	}
	return sources, nil
}

func resolveAdvanceMeta(req GenerateRequest) AdvanceMeta {
	if req.Advance != nil {
		return AdvanceMeta{
			Amount:        clampRate(req.Advance.Amount),
			PaymentMethod: req.Advance.PaymentMethod,
			AccountType:   req.Advance.AccountType,
			AccountRef:    req.Advance.AccountRef,
			CollectedBy:   req.Advance.CollectedBy,
		}
	}
	if req.Booking == nil {
		return AdvanceMeta{Amount: decimal.Zero}
	}
	amount, _ := ResolveAdvance(req.Booking)
	return AdvanceMeta{
		Amount:        amount,
		PaymentMethod: req.Booking.AdvancePaymentMethod,
		AccountType:   req.Booking.AdvanceAccountType,
		AccountRef:    req.Booking.AdvanceAccountRef,
		CollectedBy:   req.Booking.AdvanceCollectedBy,
	}
}

func lineFromCharge(src BillSource, charge Charge) Models.BillVehicle {
	b := charge.Breakdown
	return Models.BillVehicle{
		VehicleName:      src.VehicleName,
		NoPlate:          src.NoPlate,
		DriverName:       src.DriverName,
		RateType:         b.RateType,
		RateTotal:        b.RateTotal,
		RatePerDay:       b.RatePerDay,
		RatePerKm:        b.RatePerKm,
		Days:             b.Days,
		ActualKm:         b.ActualKm,
		MinimumKm:        b.MinimumKm,
		ChargedKm:        b.ChargedKm,
		ThresholdApplied: b.ThresholdApplied,
		DayAmount:        b.DayAmount,
		DistanceAmount:   b.DistanceAmount,
		FinalAmount:      charge.FinalAmount,
	}
}

func resetLineIDs(lines []Models.BillVehicle) []Models.BillVehicle {
	for i := range lines {
		lines[i].ID = 0
		lines[i].CustomerBillID = 0
	}
	return lines
}

// applySideEffects writes the charged distance back onto every assigned
// vehicle as its final distance and advances the booking to completed unless
// it is already terminal. Failures are logged and swallowed; they must never
// block bill delivery.
func applySideEffects(db *gorm.DB, booking *Models.Booking, totalKm float64) {
	for _, av := range booking.AssignedVehicles {
		if err := db.Model(&Models.AssignedVehicle{}).
			Where("id = ?", av.ID).
			Update("final_km", totalKm).Error; err != nil {
			log.Printf("billing: final km write-back failed for assigned vehicle %d: %v", av.ID, err)
		}
	}

	if booking.Status == Models.BookingCompleted || booking.Status == Models.BookingCancelled {
		return
	}
	if err := db.Model(&Models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", Models.BookingCompleted).Error; err != nil {
		log.Printf("billing: booking %d status update failed: %v", booking.ID, err)
	}
}
