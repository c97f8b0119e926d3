package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer bill statuses. Transitions are monotonic: draft -> sent -> paid.
const (
	BillDraft = "draft"
	BillSent  = "sent"
	BillPaid  = "paid"
)

// Distance methods recorded on a bill.
const (
	DistanceOdometer = "odometer"
	DistanceManual   = "manual"
)

// CustomerBill is the external invoice for one billing run. A booking can
// accumulate several bills; re-billing always adds a new record, the latest
// being authoritative for payment tracking.
type CustomerBill struct {
	gorm.Model
	BillNumber string `json:"bill_number" gorm:"uniqueIndex;size:30;not null"`
	BookingID  *uint  `json:"booking_id" gorm:"index"` // nil for standalone bills
	Status     string `json:"status" gorm:"size:10;default:draft"`

	// Trip snapshot
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Pickup         string    `json:"pickup"`
	Dropoff        string    `json:"dropoff"`
	DistanceMethod string    `json:"distance_method" gorm:"size:10"`
	TotalKm        float64   `json:"total_km"`
	Days           int       `json:"days"`

	// Aggregates
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	TotalDriverAllowance decimal.Decimal `json:"total_driver_allowance" gorm:"type:decimal(12,2)"`
	AdvanceAmount        decimal.Decimal `json:"advance_amount" gorm:"type:decimal(12,2)"`
	BalanceAmount        decimal.Decimal `json:"balance_amount" gorm:"type:decimal(12,2)"`

	// ThresholdNote is set only when the minimum-usage floor changed the
	// billed distance for at least one vehicle.
	ThresholdNote string `json:"threshold_note" gorm:"type:text"`

	GeneratedBy string `json:"generated_by"`

	// Relationships
	Vehicles []BillVehicle `json:"vehicles,omitempty" gorm:"foreignKey:CustomerBillID;constraint:OnDelete:CASCADE"`
}

// BillVehicle is the resolved, priced line for one vehicle within a bill. The
// rate breakdown columns carry every intermediate number needed to reproduce
// the final amount from the bill alone.
type BillVehicle struct {
	gorm.Model
	CustomerBillID uint `json:"customer_bill_id" gorm:"not null;index"`

	VehicleName string `json:"vehicle_name"`
	NoPlate     string `json:"no_plate"`
	DriverName  string `json:"driver_name"`

	// Rate breakdown
	RateType         string          `json:"rate_type" gorm:"size:10;not null"`
	RateTotal        decimal.Decimal `json:"rate_total" gorm:"type:decimal(12,2)"`
	RatePerDay       decimal.Decimal `json:"rate_per_day" gorm:"type:decimal(12,2)"`
	RatePerKm        decimal.Decimal `json:"rate_per_km" gorm:"type:decimal(12,2)"`
	Days             int             `json:"days"`
	ActualKm         float64         `json:"actual_km"`
	MinimumKm        float64         `json:"minimum_km"`
	ChargedKm        float64         `json:"charged_km"`
	ThresholdApplied bool            `json:"threshold_applied"`
	DayAmount        decimal.Decimal `json:"day_amount" gorm:"type:decimal(12,2)"`
	DistanceAmount   decimal.Decimal `json:"distance_amount" gorm:"type:decimal(12,2)"`
	FinalAmount      decimal.Decimal `json:"final_amount" gorm:"type:decimal(12,2)"`

	// Driver allowance, paid directly to the driver. Tracked separately and
	// never folded into customer or company net figures.
	AllowancePerDay decimal.Decimal `json:"allowance_per_day" gorm:"type:decimal(12,2)"`
	AllowanceDays   int             `json:"allowance_days"`
	AllowanceTotal  decimal.Decimal `json:"allowance_total" gorm:"type:decimal(12,2)"`
}
