package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking statuses. Completed and Cancelled are terminal; billing never
// regresses a terminal booking.
const (
	BookingConfirmed = "confirmed"
	BookingOngoing   = "ongoing"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Advance payment metadata values
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"

	AccountTypeCompany  = "company"
	AccountTypePersonal = "personal"
)

type Booking struct {
	gorm.Model
	CustomerName  string    `json:"customer_name" gorm:"not null"`
	CustomerPhone string    `json:"customer_phone"`
	StartDate     time.Time `json:"start_date" gorm:"not null"`
	EndDate       time.Time `json:"end_date" gorm:"not null"`
	Pickup        string    `json:"pickup"`
	Dropoff       string    `json:"dropoff"`
	Status        string    `json:"status" gorm:"size:20;default:confirmed;index"`

	// Advance payment metadata. AccountRef identifies the account the money
	// landed in when the method is online.
	AdvanceAmount        decimal.Decimal `json:"advance_amount" gorm:"type:decimal(12,2)"`
	AdvancePaymentMethod string          `json:"advance_payment_method" gorm:"size:10"`
	AdvanceAccountType   string          `json:"advance_account_type" gorm:"size:10"`
	AdvanceAccountRef    string          `json:"advance_account_ref"`
	AdvanceCollectedBy   string          `json:"advance_collected_by"`

	// Relationships
	RequestedVehicles []RequestedVehicle `json:"requested_vehicles,omitempty" gorm:"foreignKey:BookingID"`
	AssignedVehicles  []AssignedVehicle  `json:"assigned_vehicles,omitempty" gorm:"foreignKey:BookingID"`
}

// RequestedVehicle is the originally quoted vehicle+price record, independent
// of which physical vehicle is later assigned. It carries the agreed pricing
// and the driver allowance.
type RequestedVehicle struct {
	gorm.Model
	BookingID uint   `json:"booking_id" gorm:"not null;index"`
	Brand     string `json:"brand"`
	ModelName string `json:"model"`

	// Rate fields; RateType selects which of the columns apply
	// ("total", "per_day", "per_km", "hybrid").
	RateType   string          `json:"rate_type" gorm:"size:10"`
	RateTotal  decimal.Decimal `json:"rate_total" gorm:"type:decimal(12,2)"`
	RatePerDay decimal.Decimal `json:"rate_per_day" gorm:"type:decimal(12,2)"`
	RatePerKm  decimal.Decimal `json:"rate_per_km" gorm:"type:decimal(12,2)"`

	DriverAllowancePerDay decimal.Decimal `json:"driver_allowance_per_day" gorm:"type:decimal(12,2)"`

	// Legacy column: older records stored the advance on the first requested
	// vehicle instead of the booking. Read only when the booking-level advance
	// is exactly zero.
	Advance decimal.Decimal `json:"advance" gorm:"type:decimal(12,2)"`
}

// AssignedVehicle is the physical vehicle operationally attached to a booking.
// It may carry its own override rate fields when no requested-vehicle record is
// linked; it never carries a driver allowance.
type AssignedVehicle struct {
	gorm.Model
	BookingID          uint  `json:"booking_id" gorm:"not null;index"`
	VehicleID          uint  `json:"vehicle_id" gorm:"index"`
	RequestedVehicleID *uint `json:"requested_vehicle_id" gorm:"index"`

	NoPlate    string `json:"no_plate"`
	DriverName string `json:"driver_name"`

	// Optional override pricing; empty RateType means no override.
	RateType   string          `json:"rate_type" gorm:"size:10"`
	RateTotal  decimal.Decimal `json:"rate_total" gorm:"type:decimal(12,2)"`
	RatePerDay decimal.Decimal `json:"rate_per_day" gorm:"type:decimal(12,2)"`
	RatePerKm  decimal.Decimal `json:"rate_per_km" gorm:"type:decimal(12,2)"`

	StartOdometer float64 `json:"start_odometer"`
	EndOdometer   float64 `json:"end_odometer"`

	// FinalKm is written back by the billing run as the charged distance.
	FinalKm float64 `json:"final_km"`
}
