package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transfer requirement statuses and sources. A requirement flips from pending
// to completed exactly once; completion appends a Transfer record and never
// removes the requirement.
const (
	TransferPending   = "pending"
	TransferCompleted = "completed"

	TransferSourceCash            = "cash"
	TransferSourcePersonalAccount = "personal_account"
)

// CompanyBill is the internal accounting twin of a CustomerBill, linked 1:1.
// It tracks where the advance money physically sits and what transfers remain
// outstanding.
type CompanyBill struct {
	gorm.Model
	CustomerBillID uint   `json:"customer_bill_id" gorm:"uniqueIndex;not null"`
	BillNumber     string `json:"bill_number" gorm:"size:30"`
	BookingID      *uint  `json:"booking_id" gorm:"index"`

	// Trip snapshot (mirrors the customer bill)
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TotalKm   float64   `json:"total_km"`
	Days      int       `json:"days"`

	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	TotalDriverAllowance decimal.Decimal `json:"total_driver_allowance" gorm:"type:decimal(12,2)"`
	AdvanceAmount        decimal.Decimal `json:"advance_amount" gorm:"type:decimal(12,2)"`

	// NetAmount = TotalAmount - TotalDriverAllowance - AdvanceAmount
	NetAmount decimal.Decimal `json:"net_amount" gorm:"type:decimal(12,2)"`

	AdvancePaymentMethod string `json:"advance_payment_method" gorm:"size:10"`
	AdvanceAccountType   string `json:"advance_account_type" gorm:"size:10"`

	Transfers []TransferRequirement `json:"transfers,omitempty" gorm:"foreignKey:CompanyBillID;constraint:OnDelete:CASCADE"`
}

// TransferRequirement is an obligation to move collected advance money (cash
// or a personal account) into a company account.
type TransferRequirement struct {
	gorm.Model
	CompanyBillID uint `json:"company_bill_id" gorm:"not null;index"`

	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	SourceType    string          `json:"source_type" gorm:"size:20;not null"`
	SourceAccount string          `json:"source_account"`
	CollectedBy   string          `json:"collected_by"`

	Status       string     `json:"status" gorm:"size:10;default:pending;index"`
	TransferDate *time.Time `json:"transfer_date"`
	Cashier      string     `json:"cashier"`
}

// Transfer is the append-only record of a completed requirement.
type Transfer struct {
	gorm.Model
	TransferRequirementID uint `json:"transfer_requirement_id" gorm:"not null;index"`

	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	TransferDate time.Time       `json:"transfer_date"`
	Cashier      string          `json:"cashier"`
	RecordedBy   string          `json:"recorded_by"`
}
