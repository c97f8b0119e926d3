package Billing

import (
	"PalkhiTrans/Models"

	"github.com/shopspring/decimal"
)

// AdvanceMeta describes how the advance was collected, for the company bill.
type AdvanceMeta struct {
	Amount        decimal.Decimal
	PaymentMethod string
	AccountType   string
	AccountRef    string
	CollectedBy   string
}

// BuildCompanyBill builds the internal accounting twin of a customer bill:
// the same trip/vehicle snapshot and totals, the advance's payment metadata,
// the derived transfer requirement (possibly none), and
// net_amount = total_amount - total_driver_allowance - advance_amount.
func BuildCompanyBill(bill *Models.CustomerBill, adv AdvanceMeta) *Models.CompanyBill {
	company := &Models.CompanyBill{
		CustomerBillID:       bill.ID,
		BillNumber:           bill.BillNumber,
		BookingID:            bill.BookingID,
		StartDate:            bill.StartDate,
		EndDate:              bill.EndDate,
		TotalKm:              bill.TotalKm,
		Days:                 bill.Days,
		TotalAmount:          bill.TotalAmount,
		TotalDriverAllowance: bill.TotalDriverAllowance,
		AdvanceAmount:        adv.Amount,
		NetAmount:            bill.TotalAmount.Sub(bill.TotalDriverAllowance).Sub(adv.Amount),
		AdvancePaymentMethod: adv.PaymentMethod,
		AdvanceAccountType:   adv.AccountType,
	}

	if req := DeriveTransfer(adv.Amount, adv.PaymentMethod, adv.AccountType, adv.AccountRef, adv.CollectedBy); req != nil {
		company.Transfers = []Models.TransferRequirement{*req}
	}
	return company
}
