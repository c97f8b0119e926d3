package Billing

import (
	"PalkhiTrans/Models"

	"github.com/shopspring/decimal"
)

// AdvanceSource records where the advance figure was found.
type AdvanceSource string

const (
	AdvanceFromBooking          AdvanceSource = "booking"
	AdvanceFromRequestedVehicle AdvanceSource = "requested_vehicle"
	AdvanceNone                 AdvanceSource = "none"
)

// ResolveAdvance returns the advance amount for a booking. The booking-level
// advance wins; the first requested vehicle's legacy advance column is
// consulted only when the booking-level advance is exactly zero (older records
// stored it there).
func ResolveAdvance(booking *Models.Booking) (decimal.Decimal, AdvanceSource) {
	if booking.AdvanceAmount.IsPositive() {
		return booking.AdvanceAmount, AdvanceFromBooking
	}
	if len(booking.RequestedVehicles) > 0 {
		legacy := booking.RequestedVehicles[0].Advance
		if legacy.IsPositive() {
			return legacy, AdvanceFromRequestedVehicle
		}
	}
	return decimal.Zero, AdvanceNone
}

// TransferRequired reports whether collected advance money must still reach a
// company account: the advance is positive AND it was paid in cash or landed
// in a personal account. A company-account online advance needs no transfer.
func TransferRequired(amount decimal.Decimal, paymentMethod, accountType string) bool {
	if !amount.IsPositive() {
		return false
	}
	return paymentMethod == Models.PaymentMethodCash || accountType == Models.AccountTypePersonal
}

// DeriveTransfer builds the pending transfer requirement for an advance, or
// nil when none is required.
func DeriveTransfer(amount decimal.Decimal, paymentMethod, accountType, accountRef, collectedBy string) *Models.TransferRequirement {
	if !TransferRequired(amount, paymentMethod, accountType) {
		return nil
	}

	source := Models.TransferSourcePersonalAccount
	if paymentMethod == Models.PaymentMethodCash {
		source = Models.TransferSourceCash
	}

	return &Models.TransferRequirement{
		Amount:        amount,
		SourceType:    source,
		SourceAccount: accountRef,
		CollectedBy:   collectedBy,
		Status:        Models.TransferPending,
	}
}
