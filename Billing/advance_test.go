package Billing

import (
	"testing"

	"PalkhiTrans/Models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// A transfer requirement exists iff advance > 0 AND (cash OR personal
// account). Every method x account combination, with and without an advance.
func TestTransferRequiredMatrix(t *testing.T) {
	cases := []struct {
		method, account string
		amount          float64
		want            bool
	}{
		{Models.PaymentMethodCash, Models.AccountTypeCompany, 2000, true},
		{Models.PaymentMethodCash, Models.AccountTypePersonal, 2000, true},
		{Models.PaymentMethodOnline, Models.AccountTypeCompany, 2000, false},
		{Models.PaymentMethodOnline, Models.AccountTypePersonal, 2000, true},
		{Models.PaymentMethodCash, Models.AccountTypeCompany, 0, false},
		{Models.PaymentMethodCash, Models.AccountTypePersonal, 0, false},
		{Models.PaymentMethodOnline, Models.AccountTypeCompany, 0, false},
		{Models.PaymentMethodOnline, Models.AccountTypePersonal, 0, false},
	}
	for _, tc := range cases {
		got := TransferRequired(d(tc.amount), tc.method, tc.account)
		assert.Equal(t, tc.want, got, "method=%s account=%s amount=%v", tc.method, tc.account, tc.amount)
	}
}

func TestDeriveTransferCash(t *testing.T) {
	// Scenario D: advance 2000 cash -> pending requirement, source cash
	req := DeriveTransfer(d(2000), Models.PaymentMethodCash, Models.AccountTypeCompany, "", "Ramesh")

	require.NotNil(t, req)
	assert.True(t, req.Amount.Equal(d(2000)))
	assert.Equal(t, Models.TransferSourceCash, req.SourceType)
	assert.Equal(t, Models.TransferPending, req.Status)
	assert.Equal(t, "Ramesh", req.CollectedBy)
	assert.Nil(t, req.TransferDate)
}

func TestDeriveTransferCompanyOnline(t *testing.T) {
	// Scenario E: advance 2000 online into a company account -> no requirement
	req := DeriveTransfer(d(2000), Models.PaymentMethodOnline, Models.AccountTypeCompany, "HDFC-001", "")
	assert.Nil(t, req)
}

func TestDeriveTransferPersonalAccount(t *testing.T) {
	req := DeriveTransfer(d(1500), Models.PaymentMethodOnline, Models.AccountTypePersonal, "GPay-Suresh", "Suresh")

	require.NotNil(t, req)
	assert.Equal(t, Models.TransferSourcePersonalAccount, req.SourceType)
	assert.Equal(t, "GPay-Suresh", req.SourceAccount)
}

func TestResolveAdvanceBookingLevelWins(t *testing.T) {
	booking := &Models.Booking{
		AdvanceAmount: d(3000),
		RequestedVehicles: []Models.RequestedVehicle{
			{Advance: d(9999)},
		},
	}

	amount, source := ResolveAdvance(booking)
	assert.True(t, amount.Equal(d(3000)))
	assert.Equal(t, AdvanceFromBooking, source)
}

func TestResolveAdvanceLegacyFallback(t *testing.T) {
	// Older records stored the advance on the first requested vehicle; the
	// fallback fires only when the booking-level advance is exactly zero.
	booking := &Models.Booking{
		AdvanceAmount: decimal.Zero,
		RequestedVehicles: []Models.RequestedVehicle{
			{Advance: d(1200)},
			{Advance: d(500)},
		},
	}

	amount, source := ResolveAdvance(booking)
	assert.True(t, amount.Equal(d(1200)))
	assert.Equal(t, AdvanceFromRequestedVehicle, source)
}

func TestResolveAdvanceNone(t *testing.T) {
	booking := &Models.Booking{}

	amount, source := ResolveAdvance(booking)
	assert.True(t, amount.IsZero())
	assert.Equal(t, AdvanceNone, source)
}

func TestBuildCompanyBillNetAmount(t *testing.T) {
	bill := &Models.CustomerBill{
		Model:                gorm.Model{ID: 7},
		BillNumber:           "PT-BILL-2026-000007",
		TotalAmount:          d(10000),
		TotalDriverAllowance: d(900),
	}

	company := BuildCompanyBill(bill, AdvanceMeta{
		Amount:        d(2000),
		PaymentMethod: Models.PaymentMethodCash,
		AccountType:   Models.AccountTypeCompany,
		CollectedBy:   "Ramesh",
	})

	assert.Equal(t, uint(7), company.CustomerBillID)
	assert.True(t, company.NetAmount.Equal(d(7100)), "got %s", company.NetAmount)
	require.Len(t, company.Transfers, 1)
	assert.Equal(t, Models.TransferSourceCash, company.Transfers[0].SourceType)
}

func TestBuildCompanyBillNoTransfer(t *testing.T) {
	bill := &Models.CustomerBill{Model: gorm.Model{ID: 8}, TotalAmount: d(5000)}

	company := BuildCompanyBill(bill, AdvanceMeta{
		Amount:        d(2000),
		PaymentMethod: Models.PaymentMethodOnline,
		AccountType:   Models.AccountTypeCompany,
	})

	assert.Empty(t, company.Transfers)
	assert.True(t, company.NetAmount.Equal(d(3000)))
}
