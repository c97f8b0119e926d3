package Billing

import (
	"testing"
	"time"

	"PalkhiTrans/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRequirement(t *testing.T, db *gorm.DB, sourceType string) *Models.TransferRequirement {
	t.Helper()
	company := &Models.CompanyBill{BillNumber: "PT-BILL-2026-000001", NetAmount: d(7100)}
	require.NoError(t, db.Create(company).Error)
	req := &Models.TransferRequirement{
		CompanyBillID: company.ID,
		Amount:        d(2000),
		SourceType:    sourceType,
		CollectedBy:   "Ramesh",
		Status:        Models.TransferPending,
	}
	require.NoError(t, db.Create(req).Error)
	return req
}

func TestCompleteTransferCash(t *testing.T) {
	db := testDB(t)
	req := seedRequirement(t, db, Models.TransferSourceCash)
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	transfer, err := CompleteTransfer(db, CompleteTransferInput{
		RequirementID: req.ID,
		TransferDate:  date,
		Cashier:       "Kiran",
		RecordedBy:    "operator1",
	})
	require.NoError(t, err)
	assert.True(t, transfer.Amount.Equal(d(2000)))
	assert.Equal(t, "Kiran", transfer.Cashier)

	var reloaded Models.TransferRequirement
	require.NoError(t, db.First(&reloaded, req.ID).Error)
	assert.Equal(t, Models.TransferCompleted, reloaded.Status)
	require.NotNil(t, reloaded.TransferDate)
	assert.True(t, reloaded.TransferDate.Equal(date))
}

func TestCompleteTransferCashRequiresCashier(t *testing.T) {
	db := testDB(t)
	req := seedRequirement(t, db, Models.TransferSourceCash)

	_, err := CompleteTransfer(db, CompleteTransferInput{
		RequirementID: req.ID,
		TransferDate:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCashierRequired)

	var reloaded Models.TransferRequirement
	require.NoError(t, db.First(&reloaded, req.ID).Error)
	assert.Equal(t, Models.TransferPending, reloaded.Status)
}

func TestCompleteTransferPersonalAccountNoCashier(t *testing.T) {
	db := testDB(t)
	req := seedRequirement(t, db, Models.TransferSourcePersonalAccount)

	_, err := CompleteTransfer(db, CompleteTransferInput{
		RequirementID: req.ID,
		TransferDate:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		RecordedBy:    "operator1",
	})
	assert.NoError(t, err)
}

func TestCompleteTransferRequiresDate(t *testing.T) {
	db := testDB(t)
	req := seedRequirement(t, db, Models.TransferSourcePersonalAccount)

	_, err := CompleteTransfer(db, CompleteTransferInput{RequirementID: req.ID})
	assert.ErrorIs(t, err, ErrTransferDateRequired)
}

func TestCompleteTransferExactlyOnce(t *testing.T) {
	db := testDB(t)
	req := seedRequirement(t, db, Models.TransferSourceCash)
	in := CompleteTransferInput{
		RequirementID: req.ID,
		TransferDate:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Cashier:       "Kiran",
	}

	_, err := CompleteTransfer(db, in)
	require.NoError(t, err)

	_, err = CompleteTransfer(db, in)
	assert.ErrorIs(t, err, ErrTransferNotPending)

	// Only one completion record exists
	var count int64
	require.NoError(t, db.Model(&Models.Transfer{}).
		Where("transfer_requirement_id = ?", req.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
