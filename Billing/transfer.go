package Billing

import (
	"fmt"
	"time"

	"PalkhiTrans/Models"

	"gorm.io/gorm"
)

// CompleteTransferInput records how a pending requirement was settled.
type CompleteTransferInput struct {
	RequirementID uint
	TransferDate  time.Time
	Cashier       string
	RecordedBy    string
}

// CompleteTransfer flips a pending transfer requirement to completed, exactly
// once, and appends the completed Transfer record in the same transaction.
// A transfer date is always required; a cashier name is required when the
// source was cash. The requirement is never recreated or removed.
func CompleteTransfer(db *gorm.DB, in CompleteTransferInput) (*Models.Transfer, error) {
	var req Models.TransferRequirement
	if err := db.First(&req, in.RequirementID).Error; err != nil {
		return nil, fmt.Errorf("transfer requirement %d: %w", in.RequirementID, err)
	}

	if req.Status != Models.TransferPending {
		return nil, ErrTransferNotPending
	}
	if in.TransferDate.IsZero() {
		return nil, ErrTransferDateRequired
	}
	if req.SourceType == Models.TransferSourceCash && in.Cashier == "" {
		return nil, ErrCashierRequired
	}

	transfer := &Models.Transfer{
		TransferRequirementID: req.ID,
		Amount:                req.Amount,
		TransferDate:          in.TransferDate,
		Cashier:               in.Cashier,
		RecordedBy:            in.RecordedBy,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transfer).Error; err != nil {
			return err
		}
		return tx.Model(&Models.TransferRequirement{}).
			Where("id = ? AND status = ?", req.ID, Models.TransferPending).
			Updates(map[string]interface{}{
				"status":        Models.TransferCompleted,
				"transfer_date": in.TransferDate,
				"cashier":       in.Cashier,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("complete transfer: %w", err)
	}
	return transfer, nil
}
