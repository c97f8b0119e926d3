package Billing

import (
	"fmt"

	"PalkhiTrans/Models"

	"gorm.io/gorm"
)

// Bill status order: draft -> sent -> paid. No regression, ever.
var billStatusRank = map[string]int{
	Models.BillDraft: 0,
	Models.BillSent:  1,
	Models.BillPaid:  2,
}

// AdvanceBillStatus moves a customer bill's status forward. Moving to the
// current status or backwards is rejected.
func AdvanceBillStatus(db *gorm.DB, billID uint, newStatus string) (*Models.CustomerBill, error) {
	newRank, ok := billStatusRank[newStatus]
	if !ok {
		return nil, ErrUnknownBillStatus
	}

	var bill Models.CustomerBill
	if err := db.First(&bill, billID).Error; err != nil {
		return nil, fmt.Errorf("customer bill %d: %w", billID, err)
	}

	if newRank <= billStatusRank[bill.Status] {
		return nil, ErrStatusRegression
	}

	if err := db.Model(&bill).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	bill.Status = newStatus
	return &bill, nil
}
