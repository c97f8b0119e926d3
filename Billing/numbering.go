package Billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PalkhiTrans/Models"

	"gorm.io/gorm"
)

// BillPrefix is the fixed prefix of every bill number:
// PT-BILL-<year>-<6-digit-seq>.
const BillPrefix = "PT-BILL"

// NextBillNumber derives the next sequential bill number for the year by
// looking up the highest existing number with the year's prefix. The sequence
// restarts at 000001 each calendar year.
//
// The lookup-then-increment is not atomic on its own; callers rely on the
// unique index on bill_number and retry the run when two concurrent
// generations collide.
func NextBillNumber(db *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", BillPrefix, year)

	var last string
	err := db.Model(&Models.CustomerBill{}).
		Where("bill_number LIKE ?", prefix+"%").
		Order("bill_number DESC").
		Limit(1).
		Pluck("bill_number", &last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed bill number %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%06d", prefix, seq), nil
}

// isDuplicateBillNumber detects the unique-index collision produced when two
// runs race on the same next number.
func isDuplicateBillNumber(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: customer_bills.bill_number")
}
