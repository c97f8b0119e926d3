package Reports

import (
	"fmt"
	"strings"
	"time"

	"PalkhiTrans/Models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var billColumns = []string{
	"Bill Number", "Status", "Customer Booking", "Start Date", "End Date",
	"Pickup", "Dropoff", "Days", "Total Km", "Vehicles",
	"Total Amount", "Driver Allowance", "Advance", "Balance", "Generated By",
}

// BuildBillsWorkbook renders customer bills in a date range into an Excel
// workbook, one row per bill with a comma-joined vehicle summary column.
func BuildBillsWorkbook(db *gorm.DB, from, to time.Time) (*excelize.File, error) {
	query := db.Model(&Models.CustomerBill{}).Preload("Vehicles")
	if !from.IsZero() {
		query = query.Where("start_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start_date <= ?", to)
	}

	var bills []Models.CustomerBill
	if err := query.Order("id ASC").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("fetch bills for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Bills"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range billColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, bill := range bills {
		values := []interface{}{
			bill.BillNumber,
			bill.Status,
			bookingRef(bill.BookingID),
			bill.StartDate.Format("2006-01-02"),
			bill.EndDate.Format("2006-01-02"),
			bill.Pickup,
			bill.Dropoff,
			bill.Days,
			bill.TotalKm,
			vehicleSummary(bill.Vehicles),
			bill.TotalAmount.StringFixed(2),
			bill.TotalDriverAllowance.StringFixed(2),
			bill.AdvanceAmount.StringFixed(2),
			bill.BalanceAmount.StringFixed(2),
			bill.GeneratedBy,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "J", "J", 40)

	return f, nil
}

func bookingRef(id *uint) string {
	if id == nil {
		return "standalone"
	}
	return fmt.Sprintf("booking %d", *id)
}

func vehicleSummary(lines []Models.BillVehicle) string {
	var parts []string
	for _, line := range lines {
		name := line.VehicleName
		if line.NoPlate != "" {
			name = fmt.Sprintf("%s (%s)", name, line.NoPlate)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, line.FinalAmount.StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}
