package Controllers

import (
	"fmt"
	"time"

	"PalkhiTrans/Reports"

	"github.com/gofiber/fiber/v2"
)

// ExportBills streams an Excel workbook of customer bills, optionally bounded
// by date_from/date_to query parameters.
func (h *BillHandler) ExportBills(c *fiber.Ctx) error {
	var from, to time.Time
	var err error

	if s := c.Query("date_from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_from format. Use YYYY-MM-DD",
			})
		}
	}
	if s := c.Query("date_to"); s != "" {
		to, err = time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_to format. Use YYYY-MM-DD",
			})
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	workbook, err := Reports.BuildBillsWorkbook(h.DB, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build bills report",
		})
	}

	filename := fmt.Sprintf("bills_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	return workbook.Write(c.Response().BodyWriter())
}
