package Controllers

import (
	"errors"
	"time"

	"PalkhiTrans/Billing"
	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TransferHandler serves the company-side ledger: company bills and the
// transfer requirements raised by cash or personal-account advances.
type TransferHandler struct {
	DB *gorm.DB
}

func NewTransferHandler(db *gorm.DB) *TransferHandler {
	return &TransferHandler{DB: db}
}

// GetCompanyBill returns one company bill with its transfer requirements.
func (h *TransferHandler) GetCompanyBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company bill ID",
		})
	}

	var bill Models.CompanyBill
	if err := h.DB.Preload("Transfers").First(&bill, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company bill not found",
		})
	}

	return c.JSON(fiber.Map{"data": bill})
}

// GetCompanyBillForCustomerBill resolves the 1:1 twin of a customer bill.
func (h *TransferHandler) GetCompanyBillForCustomerBill(c *fiber.Ctx) error {
	customerBillID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bill ID",
		})
	}

	var bill Models.CompanyBill
	if err := h.DB.Preload("Transfers").
		Where("customer_bill_id = ?", customerBillID).
		First(&bill).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company bill not found",
		})
	}

	return c.JSON(fiber.Map{"data": bill})
}

// GetPendingTransfers lists every transfer requirement still awaiting
// completion, oldest first. This is the accountant's work queue.
func (h *TransferHandler) GetPendingTransfers(c *fiber.Ctx) error {
	var pending []Models.TransferRequirement
	if err := h.DB.Where("status = ?", Models.TransferPending).
		Order("id ASC").
		Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending transfers",
		})
	}

	return c.JSON(fiber.Map{"data": pending, "count": len(pending)})
}

// CompleteTransfer marks a pending transfer requirement as completed. Cash
// sources must name the receiving cashier.
func (h *TransferHandler) CompleteTransfer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transfer requirement ID",
		})
	}

	var input struct {
		TransferDate string `json:"transfer_date"`
		Cashier      string `json:"cashier"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var transferDate time.Time
	if input.TransferDate != "" {
		transferDate, err = time.Parse("2006-01-02", input.TransferDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid transfer_date format. Use YYYY-MM-DD",
			})
		}
	}

	transfer, err := Billing.CompleteTransfer(h.DB, Billing.CompleteTransferInput{
		RequirementID: uint(id),
		TransferDate:  transferDate,
		Cashier:       input.Cashier,
		RecordedBy:    actorName(c),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transfer requirement not found",
			})
		}
		return billingError(c, err)
	}

	Notifications.Audit(actorName(c), "complete", "transfer_requirement", uint(id), transfer.Amount.StringFixed(2))
	Notifications.Notify("Transfer of %s completed (requirement %d)", transfer.Amount.StringFixed(2), id)

	return c.JSON(fiber.Map{
		"message": "Transfer completed successfully",
		"data":    transfer,
	})
}
