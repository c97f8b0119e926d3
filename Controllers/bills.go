package Controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"PalkhiTrans/Billing"
	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillHandler serves bill generation and the bill lifecycle endpoints.
type BillHandler struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{
		DB:       db,
		validate: validator.New(),
	}
}

// ManualVehicleInput is one caller-entered line for standalone bills.
type ManualVehicleInput struct {
	Name            string          `json:"name" validate:"required"`
	NoPlate         string          `json:"no_plate"`
	DriverName      string          `json:"driver_name"`
	RateType        string          `json:"rate_type" validate:"required,oneof=total per_day per_km hybrid"`
	RateTotal       decimal.Decimal `json:"rate_total"`
	RatePerDay      decimal.Decimal `json:"rate_per_day"`
	RatePerKm       decimal.Decimal `json:"rate_per_km"`
	AllowancePerDay decimal.Decimal `json:"driver_allowance_per_day"`
}

// AdvanceInputBody overrides (or supplies, for standalone bills) the advance
// payment metadata.
type AdvanceInputBody struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash online"`
	AccountType   string          `json:"account_type" validate:"omitempty,oneof=company personal"`
	AccountRef    string          `json:"account_ref"`
	CollectedBy   string          `json:"collected_by"`
}

// GenerateBillInput is the request body for POST /api/bills/generate.
type GenerateBillInput struct {
	BookingID      uint                 `json:"booking_id"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	Pickup         string               `json:"pickup"`
	Dropoff        string               `json:"dropoff"`
	DistanceMethod string               `json:"distance_method" validate:"required,oneof=odometer manual"`
	StartOdometer  float64              `json:"start_odometer"`
	EndOdometer    float64              `json:"end_odometer"`
	ManualKm       float64              `json:"manual_km"`
	ManualVehicles []ManualVehicleInput `json:"manual_vehicles" validate:"dive"`
	Advance        *AdvanceInputBody    `json:"advance"`
}

// GenerateBill prices a trip and creates the customer bill plus its company
// twin. With booking_id set the booking supplies vehicles, dates and advance;
// without it the manual vehicle list is billed as a standalone bill.
func (h *BillHandler) GenerateBill(c *fiber.Ctx) error {
	var input GenerateBillInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	req := Billing.GenerateRequest{
		Trip: Billing.TripInput{
			Pickup:  input.Pickup,
			Dropoff: input.Dropoff,
		},
		Distance: Billing.DistanceInput{
			Method:        input.DistanceMethod,
			StartOdometer: input.StartOdometer,
			EndOdometer:   input.EndOdometer,
			ManualKm:      input.ManualKm,
		},
		GeneratedBy: actorName(c),
	}

	if input.StartDate != "" {
		start, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid start_date format. Use YYYY-MM-DD",
			})
		}
		req.Trip.StartDate = start
	}
	if input.EndDate != "" {
		end, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid end_date format. Use YYYY-MM-DD",
			})
		}
		req.Trip.EndDate = end
	}

	if input.BookingID != 0 {
		var booking Models.Booking
		if err := h.DB.
			Preload("RequestedVehicles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Preload("AssignedVehicles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			First(&booking, input.BookingID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Booking not found",
			})
		}
		req.Booking = &booking
	} else {
		for _, mv := range input.ManualVehicles {
			quote, ok := Billing.QuoteFromFields(mv.RateType, mv.RateTotal, mv.RatePerDay, mv.RatePerKm)
			if !ok {
				continue
			}
			req.Manual = append(req.Manual, Billing.ManualVehicle{
				Name:            mv.Name,
				NoPlate:         mv.NoPlate,
				DriverName:      mv.DriverName,
				Quote:           quote,
				AllowancePerDay: mv.AllowancePerDay,
			})
		}
	}

	if input.Advance != nil {
		req.Advance = &Billing.AdvanceInput{
			Amount:        input.Advance.Amount,
			PaymentMethod: input.Advance.PaymentMethod,
			AccountType:   input.Advance.AccountType,
			AccountRef:    input.Advance.AccountRef,
			CollectedBy:   input.Advance.CollectedBy,
		}
	}

	result, err := Billing.GenerateBill(h.DB, req)
	if err != nil {
		return billingError(c, err)
	}

	Notifications.Audit(actorName(c), "generate", "customer_bill", result.CustomerBill.ID, result.CustomerBill.BillNumber)
	Notifications.Notify("Bill %s generated: total %s, balance %s",
		result.CustomerBill.BillNumber,
		result.CustomerBill.TotalAmount.StringFixed(2),
		result.CustomerBill.BalanceAmount.StringFixed(2))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Bill generated successfully",
		"data": fiber.Map{
			"customer_bill": result.CustomerBill,
			"company_bill":  result.CompanyBill,
			"days":          result.Days,
			"total_km":      result.TotalKm,
		},
	})
}

// GetBill returns one customer bill with its vehicle lines.
func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bill ID",
		})
	}

	var bill Models.CustomerBill
	if err := h.DB.Preload("Vehicles").First(&bill, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bill not found",
		})
	}

	return c.JSON(fiber.Map{"data": bill})
}

// GetBills lists customer bills, newest first, filterable by status, booking
// and date range, with page/page_size pagination.
func (h *BillHandler) GetBills(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	query := h.DB.Model(&Models.CustomerBill{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingID, _ := strconv.Atoi(c.Query("booking_id")); bookingID != 0 {
		query = query.Where("booking_id = ?", bookingID)
	}
	if from := c.Query("date_from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_from format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("start_date >= ?", parsed)
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_to format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("start_date <= ?", parsed.Add(24*time.Hour-time.Nanosecond))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count bills",
		})
	}

	var bills []Models.CustomerBill
	if err := query.Preload("Vehicles").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bills",
		})
	}

	return c.JSON(fiber.Map{
		"data":      bills,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetBillHistory returns every bill ever generated for a booking, newest
// first. Re-billing always appends, so this is the full paper trail with the
// authoritative bill on top.
func (h *BillHandler) GetBillHistory(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("bookingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var bills []Models.CustomerBill
	if err := h.DB.Preload("Vehicles").
		Where("booking_id = ?", bookingID).
		Order("id DESC").
		Find(&bills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bill history",
		})
	}

	return c.JSON(fiber.Map{"data": bills, "count": len(bills)})
}

// MarkBillSent moves a draft bill to sent.
func (h *BillHandler) MarkBillSent(c *fiber.Ctx) error {
	return h.advanceStatus(c, Models.BillSent)
}

// MarkBillPaid moves a bill to paid.
func (h *BillHandler) MarkBillPaid(c *fiber.Ctx) error {
	return h.advanceStatus(c, Models.BillPaid)
}

func (h *BillHandler) advanceStatus(c *fiber.Ctx, newStatus string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bill ID",
		})
	}

	bill, err := Billing.AdvanceBillStatus(h.DB, uint(id), newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bill not found",
			})
		}
		return billingError(c, err)
	}

	Notifications.Audit(actorName(c), "mark_"+newStatus, "customer_bill", bill.ID, bill.BillNumber)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Bill marked as %s", newStatus),
		"data":    bill,
	})
}

// billingError maps the billing engine's sentinel errors onto HTTP statuses.
func billingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, Billing.ErrMissingDates),
		errors.Is(err, Billing.ErrEndBeforeStart),
		errors.Is(err, Billing.ErrOdometerOrder),
		errors.Is(err, Billing.ErrNegativeDistance),
		errors.Is(err, Billing.ErrUnknownDistanceMethod),
		errors.Is(err, Billing.ErrNoBillableVehicles),
		errors.Is(err, Billing.ErrTransferDateRequired),
		errors.Is(err, Billing.ErrCashierRequired),
		errors.Is(err, Billing.ErrUnknownBillStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, Billing.ErrTransferNotPending),
		errors.Is(err, Billing.ErrStatusRegression):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
