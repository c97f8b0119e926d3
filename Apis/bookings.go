package Apis

import (
	"strconv"
	"time"

	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AvailabilityChecker answers whether a vehicle class can be promised for a
// date range. The answer is consumed as-is; scheduling itself lives elsewhere.
type AvailabilityChecker interface {
	IsAvailable(brand, model string, start, end time.Time) bool
}

// allowAll is the default checker used until a real scheduler is plugged in.
type allowAll struct{}

func (allowAll) IsAvailable(string, string, time.Time, time.Time) bool { return true }

// BookingHandler serves booking creation, listing and vehicle assignment.
type BookingHandler struct {
	DB           *gorm.DB
	Availability AvailabilityChecker
	validate     *validator.Validate
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{
		DB:           db,
		Availability: allowAll{},
		validate:     validator.New(),
	}
}

type requestedVehicleInput struct {
	Brand                 string          `json:"brand" validate:"required"`
	ModelName             string          `json:"model" validate:"required"`
	RateType              string          `json:"rate_type" validate:"required,oneof=total per_day per_km hybrid"`
	RateTotal             decimal.Decimal `json:"rate_total"`
	RatePerDay            decimal.Decimal `json:"rate_per_day"`
	RatePerKm             decimal.Decimal `json:"rate_per_km"`
	DriverAllowancePerDay decimal.Decimal `json:"driver_allowance_per_day"`
}

type createBookingInput struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	Pickup        string `json:"pickup"`
	Dropoff       string `json:"dropoff"`

	AdvanceAmount        decimal.Decimal `json:"advance_amount"`
	AdvancePaymentMethod string          `json:"advance_payment_method" validate:"omitempty,oneof=cash online"`
	AdvanceAccountType   string          `json:"advance_account_type" validate:"omitempty,oneof=company personal"`
	AdvanceAccountRef    string          `json:"advance_account_ref"`
	AdvanceCollectedBy   string          `json:"advance_collected_by"`

	RequestedVehicles []requestedVehicleInput `json:"requested_vehicles" validate:"required,min=1,dive"`
}

// CreateBooking records a confirmed booking with its requested vehicles after
// checking availability for each vehicle class.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var input createBookingInput
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

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid start_date format. Use YYYY-MM-DD",
		})
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid end_date format. Use YYYY-MM-DD",
		})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "end_date must not be before start_date",
		})
	}

	for _, rv := range input.RequestedVehicles {
		if !h.Availability.IsAvailable(rv.Brand, rv.ModelName, start, end) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "No " + rv.Brand + " " + rv.ModelName + " available for the requested dates",
			})
		}
	}

	booking := Models.Booking{
		CustomerName:         input.CustomerName,
		CustomerPhone:        input.CustomerPhone,
		StartDate:            start,
		EndDate:              end,
		Pickup:               input.Pickup,
		Dropoff:              input.Dropoff,
		Status:               Models.BookingConfirmed,
		AdvanceAmount:        input.AdvanceAmount,
		AdvancePaymentMethod: input.AdvancePaymentMethod,
		AdvanceAccountType:   input.AdvanceAccountType,
		AdvanceAccountRef:    input.AdvanceAccountRef,
		AdvanceCollectedBy:   input.AdvanceCollectedBy,
	}
	for _, rv := range input.RequestedVehicles {
		booking.RequestedVehicles = append(booking.RequestedVehicles, Models.RequestedVehicle{
			Brand:                 rv.Brand,
			ModelName:             rv.ModelName,
			RateType:              rv.RateType,
			RateTotal:             rv.RateTotal,
			RatePerDay:            rv.RatePerDay,
			RatePerKm:             rv.RatePerKm,
			DriverAllowancePerDay: rv.DriverAllowancePerDay,
		})
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create booking",
		})
	}

	Notifications.Audit(actorName(c), "create", "booking", booking.ID, booking.CustomerName)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"data":    booking,
	})
}

// GetBooking returns one booking with requested and assigned vehicles.
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var booking Models.Booking
	if err := h.DB.
		Preload("RequestedVehicles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("AssignedVehicles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(fiber.Map{"data": booking})
}

// GetBookings lists bookings newest first, filterable by status.
func (h *BookingHandler) GetBookings(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	query := h.DB.Model(&Models.Booking{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count bookings",
		})
	}

	var bookings []Models.Booking
	if err := query.Preload("RequestedVehicles").Preload("AssignedVehicles").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(fiber.Map{
		"data":      bookings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

type assignVehicleInput struct {
	VehicleID          uint            `json:"vehicle_id" validate:"required"`
	RequestedVehicleID *uint           `json:"requested_vehicle_id"`
	DriverName         string          `json:"driver_name"`
	RateType           string          `json:"rate_type" validate:"omitempty,oneof=total per_day per_km hybrid"`
	RateTotal          decimal.Decimal `json:"rate_total"`
	RatePerDay         decimal.Decimal `json:"rate_per_day"`
	RatePerKm          decimal.Decimal `json:"rate_per_km"`
	StartOdometer      float64         `json:"start_odometer"`
}

// AssignVehicle attaches a physical vehicle to a booking, optionally linked to
// the requested-vehicle record whose quote it fulfills, or carrying override
// rates of its own.
func (h *BookingHandler) AssignVehicle(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var input assignVehicleInput
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

	var booking Models.Booking
	if err := h.DB.First(&booking, bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.Status == Models.BookingCancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot assign a vehicle to a cancelled booking",
		})
	}

	var vehicle Models.Vehicle
	if err := h.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found",
		})
	}

	if input.RequestedVehicleID != nil {
		var rv Models.RequestedVehicle
		if err := h.DB.Where("id = ? AND booking_id = ?", *input.RequestedVehicleID, booking.ID).
			First(&rv).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Requested vehicle does not belong to this booking",
			})
		}
	}

	startOdo := input.StartOdometer
	if startOdo == 0 {
		startOdo = vehicle.Odometer
	}

	assigned := Models.AssignedVehicle{
		BookingID:          booking.ID,
		VehicleID:          vehicle.ID,
		RequestedVehicleID: input.RequestedVehicleID,
		NoPlate:            vehicle.NoPlate,
		DriverName:         input.DriverName,
		RateType:           input.RateType,
		RateTotal:          input.RateTotal,
		RatePerDay:         input.RatePerDay,
		RatePerKm:          input.RatePerKm,
		StartOdometer:      startOdo,
	}
	if err := h.DB.Create(&assigned).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign vehicle",
		})
	}

	if booking.Status == Models.BookingConfirmed {
		h.DB.Model(&booking).Update("status", Models.BookingOngoing)
	}

	Notifications.Audit(actorName(c), "assign_vehicle", "booking", booking.ID, vehicle.NoPlate)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Vehicle assigned successfully",
		"data":    assigned,
	})
}

// CancelBooking flips a booking to cancelled. Terminal bookings stay put.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var booking Models.Booking
	if err := h.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.Status == Models.BookingCompleted || booking.Status == Models.BookingCancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Booking is already " + booking.Status,
		})
	}

	if err := h.DB.Model(&booking).Update("status", Models.BookingCancelled).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel booking",
		})
	}

	Notifications.Audit(actorName(c), "cancel", "booking", booking.ID, booking.CustomerName)

	return c.JSON(fiber.Map{
		"message": "Booking cancelled successfully",
	})
}

// actorName resolves the display name of the request's authenticated user.
func actorName(c *fiber.Ctx) string {
	if user, ok := c.Locals("user").(Models.User); ok {
		return user.Name
	}
	return "system"
}
