package Apis

import (
	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleHandler serves the fleet register.
type VehicleHandler struct {
	DB *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{DB: db}
}

// RegisterVehicle adds a vehicle to the fleet.
func (h *VehicleHandler) RegisterVehicle(c *fiber.Ctx) error {
	var input struct {
		NoPlate     string  `json:"no_plate"`
		Brand       string  `json:"brand"`
		ModelName   string  `json:"model"`
		VehicleType string  `json:"vehicle_type"`
		Odometer    float64 `json:"odometer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.NoPlate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Number plate is required",
		})
	}

	vehicle := Models.Vehicle{
		NoPlate:     input.NoPlate,
		Brand:       input.Brand,
		ModelName:   input.ModelName,
		VehicleType: input.VehicleType,
		Odometer:    input.Odometer,
	}
	if err := h.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A vehicle with this number plate already exists",
		})
	}

	Notifications.Audit(actorName(c), "register", "vehicle", vehicle.ID, vehicle.NoPlate)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Vehicle registered successfully",
		"data":    vehicle,
	})
}

// GetVehicle returns one vehicle by id.
func (h *VehicleHandler) GetVehicle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle ID",
		})
	}

	var vehicle Models.Vehicle
	if err := h.DB.First(&vehicle, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found",
		})
	}

	return c.JSON(fiber.Map{"data": vehicle})
}

// GetVehicles lists the fleet, optionally filtered by brand or type.
func (h *VehicleHandler) GetVehicles(c *fiber.Ctx) error {
	query := h.DB.Model(&Models.Vehicle{})
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if vehicleType := c.Query("vehicle_type"); vehicleType != "" {
		query = query.Where("vehicle_type = ?", vehicleType)
	}

	var vehicles []Models.Vehicle
	if err := query.Order("no_plate ASC").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch vehicles",
		})
	}

	return c.JSON(fiber.Map{"data": vehicles, "count": len(vehicles)})
}

// UpdateVehicleOdometer records a new odometer reading.
func (h *VehicleHandler) UpdateVehicleOdometer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle ID",
		})
	}

	var input struct {
		Odometer float64 `json:"odometer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var vehicle Models.Vehicle
	if err := h.DB.First(&vehicle, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vehicle not found",
		})
	}
	if input.Odometer < vehicle.Odometer {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Odometer reading cannot decrease",
		})
	}

	if err := h.DB.Model(&vehicle).Update("odometer", input.Odometer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update odometer",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Odometer updated successfully",
		"data":    vehicle,
	})
}
