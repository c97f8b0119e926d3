package Apis

import (
	"strconv"

	"PalkhiTrans/Billing"
	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SettingsHandler exposes the billing threshold configuration.
type SettingsHandler struct {
	DB *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{DB: db}
}

// GetThresholds returns the effective km/day floors, defaults included.
func (h *SettingsHandler) GetThresholds(c *fiber.Ctx) error {
	policy := Billing.LoadThresholdPolicy(h.DB)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"min_km_per_day":        policy.PerKmFloorPerDay,
			"hybrid_min_km_per_day": policy.HybridFloorPerDay,
			"default":               Billing.DefaultMinKmPerDay,
		},
	})
}

// UpdateThreshold sets one of the two km/day floors.
func (h *SettingsHandler) UpdateThreshold(c *fiber.Ctx) error {
	var input struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Key != Models.SettingMinKmPerDay && input.Key != Models.SettingHybridMinKmPerDay {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown setting key",
		})
	}
	if input.Value <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Threshold must be a positive number of km per day",
		})
	}

	value := strconv.FormatFloat(input.Value, 'f', -1, 64)
	if err := Models.SetSetting(h.DB, input.Key, value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save setting",
		})
	}

	Notifications.Audit(actorName(c), "update", "org_setting", 0, input.Key+"="+value)

	return c.JSON(fiber.Map{
		"message": "Setting updated successfully",
		"data":    fiber.Map{input.Key: input.Value},
	})
}
