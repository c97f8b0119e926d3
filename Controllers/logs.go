package Controllers

import (
	"strconv"
	"time"

	"PalkhiTrans/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuditLogHandler exposes the audit trail to admins.
type AuditLogHandler struct {
	DB *gorm.DB
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{DB: db}
}

// GetAuditLogs lists audit entries with pagination and filtering by actor,
// action, entity and date range.
func (h *AuditLogHandler) GetAuditLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	query := h.DB.Model(&Models.AuditLog{})
	if actor := c.Query("actor"); actor != "" {
		query = query.Where("actor = ?", actor)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if from := c.Query("date_from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_from format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("created_at >= ?", parsed)
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_to format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("created_at <= ?", parsed.Add(24*time.Hour-time.Nanosecond))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count audit logs",
		})
	}

	var logs []Models.AuditLog
	if err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch audit logs",
		})
	}

	return c.JSON(fiber.Map{
		"data":      logs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetAuditLogStats summarizes audit activity per action for a quick admin
// dashboard widget.
func (h *AuditLogHandler) GetAuditLogStats(c *fiber.Ctx) error {
	type actionCount struct {
		Action string `json:"action"`
		Count  int64  `json:"count"`
	}

	var counts []actionCount
	if err := h.DB.Model(&Models.AuditLog{}).
		Select("action, COUNT(*) as count").
		Group("action").
		Order("count DESC").
		Scan(&counts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch audit log stats",
		})
	}

	var total int64
	h.DB.Model(&Models.AuditLog{}).Count(&total)

	return c.JSON(fiber.Map{
		"data":  counts,
		"total": total,
	})
}
