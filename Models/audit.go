package Models

import (
	"gorm.io/gorm"
)

// AuditLog rows are written by the fire-and-forget sink in Notifications.
type AuditLog struct {
	gorm.Model
	Actor    string `json:"actor"`
	Action   string `json:"action" gorm:"index"`
	Entity   string `json:"entity" gorm:"index"`
	EntityID uint   `json:"entity_id"`
	Details  string `json:"details" gorm:"type:text"`
}
