package Models

import (
	"gorm.io/gorm"
)

// Organization-configurable settings, stored as strings. Callers parse and
// fall back to hard-coded defaults when a key is absent or unparseable.
const (
	SettingMinKmPerDay       = "billing.min_km_per_day"
	SettingHybridMinKmPerDay = "billing.hybrid_min_km_per_day"
)

type OrgSetting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
}

// GetSetting returns the stored value for key and whether it exists.
func GetSetting(db *gorm.DB, key string) (string, bool) {
	var setting OrgSetting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", false
	}
	return setting.Value, true
}

// SetSetting inserts or updates a setting value.
func SetSetting(db *gorm.DB, key, value string) error {
	var setting OrgSetting
	err := db.Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&OrgSetting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(&setting).Error
}
