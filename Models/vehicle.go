package Models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	NoPlate     string  `json:"no_plate" gorm:"uniqueIndex;not null"`
	Brand       string  `json:"brand"`
	ModelName   string  `json:"model"`
	VehicleType string  `json:"vehicle_type"` // Sedan, SUV, Tempo Traveller, Bus
	Odometer    float64 `json:"odometer"`
}
