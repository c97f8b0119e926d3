package Models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name       string `json:"name"`
	Username   string `json:"username" gorm:"uniqueIndex;not null"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission"`
}
