package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"size:256;uniqueIndex;not null"`
	Name     string `json:"name" gorm:"size:256;not null"`
	IsAdmin  bool   `json:"isAdmin" gorm:"default:false;index"`
	Password string `json:"-" gorm:"size:256;not null"` // bcrypt hash, never the raw value
}
