package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Name        string `gorm:"not null"`
	Role        string `gorm:"default:'analyst'"`
	Status      string `gorm:"default:'active'"`
	LastLoginAt time.Time
}
