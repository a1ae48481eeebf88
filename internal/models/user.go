package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleSales      UserRole = "SALES"
	RoleSupport    UserRole = "SUPPORT"
	RoleRestaurant UserRole = "RESTAURANT"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:RESTAURANT"`
	IsActive     bool     `gorm:"not null;default:true"` // suspend without deleting
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
