package models

import "time"

// SalesPerson owns a portfolio of restaurant registrations and earns
// CommissionRate percent of every plan they subscribe to.
type SalesPerson struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `gorm:"index" json:"userId,omitempty"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;uniqueIndex" json:"email"`
	Phone          string    `gorm:"size:50" json:"phone"`
	CommissionRate float64   `gorm:"not null;default:0" json:"commissionRate"` // percent
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (SalesPerson) TableName() string { return "sales_people" }
