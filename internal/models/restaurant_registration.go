package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending    RegistrationStatus = "pending"
	RegistrationSubscribed RegistrationStatus = "subscribed"
)

type RestaurantRegistration struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	RestaurantName   string             `gorm:"size:150;not null" json:"restaurantName"`
	OwnerName        string             `gorm:"size:100" json:"ownerName"`
	Email            string             `gorm:"size:100" json:"email"`
	Phone            string             `gorm:"size:50" json:"phone"`
	Address          string             `gorm:"size:255" json:"address"`
	SalesPersonID    uint               `gorm:"index;not null" json:"salesPersonId"`
	Status           RegistrationStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	SubscriptionDate *time.Time         `json:"subscriptionDate"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}
