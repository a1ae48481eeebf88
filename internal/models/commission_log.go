package models

import "time"

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

func (s CommissionStatus) Valid() bool {
	return s == CommissionPending || s == CommissionPaid
}

// CommissionLog is one accounting entry tying a sales person and a restaurant
// to a computed commission. SalesPersonID and RestaurantID are plain
// references; deleting a log never touches either side.
type CommissionLog struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	SalesPersonID      uint             `gorm:"index;not null" json:"salesPersonId"`
	RestaurantID       uint             `gorm:"index;not null" json:"restaurantId"`
	Month              string           `gorm:"size:7;index" json:"month,omitempty"` // YYYY-MM, empty for manual entries
	SubscriptionAmount float64          `gorm:"default:0" json:"subscriptionAmount"`
	CommissionRate     float64          `gorm:"default:0" json:"commissionRate"`
	CommissionAmount   float64          `gorm:"not null" json:"commissionAmount"`
	Status             CommissionStatus `gorm:"size:10;not null;default:pending;index" json:"status"`
	PaidAt             *time.Time       `json:"paidAt"`
	CreatedAt          time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}
