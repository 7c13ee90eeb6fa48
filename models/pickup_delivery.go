package models

import (
	"time"

	"gorm.io/gorm"
)

// PickupDeliveryKind distinguishes the two trips an order may involve
type PickupDeliveryKind string

const (
	TripKindPickup   PickupDeliveryKind = "pickup"
	TripKindDelivery PickupDeliveryKind = "delivery"
)

// PickupDelivery is a scheduled driver trip for an order
type PickupDelivery struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	OrderID      uint               `json:"order_id" gorm:"not null;index"`
	Kind         PickupDeliveryKind `json:"kind" gorm:"type:varchar(10);not null;check:kind IN ('pickup','delivery')"`
	Address      string             `json:"address" gorm:"size:500;not null"`
	ScheduledFor time.Time          `json:"scheduled_for" gorm:"not null"`
	DriverName   string             `json:"driver_name" gorm:"size:100"`
	CompletedAt  *time.Time         `json:"completed_at"`
	CreatedAt    time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for the PickupDelivery model
func (PickupDelivery) TableName() string {
	return "pickup_deliveries"
}
