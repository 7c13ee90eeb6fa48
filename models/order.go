package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FulfillmentMode determines how the customer gets their items back
type FulfillmentMode string

const (
	FulfillmentDelivery FulfillmentMode = "delivery"
	FulfillmentPickup   FulfillmentMode = "pickup"
)

// OrderStatus represents the coarse lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// StageTimestamps maps stage keys to the moment they were reached.
// Stored as a JSONB column; entries are append-only.
type StageTimestamps map[string]time.Time

// Value implements driver.Valuer so gorm can persist the map
func (st StageTimestamps) Value() (driver.Value, error) {
	if st == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(st)
}

// Scan implements sql.Scanner so gorm can load the map
func (st *StageTimestamps) Scan(value interface{}) error {
	if value == nil {
		*st = StageTimestamps{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for stage timestamps: %T", value)
	}

	return json.Unmarshal(data, st)
}

// Clone returns a copy so callers never mutate a shared map
func (st StageTimestamps) Clone() StageTimestamps {
	out := make(StageTimestamps, len(st)+1)
	for k, v := range st {
		out[k] = v
	}
	return out
}

// Order represents a laundry order being tracked through fulfillment
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"user_id" gorm:"not null;index"`
	ServiceType     string          `json:"service_type" gorm:"type:varchar(50);not null"` // wash_and_fold, dry_cleaning, ironing, bedding
	FulfillmentMode FulfillmentMode `json:"fulfillment_mode" gorm:"type:varchar(20);not null;check:fulfillment_mode IN ('pickup','delivery')"`
	CurrentStage    string          `json:"current_stage" gorm:"type:varchar(30)"` // empty until fulfillment begins
	StageTimestamps StageTimestamps `json:"stage_timestamps" gorm:"type:jsonb;default:'{}'"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','confirmed','in_progress','completed','cancelled')"`
	ItemCount       int             `json:"item_count" gorm:"default:0"`
	TotalAmount     float64         `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	PickupAddress   string          `json:"pickup_address" gorm:"size:500"`
	Notes           *string         `json:"notes" gorm:"size:1000"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User   User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Photos []OrderPhoto `json:"photos,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderCreate represents the request structure for booking an order
type OrderCreate struct {
	ServiceType     string          `json:"service_type" binding:"required"`
	FulfillmentMode FulfillmentMode `json:"fulfillment_mode" binding:"required,oneof=pickup delivery"`
	ItemCount       int             `json:"item_count"`
	TotalAmount     float64         `json:"total_amount" binding:"required"`
	PickupAddress   string          `json:"pickup_address"`
	Notes           *string         `json:"notes"`
}
