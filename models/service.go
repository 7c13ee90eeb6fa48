package models

import (
	"time"

	"gorm.io/gorm"
)

// LaundryService is a catalog entry shown on the booking frontend
type LaundryService struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:100;not null"`
	ServiceType string         `json:"service_type" gorm:"type:varchar(50);uniqueIndex;not null"` // wash_and_fold, dry_cleaning, ironing, bedding
	Description string         `json:"description" gorm:"type:text"`
	BasePrice   float64        `json:"base_price" gorm:"type:decimal(10,2);not null"`
	PriceUnit   string         `json:"price_unit" gorm:"size:20;default:'per_kg'"` // per_kg, per_item
	TurnaroundH int            `json:"turnaround_hours" gorm:"default:48"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	SortOrder   int            `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the LaundryService model
func (LaundryService) TableName() string {
	return "laundry_services"
}
