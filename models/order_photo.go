package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderPhoto is a customer-uploaded photo of an item or stain, stored in Cloudinary
type OrderPhoto struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrderID   uint           `json:"order_id" gorm:"not null;index"`
	URL       string         `json:"url" gorm:"size:500;not null"`
	PublicID  string         `json:"public_id" gorm:"size:255;not null"`
	Caption   string         `json:"caption" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the OrderPhoto model
func (OrderPhoto) TableName() string {
	return "order_photos"
}
