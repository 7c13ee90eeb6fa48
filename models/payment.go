package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus represents the gateway-reported outcome of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment records a per-order payment. Processing happens at the external
// gateway; this row only mirrors its reference and outcome.
type Payment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OrderID    uint           `json:"order_id" gorm:"not null;index"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method     string         `json:"method" gorm:"size:30"` // card, cash, wallet
	Status     PaymentStatus  `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`
	GatewayRef string         `json:"gateway_ref" gorm:"size:100"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
