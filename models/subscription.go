package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus represents the current status of a user subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// BillingStatus represents the outcome of a billing cycle
type BillingStatus string

const (
	BillingStatusPaid    BillingStatus = "paid"
	BillingStatusPending BillingStatus = "pending"
	BillingStatusFailed  BillingStatus = "failed"
)

// SubscriptionPlan is a recurring laundry plan offered to customers
type SubscriptionPlan struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:100;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	PricePerMonth   float64        `json:"price_per_month" gorm:"type:decimal(10,2);not null"`
	PickupsPerMonth int            `json:"pickups_per_month" gorm:"not null"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the SubscriptionPlan model
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// UserSubscription links a customer to a plan
type UserSubscription struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	UserID      uint               `json:"user_id" gorm:"not null;index"`
	PlanID      uint               `json:"plan_id" gorm:"not null"`
	Status      SubscriptionStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';check:status IN ('active','paused','cancelled','expired')"`
	StartedAt   time.Time          `json:"started_at" gorm:"not null"`
	RenewsAt    *time.Time         `json:"renews_at"`
	CancelledAt *time.Time         `json:"cancelled_at"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Plan SubscriptionPlan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

// TableName specifies the table name for the UserSubscription model
func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// SubscriptionBilling records one billing cycle against a subscription.
// The actual charge happens at the payment gateway; only the outcome lands here.
type SubscriptionBilling struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	SubscriptionID uint           `json:"subscription_id" gorm:"not null;index"`
	Amount         float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status         BillingStatus  `json:"status" gorm:"type:varchar(10);not null;default:'pending';check:status IN ('paid','pending','failed')"`
	GatewayRef     string         `json:"gateway_ref" gorm:"size:100"`
	BilledAt       time.Time      `json:"billed_at" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Subscription UserSubscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID"`
}

// TableName specifies the table name for the SubscriptionBilling model
func (SubscriptionBilling) TableName() string {
	return "subscription_billing"
}

// SubscriptionCustomization stores per-customer preferences for a subscription
type SubscriptionCustomization struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	SubscriptionID      uint           `json:"subscription_id" gorm:"not null;uniqueIndex"`
	DetergentPreference string         `json:"detergent_preference" gorm:"size:50"`
	FoldingStyle        string         `json:"folding_style" gorm:"size:50"`
	Notes               string         `json:"notes" gorm:"size:500"`
	CreatedAt           time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Subscription UserSubscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID"`
}

// TableName specifies the table name for the SubscriptionCustomization model
func (SubscriptionCustomization) TableName() string {
	return "subscription_customizations"
}
