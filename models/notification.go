package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationPriority controls how prominently the dashboard surfaces an alert
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// NotificationStatus tracks whether an admin has seen the alert
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is a derived admin alert. Rows are created by the realtime
// sync layer (or background jobs), never by direct user action.
type Notification struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	Title     string               `json:"title" gorm:"size:200;not null"`
	Message   string               `json:"message" gorm:"type:text;not null"`
	Type      string               `json:"type" gorm:"size:50;not null"` // order, subscription, billing, support, contact, system
	Priority  NotificationPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	ActionURL string               `json:"action_url" gorm:"size:500"`
	Status    NotificationStatus   `json:"status" gorm:"type:varchar(10);not null;default:'unread';index"`
	CreatedAt time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt       `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// PushToken stores a device token for push delivery of customer notifications
type PushToken struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Token     string         `json:"token" gorm:"not null;unique"`
	Platform  string         `json:"platform" gorm:"not null"` // ios, android
	DeviceID  string         `json:"device_id"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the PushToken model
func (PushToken) TableName() string {
	return "push_tokens"
}
