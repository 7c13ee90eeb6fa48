package models

import (
	"time"

	"gorm.io/gorm"
)

// SupportTicketStatus represents the current status of a support ticket
type SupportTicketStatus string

const (
	TicketStatusOpen       SupportTicketStatus = "open"
	TicketStatusInProgress SupportTicketStatus = "in_progress"
	TicketStatusResolved   SupportTicketStatus = "resolved"
	TicketStatusClosed     SupportTicketStatus = "closed"
)

// SupportTicket is a customer support thread handled from the admin dashboard
type SupportTicket struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	UserID        uint                `json:"user_id" gorm:"not null;index"`
	Subject       string              `json:"subject" gorm:"size:200;not null"`
	Status        SupportTicketStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';check:status IN ('open','in_progress','resolved','closed')"`
	Priority      string              `json:"priority" gorm:"type:varchar(10);default:'medium'"` // low, medium, high
	LastMessageAt *time.Time          `json:"last_message_at"`
	CreatedAt     time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt      `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User     User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Messages []SupportMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID"`
}

// TableName specifies the table name for the SupportTicket model
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// SupportMessage is a single message within a support ticket thread
type SupportMessage struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TicketID   uint           `json:"ticket_id" gorm:"not null;index"`
	SenderID   uint           `json:"sender_id" gorm:"not null"`
	SenderRole UserRole       `json:"sender_role" gorm:"type:varchar(20);not null"`
	Body       string         `json:"body" gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Ticket SupportTicket `json:"ticket,omitempty" gorm:"foreignKey:TicketID"`
	Sender User          `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// TableName specifies the table name for the SupportMessage model
func (SupportMessage) TableName() string {
	return "support_messages"
}
