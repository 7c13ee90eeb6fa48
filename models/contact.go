package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is a row submitted through the public contact form
type ContactMessage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Email     string         `json:"email" gorm:"size:100;not null"`
	Subject   string         `json:"subject" gorm:"size:200"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	Handled   bool           `json:"handled" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}
