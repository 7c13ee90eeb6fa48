package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleStaff    UserRole = "staff"
	UserRoleAdmin    UserRole = "admin"
)

// UserStatus represents whether a user account is usable
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FullName    string         `json:"full_name" gorm:"size:100;not null"`
	Email       string         `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PhoneNumber string         `json:"phone_number" gorm:"size:20"`
	Password    string         `json:"-" gorm:"size:255;not null"`
	Role        UserRole       `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','staff','admin')"`
	Status      UserStatus     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user can access the admin dashboard
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleStaff
}
