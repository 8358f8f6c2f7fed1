package models

import (
	"time"

	"gorm.io/datatypes"
)

// Customer represents an end user searching for and chatting with shops.
// Customers and owners are separate namespaces: the same phone number may
// register as both.
type Customer struct {
	UserID      string         `gorm:"primaryKey;size:36" json:"user_id"`
	FullName    string         `gorm:"not null" json:"full_name"`
	PhoneNumber string         `gorm:"uniqueIndex;not null" json:"phone_number"`
	Email       string         `json:"email"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin   *time.Time     `json:"last_login"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "users"
}
