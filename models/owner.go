package models

import (
	"time"
)

// Owner represents a business account operating a shop
type Owner struct {
	OwnerID      string     `gorm:"primaryKey;size:36" json:"owner_id"`
	BusinessName string     `gorm:"not null" json:"business_name"`
	OwnerName    string     `json:"owner_name"`
	PhoneNumber  string     `gorm:"uniqueIndex;not null" json:"phone_number"`
	Email        string     `json:"email"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Owner model
func (Owner) TableName() string {
	return "shop_owners"
}

// NotificationSetting holds per-owner notification preferences.
// A default row is created at owner registration.
type NotificationSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      string    `gorm:"uniqueIndex;size:36;not null" json:"owner_id"`
	ChatAlerts   bool      `gorm:"not null;default:true" json:"chat_alerts"`
	RatingAlerts bool      `gorm:"not null;default:true" json:"rating_alerts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the NotificationSetting model
func (NotificationSetting) TableName() string {
	return "notification_settings"
}
