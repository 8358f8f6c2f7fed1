package models

import (
	"time"
)

// Conversation is a persistent channel between exactly one shop and one
// customer. The (ShopID, UserID) pair is unique; concurrent first-contact
// requests resolve to the same row via conflict-handled insert.
type Conversation struct {
	ConversationID      string     `gorm:"primaryKey;size:36" json:"conversation_id"`
	ShopID              string     `gorm:"uniqueIndex:idx_conversations_shop_user;size:36;not null" json:"shop_id"`
	UserID              string     `gorm:"uniqueIndex:idx_conversations_shop_user;size:36;not null" json:"user_id"`
	LastMessage         string     `json:"last_message"`
	LastMessageTime     *time.Time `json:"last_message_time"`
	UnreadCountCustomer int        `gorm:"not null;default:0" json:"unread_count_customer"`
	UnreadCountShop     int        `gorm:"not null;default:0" json:"unread_count_shop"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}
