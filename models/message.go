package models

import (
	"time"
)

// Sender and message type values stored on Message rows.
const (
	SenderTypeShop     = "shop"
	SenderTypeCustomer = "customer"

	MessageTypeText     = "text"
	MessageTypeDocument = "document"
)

// Message belongs to exactly one Conversation and is immutable once
// created, except for the IsRead flag flipped by mark-read. Text messages
// carry MessageText; document messages carry the file_* fields instead.
type Message struct {
	MessageID      string    `gorm:"primaryKey;size:36" json:"message_id"`
	ConversationID string    `gorm:"index;size:36;not null" json:"conversation_id"`
	SenderType     string    `gorm:"size:16;not null" json:"sender_type"`
	SenderID       string    `gorm:"size:36;not null" json:"sender_id"`
	MessageType    string    `gorm:"size:16;not null;default:'text'" json:"message_type"`
	MessageText    string    `gorm:"type:text" json:"message_text,omitempty"`
	FileURL        string    `json:"file_url,omitempty"`
	FileName       string    `json:"file_name,omitempty"`
	FileType       string    `json:"file_type,omitempty"`
	FileSize       int64     `json:"file_size,omitempty"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
