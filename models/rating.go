package models

import (
	"time"
)

// Rating is a single 1-5 rating per (shop, customer) pair, enforced by a
// composite unique index and upsert semantics.
type Rating struct {
	RatingID      string    `gorm:"primaryKey;size:36" json:"rating_id"`
	ShopID        string    `gorm:"uniqueIndex:idx_ratings_shop_user;size:36;not null" json:"shop_id"`
	UserID        string    `gorm:"uniqueIndex:idx_ratings_shop_user;size:36;not null" json:"user_id"`
	RatingValue   int       `gorm:"not null;check:rating_value >= 1 AND rating_value <= 5" json:"rating_value"`
	ReviewComment string    `gorm:"type:text" json:"review_comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}
