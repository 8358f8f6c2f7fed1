package models

import (
	"time"
)

// Shop represents a business location owned by exactly one Owner.
// A shop is discoverable in search only when IsVisible and IsOnline are
// both true.
type Shop struct {
	ShopID             string      `gorm:"primaryKey;size:36" json:"shop_id"`
	OwnerID            string      `gorm:"index;size:36;not null" json:"owner_id"`
	ShopName           string      `gorm:"not null" json:"shop_name"`
	Description        string      `json:"description"`
	Latitude           float64     `gorm:"not null" json:"latitude"`
	Longitude          float64     `gorm:"not null" json:"longitude"`
	FormattedAddress   string      `json:"formatted_address"`
	StreetAddress      string      `json:"street_address"`
	Locality           string      `json:"locality"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Country            string      `json:"country"`
	PostalCode         string      `json:"postal_code"`
	PlusCode           string      `json:"plus_code"`
	VisibilityRadiusKm float64     `gorm:"not null;default:5" json:"visibility_radius_km"`
	IsVisible          bool        `gorm:"not null;default:true" json:"is_visible"`
	IsOnline           bool        `gorm:"not null;default:true" json:"is_online"`
	TotalViews         int         `gorm:"not null;default:0" json:"total_views"`
	TotalChats         int         `gorm:"not null;default:0" json:"total_chats"`
	AverageRating      float64     `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings       int         `gorm:"not null;default:0" json:"total_ratings"`
	Categories         []Category  `gorm:"many2many:shop_categories;foreignKey:ShopID;joinForeignKey:shop_id;references:CategoryID;joinReferences:category_id" json:"-"`
	Photos             []ShopPhoto `gorm:"foreignKey:ShopID" json:"-"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}

// CategoryNames returns the shop's category names as a plain string slice.
// Responses always carry categories in this normalized form.
func (s *Shop) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, cat := range s.Categories {
		names = append(names, cat.CategoryName)
	}
	return names
}

// ShopPhoto is an ordered photo belonging to a shop. PhotoOrder is a dense
// 0-based sequence; the whole set is replaced on profile update.
type ShopPhoto struct {
	PhotoID    string    `gorm:"primaryKey;size:36" json:"photo_id"`
	ShopID     string    `gorm:"index;size:36;not null" json:"shop_id"`
	PhotoURL   string    `gorm:"not null" json:"photo_url"`
	PhotoOrder int       `gorm:"not null;default:0" json:"photo_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the ShopPhoto model
func (ShopPhoto) TableName() string {
	return "shop_photos"
}

// ShopView is a per-day view counter feeding the owner dashboard's
// views-today figure. Rows are upserted by the best-effort view increment.
type ShopView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShopID    string    `gorm:"uniqueIndex:idx_shop_views_shop_date;size:36;not null" json:"shop_id"`
	ViewDate  string    `gorm:"uniqueIndex:idx_shop_views_shop_date;size:10;not null" json:"view_date"`
	ViewCount int       `gorm:"not null;default:0" json:"view_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ShopView model
func (ShopView) TableName() string {
	return "shop_views"
}
