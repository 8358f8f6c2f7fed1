package models

// Category is a flat lookup table of shop categories
type Category struct {
	CategoryID   uint   `gorm:"primaryKey" json:"category_id"`
	CategoryName string `gorm:"uniqueIndex;not null" json:"category_name"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
