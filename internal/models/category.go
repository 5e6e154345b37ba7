package models

import "time"

// Category is a news section such as "খেলা" (sports).
type Category struct {
	Slug      string    `json:"slug" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	NameEn    string    `json:"nameEn" gorm:"column:name_en"`
	Position  int       `json:"position" gorm:"default:0"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Category Model
func (Category) TableName() string {
	return "categories"
}
