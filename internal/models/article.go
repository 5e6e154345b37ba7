package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a single news story. Body holds sanitized HTML.
type Article struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title        string         `json:"title" gorm:"not null"`
	Summary      string         `json:"summary"`
	Body         string         `json:"body"`
	CategorySlug string         `json:"category" gorm:"column:category_slug;index;not null"`
	Author       string         `json:"author"`
	ImageURL     string         `json:"imageUrl" gorm:"column:image_url"`
	Featured     bool           `json:"featured" gorm:"default:false"`
	Published    bool           `json:"published" gorm:"index;default:false"`
	PublishedAt  *time.Time     `json:"publishedAt" gorm:"column:published_at;index"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Article Model
func (Article) TableName() string {
	return "articles"
}
