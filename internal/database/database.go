package database

import (
	"fmt"

	"news-portal-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (creating if needed) the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Article{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// DefaultCategories are the sections every installation starts with.
var DefaultCategories = []models.Category{
	{Slug: "national", Name: "জাতীয়", NameEn: "National", Position: 1},
	{Slug: "international", Name: "আন্তর্জাতিক", NameEn: "International", Position: 2},
	{Slug: "sports", Name: "খেলা", NameEn: "Sports", Position: 3},
	{Slug: "entertainment", Name: "বিনোদন", NameEn: "Entertainment", Position: 4},
	{Slug: "technology", Name: "প্রযুক্তি", NameEn: "Technology", Position: 5},
}

// Seed inserts DefaultCategories when the categories table is empty.
// It returns the number of rows inserted.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	cats := make([]models.Category, len(DefaultCategories))
	copy(cats, DefaultCategories)
	if err := db.Create(&cats).Error; err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	return len(cats), nil
}
