package database

import (
	"pdfpress/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Initialize opens the SQLite database at dbPath and migrates the schema.
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.UserPreferences{}, &models.CompressionRecord{}); err != nil {
		return nil, err
	}

	return db, nil
}
