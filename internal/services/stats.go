package services

import (
	"pdfpress/internal/models"

	"gorm.io/gorm"
)

// StatsService persists per-file compression history
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RecordCompression stores one finished compression.
func (s *StatsService) RecordCompression(record models.CompressionRecord) error {
	return s.db.Create(&record).Error
}

// Totals returns the all-time file count and bytes saved.
func (s *StatsService) Totals() (int64, int64, error) {
	var count int64
	if err := s.db.Model(&models.CompressionRecord{}).Count(&count).Error; err != nil {
		return 0, 0, err
	}

	var saved struct {
		Total int64
	}
	err := s.db.Model(&models.CompressionRecord{}).
		Select("COALESCE(SUM(MAX(original_size - compressed_size, 0)), 0) AS total").
		Scan(&saved).Error
	if err != nil {
		return 0, 0, err
	}

	return count, saved.Total, nil
}
