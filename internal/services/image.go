package services

import (
	"pdfpress/internal/config"
	"pdfpress/internal/imaging"
)

// ImageService handles standalone image compression
type ImageService struct {
	config *config.Config
}

// NewImageService creates a new image service
func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{config: cfg}
}

// CompressImage re-encodes the image and returns the encoded bytes plus
// the output file extension.
func (s *ImageService) CompressImage(data []byte, level int, targetFormat string) ([]byte, string, error) {
	return imaging.CompressWithLogger(data, level, targetFormat, s.config.Logger)
}
