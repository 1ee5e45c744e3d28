package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdfpress/internal/common"
	"pdfpress/internal/config"
	"pdfpress/internal/engine"
)

// PDFService handles PDF compression operations
type PDFService struct {
	config *config.Config
}

// NewPDFService creates a new PDF service
func NewPDFService(cfg *config.Config) *PDFService {
	return &PDFService{config: cfg}
}

// CompressFile compresses the PDF at inputPath and writes the result to
// outputPath. The input file is never modified.
func (s *PDFService) CompressFile(ctx context.Context, inputPath, outputPath string, level int) (engine.Summary, error) {
	if !strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		return engine.Summary{}, fmt.Errorf("%w: %s", common.ErrInvalidFileType, filepath.Base(inputPath))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return engine.Summary{}, fmt.Errorf("%w: %s", common.ErrFileNotFound, inputPath)
		}
		return engine.Summary{}, err
	}

	select {
	case <-ctx.Done():
		return engine.Summary{}, ctx.Err()
	default:
	}

	out, summary, err := engine.CompressDocument(data, s.config.EngineOptions(level))
	if err != nil {
		return summary, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), common.DefaultFilePermissions); err != nil {
		return summary, err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return summary, err
	}

	return summary, nil
}
