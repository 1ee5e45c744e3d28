package compression

import (
	"context"

	"pdfpress/internal/engine"
)

// DocumentProcessor compresses a single PDF file on disk.
type DocumentProcessor interface {
	CompressFile(ctx context.Context, inputPath, outputPath string, level int) (engine.Summary, error)
}

// ImageProcessor re-encodes a single raster image held in memory.
type ImageProcessor interface {
	CompressImage(data []byte, level int, targetFormat string) ([]byte, string, error)
}

type Service interface {
	CompressPDF(ctx context.Context, request CompressionRequest) CompressionResponse
	ProcessFileData(ctx context.Context, fileData []FileUpload) CompressionResponse
	CompressImage(ctx context.Context, upload FileUpload, level int, targetFormat string) (*ImageResult, error)
}
