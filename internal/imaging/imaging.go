// Package imaging is the standalone image compression pipeline. It shares
// the quality mapping and downsample policy with the document engine but
// operates on whole image files instead of PDF streams.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pdfpress/internal/engine"
)

// Supported output formats. "jpeg" is accepted as an alias for "jpg".
const (
	FormatJPEG = "jpg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrDecodeFailed      = errors.New("image decode failed")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrEncodeFailed      = errors.New("image encoding failed")
)

// pngWithin of 1.1 means: when no target format is requested and the source
// is lossless, PNG wins whenever it lands within 10% of the JPEG candidate.
// Fixed business policy, not a tunable.
const pngTolerance = 1.1

// Compress re-encodes an image at the given compression level and returns
// the encoded bytes plus the output file extension. targetFormat may be
// empty, in which case lossy-sourced inputs go straight to JPEG and
// lossless-sourced inputs race JPEG against PNG.
func Compress(data []byte, level int, targetFormat string) ([]byte, string, error) {
	return CompressWithLogger(data, level, targetFormat, slog.Default())
}

// CompressWithLogger is Compress with an explicit logger.
func CompressWithLogger(data []byte, level int, targetFormat string, logger *slog.Logger) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyInput
	}

	quality := engine.LevelToQuality(engine.ClampLevel(level))

	img, srcFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	logger.Debug("image decoded",
		"format", srcFormat,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"input_bytes", len(data),
		"quality", quality)

	if targetFormat != "" {
		format, err := normalizeFormat(targetFormat)
		if err != nil {
			return nil, "", err
		}
		out, err := encodeWithQuality(img, quality, format)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		}
		return out, format, nil
	}

	// Already-lossy sources target lossy output directly; re-encoding them
	// losslessly would only ever grow the file.
	if srcFormat == "jpeg" || srcFormat == "webp" {
		out, err := encodeWithQuality(img, quality, FormatJPEG)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		}
		return out, FormatJPEG, nil
	}

	// Lossless sources: encode both candidates and pick. PNG wins when it
	// is within 10% of the JPEG size; visual fidelity at negligible cost.
	jpegBytes, jpegErr := encodeWithQuality(img, quality, FormatJPEG)
	pngBytes, pngErr := encodeWithQuality(img, quality, FormatPNG)

	switch {
	case jpegErr == nil && pngErr == nil:
		if float64(len(pngBytes)) <= float64(len(jpegBytes))*pngTolerance {
			logger.Debug("picked png candidate", "png_bytes", len(pngBytes), "jpeg_bytes", len(jpegBytes))
			return pngBytes, FormatPNG, nil
		}
		logger.Debug("picked jpeg candidate", "png_bytes", len(pngBytes), "jpeg_bytes", len(jpegBytes))
		return jpegBytes, FormatJPEG, nil
	case jpegErr == nil:
		return jpegBytes, FormatJPEG, nil
	case pngErr == nil:
		return pngBytes, FormatPNG, nil
	default:
		return nil, "", fmt.Errorf("%w: jpeg: %v / png: %v", ErrEncodeFailed, jpegErr, pngErr)
	}
}

func normalizeFormat(name string) (string, error) {
	switch strings.ToLower(name) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}
