package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"pdfpress/internal/engine"
)

// encodeWithQuality applies the shared downsample-cap policy and encodes
// the image in the requested format. WebP output is lossless; its size is
// governed by the downsample cap rather than the quality parameter.
func encodeWithQuality(img image.Image, quality int, format string) ([]byte, error) {
	img = downsample(img, quality)

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: pngLevelForQuality(quality)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatWebP:
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return buf.Bytes(), nil
}

// downsample scales the image down when its larger dimension exceeds the
// cap for the given quality, preserving aspect ratio.
func downsample(img image.Image, quality int) image.Image {
	maxDim := engine.MaxDimensionForQuality(quality)
	if maxDim == 0 {
		return img
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	larger := width
	if height > larger {
		larger = height
	}
	if larger <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(larger)
	dw := int(float64(width) * scale)
	dh := int(float64(height) * scale)
	// The short side of an extreme aspect ratio must not floor to zero.
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// pngLevelForQuality maps codec quality to a PNG compression level: higher
// quality spends more effort compressing losslessly.
func pngLevelForQuality(quality int) png.CompressionLevel {
	switch {
	case quality >= 90:
		return png.BestCompression
	case quality >= 70:
		return png.DefaultCompression
	default:
		return png.BestSpeed
	}
}
