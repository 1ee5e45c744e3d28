package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// gradientImage is smooth enough for JPEG to win big and detailed enough
// that PNG produces a realistic size.
func gradientImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) * 255 / (width + height)),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestCompress_ShrinksLargePNG(t *testing.T) {
	input := encodePNG(t, gradientImage(3000, 2000))

	out, ext, err := Compress(input, 75, "")
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(out) >= len(input) {
		t.Errorf("large gradient should shrink: %d -> %d", len(input), len(out))
	}
	if ext != FormatJPEG && ext != FormatPNG {
		t.Errorf("auto mode must pick jpg or png, got %q", ext)
	}

	// level 75 -> quality 50 -> 1200px cap
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != 1200 {
		t.Errorf("expected 1200px width after downsampling, got %d", w)
	}
}

func TestCompress_JPEGSourceStaysJPEG(t *testing.T) {
	input := encodeJPEG(t, gradientImage(400, 300))

	out, ext, err := Compress(input, 50, "")
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if ext != FormatJPEG {
		t.Errorf("lossy source must stay lossy in auto mode, got %q", ext)
	}
	if len(out) == 0 {
		t.Fatal("output is empty")
	}
}

func TestCompress_ExplicitTargetFormats(t *testing.T) {
	input := encodeJPEG(t, gradientImage(200, 200))

	cases := []struct {
		target string
		ext    string
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"Png", FormatPNG},
		{"jpeg", FormatJPEG},
		{"JPEG", FormatJPEG},
		{"webp", FormatWebP},
		{"Webp", FormatWebP},
	}
	for _, tc := range cases {
		out, ext, err := Compress(input, 75, tc.target)
		if err != nil {
			t.Errorf("Compress(target=%q) failed: %v", tc.target, err)
			continue
		}
		if ext != tc.ext {
			t.Errorf("Compress(target=%q) ext = %q, want %q", tc.target, ext, tc.ext)
		}
		if len(out) == 0 {
			t.Errorf("Compress(target=%q) produced no output", tc.target)
		}
	}
}

func TestCompress_UnsupportedFormat(t *testing.T) {
	input := encodePNG(t, gradientImage(10, 10))

	_, _, err := Compress(input, 75, "avif")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "avif") {
		t.Errorf("error should name the rejected format: %v", err)
	}
}

func TestCompress_EmptyInput(t *testing.T) {
	if _, _, err := Compress(nil, 75, ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCompress_UndecodableInput(t *testing.T) {
	_, _, err := Compress([]byte("definitely not an image"), 75, "")
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestDownsample_RespectsQualityCaps(t *testing.T) {
	img := gradientImage(2000, 500)

	// quality 90 disables the cap
	if got := downsample(img, 90); got.Bounds().Dx() != 2000 {
		t.Errorf("quality 90 must not downsample, got width %d", got.Bounds().Dx())
	}
	// quality 70 caps at 1500
	if got := downsample(img, 70); got.Bounds().Dx() != 1500 {
		t.Errorf("quality 70 should cap at 1500, got width %d", got.Bounds().Dx())
	}
	// below the cap nothing changes
	small := gradientImage(800, 600)
	if got := downsample(small, 30); got.Bounds().Dx() != 800 {
		t.Errorf("image below cap must be untouched, got width %d", got.Bounds().Dx())
	}
	// extreme aspect ratio: the short side clamps to 1 instead of 0
	tall := gradientImage(1, 3000)
	got := downsample(tall, 50)
	if got.Bounds().Dx() != 1 || got.Bounds().Dy() != 1200 {
		t.Errorf("expected 1x1200, got %dx%d", got.Bounds().Dx(), got.Bounds().Dy())
	}
}
