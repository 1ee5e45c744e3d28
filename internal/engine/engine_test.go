package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func quietOptions(level int) Options {
	return Options{
		Level:  level,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func imageXObject(width, height int, payload []byte) string {
	dict := fmt.Sprintf(
		"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8",
		width, height)
	return streamObj(dict, payload)
}

func TestCompressDocument_ProducesValidPDF(t *testing.T) {
	content := bytes.Repeat([]byte("BT /F1 12 Tf 72 720 Td (hello) Tj ET\n"), 50)
	input := singlePagePDF(content)

	out, summary, err := CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("output is empty")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", out[:8])
	}
	if summary.CompressedSize != int64(len(out)) {
		t.Errorf("summary size %d does not match output %d", summary.CompressedSize, len(out))
	}
	if summary.Quality != 50 {
		t.Errorf("level 75 should map to quality 50, got %d", summary.Quality)
	}

	doc, err := ParseDocument(out)
	if err != nil {
		t.Fatalf("output does not reparse: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("page count changed: got %d, want 1", doc.PageCount())
	}
}

func TestCompressDocument_SecondPassStable(t *testing.T) {
	content := bytes.Repeat([]byte("0 0 100 100 re f\n"), 200)
	input := singlePagePDF(content, imageXObject(64, 64, noiseBytes(64*64*3)))

	first, _, err := CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	second, summary, err := CompressDocument(first, quietOptions(75))
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if _, err := ParseDocument(second); err != nil {
		t.Fatalf("second-pass output does not reparse: %v", err)
	}
	// Already-lossy images are terminal and the content stream is already
	// at best compression, so the second pass gains roughly nothing.
	if len(second) > len(first)+len(first)/20 {
		t.Errorf("second pass grew the document: %d -> %d", len(first), len(second))
	}
	if summary.ImageStreams != 1 {
		t.Errorf("image stream should survive the second pass, got %d", summary.ImageStreams)
	}
}

func TestCompressDocument_EmptyInput(t *testing.T) {
	if _, _, err := CompressDocument(nil, quietOptions(75)); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCompressDocument_GarbageInput(t *testing.T) {
	_, _, err := CompressDocument([]byte("this is not a pdf at all"), quietOptions(75))
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
}

func TestCompressDocument_CountsDuplicateStreams(t *testing.T) {
	shared := noiseBytes(64 * 64 * 3)
	input := singlePagePDF([]byte("q Q\n"),
		imageXObject(64, 64, shared),
		imageXObject(64, 64, shared))

	_, summary, err := CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if summary.DuplicateStreams < 1 {
		t.Errorf("expected at least one duplicate stream, got %d", summary.DuplicateStreams)
	}
}

func TestCompressDocument_RecompressesImages(t *testing.T) {
	input := singlePagePDF([]byte("q Q\n"), imageXObject(128, 128, noiseBytes(128*128*3)))

	out, summary, err := CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if summary.ImageStreams != 1 {
		t.Errorf("expected 1 image stream, got %d", summary.ImageStreams)
	}
	if summary.StreamsReplaced < 1 {
		t.Errorf("expected the image to be replaced, got %d replacements", summary.StreamsReplaced)
	}
	if summary.StreamBytesSaved <= 0 {
		t.Errorf("expected positive stream savings, got %d", summary.StreamBytesSaved)
	}
	if len(out) >= len(input) {
		t.Errorf("raw-image document should shrink: %d -> %d", len(input), len(out))
	}
}

func TestCompressDocument_StripsMetadata(t *testing.T) {
	xmp := []byte(`<?xpacket begin=""?><x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R /Metadata 5 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << >> >>",
		streamObj("", []byte("q Q\n")),
		streamObj("/Type /Metadata /Subtype /XML", xmp),
	}
	input := buildPDF(objects)

	out, summary, err := CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if summary.MetadataRemoved < 1 {
		t.Errorf("expected metadata removal, got %d", summary.MetadataRemoved)
	}
	if _, err := ParseDocument(out); err != nil {
		t.Fatalf("output does not reparse after metadata strip: %v", err)
	}
}

func TestCompressDocument_RoundsClamped(t *testing.T) {
	input := singlePagePDF([]byte("q Q\n"))

	_, summary, err := CompressDocument(input, Options{Level: 75, Rounds: 99,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if summary.Rounds != MaxRounds {
		t.Errorf("rounds should cap at %d, got %d", MaxRounds, summary.Rounds)
	}

	_, summary, err = CompressDocument(input, quietOptions(75))
	if err != nil {
		t.Fatalf("CompressDocument failed: %v", err)
	}
	if summary.Rounds != DefaultRounds {
		t.Errorf("unset rounds should default to %d, got %d", DefaultRounds, summary.Rounds)
	}
}
