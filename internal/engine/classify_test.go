package engine

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func imageStreamDict(width, height int, extra types.Dict) types.StreamDict {
	d := types.Dict{
		"Type":    types.Name("XObject"),
		"Subtype": types.Name("Image"),
		"Width":   types.Integer(width),
		"Height":  types.Integer(height),
	}
	for k, v := range extra {
		d[k] = v
	}
	return types.StreamDict{Dict: d}
}

func TestClassifyStream_EligibleImage(t *testing.T) {
	sd := imageStreamDict(64, 64, nil)
	cls := classifyStream(&sd)
	if cls.kind != kindImage || !cls.isImage {
		t.Fatalf("expected image classification, got %+v", cls)
	}
	if cls.width != 64 || cls.height != 64 {
		t.Errorf("expected 64x64, got %dx%d", cls.width, cls.height)
	}
}

func TestClassifyStream_ExplicitEightBit(t *testing.T) {
	sd := imageStreamDict(32, 16, types.Dict{"BitsPerComponent": types.Integer(8)})
	if cls := classifyStream(&sd); cls.kind != kindImage {
		t.Fatalf("8-bit image should be eligible, got %+v", cls)
	}
}

func TestClassifyStream_TerminalLossy(t *testing.T) {
	sd := imageStreamDict(64, 64, types.Dict{"Filter": types.Name("DCTDecode")})
	sd.FilterPipeline = []types.PDFFilter{{Name: "DCTDecode"}}
	cls := classifyStream(&sd)
	if cls.kind != kindSkip || !cls.terminal {
		t.Fatalf("DCT image should be terminal skip, got %+v", cls)
	}
	if !cls.isImage {
		t.Error("terminal image should still count as an image stream")
	}
}

func TestClassifyStream_NonEightBitFallsToGeneric(t *testing.T) {
	sd := imageStreamDict(64, 64, types.Dict{"BitsPerComponent": types.Integer(16)})
	if cls := classifyStream(&sd); cls.kind != kindGeneric {
		t.Fatalf("16-bit image without image-only filter should fall to generic, got %+v", cls)
	}
}

func TestClassifyStream_NonEightBitWithImageFilterSkipped(t *testing.T) {
	sd := imageStreamDict(64, 64, types.Dict{"BitsPerComponent": types.Integer(1)})
	sd.FilterPipeline = []types.PDFFilter{{Name: "CCITTFaxDecode"}}
	if cls := classifyStream(&sd); cls.kind != kindSkip {
		t.Fatalf("1-bit CCITT image must be left untouched, got %+v", cls)
	}
}

func TestClassifyStream_MissingDimensions(t *testing.T) {
	sd := types.StreamDict{Dict: types.Dict{"Subtype": types.Name("Image")}}
	if cls := classifyStream(&sd); cls.kind != kindGeneric {
		t.Fatalf("image without dimensions should fall to generic, got %+v", cls)
	}
}

func TestClassifyStream_NonImage(t *testing.T) {
	sd := types.StreamDict{Dict: types.Dict{"Type": types.Name("Metadata")}}
	cls := classifyStream(&sd)
	if cls.kind != kindGeneric || cls.isImage {
		t.Fatalf("non-image stream should classify generic, got %+v", cls)
	}
}
