package engine

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// streamKind decides which recompression path a stream takes.
type streamKind int

const (
	kindGeneric streamKind = iota
	kindImage
	kindSkip // left untouched
)

// classification is derived per stream and never stored.
type classification struct {
	kind     streamKind
	isImage  bool // declares an image subtype, regardless of eligibility
	terminal bool // already in a terminal lossy format
	width    int
	height   int
}

// imageOnlyFilters are codecs whose output only makes sense as image data.
// Streams carrying one of these never fall through to generic handling.
var imageOnlyFilters = map[string]bool{
	filterDCT:        true,
	"JPXDecode":      true,
	"CCITTFaxDecode": true,
	"JBIG2Decode":    true,
}

// classifyStream inspects a stream's dictionary to pick a recompression
// path. Image streams qualify for re-encoding only with a positive width
// and height and 8-bit components (missing BitsPerComponent means 8).
// DCT-encoded images are terminal: re-encoding them would cascade
// quantization loss, so they are skipped without being treated as failures.
func classifyStream(sd *types.StreamDict) classification {
	dict := sd.Dict
	// Structural streams belong to the container, not to content.
	if typ := dict.Type(); typ != nil && (*typ == "XRef" || *typ == "ObjStm") {
		return classification{kind: kindSkip}
	}
	if sub := dict.Subtype(); sub == nil || *sub != "Image" {
		return classification{kind: kindGeneric}
	}

	c := classification{isImage: true}

	if streamHasFilter(sd, filterDCT) {
		c.kind = kindSkip
		c.terminal = true
		return c
	}

	w := dict.IntEntry("Width")
	h := dict.IntEntry("Height")
	bpc := dict.IntEntry("BitsPerComponent")
	eligible := w != nil && h != nil && *w > 0 && *h > 0 && (bpc == nil || *bpc == 8)
	if !eligible {
		if streamHasImageOnlyFilter(sd) {
			c.kind = kindSkip
		} else {
			c.kind = kindGeneric
		}
		return c
	}

	c.kind = kindImage
	c.width = *w
	c.height = *h
	return c
}

func streamHasFilter(sd *types.StreamDict, name string) bool {
	for _, f := range sd.FilterPipeline {
		if f.Name == name {
			return true
		}
	}
	return false
}

func streamHasImageOnlyFilter(sd *types.StreamDict) bool {
	for _, f := range sd.FilterPipeline {
		if imageOnlyFilters[f.Name] {
			return true
		}
	}
	return false
}
