package engine

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// recompressImageStream decodes an eligible image stream to raw samples,
// optionally downsamples it, and re-encodes it as JPEG at the given
// quality. The second return value reports whether the returned stream is
// a committed replacement; false means the caller keeps the original
// verbatim. Nothing in here is ever fatal for the document.
func recompressImageStream(stream StreamObject, cls classification, quality int) (types.StreamDict, bool) {
	sd := stream.SD
	origLen := len(sd.Raw)
	if origLen == 0 {
		return sd, false
	}

	content, err := decodedStreamContent(&sd)
	if err != nil {
		return sd, false
	}

	img := samplesToImage(content, cls.width, cls.height)
	if img == nil {
		// Ambiguous pixel layout. Deliberately not guessed further.
		return sd, false
	}

	width, height := cls.width, cls.height
	targetW, targetH := width, height
	if maxDim := MaxDimensionForQuality(quality); maxDim > 0 {
		larger := width
		if height > larger {
			larger = height
		}
		if larger > maxDim {
			scale := float64(maxDim) / float64(larger)
			targetW = scaledDimension(width, scale)
			targetH = scaledDimension(height, scale)
		}
	}
	if targetW != width || targetH != height {
		dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return sd, false
	}
	if buf.Len() >= origLen {
		return sd, false
	}

	d := sd.Dict
	d["Filter"] = types.Name(filterDCT)
	d["ColorSpace"] = types.Name("DeviceRGB")
	d["BitsPerComponent"] = types.Integer(8)
	d["Length"] = types.Integer(buf.Len())
	delete(d, "DecodeParms")
	if targetW != width || targetH != height {
		d["Width"] = types.Integer(targetW)
		d["Height"] = types.Integer(targetH)
	}

	sd.Raw = buf.Bytes()
	sd.Content = nil
	sd.FilterPipeline = []types.PDFFilter{{Name: filterDCT}}
	n := int64(buf.Len())
	sd.StreamLength = &n

	return sd, true
}

// scaledDimension never returns less than 1: extreme aspect ratios would
// otherwise floor the short side to zero and destroy the image.
func scaledDimension(dim int, scale float64) int {
	scaled := int(float64(dim) * scale)
	if scaled < 1 {
		return 1
	}
	return scaled
}

// samplesToImage infers the component layout strictly from byte-length
// arithmetic: w*h*3 is RGB, w*h*4 is RGBA (alpha dropped), w*h is
// grayscale (expanded to RGB). Any other length returns nil.
func samplesToImage(content []byte, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return nil
	}
	pixels := width * height

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	switch len(content) {
	case pixels * 3:
		for i := 0; i < pixels; i++ {
			img.Pix[i*4] = content[i*3]
			img.Pix[i*4+1] = content[i*3+1]
			img.Pix[i*4+2] = content[i*3+2]
			img.Pix[i*4+3] = 255
		}
	case pixels * 4:
		for i := 0; i < pixels; i++ {
			img.Pix[i*4] = content[i*4]
			img.Pix[i*4+1] = content[i*4+1]
			img.Pix[i*4+2] = content[i*4+2]
			img.Pix[i*4+3] = 255
		}
	case pixels:
		for i := 0; i < pixels; i++ {
			v := content[i]
			img.Pix[i*4] = v
			img.Pix[i*4+1] = v
			img.Pix[i*4+2] = v
			img.Pix[i*4+3] = 255
		}
	default:
		return nil
	}
	return img
}
