package engine

import (
	"bytes"
	"compress/zlib"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// recompressGenericStream re-deflates a non-image stream at maximum
// compression effort. Filtered streams are inverse-transformed first; when
// the existing filter cannot be inverted, the encoded bytes are compressed
// as-is with FlateDecode prepended to the filter chain. A replacement is
// committed only when strictly smaller than the original payload.
func recompressGenericStream(stream StreamObject) (types.StreamDict, bool) {
	sd := stream.SD
	origLen := len(sd.Raw)
	if origLen == 0 {
		return sd, false
	}

	if len(sd.FilterPipeline) == 0 {
		recompressed, err := deflateBest(sd.Raw)
		if err != nil || len(recompressed) >= origLen {
			return sd, false
		}
		return replaceWithFlate(sd, recompressed), true
	}

	if content, err := decodedStreamContent(&sd); err == nil {
		if recompressed, err := deflateBest(content); err == nil && len(recompressed) < origLen {
			return replaceWithFlate(sd, recompressed), true
		}
	}

	// Fall back to compressing the encoded bytes as-is. DecodeParms would
	// need a matching null slot in the resulting parms array, so streams
	// carrying them are kept instead.
	if _, hasParms := sd.Dict["DecodeParms"]; hasParms {
		return sd, false
	}
	recompressed, err := deflateBest(sd.Raw)
	if err != nil || len(recompressed) >= origLen {
		return sd, false
	}

	d := sd.Dict
	filterArr := types.Array{types.Name(filterFlate)}
	switch f := d["Filter"].(type) {
	case types.Name:
		filterArr = append(filterArr, f)
	case types.Array:
		filterArr = append(filterArr, f...)
	}
	d["Filter"] = filterArr
	d["Length"] = types.Integer(len(recompressed))

	sd.FilterPipeline = append([]types.PDFFilter{{Name: filterFlate}}, sd.FilterPipeline...)
	sd.Raw = recompressed
	sd.Content = nil
	n := int64(len(recompressed))
	sd.StreamLength = &n
	return sd, true
}

func replaceWithFlate(sd types.StreamDict, payload []byte) types.StreamDict {
	d := sd.Dict
	d["Filter"] = types.Name(filterFlate)
	d["Length"] = types.Integer(len(payload))
	delete(d, "DecodeParms")

	sd.FilterPipeline = []types.PDFFilter{{Name: filterFlate}}
	sd.Raw = payload
	sd.Content = nil
	n := int64(len(payload))
	sd.StreamLength = &n
	return sd
}

func deflateBest(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
