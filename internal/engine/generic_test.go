package engine

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func genericStream(dict types.Dict, payload []byte, filters ...string) StreamObject {
	if dict == nil {
		dict = types.Dict{}
	}
	dict["Length"] = types.Integer(len(payload))
	sd := types.StreamDict{Dict: dict, Raw: payload}
	for _, f := range filters {
		sd.FilterPipeline = append(sd.FilterPipeline, types.PDFFilter{Name: f})
	}
	if len(filters) == 1 {
		dict["Filter"] = types.Name(filters[0])
	}
	n := int64(len(payload))
	sd.StreamLength = &n
	return StreamObject{ObjNr: 9, SD: sd}
}

func TestRecompressGenericStream_CompressesUnfiltered(t *testing.T) {
	payload := bytes.Repeat([]byte("BT /F1 12 Tf 72 720 Td (duplicate text run) Tj ET\n"), 200)
	s := genericStream(nil, payload)

	sd, ok := recompressGenericStream(s)
	if !ok {
		t.Fatal("expected highly repetitive payload to shrink")
	}
	if len(sd.Raw) >= len(payload) {
		t.Fatalf("replacement must be strictly smaller: %d vs %d", len(sd.Raw), len(payload))
	}
	if name, isName := sd.Dict["Filter"].(types.Name); !isName || string(name) != "FlateDecode" {
		t.Errorf("expected FlateDecode filter, got %v", sd.Dict["Filter"])
	}

	// round-trip check
	r, err := zlib.NewReader(bytes.NewReader(sd.Raw))
	if err != nil {
		t.Fatalf("replacement payload is not valid zlib: %v", err)
	}
	defer r.Close()
	decoded, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to decode replacement: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Error("replacement does not decode back to the original content")
	}
}

func TestRecompressGenericStream_KeepsIncompressible(t *testing.T) {
	s := genericStream(nil, noiseBytes(4096))
	if _, ok := recompressGenericStream(s); ok {
		t.Fatal("incompressible payload must be kept")
	}
}

func TestRecompressGenericStream_KeepsAlreadyOptimal(t *testing.T) {
	content := bytes.Repeat([]byte("q 1 0 0 1 10 10 cm Q\n"), 100)
	s := genericStream(nil, zlibBest(content), "FlateDecode")
	if _, ok := recompressGenericStream(s); ok {
		t.Fatal("re-deflating an already best-compressed stream must not commit")
	}
}

func TestRecompressGenericStream_RecompressesWeakFlate(t *testing.T) {
	content := bytes.Repeat([]byte("0.1 0.2 0.3 rg 0 0 100 100 re f\n"), 300)
	var weak bytes.Buffer
	w, _ := zlib.NewWriterLevel(&weak, zlib.BestSpeed)
	w.Write(content)
	w.Close()

	s := genericStream(nil, weak.Bytes(), "FlateDecode")
	sd, ok := recompressGenericStream(s)
	if !ok {
		t.Fatal("expected best-effort recompression to beat BestSpeed")
	}
	if len(sd.Raw) >= weak.Len() {
		t.Fatalf("replacement must be strictly smaller: %d vs %d", len(sd.Raw), weak.Len())
	}
}

func TestRecompressGenericStream_KeepsEmpty(t *testing.T) {
	s := genericStream(nil, nil)
	if _, ok := recompressGenericStream(s); ok {
		t.Fatal("empty stream must be kept")
	}
}
