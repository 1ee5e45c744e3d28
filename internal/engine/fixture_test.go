package engine

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// buildPDF assembles a minimal well-formed PDF from numbered object bodies
// (objects[0] becomes "1 0 obj"), computing the xref offsets so the result
// parses without repair. Object 1 must be the catalog.
func buildPDF(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)
	return buf.Bytes()
}

// streamObj renders a stream object body. The dictionary must not contain
// /Length; it is appended from the payload size.
func streamObj(dict string, payload []byte) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<< %s /Length %d >>\nstream\n", dict, len(payload))
	buf.Write(payload)
	buf.WriteString("\nendstream")
	return buf.String()
}

// singlePagePDF builds a one-page document with the given content stream
// and optional extra objects referenced from the page's XObject resources
// as /Im0, /Im1, ... starting at object number 5.
func singlePagePDF(content []byte, xobjects ...string) []byte {
	resources := "<< >>"
	if len(xobjects) > 0 {
		var names bytes.Buffer
		for i := range xobjects {
			fmt.Fprintf(&names, "/Im%d %d 0 R ", i, 5+i)
		}
		resources = fmt.Sprintf("<< /XObject << %s>> >>", names.String())
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources %s >>", resources),
		streamObj("", content),
	}
	objects = append(objects, xobjects...)
	return buildPDF(objects)
}

// noiseBytes returns deterministic pseudo-random bytes. Noise keeps flate
// from shrinking payloads that the tests want JPEG to win on.
func noiseBytes(n int) []byte {
	b := make([]byte, n)
	state := uint32(0x2545f491)
	for i := range b {
		state = state*1664525 + 1013904223
		b[i] = byte(state >> 24)
	}
	return b
}

func zlibBest(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}
