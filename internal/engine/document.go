package engine

import (
	"bytes"
	"compress/zlib"
	"io"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDF filter names the engine cares about. Only the deflate family is ever
// produced; DCTDecode marks terminal-lossy image payloads.
const (
	filterFlate = "FlateDecode"
	filterDCT   = "DCTDecode"
)

// Document wraps the parsed object graph for the duration of one
// compression call. Stream payloads are mutated through it; reference
// rewriting, compaction and pruning stay with the container library.
type Document struct {
	ctx *model.Context
}

// ParseDocument loads a PDF from memory. This is one of only two fatal
// steps in a document compression call.
func ParseDocument(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, newDocumentError("parse", ErrParseFailed, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, newDocumentError("validate", ErrParseFailed, err)
	}

	return &Document{ctx: ctx}, nil
}

// Serialize writes the mutated graph back to bytes. The other fatal step.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, newDocumentError("serialize", ErrSerializeFailed, err)
	}
	return buf.Bytes(), nil
}

// PageCount reports the page count of the validated document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// ObjectCount reports the number of live objects in the graph.
func (d *Document) ObjectCount() int {
	n := 0
	for _, entry := range d.ctx.Table {
		if entry != nil && !entry.Free && entry.Object != nil {
			n++
		}
	}
	return n
}

// StreamObject is a private snapshot of one stream object. Workers own
// their snapshot outright: the dictionary is cloned and the payload is
// never written through, so the parallel phase touches no shared state.
type StreamObject struct {
	ObjNr int
	SD    types.StreamDict
}

// Streams snapshots every stream object in the graph, ordered by object
// number so dedup canonicalization is deterministic.
func (d *Document) Streams() []StreamObject {
	var streams []StreamObject
	for objNr, entry := range d.ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if sd.Dict != nil {
			sd.Dict = sd.Dict.Clone().(types.Dict)
		}
		streams = append(streams, StreamObject{ObjNr: objNr, SD: sd})
	}
	sort.Slice(streams, func(i, j int) bool { return streams[i].ObjNr < streams[j].ObjNr })
	return streams
}

// ReplaceStream installs a recompressed stream object. Callers guarantee
// the replacement payload is strictly smaller than the original; this is
// the single-threaded apply phase.
func (d *Document) ReplaceStream(objNr int, sd types.StreamDict) {
	entry, ok := d.ctx.Table[objNr]
	if !ok || entry == nil {
		return
	}
	entry.Object = sd
}

// StripMetadata drops document metadata objects (XMP packets and anything
// else typed /Metadata) and detaches them from the catalog. Returns the
// number of objects removed.
func (d *Document) StripMetadata() int {
	removed := 0
	for objNr, entry := range d.ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		var dict types.Dict
		switch o := entry.Object.(type) {
		case types.Dict:
			dict = o
		case types.StreamDict:
			dict = o.Dict
		default:
			continue
		}
		if typ := dict.Type(); typ != nil && *typ == "Metadata" {
			d.freeObject(objNr)
			removed++
		}
	}
	if rootDict, err := d.ctx.Catalog(); err == nil && rootDict != nil {
		rootDict.Delete("Metadata")
	}
	return removed
}

// Compact asks the container library for one round of graph compaction:
// shared-object unification and resource pruning.
func (d *Document) Compact() error {
	return pdfcpu.OptimizeXRefTable(d.ctx)
}

// DeleteZeroLengthStreams frees stream objects whose payload is empty.
func (d *Document) DeleteZeroLengthStreams() int {
	removed := 0
	for objNr, entry := range d.ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		if sd, ok := entry.Object.(types.StreamDict); ok && len(sd.Raw) == 0 {
			d.freeObject(objNr)
			removed++
		}
	}
	return removed
}

func (d *Document) freeObject(objNr int) {
	if entry, ok := d.ctx.Table[objNr]; ok && entry != nil {
		entry.Free = true
		entry.Object = nil
	}
}

// decodedStreamContent inverse-transforms a stream payload to raw content.
// Plain single FlateDecode filters are inverted directly; anything carrying
// DecodeParms (predictors) or other filters goes through the container's
// decoder.
func decodedStreamContent(sd *types.StreamDict) ([]byte, error) {
	if len(sd.FilterPipeline) == 0 {
		return sd.Raw, nil
	}
	if len(sd.FilterPipeline) == 1 && sd.FilterPipeline[0].Name == filterFlate &&
		sd.FilterPipeline[0].DecodeParms == nil {
		r, err := zlib.NewReader(bytes.NewReader(sd.Raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	if err := sd.Decode(); err != nil {
		return nil, err
	}
	return sd.Content, nil
}
