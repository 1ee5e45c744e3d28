package engine

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxStreamWorkers caps the parallel recompression fan-out.
const maxStreamWorkers = 8

// streamOutcome is the complete result of processing one stream. Workers
// produce outcomes for their own private stream copies; counters are folded
// at collection time, so the parallel phase shares no mutable state.
type streamOutcome struct {
	objNr   int
	replace bool
	sd      types.StreamDict
	isImage bool
	saved   int64
}

// streamStats aggregates the per-stream outcomes of one compression pass.
type streamStats struct {
	Processed int
	Replaced  int
	Images    int
	Saved     int64
}

// compressStreams classifies and recompresses every stream concurrently,
// then applies accepted replacements into the graph in a single sequential
// pass. Graph mutation is strictly single-threaded; only the compute phase
// fans out.
func compressStreams(doc *Document, quality int, logger *slog.Logger) streamStats {
	streams := doc.Streams()
	var stats streamStats
	stats.Processed = len(streams)
	if len(streams) == 0 {
		return stats
	}

	workers := runtime.NumCPU()
	if workers > maxStreamWorkers {
		workers = maxStreamWorkers
	}
	if workers > len(streams) {
		workers = len(streams)
	}

	workChan := make(chan StreamObject, len(streams))
	resultChan := make(chan streamOutcome, len(streams))
	for _, s := range streams {
		workChan <- s
	}
	close(workChan)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range workChan {
				resultChan <- processStream(s, quality)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var replacements []streamOutcome
	for out := range resultChan {
		if out.isImage {
			stats.Images++
		}
		if out.replace {
			stats.Replaced++
			stats.Saved += out.saved
			replacements = append(replacements, out)
		}
	}

	// Apply phase: the only writer of the shared graph.
	for _, out := range replacements {
		doc.ReplaceStream(out.objNr, out.sd)
		logger.Debug("stream replaced", "object", out.objNr, "saved_bytes", out.saved)
	}

	return stats
}

// processStream runs entirely on a private stream copy.
func processStream(s StreamObject, quality int) streamOutcome {
	cls := classifyStream(&s.SD)
	out := streamOutcome{objNr: s.ObjNr, isImage: cls.isImage}
	origLen := len(s.SD.Raw)

	var (
		sd       = s.SD
		accepted bool
	)
	switch cls.kind {
	case kindImage:
		sd, accepted = recompressImageStream(s, cls, quality)
	case kindGeneric:
		sd, accepted = recompressGenericStream(s)
	case kindSkip:
		// terminal lossy, or image-incompatible with an image-only filter
	}

	// Never-grow invariant: a replacement must be strictly smaller.
	if accepted && len(sd.Raw) < origLen {
		out.replace = true
		out.saved = int64(origLen - len(sd.Raw))
		out.sd = sd
	}
	return out
}
