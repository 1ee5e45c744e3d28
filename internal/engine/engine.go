// Package engine implements the compression policy engine: given a parsed
// PDF object graph, it decides per stream which transform to apply, how
// aggressively, and whether to commit the result. The one correctness
// invariant is that no committed replacement ever makes an individual
// stream larger. The container library (pdfcpu) owns parsing, reference
// rewriting, compaction and serialization.
package engine

import (
	"log/slog"
)

// Round-count policy. The rounds only drive the container's own graph
// convergence; they never re-run stream recompression.
const (
	DefaultRounds = 2
	MaxRounds     = 5
)

// Options configures one document compression call. Rounds <= 0 selects
// DefaultRounds; values above MaxRounds are capped. The engine never reads
// configuration from the environment; callers inject it.
type Options struct {
	Level  int
	Rounds int
	Logger *slog.Logger
}

// DefaultOptions returns the caller-side defaults.
func DefaultOptions() Options {
	return Options{Level: 75, Rounds: DefaultRounds}
}

// Summary reports what one compression call did. Partial success is the
// normal case: streams that could not be shrunk are simply kept.
type Summary struct {
	OriginalSize     int64 `json:"original_size"`
	CompressedSize   int64 `json:"compressed_size"`
	Quality          int   `json:"quality"`
	StreamsProcessed int   `json:"streams_processed"`
	StreamsReplaced  int   `json:"streams_replaced"`
	ImageStreams     int   `json:"image_streams"`
	StreamBytesSaved int64 `json:"stream_bytes_saved"`
	DuplicateStreams int   `json:"duplicate_streams"`
	MetadataRemoved  int   `json:"metadata_removed"`
	Rounds           int   `json:"rounds"`
}

// CompressDocument recompresses every eligible stream of a PDF given as
// bytes and returns the re-serialized document. Only parse and serialize
// failures are fatal; every per-stream problem keeps the original stream.
func CompressDocument(data []byte, opts Options) ([]byte, Summary, error) {
	summary := Summary{OriginalSize: int64(len(data))}

	if len(data) == 0 {
		return nil, summary, ErrEmptyInput
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := ClampLevel(opts.Level)
	quality := LevelToQuality(level)
	summary.Quality = quality

	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if rounds > MaxRounds {
		rounds = MaxRounds
	}
	summary.Rounds = rounds

	logger.Info("compressing document",
		"level", level,
		"quality", quality,
		"input_bytes", len(data))

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, summary, err
	}
	logger.Debug("document parsed", "objects", doc.ObjectCount())

	dups := findDuplicateStreams(doc.Streams())
	summary.DuplicateStreams = len(dups)
	for _, p := range dups {
		logger.Debug("duplicate stream", "object", p.dup, "canonical", p.canonical)
	}

	stats := compressStreams(doc, quality, logger)
	summary.StreamsProcessed = stats.Processed
	summary.StreamsReplaced = stats.Replaced
	summary.ImageStreams = stats.Images
	summary.StreamBytesSaved = stats.Saved

	summary.MetadataRemoved = doc.StripMetadata()

	// Convergence rounds are best-effort: a failed compaction never aborts
	// the call, the graph is simply serialized as-is.
	for i := 0; i < rounds; i++ {
		if err := doc.Compact(); err != nil {
			logger.Debug("compaction round failed", "round", i+1, "error", err)
			break
		}
		doc.DeleteZeroLengthStreams()
	}
	if err := doc.Compact(); err != nil {
		logger.Debug("final compaction failed", "error", err)
	}

	out, err := doc.Serialize()
	if err != nil {
		return nil, summary, err
	}
	summary.CompressedSize = int64(len(out))

	logger.Info("document compressed",
		"input_bytes", len(data),
		"output_bytes", len(out),
		"streams_replaced", stats.Replaced,
		"duplicates", len(dups))

	return out, summary, nil
}
