package models

import "time"

// CompressionRecord is one finished document compression, persisted so
// totals survive restarts.
type CompressionRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Filename        string    `json:"filename"`
	OriginalSize    int64     `json:"original_size"`
	CompressedSize  int64     `json:"compressed_size"`
	Quality         int       `json:"quality"`
	StreamsReplaced int       `json:"streams_replaced"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// BytesSaved returns how much smaller the output was. Never negative:
// compression keeps the original when it cannot shrink it.
func (r *CompressionRecord) BytesSaved() int64 {
	saved := r.OriginalSize - r.CompressedSize
	if saved < 0 {
		return 0
	}
	return saved
}
