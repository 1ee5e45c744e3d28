package common

const (
	// Compression constants
	DefaultCompressionLevel = 75
	MaxConcurrencyLimit     = 8

	// File operation constants
	DefaultFilePermissions = 0755

	// Progress percentages
	DefaultProgressPercent   = 20.0
	CompletedProgressPercent = 100.0

	// Event names
	EventFileProgress        = "file:progress"
	EventFileCompleted       = "file:completed"
	EventCompressionProgress = "compression:progress"
	EventStatsUpdate         = "stats:update"
)
