package engine

// Compression levels are the user-facing aggressiveness knob. Codec quality
// is derived from them through a fixed piecewise-linear map so that the two
// scales stay decoupled: levels outside [10,95] are clamped, never rejected.
const (
	MinLevel = 10
	MaxLevel = 95
)

// ClampLevel forces a requested compression level into the supported range.
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelToQuality maps a compression level to a codec quality percentage.
// The map is monotonically non-increasing with four segments anchored at
// level 25/50/75 mapping to quality 90/70/50.
func LevelToQuality(level int) int {
	level = ClampLevel(level)
	switch {
	case level <= 25:
		return 100 - int(float64(level)*0.4)
	case level <= 50:
		return 90 - int(float64(level-25)*0.8)
	case level <= 75:
		return 70 - int(float64(level-50)*0.8)
	default:
		return 50 - (level - 75)
	}
}

// MaxDimensionForQuality returns the downsample cap in pixels for a codec
// quality, or 0 when no downsampling applies (quality >= 90).
func MaxDimensionForQuality(quality int) int {
	switch {
	case quality >= 90:
		return 0
	case quality >= 70:
		return 1500
	case quality >= 50:
		return 1200
	default:
		return 1000
	}
}
