package metric

import (
	"math"

	"github.com/ethpandaops/heliograph/internal/format"
)

// NoData is rendered in place of a value when a metric has no samples.
const NoData = "no data"

// Tier is the severity bucket of a sub-score.
type Tier int

const (
	// TierLow covers scores below 0.5.
	TierLow Tier = iota
	// TierMedium covers scores in [0.5, 0.9).
	TierMedium
	// TierHigh covers scores of 0.9 and above.
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	default:
		return "high"
	}
}

// FormatValue renders a raw value using the formatting class of key.
func FormatValue(value float64, key Key) string {
	if math.IsNaN(value) {
		return NoData
	}

	def, _ := Lookup(key)

	switch def.Class {
	case ClassRatioPercent:
		return format.Percent(value, 2)
	case ClassRatio2DP:
		return format.Decimal(value)
	default:
		return format.Milliseconds(value)
	}
}

// FormatScore renders a sub-score as a whole percentage.
func FormatScore(score float64) string {
	if math.IsNaN(score) {
		return NoData
	}

	return format.Percent(score, 0)
}

// SeverityTier buckets a [0,1] sub-score.
func SeverityTier(score float64) Tier {
	if score < 0.5 {
		return TierLow
	}
	if score < 0.9 {
		return TierMedium
	}

	return TierHigh
}
