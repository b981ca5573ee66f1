package aggregate

import (
	"testing"

	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/sirupsen/logrus"
	"pgregory.net/rapid"
)

// TestProperty_AverageWithinBounds checks that for any non-empty series the
// average is the arithmetic mean and lies within [min, max].
func TestProperty_AverageWithinBounds(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(0, 60000), 1, 50).Draw(t, "values")

		agg := New(log)
		sum := 0.0
		lo, hi := values[0], values[0]
		for _, v := range values {
			agg.RecordSample(metric.KeySI, Sample{Value: v})
			sum += v
			lo = min(lo, v)
			hi = max(hi, v)
		}

		avg := agg.Average(metric.KeySI, ByValue)
		mean := sum / float64(len(values))

		const eps = 1e-6
		if diff := avg - mean; diff > eps || diff < -eps {
			t.Fatalf("average %v differs from mean %v", avg, mean)
		}
		if avg < lo-eps || avg > hi+eps {
			t.Fatalf("average %v outside [%v, %v]", avg, lo, hi)
		}
	})
}
