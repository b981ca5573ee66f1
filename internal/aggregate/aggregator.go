// Package aggregate accumulates per-run metric samples and computes averages.
package aggregate

import (
	"math"
	"sync"

	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/sirupsen/logrus"
)

// Sample is one run's result for one metric.
type Sample struct {
	Value    float64
	Score    float64
	HasScore bool
}

// Samples holds exactly one Sample per metric key for a single run.
type Samples map[metric.Key]Sample

// Selector extracts the number to average from a sample.
type Selector func(Sample) float64

// ByValue selects the raw measured value.
func ByValue(s Sample) float64 { return s.Value }

// ByScore selects the sub-score. Samples without one yield NaN.
func ByScore(s Sample) float64 {
	if !s.HasScore {
		return math.NaN()
	}

	return s.Score
}

// Aggregator is safe for concurrent use by run completions.
type Aggregator interface {
	RecordSample(key metric.Key, sample Sample)
	RecordRun(samples Samples)
	Average(key metric.Key, selector Selector) float64
	Series(key metric.Key) []Sample
	Len(key metric.Key) int
}

type aggregator struct {
	log    logrus.FieldLogger
	mu     sync.RWMutex
	series map[metric.Key][]Sample
}

// New creates an empty aggregator.
func New(log logrus.FieldLogger) Aggregator {
	return &aggregator{
		log:    log.WithField("component", "aggregator"),
		series: make(map[metric.Key][]Sample, len(metric.Keys())),
	}
}

func (a *aggregator) RecordSample(key metric.Key, sample Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.series[key] = append(a.series[key], sample)
}

// RecordRun appends every sample of one run under a single lock so series
// lengths never diverge between keys.
func (a *aggregator) RecordRun(samples Samples) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key, sample := range samples {
		a.series[key] = append(a.series[key], sample)
	}

	a.log.WithField("samples", len(samples)).Debug("recorded run")
}

// Average returns the arithmetic mean of selector over the series of key.
// An empty series yields NaN.
func (a *aggregator) Average(key metric.Key, selector Selector) float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	series := a.series[key]
	if len(series) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, s := range series {
		sum += selector(s)
	}

	return sum / float64(len(series))
}

func (a *aggregator) Series(key metric.Key) []Sample {
	a.mu.RLock()
	defer a.mu.RUnlock()
	// Return copy to avoid race conditions
	result := make([]Sample, len(a.series[key]))
	copy(result, a.series[key])
	return result
}

func (a *aggregator) Len(key metric.Key) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.series[key])
}

// Compile-time interface compliance check
var _ Aggregator = (*aggregator)(nil)
