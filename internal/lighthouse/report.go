package lighthouse

import (
	"fmt"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/tidwall/gjson"
)

const categoryScorePath = "categories.performance.score"

// DecodeReport extracts one sample per tracked metric from a Lighthouse JSON
// report. Every required field must be present and numeric.
func DecodeReport(data []byte) (aggregate.Samples, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid report json")
	}

	doc := gjson.ParseBytes(data)
	samples := make(aggregate.Samples, len(metric.Keys()))

	for _, def := range metric.Definitions() {
		if def.AuditID == "" {
			total, err := number(doc, categoryScorePath)
			if err != nil {
				return nil, err
			}
			samples[def.Key] = aggregate.Sample{Value: total}

			continue
		}

		base := "audits." + def.AuditID

		value, err := number(doc, base+".numericValue")
		if err != nil {
			return nil, err
		}

		sample := aggregate.Sample{Value: value}

		if def.HasScore() {
			score, err := number(doc, base+".score")
			if err != nil {
				return nil, err
			}
			sample.Score = score
			sample.HasScore = true
		}

		samples[def.Key] = sample
	}

	return samples, nil
}

func number(doc gjson.Result, path string) (float64, error) {
	result := doc.Get(path)

	if !result.Exists() {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, path)
	}

	if result.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s is not a number (got %s)", ErrMissingField, path, result.Type)
	}

	return result.Float(), nil
}
