package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/ethpandaops/heliograph/internal/campaign"
	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(fs afero.Fs, out *bytes.Buffer) *Renderer {
	return NewRenderer(Config{Logger: logrus.New(), Fs: fs, Writer: out})
}

func filledAggregator(totals ...float64) aggregate.Aggregator {
	agg := aggregate.New(logrus.New())
	for i, total := range totals {
		samples := aggregate.Samples{metric.KeyTotal: {Value: total}}
		for _, def := range metric.Definitions() {
			if def.Key == metric.KeyTotal {
				continue
			}
			sample := aggregate.Sample{Value: float64(i+1) * 500}
			if def.HasScore() {
				sample.Score = 0.95
				sample.HasScore = true
			}
			samples[def.Key] = sample
		}
		agg.RecordRun(samples)
	}

	return agg
}

func TestLines(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	lines := newTestRenderer(afero.NewMemMapFs(), &bytes.Buffer{}).Lines(filledAggregator(0.8, 0.9, 1.0))
	require.Len(t, lines, len(metric.Keys()))

	tests := []struct {
		key      metric.Key
		expected string
	}{
		{key: metric.KeyTotal, expected: "Total Score: 90.00% - [80.00%, 90.00%, 100.00%]"},
		{key: metric.KeyLCP, expected: "Largest Contentful Paint: 1.00s (95%) - [500.00ms, 1.00s, 1.50s]"},
		{key: metric.KeyCLS, expected: "Cumulative Layout Shift: 1000.00 (95%) - [500.00, 1000.00, 1500.00]"},
		{key: metric.KeySRT, expected: "Server Response Time: 1.00s - [500.00ms, 1.00s, 1.50s]"},
	}

	byKey := make(map[metric.Key]Line, len(lines))
	for _, line := range lines {
		byKey[line.Key] = line
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, byKey[tt.key].Plain)
			// Without colors the console line matches the plain line.
			assert.Equal(t, tt.expected, byKey[tt.key].Console)
		})
	}

	for i, key := range metric.Keys() {
		assert.Equal(t, key, lines[i].Key)
	}
}

func TestLines_EmptySeriesRendersNoData(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	lines := newTestRenderer(afero.NewMemMapFs(), &bytes.Buffer{}).Lines(aggregate.New(logrus.New()))

	assert.Equal(t, "Total Score: no data - []", lines[0].Plain)
	assert.Equal(t, "Largest Contentful Paint: no data - []", lines[1].Plain)
	for _, line := range lines {
		assert.NotContains(t, line.Plain, "NaN")
	}
}

func TestLines_ConsoleColorsByTier(t *testing.T) {
	color.NoColor = false

	agg := aggregate.New(logrus.New())
	agg.RecordSample(metric.KeyLCP, aggregate.Sample{Value: 4000, Score: 0.2, HasScore: true})

	r := newTestRenderer(afero.NewMemMapFs(), &bytes.Buffer{})
	lines := r.Lines(agg)

	assert.Contains(t, lines[1].Console, color.RedString("4.00s (20%)"))
	assert.Contains(t, lines[1].Console, color.YellowString("Largest Contentful Paint"))
	assert.Equal(t, "Largest Contentful Paint: 4.00s (20%) - [4.00s]", lines[1].Plain)
}

func TestRender_AppendsSummaryOnce(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	r := newTestRenderer(fs, out)

	result := &campaign.Result{
		Mode: campaign.ModeConcurrent,
		Outcomes: []campaign.RunOutcome{
			{Index: 1, Duration: 2 * time.Second, TotalScore: 0.8},
			{Index: 2, Duration: time.Second, Err: errors.New("run 2 exec: exit status 1\nOutput: boom")},
			{Index: 3, Duration: 3 * time.Second, TotalScore: 1.0},
		},
	}

	agg := filledAggregator(0.8, 1.0)
	require.NoError(t, r.Render(agg, result, "/out/summary.txt"))

	data, err := afero.ReadFile(fs, "/out/summary.txt")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, len(metric.Keys()))
	for i, def := range metric.Definitions() {
		assert.True(t, strings.HasPrefix(lines[i], def.Label+": "), lines[i])
	}

	console := out.String()
	assert.Contains(t, console, "Total Score: 90.00% - [80.00%, 100.00%]")
	assert.Contains(t, console, "Failed runs: 2 (averages over 2/3 runs)")
	assert.Contains(t, console, "✗ FAIL")
	assert.Contains(t, console, "run 2 exec: exit status 1")
	assert.NotContains(t, console, "boom")

	// A second campaign in the same directory appends rather than truncates.
	require.NoError(t, r.Render(agg, result, "/out/summary.txt"))
	data, err = afero.ReadFile(fs, "/out/summary.txt")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), 2*len(metric.Keys()))
}

func TestRunsTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	headers, rows := RunsTable(&campaign.Result{
		Outcomes: []campaign.RunOutcome{
			{Index: 1, Duration: 1500 * time.Millisecond, TotalScore: 0.91},
			{Index: 2, Duration: 200 * time.Millisecond, Err: errors.New("decode: missing report field")},
		},
	}, NewColorHelper())

	assert.Equal(t, []string{"Run", "Status", "Duration", "Total Score", "Error"}, headers)
	assert.Equal(t, [][]string{
		{"1", "✓ OK", "1.5s", "91.00%", ""},
		{"2", "✗ FAIL", "200ms", "-", "decode: missing report field"},
	}, rows)
}
