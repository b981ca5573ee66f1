// Package report renders the averaged campaign results to the console and the
// summary file.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/ethpandaops/heliograph/internal/campaign"
	"github.com/ethpandaops/heliograph/internal/format"
	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Line is the rendering of one metric.
type Line struct {
	Key     metric.Key
	Plain   string
	Console string
}

// Config configures a Renderer.
type Config struct {
	Logger logrus.FieldLogger
	Fs     afero.Fs
	Writer io.Writer
}

// Renderer writes the final report of a campaign.
type Renderer struct {
	log    logrus.FieldLogger
	fs     afero.Fs
	writer io.Writer
	colors *ColorHelper
	table  TableRenderer
}

// NewRenderer creates a report renderer.
func NewRenderer(cfg Config) *Renderer {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	return &Renderer{
		log:    cfg.Logger.WithField("component", "report_renderer"),
		fs:     fs,
		writer: writer,
		colors: NewColorHelper(),
		table:  NewTableRenderer(),
	}
}

// Lines renders every metric in registry order.
func (r *Renderer) Lines(agg aggregate.Aggregator) []Line {
	defs := metric.Definitions()
	lines := make([]Line, 0, len(defs))

	for _, def := range defs {
		lines = append(lines, r.line(agg, def))
	}

	return lines
}

func (r *Renderer) line(agg aggregate.Aggregator, def metric.Definition) Line {
	avgValue := agg.Average(def.Key, aggregate.ByValue)

	value := metric.FormatValue(avgValue, def.Key)
	if def.HasScore() && !math.IsNaN(avgValue) {
		value += " (" + metric.FormatScore(agg.Average(def.Key, aggregate.ByScore)) + ")"
	}

	series := agg.Series(def.Key)
	values := make([]string, len(series))
	for i, s := range series {
		values[i] = metric.FormatValue(s.Value, def.Key)
	}
	list := " - [" + strings.Join(values, ", ") + "]"

	var coloredValue string
	switch {
	case math.IsNaN(avgValue):
		coloredValue = r.colors.Muted(value)
	case def.HasScore():
		coloredValue = r.colors.Tier(metric.SeverityTier(agg.Average(def.Key, aggregate.ByScore)), value)
	default:
		coloredValue = value
	}

	return Line{
		Key:     def.Key,
		Plain:   def.Label + ": " + value + list,
		Console: r.colors.Label(def.Label) + ": " + coloredValue + list,
	}
}

// Render prints the metric lines and a run overview, then appends the plain
// lines to summaryPath in a single write.
func (r *Renderer) Render(agg aggregate.Aggregator, result *campaign.Result, summaryPath string) error {
	lines := r.Lines(agg)

	fmt.Fprintln(r.writer)
	for _, line := range lines {
		fmt.Fprintln(r.writer, line.Console)
	}

	r.printRuns(result)

	if err := r.appendSummary(summaryPath, lines); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"path":  summaryPath,
		"lines": len(lines),
	}).Debug("summary written")

	return nil
}

func (r *Renderer) appendSummary(path string, lines []Line) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.Plain)
		b.WriteString("\n")
	}

	f, err := r.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening summary file: %w", err)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing summary file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing summary file: %w", err)
	}

	return nil
}

func (r *Renderer) printRuns(result *campaign.Result) {
	if result == nil {
		return
	}

	fmt.Fprintln(r.writer, "\n"+r.colors.Header("▸ Runs")+"\n")
	fmt.Fprint(r.writer, r.table.RenderToString(RunsTable(result, r.colors)))

	failed := result.FailedIndices()
	if len(failed) == 0 {
		fmt.Fprintln(r.writer, r.colors.Success(fmt.Sprintf("All %d runs completed in %s", result.Total(), format.Duration(result.Duration))))
		return
	}

	indices := make([]string, len(failed))
	for i, idx := range failed {
		indices[i] = fmt.Sprintf("%d", idx)
	}

	fmt.Fprintln(r.writer, r.colors.Failure(fmt.Sprintf(
		"Failed runs: %s (averages over %d/%d runs)",
		strings.Join(indices, ", "), result.Succeeded(), result.Total(),
	)))
}

// RunsTable returns the headers and rows of the run overview.
func RunsTable(result *campaign.Result, colors *ColorHelper) ([]string, [][]string) {
	headers := []string{"Run", "Status", "Duration", "Total Score", "Error"}
	rows := make([][]string, 0, len(result.Outcomes))

	for _, o := range result.Outcomes {
		score := "-"
		errText := ""
		if o.Succeeded() {
			score = metric.FormatValue(o.TotalScore, metric.KeyTotal)
		} else {
			errText = firstLine(o.Err.Error())
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", o.Index),
			colors.FormatStatus(o.Succeeded()),
			format.Duration(o.Duration),
			score,
			errText,
		})
	}

	return headers, rows
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
