package campaign

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/ethpandaops/heliograph/internal/format"
	"github.com/ethpandaops/heliograph/internal/lighthouse"
	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config contains configuration for a campaign.
type Config struct {
	Logger     logrus.FieldLogger
	Writer     io.Writer
	Executor   lighthouse.Executor
	Aggregator aggregate.Aggregator
	Runs       int
	Mode       Mode
	// RunConfig returns the configuration of run index (1-based).
	RunConfig  func(index int) lighthouse.RunConfig
}

// Orchestrator runs a campaign once.
type Orchestrator struct {
	log        logrus.FieldLogger
	writer     io.Writer
	writerMu   sync.Mutex
	executor   lighthouse.Executor
	aggregator aggregate.Aggregator
	runs       int
	mode       Mode
	runConfig  func(index int) lighthouse.RunConfig
	state      atomic.Int32

	green *color.Color
	red   *color.Color
}

// NewOrchestrator creates a new campaign orchestrator.
func NewOrchestrator(cfg *Config) *Orchestrator {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	runs := cfg.Runs
	if runs < 1 {
		runs = DefaultRuns
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeConcurrent
	}

	return &Orchestrator{
		log:        cfg.Logger.WithField("component", "campaign_orchestrator"),
		writer:     writer,
		executor:   cfg.Executor,
		aggregator: cfg.Aggregator,
		runs:       runs,
		mode:       mode,
		runConfig:  cfg.RunConfig,
		green:      color.New(color.FgGreen),
		red:        color.New(color.FgRed),
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Run executes every run of the campaign and returns once all have settled.
// Individual run failures are captured in the result, never returned.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if !o.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrAlreadyRun
	}
	defer o.state.Store(int32(StateDone))

	log := o.log.WithFields(logrus.Fields{
		"runs": o.runs,
		"mode": o.mode,
	})
	log.Debug("starting campaign")

	start := time.Now()
	outcomes := make([]RunOutcome, o.runs)

	switch o.mode {
	case ModeSequential:
		for i := 1; i <= o.runs; i++ {
			o.printProgress(i)
			outcomes[i-1] = o.executeRun(ctx, i)
		}
	default:
		var g errgroup.Group
		for i := 1; i <= o.runs; i++ {
			index := i
			o.printProgress(index)
			g.Go(func() error {
				outcomes[index-1] = o.executeRun(ctx, index)
				return nil
			})
		}
		// Every goroutine returns nil so one failing run never cancels its siblings.
		_ = g.Wait()
	}

	result := &Result{
		Mode:     o.mode,
		Outcomes: outcomes,
		Duration: time.Since(start),
	}

	log.WithFields(logrus.Fields{
		"succeeded": result.Succeeded(),
		"failed":    len(result.Failed()),
		"duration":  result.Duration,
	}).Info("campaign finished")

	return result, nil
}

func (o *Orchestrator) executeRun(ctx context.Context, index int) RunOutcome {
	start := time.Now()
	samples, err := o.executor.Run(ctx, o.runConfig(index))
	outcome := RunOutcome{
		Index:    index,
		Duration: time.Since(start),
		Err:      err,
	}

	if err != nil {
		o.log.WithError(err).WithField("run", index).Warn("run failed")
		o.printf(o.red, "✗ run %d/%d failed after %s: %v\n", index, o.runs, format.Duration(outcome.Duration), err)

		return outcome
	}

	o.aggregator.RecordRun(samples)
	outcome.TotalScore = samples[metric.KeyTotal].Value

	o.printf(o.green, "✓ run %d/%d completed in %s (%s)\n",
		index, o.runs, format.Duration(outcome.Duration), metric.FormatValue(outcome.TotalScore, metric.KeyTotal))

	return outcome
}

// printProgress announces run index with the running average of the total
// score over whichever runs have completed so far.
func (o *Orchestrator) printProgress(index int) {
	msg := fmt.Sprintf("Collecting data, run %d/%d...", index, o.runs)
	if o.aggregator.Len(metric.KeyTotal) > 0 {
		avg := o.aggregator.Average(metric.KeyTotal, aggregate.ByValue)
		msg += fmt.Sprintf(" (%s so far)", metric.FormatValue(avg, metric.KeyTotal))
	}

	o.printf(nil, "%s\n", msg)
}

func (o *Orchestrator) printf(c *color.Color, f string, args ...any) {
	o.writerMu.Lock()
	defer o.writerMu.Unlock()

	if c == nil {
		fmt.Fprintf(o.writer, f, args...)
		return
	}

	c.Fprintf(o.writer, f, args...)
}
