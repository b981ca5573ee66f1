package lighthouse

import (
	"context"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Executor performs one audit run end to end.
type Executor interface {
	Run(ctx context.Context, cfg RunConfig) (aggregate.Samples, error)
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	Logger       logrus.FieldLogger
	Fs           afero.Fs
	Runner       CommandRunner
	Binary       string
	BlockPattern string
}

type executor struct {
	log          logrus.FieldLogger
	fs           afero.Fs
	runner       CommandRunner
	binary       string
	blockPattern string
}

// NewExecutor creates an Executor. A nil Fs defaults to the OS filesystem and
// a nil Runner to os/exec.
func NewExecutor(cfg ExecutorConfig) Executor {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	runner := cfg.Runner
	if runner == nil {
		runner = NewExecRunner(cfg.Logger)
	}

	return &executor{
		log:          cfg.Logger.WithField("component", "lighthouse_executor"),
		fs:           fs,
		runner:       runner,
		binary:       cfg.Binary,
		blockPattern: cfg.BlockPattern,
	}
}

// Run launches Lighthouse for cfg, waits for it to exit and decodes the JSON
// report it wrote. Any failure is returned as a *RunError.
func (e *executor) Run(ctx context.Context, cfg RunConfig) (aggregate.Samples, error) {
	log := e.log.WithField("run", cfg.Index)
	cmd := BuildCommand(e.binary, e.blockPattern, cfg)

	log.WithField("command", cmd.String()).Debug("starting audit")

	if _, err := e.runner.Run(ctx, cmd); err != nil {
		return nil, &RunError{Index: cfg.Index, Stage: StageExec, Err: err}
	}

	data, err := afero.ReadFile(e.fs, cfg.ReportPath())
	if err != nil {
		return nil, &RunError{Index: cfg.Index, Stage: StageRead, Err: err}
	}

	samples, err := DecodeReport(data)
	if err != nil {
		return nil, &RunError{Index: cfg.Index, Stage: StageDecode, Err: err}
	}

	log.WithField("report", cfg.ReportPath()).Debug("audit report decoded")

	return samples, nil
}

// Compile-time interface compliance check
var _ Executor = (*executor)(nil)
