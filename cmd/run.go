package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethpandaops/heliograph/internal/aggregate"
	"github.com/ethpandaops/heliograph/internal/campaign"
	"github.com/ethpandaops/heliograph/internal/config"
	"github.com/ethpandaops/heliograph/internal/layout"
	"github.com/ethpandaops/heliograph/internal/lighthouse"
	"github.com/ethpandaops/heliograph/internal/report"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// errMissingURL is returned when no target URL is given.
var errMissingURL = errors.New("please provide a URL to run Lighthouse against")

var (
	// Campaign flags
	runMobile        bool
	runBlockGTM      bool
	runSync          bool
	runCount         int
	runOutputDir     string
	runLighthouseBin string
)

// campaignOptions is the resolved input of one campaign.
type campaignOptions struct {
	Target       string
	Device       lighthouse.Device
	BlockGTM     bool
	Mode         campaign.Mode
	Runs         int
	OutputDir    string
	Binary       string
	BlockPattern string
}

// campaignDeps are the side-effecting collaborators of a campaign.
type campaignDeps struct {
	Log    logrus.FieldLogger
	Fs     afero.Fs
	Runner lighthouse.CommandRunner
	Out    io.Writer
	Now    func() time.Time
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&runMobile, "mobile", false, "Audit with mobile emulation instead of the desktop preset")
	flags.BoolVar(&runBlockGTM, "block-gtm", false, "Block Google Tag Manager (see HELIOGRAPH_BLOCK_PATTERN)")
	flags.BoolVar(&runSync, "sync", false, "Run audits one after another instead of all at once")
	flags.IntVar(&runCount, "runs", 0, "Number of audits (default from config, 5)")
	flags.StringVar(&runOutputDir, "output-dir", "", "Base directory for reports (default from config)")
	flags.StringVar(&runLighthouseBin, "lighthouse-bin", "", "Lighthouse command (default from config)")
}

func runCampaign(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errMissingURL
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if runCount != 0 {
		cfg.Runs = runCount
	}
	if runOutputDir != "" {
		cfg.OutputDir = runOutputDir
	}
	if runLighthouseBin != "" {
		cfg.LighthouseBin = runLighthouseBin
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	opts := campaignOptions{
		Target:       args[0],
		Device:       lighthouse.DeviceDesktop,
		BlockGTM:     runBlockGTM,
		Mode:         campaign.ModeConcurrent,
		Runs:         cfg.Runs,
		OutputDir:    cfg.OutputDir,
		Binary:       cfg.LighthouseBin,
		BlockPattern: cfg.BlockPattern,
	}
	if runMobile {
		opts.Device = lighthouse.DeviceMobile
	}
	if runSync {
		opts.Mode = campaign.ModeSequential
	}

	return executeCampaign(context.Background(), opts, campaignDeps{
		Log:    Logger,
		Fs:     afero.NewOsFs(),
		Runner: lighthouse.NewExecRunner(Logger),
		Out:    cmd.OutOrStdout(),
		Now:    time.Now,
	})
}

// executeCampaign runs every audit of opts and renders the report. It fails
// only on invalid input or when no run produced data.
func executeCampaign(ctx context.Context, opts campaignOptions, deps campaignDeps) error {
	target, err := layout.ParseTarget(opts.Target)
	if err != nil {
		return err
	}

	dirs := layout.New(opts.OutputDir, target, string(opts.Device), deps.Now())
	if err := dirs.Ensure(deps.Fs); err != nil {
		return err
	}

	log := deps.Log.WithFields(logrus.Fields{
		"url":    target.String(),
		"device": opts.Device,
		"dir":    dirs.Dir,
	})
	log.Debug("campaign configured")

	fmt.Fprintf(deps.Out, "Running Lighthouse on %s (%s), %d times...\n",
		color.YellowString(target.Hostname()+target.Path), opts.Device, opts.Runs)

	agg := aggregate.New(log)
	executor := lighthouse.NewExecutor(lighthouse.ExecutorConfig{
		Logger:       log,
		Fs:           deps.Fs,
		Runner:       deps.Runner,
		Binary:       opts.Binary,
		BlockPattern: opts.BlockPattern,
	})

	orchestrator := campaign.NewOrchestrator(&campaign.Config{
		Logger:     log,
		Writer:     deps.Out,
		Executor:   executor,
		Aggregator: agg,
		Runs:       opts.Runs,
		Mode:       opts.Mode,
		RunConfig: func(index int) lighthouse.RunConfig {
			return lighthouse.RunConfig{
				URL:             target.String(),
				Device:          opts.Device,
				BlockThirdParty: opts.BlockGTM,
				OutputPrefix:    dirs.RunPrefix(index),
				Index:           index,
			}
		},
	})

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("running campaign: %w", err)
	}

	renderer := report.NewRenderer(report.Config{
		Logger: log,
		Fs:     deps.Fs,
		Writer: deps.Out,
	})

	if err := renderer.Render(agg, result, dirs.SummaryPath()); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if result.Succeeded() == 0 {
		return fmt.Errorf("all %d runs failed", result.Total())
	}

	return nil
}
