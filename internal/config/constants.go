package config

import (
	"github.com/ethpandaops/heliograph/internal/campaign"
	"github.com/ethpandaops/heliograph/internal/lighthouse"
)

const (
	// DefaultRuns is the number of audits per campaign.
	DefaultRuns = campaign.DefaultRuns
	// DefaultLighthouseBin is the command used to invoke Lighthouse.
	DefaultLighthouseBin = lighthouse.DefaultBinary
	// DefaultBlockPattern is blocked by --block-gtm.
	DefaultBlockPattern = lighthouse.DefaultBlockPattern
	// DefaultReportsSubdir is joined to the home directory for the default output dir.
	DefaultReportsSubdir = "lighthouse/reports"

	// EnvOutputDir overrides the output directory.
	EnvOutputDir = "HELIOGRAPH_OUTPUT_DIR"
	// EnvRuns overrides the number of runs.
	EnvRuns = "HELIOGRAPH_RUNS"
	// EnvLighthouseBin overrides the Lighthouse command.
	EnvLighthouseBin = "LIGHTHOUSE_BIN"
	// EnvBlockPattern overrides the blocked URL pattern.
	EnvBlockPattern = "HELIOGRAPH_BLOCK_PATTERN"
)
