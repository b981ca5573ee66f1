// Package lighthouse runs single Lighthouse audits and decodes their reports.
package lighthouse

import (
	"strings"
)

// Device is the emulated form factor of an audit.
type Device string

const (
	// DeviceDesktop audits with the desktop preset.
	DeviceDesktop Device = "desktop"
	// DeviceMobile audits with Lighthouse's default mobile emulation.
	DeviceMobile Device = "mobile"
)

const (
	// DefaultBinary is the command used when none is configured.
	DefaultBinary = "npx --yes lighthouse@latest"
	// DefaultBlockPattern is the URL pattern blocked when third-party blocking is on.
	DefaultBlockPattern = "https://www.googletagmanager.com"
	// ReportJSONSuffix is appended to the output prefix by Lighthouse for the JSON report.
	ReportJSONSuffix = ".report.json"
)

// RunConfig describes one audit run.
type RunConfig struct {
	URL             string
	Device          Device
	BlockThirdParty bool
	// OutputPrefix is the report path without the ".report.<ext>" suffix.
	OutputPrefix    string
	Index           int
}

// ReportPath returns where Lighthouse writes the JSON report for c.
func (c RunConfig) ReportPath() string {
	return c.OutputPrefix + ReportJSONSuffix
}

// Command is a resolved subprocess invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// BuildCommand assembles the Lighthouse invocation for cfg. binary may contain
// leading arguments, e.g. "npx --yes lighthouse@latest".
func BuildCommand(binary, blockPattern string, cfg RunConfig) Command {
	fields := strings.Fields(binary)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultBinary)
	}

	args := make([]string, 0, len(fields)+10)
	args = append(args, fields[1:]...)
	args = append(args, cfg.URL, "--only-categories=performance")

	if cfg.Device == DeviceDesktop {
		args = append(args, "--preset=desktop")
	}

	if cfg.BlockThirdParty {
		if blockPattern == "" {
			blockPattern = DefaultBlockPattern
		}
		args = append(args, "--blocked-url-patterns="+blockPattern)
	}

	args = append(args,
		"--output=html",
		"--output=json",
		"--output-path="+cfg.OutputPrefix,
		"--quiet",
		"--chrome-flags=--headless",
	)

	return Command{Name: fields[0], Args: args}
}
