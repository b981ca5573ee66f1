package report

import (
	"github.com/ethpandaops/heliograph/internal/metric"
	"github.com/fatih/color"
)

// ColorHelper provides utilities for coloring console output
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
// Colors are enabled only when outputting to a terminal
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

// Success returns green colored text
func (c *ColorHelper) Success(text string) string {
	if !c.enabled {
		return text
	}
	return color.GreenString(text)
}

// Failure returns red colored text
func (c *ColorHelper) Failure(text string) string {
	if !c.enabled {
		return text
	}
	return color.RedString(text)
}

// Warning returns yellow colored text
func (c *ColorHelper) Warning(text string) string {
	if !c.enabled {
		return text
	}
	return color.YellowString(text)
}

// Muted returns gray colored text
func (c *ColorHelper) Muted(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgHiBlack).Sprint(text)
}

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgCyan, color.Bold).Sprint(text)
}

// Label returns a metric label
func (c *ColorHelper) Label(text string) string {
	return c.Warning(text)
}

// Tier colors text red, yellow or green by severity tier
func (c *ColorHelper) Tier(tier metric.Tier, text string) string {
	switch tier {
	case metric.TierLow:
		return c.Failure(text)
	case metric.TierMedium:
		return c.Warning(text)
	default:
		return c.Success(text)
	}
}

// FormatStatus returns appropriately colored run status text
func (c *ColorHelper) FormatStatus(passed bool) string {
	if passed {
		return c.Success("✓ OK")
	}
	return c.Failure("✗ FAIL")
}
