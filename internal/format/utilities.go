// Package format provides shared formatting utilities for human-readable output.
package format

import (
	"fmt"
	"time"
)

// Duration formats a wall-clock duration for progress output.
// Handles milliseconds, seconds, and minutes.
func Duration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%.1fm", d.Minutes())
}

// Milliseconds formats a measurement given in milliseconds.
// Values below one second stay in ms, anything else is scaled to seconds.
func Milliseconds(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms)
	}

	return fmt.Sprintf("%.2fs", ms/1000)
}

// Percent formats a ratio in [0,1] as a percentage with the given precision.
func Percent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, ratio*100)
}

// Decimal formats a unitless value with two decimals.
func Decimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
