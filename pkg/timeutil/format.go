// Package timeutil provides time formatting utilities for astview.
//
// Request round trips are reported in the TUI status line and in CLI
// verbose output using these helpers.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration to a short human-readable string.
// Examples: "850µs", "450ms", "1.2s", "2m 15.3s"
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remaining := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}

// FormatClock formats a wall-clock time for status lines.
// Format: "HH:MM:SS"
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}
