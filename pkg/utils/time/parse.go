// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the ISO-8601 variants and day-first dates found in open-data datasets

package time

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Common time formats found in open-data contract datasets, most specific first
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseFlexibleTime attempts to parse a time string using various formats.
// Slash-separated dates are read day-first. Returns the zero time on failure.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	// Last resort for less common layouts
	if t, err := dateparse.ParseIn(timeStr, time.UTC); err == nil {
		return t
	}

	return time.Time{}
}

// ParseDate parses a time string and truncates it to a UTC calendar date
func ParseDate(timeStr string) (time.Time, bool) {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}
