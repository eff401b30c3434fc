package timeutil

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata" // zone data for minimal container images
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the 12-hour display format for game tip-off times.
const ClockLayout = "3:04 PM"

// ProviderZone is the zone the data provider reports naive timestamps in.
const ProviderZone = "America/New_York"

var providerLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// ErrEmptyTimestamp is returned when a provider timestamp is blank.
var ErrEmptyTimestamp = errors.New("empty timestamp")

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats a time as a 12-hour clock string in its current location.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// LoadLocation resolves name, falling back to UTC when it is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseProviderTime parses a provider timestamp. Values without an offset are
// interpreted in ProviderZone.
func ParseProviderTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyTimestamp
	}
	loc := LoadLocation(ProviderZone)
	var lastErr error
	for _, layout := range providerLayouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
