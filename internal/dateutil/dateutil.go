// Package dateutil handles the ISO calendar-date keys (YYYY-MM-DD) used
// throughout the daily meal data. The format is fixed-width, so date keys
// compare correctly as plain strings.
package dateutil

import "time"

const Layout = "2006-01-02"

// ISO formats a time as its calendar-date key.
func ISO(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether s is a well-formed calendar-date key.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// IsToday reports whether the date key names the current day.
func IsToday(s string, now time.Time) bool {
	return s == ISO(now)
}

// IsPast reports whether the date key is before the current day.
func IsPast(s string, now time.Time) bool {
	return s < ISO(now)
}

// IsFuture reports whether the date key is after the current day.
func IsFuture(s string, now time.Time) bool {
	return s > ISO(now)
}
