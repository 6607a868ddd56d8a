// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day format used in CLI flags and
// file names.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a time as a YYYY-MM-DD string.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	aMid := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bMid := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bMid.Sub(aMid).Hours() / 24)
}

// MonthsAgo returns the first day of the month n months before t.
func MonthsAgo(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -n, 0)
}
