// Package timeutil handles time-of-day values ("HH:MM") used by bookings and
// the slot generator. Zero-padded HH:MM strings compare lexicographically in
// chronological order, which the SQL overlap queries rely on.
package timeutil

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

const clockLayout = "15:04"

// ParseClock converts "HH:MM" to minutes since midnight. Non-padded input
// is rejected so stored values always compare lexicographically.
func ParseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Combine attaches a clock time to a calendar date in the local zone.
func Combine(date time.Time, clock string) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.Local), nil
}

// ParseDate parses a YYYY-MM-DD date in the local zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
