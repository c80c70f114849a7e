package util

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used by the charting feeds and the output document.
const DayLayout = "2006/01/02"

// ParseDay parses "YYYY/MM/DD" into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// MustParseDay is ParseDay for constants and tests.
func MustParseDay(s string) time.Time {
	t, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDay renders t as "YYYY/MM/DD".
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// NextDay returns the calendar day after t, in UTC.
func NextDay(t time.Time) time.Time {
	return t.UTC().AddDate(0, 0, 1)
}

// IsWholeDay reports whether t sits exactly on a UTC midnight.
func IsWholeDay(t time.Time) bool {
	u := t.UTC()
	return u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0
}

// DaysBetween returns the number of whole days from -> to (negative if to is earlier).
func DaysBetween(from, to time.Time) int {
	return int(to.UTC().Sub(from.UTC()).Hours() / 24)
}
