package models

import (
	"fmt"
	"regexp"
	"time"
)

// MonthKeyLayout is the canonical budget month key format, e.g. "2026-03".
const MonthKeyLayout = "2006-01"

var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthKeyForDate returns the UTC month key for a transaction date.
// Budgets are keyed by the calendar month of the transaction date in UTC,
// so a transaction late on the last day of a month stays in that month
// regardless of server timezone.
func MonthKeyForDate(date time.Time) string {
	return date.UTC().Format(MonthKeyLayout)
}

// IsValidMonthKey reports whether key is a well-formed YYYY-MM month key.
func IsValidMonthKey(key string) bool {
	return monthKeyRegex.MatchString(key)
}

// ParseMonthKey parses a YYYY-MM key into the first instant of that month in UTC.
func ParseMonthKey(key string) (time.Time, error) {
	if !IsValidMonthKey(key) {
		return time.Time{}, fmt.Errorf("invalid month key %q, expected YYYY-MM", key)
	}
	return time.Parse(MonthKeyLayout, key)
}

// MonthBounds returns the half-open UTC interval [start, end) covering the
// month identified by key. Callers filter transaction dates with
// date >= start AND date < end.
func MonthBounds(key string) (time.Time, time.Time, error) {
	start, err := ParseMonthKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// PreviousMonthKey returns the key for the month before the given key.
func PreviousMonthKey(key string) (string, error) {
	start, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	return start.AddDate(0, -1, 0).Format(MonthKeyLayout), nil
}
