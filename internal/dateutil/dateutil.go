// Package dateutil provides date parsing, formatting, and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidPattern = errors.New("invalid date pattern")
	ErrDateInFuture   = errors.New("cannot log habits in the future")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns midnight UTC on the first day of the given month.
func FirstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// ParseLogDate parses the date a habit value is recorded for:
//   - Empty string or "today": returns relativeTo date
//   - "yesterday"
//   - Weekday names: "monday" through "sunday" (most recent occurrence, never today)
//   - "last-monday" through "last-sunday" (same as the bare weekday)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// All inputs are case-insensitive.
// Returns ErrDateInFuture if the resulting date is after relativeTo (truncated to day).
func ParseLogDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	name := strings.TrimPrefix(input, "last-")
	if targetDay, ok := weekdayMap[name]; ok {
		return previousWeekday(today, targetDay), nil
	}

	result, err := Parse(input, DefaultPattern)
	if err != nil {
		return time.Time{}, err
	}
	result = time.Date(result.Year(), result.Month(), result.Day(), 0, 0, 0, 0, today.Location())
	if result.After(today) {
		return time.Time{}, ErrDateInFuture
	}
	return result, nil
}

// previousWeekday returns the most recent occurrence of the given weekday
// before today. If today is the target weekday, returns one week ago.
func previousWeekday(today time.Time, target time.Weekday) time.Time {
	daysSince := int(today.Weekday()) - int(target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return today.AddDate(0, 0, -daysSince)
}
