// Package habit defines the habit log: dated values recorded per habit, and
// their conversion into calendar input.
package habit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/habitcal/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyHabit       = errors.New("habit name cannot be empty")
	ErrInvalidHabitName = errors.New("habit name cannot contain '=' or line breaks")
	ErrInvalidValue     = errors.New("habit value cannot contain line breaks")
	ErrMissingDate      = errors.New("record date is required")
)

// Domain errors.
var (
	ErrRecordNotFound = errors.New("record not found")
)

// DefaultValue is stored when a habit is logged without a value.
const DefaultValue = "✓"

// Record is one habit value logged for a date.
type Record struct {
	ID    int64
	Date  time.Time
	File  string // note the value was taken from, optional
	Habit string // may carry a display label after '|', e.g. "mood|M"
	Value string
	// CreatedAt is set when the record is stored.
	CreatedAt time.Time
}

// NewRecord creates a Record with validation. An empty value is stored as
// DefaultValue.
func NewRecord(date time.Time, habit, value, file string) (*Record, error) {
	if date.IsZero() {
		return nil, ErrMissingDate
	}

	habit = strings.TrimSpace(habit)
	if habit == "" {
		return nil, ErrEmptyHabit
	}
	if strings.ContainsAny(habit, "=\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHabitName, habit)
	}

	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "\r\n") {
		return nil, ErrInvalidValue
	}
	if value == "" {
		value = DefaultValue
	}

	return &Record{
		Date:      dateutil.TruncateToDay(date),
		File:      strings.TrimSpace(file),
		Habit:     habit,
		Value:     value,
		CreatedAt: time.Now(),
	}, nil
}

// ParseAssignment splits "habit=value". A bare "habit" has an empty value.
func ParseAssignment(s string) (habit, value string, err error) {
	habit, value, _ = strings.Cut(s, "=")
	habit = strings.TrimSpace(habit)
	if habit == "" {
		return "", "", fmt.Errorf("%w: %q", ErrEmptyHabit, s)
	}
	return habit, strings.TrimSpace(value), nil
}

// Name returns the habit name without its display label.
func (r *Record) Name() string {
	name, _, _ := strings.Cut(r.Habit, "|")
	return name
}
