package dateutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nleeper/goment"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPattern is the date pattern used when a request does not set one.
const DefaultPattern = "YYYY-MM-DD"

var (
	digitRun  = regexp.MustCompile(`\d+`)
	titleCase = cases.Title(language.English)
)

// Parse parses value against a moment-style pattern such as "YYYY-MM-DD" or
// "D MMMM YYYY". Fields missing from the pattern default to January, the
// first of the month and the current year. Month and weekday names match
// regardless of case.
//
// The whole value must match: formatting the parsed date with pattern has to
// give value back, leading zeros aside. Out-of-range fields (month 13,
// February 30) and weekdays that disagree with the date yield ErrInvalidDate.
func Parse(value, pattern string) (time.Time, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	input := value
	if strings.Contains(pattern, "MMM") || strings.Contains(pattern, "ddd") {
		input = titleCase.String(value)
	}
	g, err := goment.New(input, pattern)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q: %v", ErrInvalidDate, value, pattern, err)
	}
	if canonical(g.Format(pattern)) != canonical(value) {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid %q date", ErrInvalidDate, value, pattern)
	}

	t := g.ToTime()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// canonical lowercases s and drops leading zeros from its digit runs, so
// "2024-02-05" and "2024-2-5" compare equal.
func canonical(s string) string {
	return digitRun.ReplaceAllStringFunc(strings.ToLower(s), func(run string) string {
		if trimmed := strings.TrimLeft(run, "0"); trimmed != "" {
			return trimmed
		}
		return "0"
	})
}

// Format renders the calendar day of t using the same pattern language
// accepted by Parse.
func Format(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	// Noon keeps the day stable if the value is moved to another zone.
	g, err := goment.New(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local))
	if err != nil {
		return ""
	}
	return g.Format(pattern)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weekday returns the weekday index (0=Sunday..6=Saturday) of t.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}
