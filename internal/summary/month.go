// Package summary provides per-habit statistics over one month of the habit log.
package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/habit"
)

// HabitStats holds the statistics of one habit within a month.
type HabitStats struct {
	Habit string
	// Days is the number of distinct days the habit was logged.
	Days int
	// LongestStreak is the longest run of consecutive logged days.
	LongestStreak int
	// CurrentStreak is the run ending on the last counted day, or 0 when
	// that day was not logged.
	CurrentStreak int
}

// MonthSummary holds aggregated month data.
type MonthSummary struct {
	Year  int
	Month time.Month
	// Counted is the number of days the statistics cover: the whole month,
	// or up to today for the current month, 0 for future months.
	Counted int
	Habits  []HabitStats
}

// Rate returns the share of counted days on which s was logged.
func (m *MonthSummary) Rate(s HabitStats) float64 {
	if m.Counted == 0 {
		return 0
	}
	return float64(s.Days) / float64(m.Counted)
}

// SummarizeMonth builds statistics from records of one month, relative to now.
// Records outside the month are ignored. Habits are sorted by name.
func SummarizeMonth(year int, month time.Month, records []*habit.Record, now time.Time) *MonthSummary {
	first := dateutil.FirstOfMonth(year, month)
	year, month = first.Year(), first.Month()

	sum := &MonthSummary{Year: year, Month: month, Counted: countedDays(year, month, now)}

	days := make(map[string]map[int]bool)
	for _, r := range records {
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		name := r.Name()
		if days[name] == nil {
			days[name] = make(map[int]bool)
		}
		days[name][r.Date.Day()] = true
	}

	names := make([]string, 0, len(days))
	for name := range days {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sum.Habits = append(sum.Habits, habitStats(name, days[name], dateutil.DaysInMonth(year, month), sum.Counted))
	}
	return sum
}

func habitStats(name string, logged map[int]bool, daysInMonth, counted int) HabitStats {
	s := HabitStats{Habit: name, Days: len(logged)}

	run := 0
	for d := 1; d <= daysInMonth; d++ {
		if !logged[d] {
			run = 0
			continue
		}
		run++
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
	}

	for d := counted; d >= 1 && logged[d]; d-- {
		s.CurrentStreak++
	}
	return s
}

func countedDays(year int, month time.Month, now time.Time) int {
	switch {
	case year < now.Year() || (year == now.Year() && month < now.Month()):
		return dateutil.DaysInMonth(year, month)
	case year == now.Year() && month == now.Month():
		return now.Day()
	default:
		return 0
	}
}

// BuildMonthSummary loads the records of a month and summarizes them.
func BuildMonthSummary(ctx context.Context, repo habit.Repository, year int, month time.Month, now time.Time) (*MonthSummary, error) {
	records, err := repo.ListRecordsByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	return SummarizeMonth(year, month, records, now), nil
}
