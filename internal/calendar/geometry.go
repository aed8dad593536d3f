package calendar

import (
	"fmt"
	"time"

	"github.com/javiermolinar/habitcal/internal/dateutil"
)

// DaysPerWeek is the number of columns of the grid.
const DaysPerWeek = 7

// Week is one row of the grid. A zero marks a padding cell.
type Week [DaysPerWeek]int

// Geometry describes the layout of a single month.
type Geometry struct {
	Year         int
	Month        int
	StartOfWeek  int // 0=Sunday..6=Saturday, first column of the grid
	FirstWeekday int // weekday of the 1st, 0=Sunday
	DaysInMonth  int
	Weeks        []Week
}

// NormalizeWeekday maps any integer onto 0..6.
func NormalizeWeekday(n int) int {
	return ((n % DaysPerWeek) + DaysPerWeek) % DaysPerWeek
}

// LeadingBlanks returns the number of padding cells before the 1st when the
// grid starts on startOfWeek.
func LeadingBlanks(firstWeekday, startOfWeek int) int {
	if firstWeekday >= startOfWeek {
		return firstWeekday - startOfWeek
	}
	return DaysPerWeek - startOfWeek + firstWeekday
}

// ComputeGeometry validates year and month and partitions the month into
// week rows starting on startOfWeek (taken modulo 7).
func ComputeGeometry(year, month, startOfWeek int) (Geometry, error) {
	first, err := dateutil.Parse(fmt.Sprintf("%d-%d", year, month), "YYYY-M")
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, month)
	}

	g := Geometry{
		Year:         year,
		Month:        month,
		StartOfWeek:  NormalizeWeekday(startOfWeek),
		FirstWeekday: dateutil.Weekday(first),
		DaysInMonth:  dateutil.DaysInMonth(year, time.Month(month)),
	}
	g.Weeks = partition(g.DaysInMonth, LeadingBlanks(g.FirstWeekday, g.StartOfWeek))
	return g, nil
}

func partition(daysInMonth, leading int) []Week {
	var weeks []Week
	var week Week
	col := leading
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == DaysPerWeek {
			weeks = append(weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// Days returns the day numbers of the grid in reading order, padding included.
func (g Geometry) Days() []int {
	days := make([]int, 0, len(g.Weeks)*DaysPerWeek)
	for _, w := range g.Weeks {
		days = append(days, w[:]...)
	}
	return days
}
