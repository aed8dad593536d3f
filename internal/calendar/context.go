package calendar

import (
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/dateutil"
)

// DefaultMonthFormat is the pattern of the month label.
const DefaultMonthFormat = "YYYY-MM"

// ContextOptions is the part of the settings snapshot that shapes the grid.
type ContextOptions struct {
	StartOfWeek int
	MonthFormat string
}

// RenderContext holds everything needed to draw one month. It is built once
// per render call and must not be modified afterwards.
type RenderContext struct {
	Year         int
	Month        int
	StartOfWeek  int
	FirstWeekday int
	DaysInMonth  int
	MonthLabel   string
	Width        string
	Format       Format
	Weeks        []Week
	DayToEntry   map[int]Entry
	Err          error
}

// Entry returns the entry bound to day, if any.
func (c RenderContext) Entry(day int) (Entry, bool) {
	if day <= 0 {
		return Entry{}, false
	}
	e, ok := c.DayToEntry[day]
	return e, ok
}

// BuildContext computes the geometry for data's month and binds its entries.
// An invalid month is reported through Err and leaves the grid empty.
func BuildContext(data Data, opts ContextOptions, log *zap.Logger) RenderContext {
	ctx := RenderContext{
		Year:        data.Year,
		Month:       data.Month,
		StartOfWeek: NormalizeWeekday(opts.StartOfWeek),
		Width:       data.Width,
		Format:      data.Format,
	}

	geo, err := ComputeGeometry(data.Year, data.Month, opts.StartOfWeek)
	if err != nil {
		ctx.Err = err
		return ctx
	}

	monthFormat := opts.MonthFormat
	if monthFormat == "" {
		monthFormat = DefaultMonthFormat
	}

	ctx.FirstWeekday = geo.FirstWeekday
	ctx.DaysInMonth = geo.DaysInMonth
	ctx.Weeks = geo.Weeks
	ctx.MonthLabel = dateutil.Format(dateutil.FirstOfMonth(data.Year, time.Month(data.Month)), monthFormat)
	ctx.DayToEntry = BindEntriesToDays(data.Entries, data.Year, data.Month, data.DatePattern, log)
	return ctx
}
