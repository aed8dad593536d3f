package calendar

import (
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/logging"
)

// BindEntriesToDays indexes the entries dated in the given year and month by
// day of month. Entries with unparsable dates or outside the month are
// dropped. When two entries land on the same day the later one wins.
func BindEntriesToDays(entries []Entry, year, month int, pattern string, log *zap.Logger) map[int]Entry {
	log = logging.OrNop(log)
	if pattern == "" {
		pattern = DefaultDatePattern
	}

	days := make(map[int]Entry)
	for _, e := range entries {
		t, err := dateutil.Parse(e.Date, pattern)
		if err != nil {
			log.Debug("skipping entry with unparsable date", zap.String("date", e.Date), zap.Error(err))
			continue
		}
		if t.Year() != year || int(t.Month()) != month {
			continue
		}
		days[t.Day()] = e
	}
	return days
}
