package calendar

import (
	"strings"

	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/logging"
)

// Normalize converts a request into canonical calendar data. Table results
// are folded into one entry per date string; entry lists pass through.
// The request is never modified.
func Normalize(req Request, log *zap.Logger) Data {
	log = logging.OrNop(log)

	data := Data{
		Year:        req.Year,
		Month:       req.Month,
		Width:       req.Width,
		Format:      req.Format,
		DatePattern: resolvePattern(req.DatePattern, req.NotePattern),
	}
	if data.Width == "" {
		data.Width = DefaultWidth
	}
	if data.Format == "" {
		data.Format = FormatText
	}

	switch raw := req.Data.(type) {
	case TableResult:
		data.Entries = entriesFromTable(raw, data.DatePattern, log)
		// Table cells are labeled values, never a single html/markdown document.
		data.Format = FormatText
	case EntryList:
		data.Entries = append([]Entry(nil), raw...)
	case nil:
	default:
		log.Debug("unsupported calendar data", zap.Stringer("kind", raw.Kind()))
	}

	return data
}

// resolvePattern applies the date pattern precedence: date_pattern, then the
// deprecated note_pattern, then the default.
func resolvePattern(datePattern, notePattern string) string {
	if datePattern != "" {
		return datePattern
	}
	if notePattern != "" {
		return notePattern
	}
	return DefaultDatePattern
}

// entriesFromTable folds table rows into entries keyed by date string.
// Content lines keep column order within a row and input order across rows;
// the link of the first row for a date wins.
func entriesFromTable(t TableResult, pattern string, log *zap.Logger) []Entry {
	var entries []Entry
	index := make(map[string]int)

	for i, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		date := row[0].FileName()
		if _, err := dateutil.Parse(date, pattern); err != nil {
			log.Debug("skipping table row with unparsable date",
				zap.Int("row", i), zap.String("date", date), zap.Error(err))
			continue
		}

		pos, ok := index[date]
		if !ok {
			pos = len(entries)
			index[date] = pos
			entries = append(entries, Entry{Date: date, Link: row[0].Path})
		}

		var content strings.Builder
		content.WriteString(entries[pos].Content)
		for col := 1; col < len(row); col++ {
			value := row[col].Value
			if value == "" {
				continue
			}
			content.WriteString(t.HeaderLabel(col))
			content.WriteByte(' ')
			content.WriteString(value)
			content.WriteByte('\n')
		}
		entries[pos].Content = content.String()
	}

	return entries
}
