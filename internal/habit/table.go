package habit

import (
	"path"
	"slices"
	"strings"

	"github.com/javiermolinar/habitcal/internal/calendar"
	"github.com/javiermolinar/habitcal/internal/dateutil"
)

// FileHeader is the header of the first column of a habit table.
const FileHeader = "File"

// TableFromRecords lays records out the way a note query returns them: one
// row per date (and file), one column per habit. The first column holds the
// date formatted with datePattern, linked to the record's file when the file
// is named after that date. Several values of one habit on one row are
// joined with ", ".
func TableFromRecords(records []*Record, datePattern string) calendar.TableResult {
	if datePattern == "" {
		datePattern = dateutil.DefaultPattern
	}

	var habits []string
	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Habit] {
			seen[r.Habit] = true
			habits = append(habits, r.Habit)
		}
	}
	slices.Sort(habits)

	column := make(map[string]int, len(habits))
	headers := append([]string{FileHeader}, habits...)
	for i, h := range habits {
		column[h] = i + 1
	}

	type rowKey struct{ date, file string }
	var rows [][]calendar.Cell
	index := make(map[rowKey]int)

	for _, r := range records {
		date := dateutil.Format(r.Date, datePattern)
		link := ""
		if fileMatchesDate(r.File, date) {
			link = r.File
		}
		key := rowKey{date, link}

		pos, ok := index[key]
		if !ok {
			row := make([]calendar.Cell, len(headers))
			row[0] = calendar.Cell{Value: date, Path: link}
			pos = len(rows)
			index[key] = pos
			rows = append(rows, row)
		}

		cell := &rows[pos][column[r.Habit]]
		if cell.Value == "" {
			cell.Value = r.Value
		} else {
			cell.Value += ", " + r.Value
		}
	}

	return calendar.TableResult{Headers: headers, Rows: rows}
}

// EntriesFromRecords folds records into one entry per date, with one
// "label value" line per habit.
func EntriesFromRecords(records []*Record, datePattern string) calendar.EntryList {
	data := calendar.Normalize(calendar.Request{
		DatePattern: datePattern,
		Data:        TableFromRecords(records, datePattern),
	}, nil)
	return calendar.EntryList(data.Entries)
}

func fileMatchesDate(file, date string) bool {
	if file == "" {
		return false
	}
	base := path.Base(strings.ReplaceAll(file, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base)) == date
}
