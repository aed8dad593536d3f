// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/habitcal/internal/habit"
)

// MonthLoadedMsg is sent when the records of a month are loaded.
type MonthLoadedMsg struct {
	Year    int
	Month   time.Month
	Records []*habit.Record
}

// RecordsLoggedMsg is sent when records were stored.
type RecordsLoggedMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadMonth loads the records of one month.
func LoadMonth(repo habit.Repository, year int, month time.Month) tea.Cmd {
	return func() tea.Msg {
		records, err := repo.ListRecordsByMonth(context.Background(), year, month)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MonthLoadedMsg{Year: year, Month: month, Records: records}
	}
}

// LogRecords stores records in one batch.
func LogRecords(repo habit.Repository, records []*habit.Record) tea.Cmd {
	return func() tea.Msg {
		if err := repo.LogRecords(context.Background(), records); err != nil {
			return ErrMsg{Err: err}
		}
		return RecordsLoggedMsg{Count: len(records)}
	}
}

// ClearStatusAfter clears the status message after the given duration.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
