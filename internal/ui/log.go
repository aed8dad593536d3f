package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/habit"
)

func (a *App) logCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "log DATE HABIT[=VALUE]...",
		Short: "Log habit values for a date",
		Long: `Log one or more habit values for a date.

DATE is today, yesterday, a weekday name (most recent occurrence), or
YYYY-MM-DD. A habit given without a value is logged as ` + habit.DefaultValue + `.
Dates in the future are rejected.`,
		Example: `  habitcal log today run=5km stretch
  habitcal log yesterday "mood|M=3"
  habitcal log 2025-01-15 read=20p --file notes/2025-01-15.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := buildRecords(args[0], args[1:], file, time.Now())
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.LogRecords(context.Background(), records); err != nil {
				return fmt.Errorf("logging habits: %w", err)
			}
			a.log.Debug("habits logged", zap.Int("count", len(records)))

			w := cmd.OutOrStdout()
			for _, r := range records {
				_, _ = fmt.Fprintf(w, "Logged #%d %s %s = %s\n",
					r.ID,
					r.Date.Format("2006-01-02"),
					formatHabit(r.Habit),
					r.Value,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Note the values were taken from (links the calendar day)")

	return cmd
}

// buildRecords validates every assignment before anything is stored.
func buildRecords(date string, assignments []string, file string, now time.Time) ([]*habit.Record, error) {
	day, err := dateutil.ParseLogDate(date, now)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", date, err)
	}

	records := make([]*habit.Record, 0, len(assignments))
	for _, s := range assignments {
		name, value, err := habit.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		r, err := habit.NewRecord(day, name, value, file)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
