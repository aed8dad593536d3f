package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/habitcal/internal/summary"
)

func (a *App) statsCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-habit statistics for a month",
		Long: `Show, for every habit logged in a month, the number of days it was
logged, its longest streak and its current streak.

For the current month, only days up to today are counted.`,
		Example: `  habitcal stats
  habitcal stats --year 2024 --month 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sum, err := summary.BuildMonthSummary(context.Background(), a.repo, year, time.Month(month), time.Now())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, formatHeader(fmt.Sprintf("=== %s %d ===", sum.Month, sum.Year)))
			if len(sum.Habits) == 0 {
				_, _ = fmt.Fprintln(w, "No habits logged in the specified month.")
				return nil
			}
			for _, h := range sum.Habits {
				_, _ = fmt.Fprintf(w, "  %-16s %s  longest %d  current %d\n",
					formatHabit(h.Habit),
					formatStats(fmt.Sprintf("%2d/%d days (%3.0f%%)", h.Days, sum.Counted, 100*sum.Rate(h))),
					h.LongestStreak,
					h.CurrentStreak,
				)
			}
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year to summarize")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month to summarize (1-12)")

	return cmd
}
