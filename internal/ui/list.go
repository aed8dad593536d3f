package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged habit values for a month",
		Long: `List every habit value logged in a month, grouped by date.

If no month is specified, lists the current month.`,
		Example: `  habitcal list
  habitcal list --year 2024 --month 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			records, err := a.repo.ListRecordsByMonth(context.Background(), year, time.Month(month))
			if err != nil {
				return fmt.Errorf("listing records: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(w, "No habits logged in the specified month.")
				return nil
			}

			// Print records grouped by date
			var currentDate string
			for _, r := range records {
				date := r.Date.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						_, _ = fmt.Fprintln(w)
					}
					_, _ = fmt.Fprintln(w, formatHeader("=== "+date+" ==="))
					currentDate = date
				}

				line := fmt.Sprintf("  #%d %s %s", r.ID, formatHabit(r.Habit), r.Value)
				if r.File != "" {
					line += " " + formatMuted("("+r.File+")")
				}
				_, _ = fmt.Fprintln(w, line)
			}

			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, formatStats(fmt.Sprintf("%d values logged", len(records))))
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year to list")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month to list (1-12)")

	return cmd
}
