package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/habitcal/internal/habit"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a logged habit value",
		Long: `Delete a logged habit value by its ID, as shown by "habitcal list".

Example:
  habitcal delete 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid record ID %q", args[0])
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteRecord(context.Background(), id); err != nil {
				if errors.Is(err, habit.ErrRecordNotFound) {
					return fmt.Errorf("record #%d not found", id)
				}
				return fmt.Errorf("deleting record: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted record #%d\n", id)
			return nil
		},
	}
}
