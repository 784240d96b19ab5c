package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/agenda"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date string
		days int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the agenda for a day",
		Long: `Print the laid-out agenda for one or more days.

Tasks and external events are projected onto the day grid; blocks that
overlap are shown side by side with column markers.`,
		Example: `  tempo list
  tempo list --date=2026-03-09
  tempo list --days=7`,
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := resolveDate(date)
			if err != nil {
				return err
			}
			if days < 1 {
				days = 1
			}

			builder := agenda.NewBuilder(a.repo)
			for i := 0; i < days; i++ {
				view, err := builder.Build(context.Background(), day.AddDate(0, 0, i))
				if err != nil {
					return fmt.Errorf("building agenda: %w", err)
				}
				if i > 0 {
					fmt.Println()
				}
				PrintAgenda(view)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to list (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&days, "days", 1, "Number of consecutive days to list")

	return cmd
}

func resolveDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return day, nil
}
