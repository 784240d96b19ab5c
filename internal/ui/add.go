package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task block to your schedule.

Example:
  tempo add "Write documentation" --date=2026-03-09 --start=09:00 --end=11:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := event.NewTask(args[0], date, start, end)
			if err != nil {
				return err
			}

			if err := a.repo.CreateTask(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Printf("Created task %s: %s %s %s-%s\n",
				t.ID,
				t.Title,
				t.ScheduledDate.Format("2006-01-02"),
				t.Start,
				t.End,
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
