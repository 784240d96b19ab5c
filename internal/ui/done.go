package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.repo.SetTaskDone(context.Background(), args[0], !undo); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			if undo {
				fmt.Printf("Task %s reopened\n", args[0])
			} else {
				fmt.Printf("Task %s done\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen the task instead")

	return cmd
}

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.repo.DeleteTask(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Printf("Task %s deleted\n", args[0])
			return nil
		},
	}
}
