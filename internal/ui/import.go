package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	var (
		account  string
		calendar string
	)

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an ICS file",
		Long: `Import all events from an iCalendar file into one calendar.

The calendar's previously imported events are replaced, so re-importing
an updated export keeps it in sync.

Example:
  tempo import export.ics --account=personal --calendar=home`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			body, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading ics file: %w", err)
			}

			events, err := ics.Parse(account, calendar, body)
			if err != nil {
				return fmt.Errorf("parsing ics file: %w", err)
			}

			ctx := context.Background()
			if err := a.repo.ReplaceCalendarEvents(ctx, account, calendar, events); err != nil {
				return fmt.Errorf("storing events: %w", err)
			}

			fmt.Printf("Imported %d events into %s/%s from %s\n", len(events), account, calendar, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "local", "Account the events belong to")
	cmd.Flags().StringVar(&calendar, "calendar", "", "Calendar id to import into (required)")

	_ = cmd.MarkFlagRequired("calendar")

	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
