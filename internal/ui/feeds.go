package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempo-sh/tempo/internal/feed"
	"github.com/tempo-sh/tempo/internal/ics"
)

func (a *App) feedsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feeds",
		Short: "Manage subscribed calendar feeds",
	}

	cmd.AddCommand(a.feedsListCmd())
	cmd.AddCommand(a.feedsRefreshCmd())

	return cmd
}

func (a *App) feedsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured feeds",
		RunE: func(_ *cobra.Command, _ []string) error {
			if len(a.config.Feeds) == 0 {
				fmt.Println("No feeds configured. Add [[feeds]] entries to the config file.")
				return nil
			}
			for _, f := range a.config.Feeds {
				fmt.Printf("  %s/%s  %s\n", f.AccountID, f.CalendarID, ics.RedactURL(f.URL))
			}
			return nil
		},
	}
}

func (a *App) feedsRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch every feed once and update the local cache",
		RunE: func(_ *cobra.Command, _ []string) error {
			if len(a.config.Feeds) == 0 {
				fmt.Println("No feeds configured.")
				return nil
			}

			a.refresher().RefreshAll(context.Background())
			fmt.Printf("Refreshed %d feeds\n", len(a.config.Feeds))
			return nil
		},
	}
}

// startRefresher begins the background refresh loop on the configured
// schedule, including the immediate first refresh. It returns nil when no
// feeds are configured; the caller owns Stop.
func (a *App) startRefresher() (*feed.Refresher, error) {
	if len(a.config.Feeds) == 0 {
		return nil, nil
	}
	r := a.refresher()
	if err := r.Start(a.config.Refresh.Schedule); err != nil {
		return nil, err
	}
	return r, nil
}

// refresher builds the feed refresher from the configured subscriptions.
func (a *App) refresher() *feed.Refresher {
	feeds := make([]feed.Feed, 0, len(a.config.Feeds))
	for _, f := range a.config.Feeds {
		feeds = append(feeds, feed.Feed{
			AccountID:  f.AccountID,
			CalendarID: f.CalendarID,
			URL:        f.URL,
		})
	}
	return feed.NewRefresher(ics.NewFetcher(), a.repo, feeds)
}
