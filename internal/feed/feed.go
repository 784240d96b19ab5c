// Package feed keeps the local event cache in sync with subscribed
// calendar feeds on a cron schedule.
package feed

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	applog "github.com/tempo-sh/tempo/internal/log"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/ics"
)

// Feed is one subscribed calendar source.
type Feed struct {
	AccountID  string
	CalendarID string
	URL        string
}

// Fetcher downloads a feed payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// EventReplacer swaps one calendar's cached events for a fresh set.
type EventReplacer interface {
	ReplaceCalendarEvents(ctx context.Context, accountID, calendarID string, events []event.ExternalEvent) error
}

// Refresher fetches every subscribed feed and replaces the cached events
// calendar by calendar. One failing feed never blocks the others.
type Refresher struct {
	fetcher Fetcher
	store   EventReplacer
	feeds   []Feed

	cron *cron.Cron
}

// NewRefresher creates a refresher over the given feeds.
func NewRefresher(fetcher Fetcher, store EventReplacer, feeds []Feed) *Refresher {
	return &Refresher{fetcher: fetcher, store: store, feeds: feeds}
}

// RefreshAll refreshes every feed once. Per-feed failures are logged, not
// propagated, so a dead feed leaves its last good snapshot in place.
func (r *Refresher) RefreshAll(ctx context.Context) {
	for _, f := range r.feeds {
		if err := r.refreshOne(ctx, f); err != nil {
			applog.Error("feed refresh failed", err, "calendar", f.CalendarID, "url", ics.RedactURL(f.URL))
		}
	}
}

func (r *Refresher) refreshOne(ctx context.Context, f Feed) error {
	body, err := r.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return err
	}
	events, err := ics.Parse(f.AccountID, f.CalendarID, body)
	if err != nil {
		return fmt.Errorf("parsing feed: %w", err)
	}
	if err := r.store.ReplaceCalendarEvents(ctx, f.AccountID, f.CalendarID, events); err != nil {
		return fmt.Errorf("storing feed events: %w", err)
	}
	return nil
}

// Start schedules periodic refreshes with the given cron expression
// (five-field, e.g. "*/15 * * * *"). It refreshes once immediately so the
// grid is populated before the first tick.
func (r *Refresher) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		r.RefreshAll(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	r.RefreshAll(context.Background())
	c.Start()
	r.cron = c
	applog.Info("feed refresh scheduled", "spec", spec, "feeds", len(r.feeds))
	return nil
}

// Stop halts the refresh schedule. In-flight refreshes finish.
func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
		r.cron = nil
	}
}
