// Package agenda assembles one day's view: tasks and external events
// loaded from the store, recurring events expanded into occurrences, and
// every block laid out into grid columns.
package agenda

import (
	"context"
	"fmt"
	"sort"
	"time"

	applog "github.com/tempo-sh/tempo/internal/log"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/layout"
	"github.com/tempo-sh/tempo/internal/recurrence"
	"github.com/tempo-sh/tempo/internal/store"
)

// Item is one renderable block with its grid geometry and enough detail
// to start a drag on it.
type Item struct {
	ID           string
	Kind         event.Kind
	Title        string
	Location     string
	Done         bool
	StartMinutes int
	EndMinutes   int
	Layout       layout.ItemLayout
	Subject      interaction.Subject
}

// Day is the assembled view for one date.
type Day struct {
	Date  time.Time
	Items []Item
}

// Builder loads and lays out day views.
type Builder struct {
	repo store.Repository
}

// NewBuilder creates a builder over the repository.
func NewBuilder(repo store.Repository) *Builder {
	return &Builder{repo: repo}
}

// Build assembles the view for one day. Blocks that cannot be positioned
// (malformed times, all-day events, failed recurrence expansion) are left
// out of the grid rather than failing the day.
func (b *Builder) Build(ctx context.Context, day time.Time) (Day, error) {
	day = event.TruncateToDay(day)

	tasks, err := b.repo.ListTasksOn(ctx, day)
	if err != nil {
		return Day{}, fmt.Errorf("loading tasks: %w", err)
	}
	stored, err := b.repo.ListEvents(ctx)
	if err != nil {
		return Day{}, fmt.Errorf("loading events: %w", err)
	}

	occurrences := expandForDay(day, stored)
	positioned := event.ProjectDay(day, tasks, occurrences)
	layouts := layout.Layout(positioned)

	byTask := make(map[string]*event.Task, len(tasks))
	for _, t := range tasks {
		byTask[t.ID] = t
	}
	byInstance := make(map[string]event.ExternalEvent, len(occurrences))
	for _, e := range occurrences {
		byInstance[e.InstanceID()] = e
	}

	items := make([]Item, 0, len(positioned))
	for _, p := range positioned {
		item := Item{
			ID:           p.ID,
			Kind:         p.Kind,
			StartMinutes: p.StartMinutes,
			EndMinutes:   p.EndMinutes,
			Layout:       layouts[p.ID],
		}
		switch p.Kind {
		case event.KindTask:
			t := byTask[p.ID]
			if t == nil {
				continue
			}
			item.Title = t.Title
			item.Done = t.Done
			item.Subject = interaction.Subject{
				ID:    t.ID,
				Kind:  event.KindTask,
				Date:  day,
				Start: minuteOnDay(day, p.StartMinutes),
				End:   minuteOnDay(day, p.EndMinutes),
			}
		case event.KindExternalEvent:
			e, ok := byInstance[p.ID]
			if !ok {
				continue
			}
			item.Title = e.Title
			item.Location = e.Location
			item.Subject = interaction.Subject{
				ID:         e.ExternalID,
				Kind:       event.KindExternalEvent,
				AccountID:  e.AccountID,
				CalendarID: e.CalendarID,
				ExternalID: e.ExternalID,
				Date:       day,
				Start:      e.Start,
				End:        e.End,
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].StartMinutes != items[j].StartMinutes {
			return items[i].StartMinutes < items[j].StartMinutes
		}
		return items[i].Layout.ColumnIndex < items[j].Layout.ColumnIndex
	})

	return Day{Date: day, Items: items}, nil
}

// expandForDay materializes the occurrences of every stored event that
// touch the given day. Non-recurring events pass through untouched; a
// recurring event whose rule fails to expand is skipped with a log line.
func expandForDay(day time.Time, stored []event.ExternalEvent) []event.ExternalEvent {
	dayEnd := day.AddDate(0, 0, 1)

	var out []event.ExternalEvent
	for _, e := range stored {
		if e.RRule == "" {
			out = append(out, e)
			continue
		}

		duration := e.End.Sub(e.Start)
		starts, err := recurrence.Expand(e.RRule, e.Start, recurrence.ExpandConfig{
			RangeStart: day,
			RangeEnd:   dayEnd,
		})
		if err != nil {
			applog.Error("recurrence expansion failed", err, "event", e.ExternalID)
			continue
		}
		for _, start := range starts {
			occ := e
			occ.Start = start
			occ.End = start.Add(duration)
			out = append(out, occ)
		}
	}
	return out
}

func minuteOnDay(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}
