package event

import "time"

// PositionedItem is one schedulable block projected into a single day's
// minute-of-day coordinate space. EndMinutes is always greater than
// StartMinutes; cross-midnight spans are clipped before construction.
type PositionedItem struct {
	ID           string
	Kind         Kind
	StartMinutes int
	EndMinutes   int
}

// Overlaps reports whether two items' [start,end) intervals intersect.
func (p PositionedItem) Overlaps(other PositionedItem) bool {
	return p.StartMinutes < other.EndMinutes && other.StartMinutes < p.EndMinutes
}

// ProjectDay projects tasks and external events onto one day's grid.
// Records that cannot be positioned are dropped rather than failing the
// whole day: tasks with unreadable times, events without a usable start or
// end, and all-day events (they have no grid position). Event spans are
// clipped to the day's bounds.
func ProjectDay(day time.Time, tasks []*Task, events []ExternalEvent) []PositionedItem {
	day = TruncateToDay(day)
	items := make([]PositionedItem, 0, len(tasks)+len(events))

	for _, t := range tasks {
		if t == nil || !SameDay(t.ScheduledDate, day) {
			continue
		}
		start := TimeToMinutes(t.Start)
		end := TimeToMinutes(t.End)
		if start < 0 || end < 0 || end <= start {
			continue
		}
		items = append(items, PositionedItem{
			ID:           t.ID,
			Kind:         KindTask,
			StartMinutes: start,
			EndMinutes:   end,
		})
	}

	dayEnd := day.AddDate(0, 0, 1)
	for _, e := range events {
		if e.AllDay || e.Start.IsZero() || e.End.IsZero() || !e.End.After(e.Start) {
			continue
		}
		if !e.Start.Before(dayEnd) || !e.End.After(day) {
			continue
		}

		start := 0
		if e.Start.After(day) {
			start = e.Start.Hour()*60 + e.Start.Minute()
		}
		end := 1440
		if e.End.Before(dayEnd) {
			end = e.End.Hour()*60 + e.End.Minute()
		}
		if end <= start {
			continue
		}

		items = append(items, PositionedItem{
			ID:           e.InstanceID(),
			Kind:         KindExternalEvent,
			StartMinutes: start,
			EndMinutes:   end,
		})
	}

	return items
}
