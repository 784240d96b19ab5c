package interaction

import (
	"time"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/timegrid"
)

// Interaction constants, in minutes.
const (
	// DefaultDurationMinutes is the initial length of a drag-created block.
	DefaultDurationMinutes = 60
	// MinDurationMinutes is the shortest an item can be resized to.
	MinDurationMinutes = 15
)

// MoveIntent asks the store to move a subject to a new start, keeping its
// duration. Advisory: the store decides how (and whether) to apply it.
type MoveIntent struct {
	SubjectID       string
	Kind            event.Kind
	NewStart        time.Time
	DurationMinutes int
}

// ResizeIntent asks the store to re-anchor one edge of a subject. Exactly
// one of start/duration differs from the original; duration is always
// re-derived from the clamped edge.
type ResizeIntent struct {
	SubjectID          string
	Kind               event.Kind
	NewStart           time.Time
	NewDurationMinutes int
}

// CreateIntent asks the store to create a new event on a calendar.
type CreateIntent struct {
	Target event.Calendar
	Start  time.Time
	End    time.Time
}

// BuildMove computes the move intent for dropping a subject on a slot.
// The drop slot's time becomes the new start anchor; duration is
// preserved. Moves may cross days; the slot carries its own date.
func BuildMove(sub Subject, drop timegrid.SlotCoordinate) MoveIntent {
	return MoveIntent{
		SubjectID:       sub.ID,
		Kind:            sub.Kind,
		NewStart:        drop.Time(),
		DurationMinutes: sub.DurationMinutes(),
	}
}

// BuildResizeStart computes the intent for dropping a subject's start edge
// on a slot. The new start is clamped into [day start, end-MinDuration]
// and never past the latest allowed start (end minus one slot). ok=false
// means the drop lands on a different day than the subject; resize
// semantics are only defined within one day, so the gesture is dropped.
func BuildResizeStart(sub Subject, drop timegrid.SlotCoordinate) (ResizeIntent, bool) {
	if !sameDay(sub.Date, drop.Date) {
		return ResizeIntent{}, false
	}

	end := sub.EndMinutes()
	newStart := drop.MinuteOfDay()
	if newStart < 0 {
		newStart = 0
	}
	if latest := end - MinDurationMinutes; newStart > latest {
		newStart = latest
	}
	if latest := end - timegrid.SlotGranularity; newStart > latest {
		newStart = latest
	}
	if newStart < 0 {
		newStart = 0
	}

	return ResizeIntent{
		SubjectID:          sub.ID,
		Kind:               sub.Kind,
		NewStart:           minuteOnDay(sub.Date, newStart),
		NewDurationMinutes: end - newStart,
	}, true
}

// BuildResizeEnd computes the intent for dropping a subject's end edge on
// a slot. The drop coordinate addresses the start of a slot, but an
// end-edge drag should land on the boundary after it, so one slot is
// added before clamping into [start+MinDuration, day end].
func BuildResizeEnd(sub Subject, drop timegrid.SlotCoordinate) (ResizeIntent, bool) {
	if !sameDay(sub.Date, drop.Date) {
		return ResizeIntent{}, false
	}

	start := sub.StartMinutes()
	newEnd := drop.MinuteOfDay() + timegrid.SlotGranularity
	if earliest := start + MinDurationMinutes; newEnd < earliest {
		newEnd = earliest
	}
	if newEnd > timegrid.MinutesPerDay {
		newEnd = timegrid.MinutesPerDay
	}

	return ResizeIntent{
		SubjectID:          sub.ID,
		Kind:               sub.Kind,
		NewStart:           sub.Start,
		NewDurationMinutes: newEnd - start,
	}, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func minuteOnDay(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}
