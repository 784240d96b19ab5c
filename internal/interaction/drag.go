// Package interaction owns the transient state of pointer-driven
// scheduling gestures: hovering, drag-to-create, drag-to-move, and
// edge-resizing. It converts slot coordinates into preview geometry while
// a gesture is active and into mutation intents when it completes.
package interaction

import (
	"time"

	"github.com/tempo-sh/tempo/internal/event"
)

// Subject is an immutable snapshot of the task or external event a
// gesture operates on. Edits never mutate it; every change is expressed
// as a new intent value handed to the store.
type Subject struct {
	ID         string
	Kind       event.Kind
	AccountID  string
	CalendarID string
	ExternalID string
	Date       time.Time // midnight local, the subject's day
	Start      time.Time
	End        time.Time
}

// DurationMinutes returns the subject's current length.
func (s Subject) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// StartMinutes returns the subject's start as minutes from midnight.
func (s Subject) StartMinutes() int {
	return s.Start.Hour()*60 + s.Start.Minute()
}

// EndMinutes returns the subject's end as minutes from midnight.
func (s Subject) EndMinutes() int {
	return s.End.Hour()*60 + s.End.Minute()
}

// DragData tags the payload attached to an in-flight drag. Every
// consumption site switches exhaustively over the concrete types.
type DragData interface {
	isDragData()
}

// Move is a whole-block drag of an existing item.
type Move struct {
	Subject Subject
}

// ResizeStart is a drag of an item's top (start) edge.
type ResizeStart struct {
	Subject Subject
}

// ResizeEnd is a drag of an item's bottom (end) edge.
type ResizeEnd struct {
	Subject Subject
}

// CreateDrag is an in-progress creation on empty grid space.
type CreateDrag struct {
	AnchorTime time.Time
	Target     event.Calendar
}

func (Move) isDragData()        {}
func (ResizeStart) isDragData() {}
func (ResizeEnd) isDragData()   {}
func (CreateDrag) isDragData()  {}
