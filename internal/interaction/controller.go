package interaction

import (
	"time"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/timegrid"
)

// State is the lifecycle phase of the interaction controller.
type State int

const (
	// StateIdle means no gesture is active.
	StateIdle State = iota
	// StateHovering tracks the slot under the pointer for the hover ghost.
	StateHovering
	// StateCreating is an active drag on empty grid space.
	StateCreating
	// StatePendingConfirmation follows pointer-up on a creation: the state
	// is kept until the host commits or discards the edit.
	StatePendingConfirmation
)

// TargetResolver returns the calendar new events are created on. ok=false
// means nothing is schedulable and creation gestures are no-ops.
type TargetResolver func() (event.Calendar, bool)

// Controller is the single owner of interaction state for one calendar
// view. It is driven from one event loop; it performs no locking of its
// own and must not be shared across views.
type Controller struct {
	resolveTarget TargetResolver

	state  State
	hover  time.Time
	anchor time.Time
	start  time.Time
	end    time.Time
	target event.Calendar

	// Active move/resize payload. Creation uses the state machine above;
	// move and resize gestures carry their subject here until drop.
	drag DragData

	// Latest pending preview; replaced on every qualifying pointer move
	// and drained once per frame. Last write wins, never a queue.
	pending    Preview
	hasPending bool
}

// Preview is the ghost-block geometry for the current gesture.
type Preview struct {
	Start  time.Time
	End    time.Time
	Top    int // pixel offset from the day's top
	Height int // pixel height, floored for visibility
}

// NewController creates a controller for one view.
func NewController(resolve TargetResolver) *Controller {
	if resolve == nil {
		resolve = func() (event.Calendar, bool) { return event.Calendar{}, false }
	}
	return &Controller{resolveTarget: resolve}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// HoverTime returns the hovered slot time; valid only while hovering.
func (c *Controller) HoverTime() time.Time { return c.hover }

// Selection returns the creation interval; valid while creating or
// pending confirmation.
func (c *Controller) Selection() (start, end time.Time) { return c.start, c.end }

// Target returns the calendar the creation lands on; valid while creating
// or pending confirmation.
func (c *Controller) Target() event.Calendar { return c.target }

// Dragging returns the active move/resize payload, or nil.
func (c *Controller) Dragging() DragData { return c.drag }

// SlotHover updates the hover ghost. Only honored while idle or already
// hovering so it never fights an active drag's ghost.
func (c *Controller) SlotHover(slot timegrid.SlotCoordinate) {
	if c.drag != nil {
		return
	}
	switch c.state {
	case StateIdle, StateHovering:
		c.state = StateHovering
		c.hover = slot.Time()
	}
}

// SlotLeave clears the hover ghost.
func (c *Controller) SlotLeave() {
	if c.state == StateHovering {
		c.state = StateIdle
		c.hover = time.Time{}
	}
}

// PointerDown starts a creation drag at the given slot. It requires a
// resolved default writable calendar; without one nothing is schedulable
// and the event is a no-op.
func (c *Controller) PointerDown(slot timegrid.SlotCoordinate) {
	if c.drag != nil {
		return
	}
	if c.state != StateIdle && c.state != StateHovering {
		return
	}
	target, ok := c.resolveTarget()
	if !ok {
		return
	}

	c.state = StateCreating
	c.target = target
	c.anchor = slot.Time()
	c.start = c.anchor
	c.end = c.anchor.Add(DefaultDurationMinutes * time.Minute)
	c.stagePreview(c.start, c.end)
}

// PointerMoveOverSlot extends or flips the creation drag. Only same-day
// moves are honored; dragging onto another day leaves the state unchanged.
//
// Dragging forward keeps the anchor as the start and pulls the end to the
// boundary after the hovered slot. Dragging backward past the anchor does
// not shrink the block symmetrically: it restarts a default-length block
// at the hovered slot with the end pinned to anchor + default duration.
func (c *Controller) PointerMoveOverSlot(slot timegrid.SlotCoordinate) {
	if c.state != StateCreating {
		if c.drag != nil {
			c.dragOver(slot)
		}
		return
	}
	slotTime := slot.Time()
	if !sameDay(slotTime, c.anchor) {
		return
	}

	slotEnd := slotTime.Add(timegrid.SlotGranularity * time.Minute)
	if slotEnd.After(c.anchor) {
		c.start = c.anchor
		c.end = slotEnd
	} else {
		c.start = slotTime
		c.end = c.anchor.Add(DefaultDurationMinutes * time.Minute)
	}
	c.stagePreview(c.start, c.end)
}

// PointerUp finishes the creation drag. State moves to pending
// confirmation and is kept until the host commits or discards.
func (c *Controller) PointerUp() {
	if c.state == StateCreating {
		c.state = StatePendingConfirmation
	}
}

// Cancel unconditionally returns to idle from any state, discarding the
// active gesture and any pending preview. Dangling interactions (lost
// pointer capture, drag ended without drop) must be cancelled by whoever
// detects the loss; there is no timeout.
func (c *Controller) Cancel() {
	c.state = StateIdle
	c.hover = time.Time{}
	c.anchor = time.Time{}
	c.start = time.Time{}
	c.end = time.Time{}
	c.target = event.Calendar{}
	c.drag = nil
	c.hasPending = false
}

// BuildPendingIntent returns the creation intent awaiting confirmation,
// or ok=false when none is pending. The host queries this right before
// tearing the session down and then calls Cancel to release the state;
// the controller never commits on its own.
func (c *Controller) BuildPendingIntent() (CreateIntent, bool) {
	if c.state != StatePendingConfirmation {
		return CreateIntent{}, false
	}
	return CreateIntent{Target: c.target, Start: c.start, End: c.end}, true
}

// BeginDrag starts a move or resize gesture for an existing item. No-op
// while a creation is active or another drag is in flight.
func (c *Controller) BeginDrag(d DragData) {
	if c.drag != nil || c.state == StateCreating || c.state == StatePendingConfirmation {
		return
	}
	if _, isCreate := d.(CreateDrag); isCreate || d == nil {
		return
	}
	c.state = StateIdle
	c.hover = time.Time{}
	c.drag = d
}

// Drop resolves the active move/resize drag against the slot it was
// released on. ok=false means the gesture produced no mutation (cross-day
// resize, or nothing was being dragged); either way the controller is
// idle afterwards.
func (c *Controller) Drop(slot timegrid.SlotCoordinate) (DragResult, bool) {
	d := c.drag
	c.drag = nil
	c.hasPending = false

	switch d := d.(type) {
	case Move:
		intent := BuildMove(d.Subject, slot)
		return DragResult{Move: &intent}, true
	case ResizeStart:
		intent, ok := BuildResizeStart(d.Subject, slot)
		if !ok {
			return DragResult{}, false
		}
		return DragResult{Resize: &intent}, true
	case ResizeEnd:
		intent, ok := BuildResizeEnd(d.Subject, slot)
		if !ok {
			return DragResult{}, false
		}
		return DragResult{Resize: &intent}, true
	default:
		return DragResult{}, false
	}
}

// DragResult is the outcome of a completed move/resize gesture. Exactly
// one field is set.
type DragResult struct {
	Move   *MoveIntent
	Resize *ResizeIntent
}

// dragOver refreshes the ghost geometry for an in-flight move/resize.
func (c *Controller) dragOver(slot timegrid.SlotCoordinate) {
	switch d := c.drag.(type) {
	case Move:
		start := slot.Time()
		c.stagePreview(start, start.Add(time.Duration(d.Subject.DurationMinutes())*time.Minute))
	case ResizeStart:
		if intent, ok := BuildResizeStart(d.Subject, slot); ok {
			c.stagePreview(intent.NewStart, intent.NewStart.Add(time.Duration(intent.NewDurationMinutes)*time.Minute))
		}
	case ResizeEnd:
		if intent, ok := BuildResizeEnd(d.Subject, slot); ok {
			c.stagePreview(intent.NewStart, intent.NewStart.Add(time.Duration(intent.NewDurationMinutes)*time.Minute))
		}
	}
}

// stagePreview replaces the pending preview with fresh geometry.
func (c *Controller) stagePreview(start, end time.Time) {
	startMin := start.Hour()*60 + start.Minute()
	dur := int(end.Sub(start) / time.Minute)
	c.pending = Preview{
		Start:  start,
		End:    end,
		Top:    timegrid.TimeToPixelOffset(startMin),
		Height: timegrid.DurationToPixelHeight(dur),
	}
	c.hasPending = true
}

// FlushPreview drains the pending preview. The render loop calls this at
// most once per frame; intermediate previews staged within the same frame
// have already been overwritten.
func (c *Controller) FlushPreview() (Preview, bool) {
	if !c.hasPending {
		return Preview{}, false
	}
	p := c.pending
	c.hasPending = false
	return p, true
}
