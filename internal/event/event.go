// Package event defines the core domain types for tempo: local tasks,
// external calendar events, and their projection onto a single day grid.
package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEventNotFound = errors.New("event not found")
)

// Kind discriminates the two schedulable block types.
type Kind string

const (
	KindTask          Kind = "task"
	KindExternalEvent Kind = "event"
)

// Task represents a locally owned work block.
type Task struct {
	ID            string
	Title         string
	Notes         string
	ScheduledDate time.Time // midnight, local
	Start         string    // "HH:MM"
	End           string    // "HH:MM"
	Done          bool
	CreatedAt     time.Time
}

// NewTask creates a task with validation. date is YYYY-MM-DD (empty means
// today), start and end are HH:MM with end after start.
func NewTask(title, date, start, end string) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if err := validateTimeFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := validateTimeFormat(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &Task{
		ID:            uuid.NewString(),
		Title:         title,
		ScheduledDate: day,
		Start:         start,
		End:           end,
		CreatedAt:     time.Now(),
	}, nil
}

// Duration returns the task duration in minutes.
func (t *Task) Duration() int {
	return TimeToMinutes(t.End) - TimeToMinutes(t.Start)
}

// ExternalEvent is a snapshot of an event owned by an external calendar.
// Recurring events carry their raw recurrence rule string; expansion into
// concrete instances happens elsewhere.
type ExternalEvent struct {
	AccountID  string
	CalendarID string
	ExternalID string
	Title      string
	Location   string
	Start      time.Time
	End        time.Time
	AllDay     bool
	RRule      string // raw rule string, "" when not recurring
}

// InstanceID returns a stable identifier for one occurrence of the event.
// Non-recurring events use the external id directly.
func (e ExternalEvent) InstanceID() string {
	if e.RRule == "" {
		return e.ExternalID
	}
	return e.ExternalID + "@" + e.Start.Format(time.RFC3339)
}

// Calendar describes a calendar events can be written to.
type Calendar struct {
	AccountID  string
	CalendarID string
	Summary    string
	Writable   bool
	Default    bool
}

// DefaultWritable resolves the calendar new events are created on: the
// calendar marked default if it is writable, otherwise the first writable
// one. ok=false means nothing is schedulable.
func DefaultWritable(cals []Calendar) (Calendar, bool) {
	for _, c := range cals {
		if c.Default && c.Writable {
			return c, true
		}
	}
	for _, c := range cals {
		if c.Writable {
			return c, true
		}
	}
	return Calendar{}, false
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	return t, nil
}

func validateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}
