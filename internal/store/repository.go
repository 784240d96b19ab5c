package store

import (
	"context"
	"time"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
)

// Repository defines the persistence operations for tasks and cached
// external events. SQLite is the production implementation; tests swap
// in fakes.
type Repository interface {
	// CreateTask adds a new task.
	CreateTask(ctx context.Context, task *event.Task) error

	// GetTask retrieves a task by id.
	GetTask(ctx context.Context, id string) (*event.Task, error)

	// ListTasksOn returns all tasks scheduled for the given day.
	ListTasksOn(ctx context.Context, day time.Time) ([]*event.Task, error)

	// UpdateTaskTime moves a task to a new day and time block.
	UpdateTaskTime(ctx context.Context, id string, day time.Time, start, end string) error

	// SetTaskDone flips a task's completion flag.
	SetTaskDone(ctx context.Context, id string, done bool) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// ReplaceCalendarEvents swaps one calendar's cached events for a
	// fresh set.
	ReplaceCalendarEvents(ctx context.Context, accountID, calendarID string, events []event.ExternalEvent) error

	// ListEvents returns every cached external event.
	ListEvents(ctx context.Context) ([]event.ExternalEvent, error)

	// GetEvent retrieves one cached event by external id.
	GetEvent(ctx context.Context, externalID string) (event.ExternalEvent, error)

	// SetEventRule rewrites a cached event's recurrence rule.
	SetEventRule(ctx context.Context, externalID, rule string) error

	// ApplyMove applies a completed move gesture.
	ApplyMove(ctx context.Context, m interaction.MoveIntent) error

	// ApplyResize applies a completed resize gesture.
	ApplyResize(ctx context.Context, r interaction.ResizeIntent) error

	// ApplyCreate inserts the event described by a confirmed creation and
	// returns its generated external id.
	ApplyCreate(ctx context.Context, c interaction.CreateIntent, title string) (string, error)
}

var _ Repository = (*SQLite)(nil)
