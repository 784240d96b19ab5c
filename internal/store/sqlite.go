// Package store provides SQLite persistence for tasks and cached
// external calendar events, and applies the mutation intents emitted by
// completed drag interactions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"

	"github.com/google/uuid"
)

// ErrUnknownSubjectKind is returned when an intent names a kind the store
// cannot route.
var ErrUnknownSubjectKind = errors.New("unknown subject kind")

// SQLite is the on-disk repository.
type SQLite struct {
	db *sql.DB
}

// New opens (or creates) the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		scheduled_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(scheduled_date);

	CREATE TABLE IF NOT EXISTS events (
		external_id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		calendar_id TEXT NOT NULL,
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		all_day INTEGER NOT NULL DEFAULT 0,
		rrule TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_events_calendar ON events(account_id, calendar_id);
	CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Tasks
// ----------------------------------------------------------------------------

// CreateTask inserts a new task.
func (s *SQLite) CreateTask(ctx context.Context, t *event.Task) error {
	query := `
		INSERT INTO tasks (id, title, notes, scheduled_date, start_time, end_time, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Notes,
		t.ScheduledDate.Format("2006-01-02"),
		t.Start,
		t.End,
		boolToInt(t.Done),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by id.
func (s *SQLite) GetTask(ctx context.Context, id string) (*event.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, notes, scheduled_date, start_time, end_time, done, created_at
		FROM tasks WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, event.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// ListTasksOn returns all tasks scheduled for the given day, earliest
// first.
func (s *SQLite) ListTasksOn(ctx context.Context, day time.Time) ([]*event.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, notes, scheduled_date, start_time, end_time, done, created_at
		FROM tasks WHERE scheduled_date = ?
		ORDER BY start_time
	`, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*event.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTaskTime moves a task to a new day and time block.
func (s *SQLite) UpdateTaskTime(ctx context.Context, id string, day time.Time, start, end string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET scheduled_date = ?, start_time = ?, end_time = ? WHERE id = ?
	`, day.Format("2006-01-02"), start, end, id)
	if err != nil {
		return fmt.Errorf("updating task time: %w", err)
	}
	return requireRow(res, event.ErrTaskNotFound)
}

// SetTaskDone flips a task's completion flag.
func (s *SQLite) SetTaskDone(ctx context.Context, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET done = ? WHERE id = ?`, boolToInt(done), id)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res, event.ErrTaskNotFound)
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res, event.ErrTaskNotFound)
}

// ----------------------------------------------------------------------------
// External events
// ----------------------------------------------------------------------------

// ReplaceCalendarEvents swaps one calendar's cached events for a freshly
// fetched set. Used by feed refresh; atomic so a failed fetch never leaves
// the calendar half-empty.
func (s *SQLite) ReplaceCalendarEvents(ctx context.Context, accountID, calendarID string, events []event.ExternalEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM events WHERE account_id = ? AND calendar_id = ?
	`, accountID, calendarID); err != nil {
		return fmt.Errorf("clearing calendar events: %w", err)
	}

	for _, e := range events {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO events
				(external_id, account_id, calendar_id, title, location, start_at, end_at, all_day, rrule)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.ExternalID, accountID, calendarID, e.Title, e.Location,
			e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
			boolToInt(e.AllDay), e.RRule,
		); err != nil {
			return fmt.Errorf("inserting event %s: %w", e.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}
	return nil
}

// ListEvents returns every cached external event. Recurring events are
// stored once with their rule; expansion happens at projection time.
func (s *SQLite) ListEvents(ctx context.Context) ([]event.ExternalEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, account_id, calendar_id, title, location, start_at, end_at, all_day, rrule
		FROM events ORDER BY start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []event.ExternalEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent retrieves one cached event by external id.
func (s *SQLite) GetEvent(ctx context.Context, externalID string) (event.ExternalEvent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT external_id, account_id, calendar_id, title, location, start_at, end_at, all_day, rrule
		FROM events WHERE external_id = ?
	`, externalID)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.ExternalEvent{}, event.ErrEventNotFound
	}
	if err != nil {
		return event.ExternalEvent{}, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// UpdateEventTime rewrites a cached event's interval.
func (s *SQLite) UpdateEventTime(ctx context.Context, externalID string, start, end time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE events SET start_at = ?, end_at = ? WHERE external_id = ?
	`, start.Format(time.RFC3339), end.Format(time.RFC3339), externalID)
	if err != nil {
		return fmt.Errorf("updating event time: %w", err)
	}
	return requireRow(res, event.ErrEventNotFound)
}

// SetEventRule rewrites a cached event's recurrence rule. An empty rule
// clears the recurrence.
func (s *SQLite) SetEventRule(ctx context.Context, externalID, rule string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE events SET rrule = ? WHERE external_id = ?`, rule, externalID)
	if err != nil {
		return fmt.Errorf("updating event rule: %w", err)
	}
	return requireRow(res, event.ErrEventNotFound)
}

// ----------------------------------------------------------------------------
// Mutation intents
// ----------------------------------------------------------------------------

// ApplyMove applies a move intent: new start anchor, duration preserved.
func (s *SQLite) ApplyMove(ctx context.Context, m interaction.MoveIntent) error {
	switch m.Kind {
	case event.KindTask:
		day := event.TruncateToDay(m.NewStart)
		startMin := m.NewStart.Hour()*60 + m.NewStart.Minute()
		return s.UpdateTaskTime(ctx, m.SubjectID, day,
			event.MinutesToTime(startMin), event.MinutesToTime(startMin+m.DurationMinutes))
	case event.KindExternalEvent:
		newEnd := m.NewStart.Add(time.Duration(m.DurationMinutes) * time.Minute)
		return s.UpdateEventTime(ctx, m.SubjectID, m.NewStart, newEnd)
	default:
		return fmt.Errorf("applying move: %w", ErrUnknownSubjectKind)
	}
}

// ApplyResize applies a resize intent: one edge re-anchored, duration
// re-derived from the clamped edge.
func (s *SQLite) ApplyResize(ctx context.Context, r interaction.ResizeIntent) error {
	switch r.Kind {
	case event.KindTask:
		day := event.TruncateToDay(r.NewStart)
		startMin := r.NewStart.Hour()*60 + r.NewStart.Minute()
		return s.UpdateTaskTime(ctx, r.SubjectID, day,
			event.MinutesToTime(startMin), event.MinutesToTime(startMin+r.NewDurationMinutes))
	case event.KindExternalEvent:
		newEnd := r.NewStart.Add(time.Duration(r.NewDurationMinutes) * time.Minute)
		return s.UpdateEventTime(ctx, r.SubjectID, r.NewStart, newEnd)
	default:
		return fmt.Errorf("applying resize: %w", ErrUnknownSubjectKind)
	}
}

// ApplyCreate inserts a new event on the intent's target calendar and
// returns its generated external id.
func (s *SQLite) ApplyCreate(ctx context.Context, c interaction.CreateIntent, title string) (string, error) {
	if title == "" {
		title = "(untitled)"
	}
	externalID := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (external_id, account_id, calendar_id, title, location, start_at, end_at, all_day, rrule)
		VALUES (?, ?, ?, ?, '', ?, ?, 0, '')
	`,
		externalID, c.Target.AccountID, c.Target.CalendarID, title,
		c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting created event: %w", err)
	}
	return externalID, nil
}

// ----------------------------------------------------------------------------
// Scan helpers
// ----------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*event.Task, error) {
	var (
		t         event.Task
		date      string
		done      int
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Notes, &date, &t.Start, &t.End, &done, &createdAt); err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled date: %w", err)
	}
	t.ScheduledDate = day
	t.Done = done != 0
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	return &t, nil
}

func scanEvent(row rowScanner) (event.ExternalEvent, error) {
	var (
		e          event.ExternalEvent
		start, end string
		allDay     int
	)
	if err := row.Scan(&e.ExternalID, &e.AccountID, &e.CalendarID, &e.Title, &e.Location, &start, &end, &allDay, &e.RRule); err != nil {
		return event.ExternalEvent{}, err
	}

	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return event.ExternalEvent{}, fmt.Errorf("parsing event start: %w", err)
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return event.ExternalEvent{}, fmt.Errorf("parsing event end: %w", err)
	}
	e.Start = startAt.In(time.Local)
	e.End = endAt.In(time.Local)
	e.AllDay = allDay != 0
	return e, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
