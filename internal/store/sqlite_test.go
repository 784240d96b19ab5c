package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func mustTask(t *testing.T, s *SQLite, title, date, start, end string) *event.Task {
	t.Helper()

	tsk, err := event.NewTask(title, date, start, end)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	if err := s.CreateTask(context.Background(), tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	return tsk
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)
	tsk := mustTask(t, s, "Write proposal", "2026-03-09", "09:00", "10:30")

	got, err := s.GetTask(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Write proposal" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Start != "09:00" || got.End != "10:30" {
		t.Errorf("time block = %s-%s, want 09:00-10:30", got.Start, got.End)
	}
	if got.ScheduledDate.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("ScheduledDate = %v", got.ScheduledDate)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTask(context.Background(), "nope")
	if !errors.Is(err, event.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestListTasksOn_OrderedAndFiltered(t *testing.T) {
	s := newTestStore(t)
	mustTask(t, s, "Late", "2026-03-09", "14:00", "15:00")
	mustTask(t, s, "Early", "2026-03-09", "08:00", "09:00")
	mustTask(t, s, "Other day", "2026-03-10", "08:00", "09:00")

	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	tasks, err := s.ListTasksOn(context.Background(), day)
	if err != nil {
		t.Fatalf("ListTasksOn failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "Early" || tasks[1].Title != "Late" {
		t.Errorf("order = %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestSetTaskDone(t *testing.T) {
	s := newTestStore(t)
	tsk := mustTask(t, s, "Ship it", "2026-03-09", "09:00", "10:00")

	if err := s.SetTaskDone(context.Background(), tsk.ID, true); err != nil {
		t.Fatalf("SetTaskDone failed: %v", err)
	}
	got, err := s.GetTask(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !got.Done {
		t.Error("task not marked done")
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	tsk := mustTask(t, s, "Gone soon", "2026-03-09", "09:00", "10:00")

	if err := s.DeleteTask(context.Background(), tsk.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := s.GetTask(context.Background(), tsk.ID); !errors.Is(err, event.ErrTaskNotFound) {
		t.Errorf("error after delete = %v, want ErrTaskNotFound", err)
	}
	if err := s.DeleteTask(context.Background(), tsk.ID); !errors.Is(err, event.ErrTaskNotFound) {
		t.Errorf("second delete error = %v, want ErrTaskNotFound", err)
	}
}

func TestReplaceCalendarEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []event.ExternalEvent{
		{ExternalID: "ev-1", Title: "Standup",
			Start: time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local),
			End:   time.Date(2026, 3, 9, 9, 15, 0, 0, time.Local)},
		{ExternalID: "ev-2", Title: "Planning", RRule: "RRULE:FREQ=WEEKLY;BYDAY=MO",
			Start: time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local),
			End:   time.Date(2026, 3, 9, 11, 0, 0, 0, time.Local)},
	}
	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", first); err != nil {
		t.Fatalf("ReplaceCalendarEvents failed: %v", err)
	}

	// A refresh replaces the whole calendar, dropping events that vanished
	// upstream.
	second := []event.ExternalEvent{first[1]}
	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", second); err != nil {
		t.Fatalf("second ReplaceCalendarEvents failed: %v", err)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ExternalID != "ev-2" {
		t.Errorf("ExternalID = %q, want ev-2", events[0].ExternalID)
	}
	if events[0].RRule != "RRULE:FREQ=WEEKLY;BYDAY=MO" {
		t.Errorf("RRule = %q, rule not preserved through the cache", events[0].RRule)
	}
	if events[0].AccountID != "acct" || events[0].CalendarID != "work" {
		t.Errorf("ownership = %s/%s", events[0].AccountID, events[0].CalendarID)
	}
}

func TestReplaceCalendarEvents_ScopedToCalendar(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := []event.ExternalEvent{{ExternalID: "w-1", Title: "Review",
		Start: time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local),
		End:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)}}
	home := []event.ExternalEvent{{ExternalID: "h-1", Title: "Dentist",
		Start: time.Date(2026, 3, 9, 16, 0, 0, 0, time.Local),
		End:   time.Date(2026, 3, 9, 17, 0, 0, 0, time.Local)}}

	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", work); err != nil {
		t.Fatalf("ReplaceCalendarEvents(work) failed: %v", err)
	}
	if err := s.ReplaceCalendarEvents(ctx, "acct", "home", home); err != nil {
		t.Fatalf("ReplaceCalendarEvents(home) failed: %v", err)
	}
	// Refreshing one calendar must not touch the other.
	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", nil); err != nil {
		t.Fatalf("empty refresh failed: %v", err)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].ExternalID != "h-1" {
		t.Errorf("events = %+v, want only h-1", events)
	}
}

func TestApplyMove_Task(t *testing.T) {
	s := newTestStore(t)
	tsk := mustTask(t, s, "Deep work", "2026-03-09", "09:00", "10:30")

	// Moves may cross days; the duration rides along unchanged.
	err := s.ApplyMove(context.Background(), interaction.MoveIntent{
		SubjectID:       tsk.ID,
		Kind:            event.KindTask,
		NewStart:        time.Date(2026, 3, 10, 13, 15, 0, 0, time.Local),
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	got, err := s.GetTask(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.ScheduledDate.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("ScheduledDate = %v, want moved to 2026-03-10", got.ScheduledDate)
	}
	if got.Start != "13:15" || got.End != "14:45" {
		t.Errorf("time block = %s-%s, want 13:15-14:45", got.Start, got.End)
	}
}

func TestApplyMove_Event(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := event.ExternalEvent{ExternalID: "ev-1", Title: "Sync",
		Start: time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local),
		End:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)}
	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", []event.ExternalEvent{ev}); err != nil {
		t.Fatalf("ReplaceCalendarEvents failed: %v", err)
	}

	newStart := time.Date(2026, 3, 9, 14, 0, 0, 0, time.Local)
	err := s.ApplyMove(ctx, interaction.MoveIntent{
		SubjectID:       "ev-1",
		Kind:            event.KindExternalEvent,
		NewStart:        newStart,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	got, err := s.GetEvent(ctx, "ev-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if !got.Start.Equal(newStart) {
		t.Errorf("Start = %v, want %v", got.Start, newStart)
	}
	if !got.End.Equal(newStart.Add(time.Hour)) {
		t.Errorf("End = %v, want %v", got.End, newStart.Add(time.Hour))
	}
}

func TestApplyResize_Task(t *testing.T) {
	s := newTestStore(t)
	tsk := mustTask(t, s, "Focus block", "2026-03-09", "14:00", "15:00")

	err := s.ApplyResize(context.Background(), interaction.ResizeIntent{
		SubjectID:          tsk.ID,
		Kind:               event.KindTask,
		NewStart:           time.Date(2026, 3, 9, 14, 0, 0, 0, time.Local),
		NewDurationMinutes: 15,
	})
	if err != nil {
		t.Fatalf("ApplyResize failed: %v", err)
	}

	got, err := s.GetTask(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Start != "14:00" || got.End != "14:15" {
		t.Errorf("time block = %s-%s, want 14:00-14:15", got.Start, got.End)
	}
}

func TestApplyResize_UnknownKind(t *testing.T) {
	s := newTestStore(t)

	err := s.ApplyResize(context.Background(), interaction.ResizeIntent{
		SubjectID: "x", Kind: event.Kind("bogus"),
		NewStart: time.Now(), NewDurationMinutes: 30,
	})
	if !errors.Is(err, ErrUnknownSubjectKind) {
		t.Errorf("error = %v, want ErrUnknownSubjectKind", err)
	}
}

func TestApplyCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ApplyCreate(ctx, interaction.CreateIntent{
		Target: event.Calendar{AccountID: "acct", CalendarID: "work", Writable: true},
		Start:  time.Date(2026, 3, 9, 13, 0, 0, 0, time.Local),
		End:    time.Date(2026, 3, 9, 14, 0, 0, 0, time.Local),
	}, "Pairing session")
	if err != nil {
		t.Fatalf("ApplyCreate failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated external id")
	}

	got, err := s.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "Pairing session" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.CalendarID != "work" {
		t.Errorf("CalendarID = %q, want the intent's target", got.CalendarID)
	}
	if got.RRule != "" {
		t.Errorf("RRule = %q, want none on a fresh event", got.RRule)
	}
}

func TestApplyCreate_UntitledFallback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ApplyCreate(ctx, interaction.CreateIntent{
		Target: event.Calendar{AccountID: "acct", CalendarID: "work"},
		Start:  time.Date(2026, 3, 9, 13, 0, 0, 0, time.Local),
		End:    time.Date(2026, 3, 9, 14, 0, 0, 0, time.Local),
	}, "")
	if err != nil {
		t.Fatalf("ApplyCreate failed: %v", err)
	}
	got, err := s.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "(untitled)" {
		t.Errorf("Title = %q, want placeholder", got.Title)
	}
}

func TestSetEventRule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ev := event.ExternalEvent{ExternalID: "ev-1", Title: "Retro",
		Start: time.Date(2026, 3, 9, 16, 0, 0, 0, time.Local),
		End:   time.Date(2026, 3, 9, 17, 0, 0, 0, time.Local)}
	if err := s.ReplaceCalendarEvents(ctx, "acct", "work", []event.ExternalEvent{ev}); err != nil {
		t.Fatalf("ReplaceCalendarEvents failed: %v", err)
	}

	if err := s.SetEventRule(ctx, "ev-1", "RRULE:FREQ=WEEKLY;BYDAY=MO;COUNT=10"); err != nil {
		t.Fatalf("SetEventRule failed: %v", err)
	}
	got, err := s.GetEvent(ctx, "ev-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.RRule != "RRULE:FREQ=WEEKLY;BYDAY=MO;COUNT=10" {
		t.Errorf("RRule = %q", got.RRule)
	}

	if err := s.SetEventRule(ctx, "missing", ""); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}
