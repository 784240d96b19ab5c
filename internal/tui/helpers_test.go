package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/config"
	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/store"
)

// testDay is a fixed Monday so grid math never depends on the wall clock.
var testDay = time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (*Model, *store.SQLite) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	cfg := config.Default()
	cfg.Calendars = []config.CalendarConfig{
		{AccountID: "acct", CalendarID: "personal", Summary: "Personal", Writable: true, Default: true},
	}

	m := New(s, cfg)
	m.day = testDay
	m.now = func() time.Time { return testDay.Add(12 * time.Hour) }
	m.width = 80
	m.height = 40
	m.loading = false
	return m, s
}

// loadDay synchronously assembles and installs the view for the model's
// current day.
func loadDay(t *testing.T, m *Model, s *store.SQLite) {
	t.Helper()

	view, err := agenda.NewBuilder(s).Build(context.Background(), m.day)
	if err != nil {
		t.Fatalf("building agenda: %v", err)
	}
	m.setView(view)
}

func mustTask(t *testing.T, s *store.SQLite, title, date, start, end string) *event.Task {
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
