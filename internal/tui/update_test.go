package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/tui/commands"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// yFor returns the terminal row of a minute, failing the test if it is
// scrolled out of view.
func yFor(t *testing.T, m *Model, minute int) int {
	t.Helper()
	y, ok := m.minuteToLine(minute)
	if !ok {
		t.Fatalf("minute %d not visible", minute)
	}
	return y
}

func TestCreateGesture_OpensModal(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	if m.controller.State() != interaction.StateCreating {
		t.Fatalf("state = %v after press, want creating", m.controller.State())
	}

	m.Update(release(40, y))
	if m.mode != ModeModal || m.modal == nil {
		t.Fatal("release should open the confirmation modal")
	}
	if got := m.modal.intent.Start; got.Hour() != 10 || got.Minute() != 0 {
		t.Errorf("intent start = %v, want 10:00", got)
	}
	if d := m.modal.intent.End.Sub(m.modal.intent.Start); d != time.Hour {
		t.Errorf("default duration = %v, want 1h", d)
	}
}

func TestCreateGesture_NoWritableCalendar(t *testing.T) {
	m, s := newTestModel(t)
	m.config.Calendars = nil
	// Rebuild so the resolver sees the empty calendar list.
	m2 := New(s, m.config)
	m2.day = testDay
	m2.width, m2.height = 80, 40
	loadDay(t, m2, s)

	y := yFor(t, m2, 10*60)
	m2.Update(press(40, y))
	if m2.controller.State() != interaction.StateIdle {
		t.Error("press without a writable calendar should be a no-op")
	}
}

func TestModalEscape_DiscardsCreation(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	m.Update(release(40, y))
	m.Update(keyMsg("esc"))

	if m.mode != ModeNormal || m.modal != nil {
		t.Error("escape should close the modal")
	}
	if m.controller.State() != interaction.StateIdle {
		t.Error("escape should cancel the pending creation")
	}
}

func TestModalConfirm_PersistsEvent(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	m.Update(release(40, y))
	m.Update(keyMsg("Standup"))
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("confirm should produce a persistence command")
	}
	if _, ok := cmd().(commands.MutationDoneMsg); !ok {
		t.Fatal("persistence command failed")
	}

	events, err := s.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Title != "Standup" {
		t.Errorf("title = %q", ev.Title)
	}
	if ev.CalendarID != "personal" {
		t.Errorf("calendar = %q, want the default writable one", ev.CalendarID)
	}
	if ev.Start.Hour() != 10 {
		t.Errorf("start = %v, want 10:00", ev.Start)
	}
}

func TestMoveGesture_PersistsNewTime(t *testing.T) {
	m, s := newTestModel(t)
	task := mustTask(t, s, "Report", "2026-03-09", "09:00", "10:30")
	loadDay(t, m, s)

	bodyY := yFor(t, m, 9*60) + 2
	m.Update(press(40, bodyY))
	if m.controller.Dragging() == nil {
		t.Fatal("press on a block body should begin a drag")
	}

	dropY := yFor(t, m, 13*60)
	m.Update(motion(40, dropY))
	_, cmd := m.Update(release(40, dropY))
	if cmd == nil {
		t.Fatal("drop should produce a persistence command")
	}
	if _, ok := cmd().(commands.MutationDoneMsg); !ok {
		t.Fatal("persistence command failed")
	}

	moved, err := s.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if moved.Start != "13:00" || moved.End != "14:30" {
		t.Errorf("moved to %s-%s, want 13:00-14:30", moved.Start, moved.End)
	}
}

func TestResizeGesture_PersistsNewEnd(t *testing.T) {
	m, s := newTestModel(t)
	task := mustTask(t, s, "Report", "2026-03-09", "09:00", "10:30")
	loadDay(t, m, s)

	bottomY := yFor(t, m, 10*60+15)
	m.Update(press(40, bottomY))
	if m.controller.Dragging() == nil {
		t.Fatal("press on the bottom edge should begin a drag")
	}

	// Drop addresses the slot starting at 11:45; the end lands on the
	// boundary after it.
	dropY := yFor(t, m, 11*60+45)
	_, cmd := m.Update(release(40, dropY))
	if cmd == nil {
		t.Fatal("drop should produce a persistence command")
	}
	if _, ok := cmd().(commands.MutationDoneMsg); !ok {
		t.Fatal("persistence command failed")
	}

	resized, err := s.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if resized.Start != "09:00" || resized.End != "12:00" {
		t.Errorf("resized to %s-%s, want 09:00-12:00", resized.Start, resized.End)
	}
}

func TestReleaseOffGrid_CancelsDrag(t *testing.T) {
	m, s := newTestModel(t)
	mustTask(t, s, "Report", "2026-03-09", "09:00", "10:30")
	loadDay(t, m, s)

	bodyY := yFor(t, m, 9*60) + 2
	m.Update(press(40, bodyY))
	m.Update(release(40, 0)) // header row

	if m.controller.Dragging() != nil || m.controller.State() != interaction.StateIdle {
		t.Error("off-grid release should cancel the drag")
	}
}

func TestFrameTick_FlushesPreview(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))

	_, cmd := m.Update(commands.FrameTickMsg{})
	if cmd == nil {
		t.Fatal("frame tick must reschedule itself")
	}
	if !m.hasPreview {
		t.Fatal("staged preview was not flushed")
	}
	if m.preview.Start.Hour() != 10 {
		t.Errorf("preview start = %v, want 10:00", m.preview.Start)
	}

	// A second tick with nothing staged keeps the last preview.
	m.Update(commands.FrameTickMsg{})
	if !m.hasPreview {
		t.Error("flushed preview should persist between gestures")
	}
}

func TestDayNavigation(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	m.Update(keyMsg("l"))
	if !m.day.Equal(testDay.AddDate(0, 0, 1)) {
		t.Errorf("day = %v after l, want next day", m.day)
	}
	m.Update(keyMsg("h"))
	m.Update(keyMsg("h"))
	if !m.day.Equal(testDay.AddDate(0, 0, -1)) {
		t.Errorf("day = %v after h h, want previous day", m.day)
	}
	m.Update(keyMsg("t"))
	if !m.day.Equal(testDay) {
		t.Errorf("day = %v after t, want the injected today", m.day)
	}
}

func TestDayNavigation_CancelsGesture(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	m.Update(keyMsg("l"))

	if m.controller.State() != interaction.StateIdle {
		t.Error("switching days must cancel the active gesture")
	}
}

func TestScrollClamped(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	for i := 0; i < 500; i++ {
		m.Update(keyMsg("j"))
	}
	if m.scroll != m.maxScroll() {
		t.Errorf("scroll = %d, want clamped to %d", m.scroll, m.maxScroll())
	}
	for i := 0; i < 500; i++ {
		m.Update(keyMsg("k"))
	}
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0", m.scroll)
	}
}

func TestAutoReload_ReloadsWhenIdle(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	_, cmd := m.Update(commands.AutoReloadMsg{})
	if cmd == nil {
		t.Fatal("auto reload must produce commands")
	}
	if !m.loading {
		t.Error("idle auto reload should reload the day")
	}
}

func TestAutoReload_SkippedDuringGesture(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))

	_, cmd := m.Update(commands.AutoReloadMsg{})
	if cmd == nil {
		t.Fatal("skipped reload must still reschedule itself")
	}
	if m.loading {
		t.Error("reload during an active gesture would move blocks under the pointer")
	}
	if m.controller.State() != interaction.StateCreating {
		t.Error("auto reload must not disturb the gesture")
	}
}

func TestMutationDone_ReloadsDay(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	_, cmd := m.Update(commands.MutationDoneMsg{})
	if cmd == nil {
		t.Fatal("mutation completion must reload the day")
	}
	if _, ok := cmd().(commands.DayLoadedMsg); !ok {
		t.Error("reload command did not produce a day")
	}
}
