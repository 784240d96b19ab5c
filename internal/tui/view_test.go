package tui

import (
	"strings"
	"testing"

	"github.com/tempo-sh/tempo/internal/tui/commands"
)

func TestView_RendersBlocks(t *testing.T) {
	m, s := newTestModel(t)
	mustTask(t, s, "Write report", "2026-03-09", "09:00", "10:30")
	loadDay(t, m, s)

	out := m.View()
	if !strings.Contains(out, "Write report") {
		t.Error("view does not show the task title")
	}
	if !strings.Contains(out, "Monday, March 9 2026") {
		t.Error("view does not show the day header")
	}
	if !strings.Contains(out, "09:00") {
		t.Error("view does not show the hour gutter")
	}
}

func TestView_GhostPreviewDuringGesture(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	m.Update(commands.FrameTickMsg{})

	out := m.View()
	if !strings.Contains(out, "10:00 - 11:00") {
		t.Error("view does not show the creation ghost")
	}
}

func TestView_ModalOverlay(t *testing.T) {
	m, s := newTestModel(t)
	loadDay(t, m, s)

	y := yFor(t, m, 10*60)
	m.Update(press(40, y))
	m.Update(release(40, y))

	out := m.View()
	if !strings.Contains(out, "New event") {
		t.Error("modal not rendered")
	}
	if !strings.Contains(out, "Personal") {
		t.Error("modal does not show the target calendar")
	}
}

func TestPlainAgenda(t *testing.T) {
	m, s := newTestModel(t)
	mustTask(t, s, "Report", "2026-03-09", "09:00", "10:30")
	loadDay(t, m, s)

	text := plainAgenda(m.view)
	if !strings.Contains(text, "[ ] 09:00-10:30 Report") {
		t.Errorf("plain agenda = %q", text)
	}
}

func TestFmtMinute(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
		{1440, "23:59"},
	}
	for _, tt := range tests {
		if got := fmtMinute(tt.minutes); got != tt.want {
			t.Errorf("fmtMinute(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
