package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/recurrence"
)

func testIntent() interaction.CreateIntent {
	return interaction.CreateIntent{
		Target: event.Calendar{AccountID: "acct", CalendarID: "personal", Summary: "Personal", Writable: true, Default: true},
		Start:  time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local),
		End:    time.Date(2026, 3, 9, 11, 0, 0, 0, time.Local),
	}
}

func TestModal_TitleReceivesKeys(t *testing.T) {
	c := newCreateModal(testIntent())

	// Option keys go into the title while it is focused.
	c.handleKey(keyMsg("f"))
	c.handleKey(keyMsg("e"))
	if c.title.Value() != "fe" {
		t.Errorf("title = %q, want typed keys captured", c.title.Value())
	}
	if c.editor.Freq() != recurrence.FreqNone {
		t.Error("frequency changed while the title was focused")
	}
}

func TestModal_RecurrenceEditing(t *testing.T) {
	c := newCreateModal(testIntent())
	c.handleKey(keyMsg("tab"))

	c.handleKey(keyMsg("f")) // daily
	c.handleKey(keyMsg("f")) // weekly
	if c.editor.Freq() != recurrence.FreqWeekly {
		t.Fatalf("freq = %q, want weekly", c.editor.Freq())
	}

	c.handleKey(keyMsg("1")) // Monday
	c.handleKey(keyMsg("3")) // Wednesday
	if got := c.rule(); got != "RRULE:FREQ=WEEKLY;BYDAY=MO,WE" {
		t.Errorf("rule = %q", got)
	}

	c.handleKey(keyMsg("e")) // ends: count
	c.handleKey(keyMsg("+"))
	c.handleKey(keyMsg("+"))
	c.handleKey(keyMsg("+"))
	if got := c.rule(); got != "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;COUNT=3" {
		t.Errorf("rule = %q", got)
	}
}

func TestModal_FreqCyclesBackToOnce(t *testing.T) {
	c := newCreateModal(testIntent())
	c.handleKey(keyMsg("tab"))

	for i := 0; i < 4; i++ {
		c.handleKey(keyMsg("f"))
	}
	if c.editor.Freq() != recurrence.FreqNone {
		t.Errorf("freq = %q after a full cycle, want none", c.editor.Freq())
	}
	if c.rule() != "" {
		t.Errorf("rule = %q, want empty for a one-off event", c.rule())
	}
}

func TestModal_WeekdaysIgnoredOutsideWeekly(t *testing.T) {
	c := newCreateModal(testIntent())
	c.handleKey(keyMsg("tab"))

	c.handleKey(keyMsg("f")) // daily
	c.handleKey(keyMsg("2"))
	if got := c.rule(); got != "RRULE:FREQ=DAILY" {
		t.Errorf("rule = %q, weekday toggles must not apply to daily rules", got)
	}
}

func TestModal_UntilInput(t *testing.T) {
	c := newCreateModal(testIntent())
	c.handleKey(keyMsg("tab"))

	c.handleKey(keyMsg("f")) // daily
	c.handleKey(keyMsg("e")) // count
	c.handleKey(keyMsg("e")) // until
	c.handleKey(keyMsg("tab"))
	if c.focus != focusUntil {
		t.Fatal("until input should join the focus cycle")
	}

	c.handleKey(keyMsg("2026-06-30 17:00"))
	got := c.rule()
	if !strings.HasPrefix(got, "RRULE:FREQ=DAILY;UNTIL=") {
		t.Fatalf("rule = %q, want an UNTIL clause", got)
	}
	r := recurrence.Decode(got)
	if r.End != recurrence.EndUntil || r.Until == "" {
		t.Errorf("decoded rule = %+v, want until end", r)
	}
}

func TestModal_EnterAndEscape(t *testing.T) {
	c := newCreateModal(testIntent())

	_, done, confirmed := c.handleKey(keyMsg("enter"))
	if !done || !confirmed {
		t.Error("enter should confirm")
	}

	c = newCreateModal(testIntent())
	_, done, confirmed = c.handleKey(keyMsg("esc"))
	if !done || confirmed {
		t.Error("escape should discard")
	}
}
