package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/recurrence"
)

// modalFocus says which control of the creation modal receives typed keys.
type modalFocus int

const (
	focusTitle modalFocus = iota
	focusOptions
	focusUntil
)

// weekdayKeys maps the 1-7 number row to weekdays, Monday first.
var weekdayKeys = []recurrence.Weekday{
	recurrence.Monday,
	recurrence.Tuesday,
	recurrence.Wednesday,
	recurrence.Thursday,
	recurrence.Friday,
	recurrence.Saturday,
	recurrence.Sunday,
}

// createModal is the confirmation dialog shown after a drag-to-create
// gesture. The underlying creation stays pending in the interaction
// controller until the modal commits or is dismissed.
type createModal struct {
	intent interaction.CreateIntent
	title  textinput.Model
	until  textinput.Model
	editor *recurrence.Editor
	focus  modalFocus
}

func newCreateModal(intent interaction.CreateIntent) *createModal {
	title := textinput.New()
	title.Placeholder = "Event title"
	title.CharLimit = 256
	title.Width = 40
	title.Focus()

	until := textinput.New()
	until.Placeholder = "2026-01-31 17:00"
	until.CharLimit = 16
	until.Width = 18

	return &createModal{
		intent: intent,
		title:  title,
		until:  until,
		editor: recurrence.NewEditor(),
	}
}

// rule returns the wire form of the configured recurrence, or "" for none.
func (c *createModal) rule() string {
	c.syncUntil()
	return recurrence.Encode(c.editor.Rule())
}

// syncUntil copies the until input field into the editor.
func (c *createModal) syncUntil() {
	c.editor.SetUntilInput(strings.TrimSpace(c.until.Value()))
}

// handleKey processes one key press. done=true means the modal decided the
// session's fate: confirmed reports whether the creation should commit.
func (c *createModal) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, done, confirmed bool) {
	switch msg.String() {
	case "esc":
		return nil, true, false
	case "enter":
		return nil, true, true
	case "tab", "shift+tab":
		c.cycleFocus(msg.String() == "shift+tab")
		return nil, false, false
	}

	switch c.focus {
	case focusTitle:
		c.title, cmd = c.title.Update(msg)
		return cmd, false, false
	case focusUntil:
		c.until, cmd = c.until.Update(msg)
		c.syncUntil()
		return cmd, false, false
	}

	switch msg.String() {
	case "f":
		c.editor.SetFreq(nextFreq(c.editor.Freq()))
	case "e":
		c.editor.SetEndMode(nextEndKind(c.editor.EndMode()))
	case "+", "=":
		c.editor.SetCount(c.editor.Count() + 1)
	case "-":
		c.editor.SetCount(c.editor.Count() - 1)
	case "1", "2", "3", "4", "5", "6", "7":
		if c.editor.Freq() == recurrence.FreqWeekly {
			c.editor.ToggleDay(weekdayKeys[msg.String()[0]-'1'])
		}
	}
	return nil, false, false
}

// cycleFocus moves focus between the title, the option row, and the until
// input. The until input only joins the cycle while the end mode needs it.
func (c *createModal) cycleFocus(backward bool) {
	order := []modalFocus{focusTitle, focusOptions}
	if c.editor.Freq() != recurrence.FreqNone && c.editor.EndMode() == recurrence.EndUntil {
		order = append(order, focusUntil)
	}

	current := 0
	for i, f := range order {
		if f == c.focus {
			current = i
			break
		}
	}
	step := 1
	if backward {
		step = len(order) - 1
	}
	c.focus = order[(current+step)%len(order)]

	c.title.Blur()
	c.until.Blur()
	switch c.focus {
	case focusTitle:
		c.title.Focus()
	case focusUntil:
		c.until.Focus()
	}
}

func nextFreq(f recurrence.Freq) recurrence.Freq {
	switch f {
	case recurrence.FreqNone:
		return recurrence.FreqDaily
	case recurrence.FreqDaily:
		return recurrence.FreqWeekly
	case recurrence.FreqWeekly:
		return recurrence.FreqMonthly
	default:
		return recurrence.FreqNone
	}
}

func nextEndKind(k recurrence.EndKind) recurrence.EndKind {
	switch k {
	case recurrence.EndNever:
		return recurrence.EndCount
	case recurrence.EndCount:
		return recurrence.EndUntil
	default:
		return recurrence.EndNever
	}
}

func freqLabel(f recurrence.Freq) string {
	switch f {
	case recurrence.FreqDaily:
		return "daily"
	case recurrence.FreqWeekly:
		return "weekly"
	case recurrence.FreqMonthly:
		return "monthly"
	default:
		return "once"
	}
}

func endLabel(k recurrence.EndKind) string {
	switch k {
	case recurrence.EndCount:
		return "count"
	case recurrence.EndUntil:
		return "until"
	default:
		return "never"
	}
}

// renderModal draws the creation dialog.
func (m *Model) renderModal() string {
	c := m.modal
	s := m.styles

	var b strings.Builder
	b.WriteString(s.ModalTitleStyle.Render("New event"))
	b.WriteString("\n\n")

	b.WriteString(s.ModalLabelStyle.Render("Title    "))
	b.WriteString(c.title.View())
	b.WriteString("\n")

	when := fmt.Sprintf("%s  %s - %s",
		c.intent.Start.Format("Mon Jan 2"),
		c.intent.Start.Format("15:04"),
		c.intent.End.Format("15:04"))
	b.WriteString(s.ModalLabelStyle.Render("When     "))
	b.WriteString(s.ModalValueStyle.Render(when))
	b.WriteString("\n")

	cal := c.intent.Target.Summary
	if cal == "" {
		cal = c.intent.Target.CalendarID
	}
	b.WriteString(s.ModalLabelStyle.Render("Calendar "))
	b.WriteString(s.ModalValueStyle.Render(cal))
	b.WriteString("\n\n")

	freq := s.ModalValueStyle
	if c.focus == focusOptions {
		freq = s.ModalActiveStyle
	}
	b.WriteString(s.ModalLabelStyle.Render("Repeat   "))
	b.WriteString(freq.Render(" " + freqLabel(c.editor.Freq()) + " "))

	if c.editor.Freq() == recurrence.FreqWeekly {
		b.WriteString("  ")
		for i, d := range weekdayKeys {
			style := s.DayToggleOffStyle
			if c.editor.DayEnabled(d) {
				style = s.DayToggleOnStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%d:%s", i+1, d)))
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	if c.editor.Freq() != recurrence.FreqNone {
		b.WriteString(s.ModalLabelStyle.Render("Ends     "))
		b.WriteString(s.ModalValueStyle.Render(endLabel(c.editor.EndMode())))
		switch c.editor.EndMode() {
		case recurrence.EndCount:
			b.WriteString(s.ModalValueStyle.Render(fmt.Sprintf("  %d times", c.editor.Count())))
		case recurrence.EndUntil:
			b.WriteString("  ")
			b.WriteString(c.until.View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.ModalHintStyle.Render("enter save · esc discard · tab focus · f repeat · e ends · +/- count"))

	return s.ModalStyle.Render(b.String())
}
