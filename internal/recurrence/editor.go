package recurrence

import "time"

// Editor is the working copy of a rule inside an edit session. Unlike
// Rule, it keeps every value the user has entered (the weekday set while
// frequency is daily, the count while the end mode is "until") so
// toggling between modes never loses input. Only Rule() narrows the state
// back down to what gets persisted.
type Editor struct {
	freq       Freq
	days       map[Weekday]bool
	endKind    EndKind
	count      int
	untilInput string // local editable form, "2006-01-02 15:04"
}

// NewEditor returns an editor initialized to "no recurrence".
func NewEditor() *Editor {
	return &Editor{days: make(map[Weekday]bool)}
}

// Load resets the editor from a persisted rule. A weekly rule's weekday
// set and any count/until values become the editor's retained state.
func (e *Editor) Load(r Rule) {
	e.freq = r.Freq
	e.days = make(map[Weekday]bool)
	for _, d := range r.ByDay {
		e.days[d] = true
	}
	e.endKind = r.End
	e.count = r.Count
	e.untilInput = ""
	if r.End == EndUntil {
		if input, ok := TokenToUntilInput(r.Until); ok {
			e.untilInput = input
		}
	}
	if r.None() {
		e.endKind = EndNever
	}
}

// Rule produces the rule that would be persisted from the current state.
// Retained-but-inapplicable values (weekday set for non-weekly rules, a
// count while the end mode is "until") are excluded here and only here.
func (e *Editor) Rule() Rule {
	if e.freq == FreqNone {
		return Rule{}
	}

	r := Rule{Freq: e.freq}
	if e.freq == FreqWeekly {
		for d, on := range e.days {
			if on {
				r.ByDay = append(r.ByDay, d)
			}
		}
		r.ByDay = normalizeByDay(r.ByDay)
	}

	switch e.endKind {
	case EndUntil:
		if token, ok := UntilInputToToken(e.untilInput); ok {
			r.End = EndUntil
			r.Until = token
		}
	case EndCount:
		if e.count > 0 {
			r.End = EndCount
			r.Count = e.count
		}
	}

	return r
}

// Freq returns the current frequency.
func (e *Editor) Freq() Freq { return e.freq }

// SetFreq changes the frequency. The weekday set is retained even while
// the frequency is not weekly.
func (e *Editor) SetFreq(f Freq) { e.freq = f }

// DayEnabled reports whether a weekday is selected.
func (e *Editor) DayEnabled(d Weekday) bool { return e.days[d] }

// ToggleDay flips a weekday's selection.
func (e *Editor) ToggleDay(d Weekday) {
	if _, ok := weekdayOrder[d]; !ok {
		return
	}
	e.days[d] = !e.days[d]
}

// EndMode returns the current end mode.
func (e *Editor) EndMode() EndKind { return e.endKind }

// SetEndMode switches between never/until/count. The other mode's value is
// retained so the user can switch back without retyping it.
func (e *Editor) SetEndMode(k EndKind) { e.endKind = k }

// Count returns the retained count value.
func (e *Editor) Count() int { return e.count }

// SetCount stores a count; non-positive values are ignored.
func (e *Editor) SetCount(n int) {
	if n > 0 {
		e.count = n
	}
}

// UntilInput returns the retained until value in its editable local form.
func (e *Editor) UntilInput() string { return e.untilInput }

// SetUntilInput stores the editable until value.
func (e *Editor) SetUntilInput(s string) { e.untilInput = s }

// SetUntilDate is a convenience for pickers that produce a time.Time.
func (e *Editor) SetUntilDate(t time.Time) {
	e.untilInput = t.Format(untilInputLayout)
}
