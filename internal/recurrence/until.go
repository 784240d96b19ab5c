package recurrence

import (
	"time"
)

// untilInputLayout is the local-timezone editable form of an UNTIL value.
// It carries minute precision only; rule tokens carry seconds. The loss is
// acceptable because recurrence end dates are day-granularity in practice.
const untilInputLayout = "2006-01-02 15:04"

const (
	tokenLayoutUTC   = "20060102T150405Z"
	tokenLayoutLocal = "20060102T150405"
	tokenLayoutDate  = "20060102"
)

// UntilInputToToken converts the editable local form into a wire token.
// A date-only input is accepted and means end of that local day.
func UntilInputToToken(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	if t, err := time.ParseInLocation(untilInputLayout, input, time.Local); err == nil {
		return t.UTC().Format(tokenLayoutUTC), true
	}
	if t, err := time.ParseInLocation("2006-01-02", input, time.Local); err == nil {
		end := t.Add(24*time.Hour - time.Minute)
		return end.UTC().Format(tokenLayoutUTC), true
	}
	return "", false
}

// TokenToUntilInput converts a wire token into the editable local form.
// Date-time tokens are interpreted per their form (trailing Z means UTC,
// otherwise floating local time); date tokens stay a local date.
func TokenToUntilInput(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if t, err := time.Parse(tokenLayoutUTC, token); err == nil {
		return t.In(time.Local).Format(untilInputLayout), true
	}
	if t, err := time.ParseInLocation(tokenLayoutLocal, token, time.Local); err == nil {
		return t.Format(untilInputLayout), true
	}
	if t, err := time.ParseInLocation(tokenLayoutDate, token, time.Local); err == nil {
		return t.Format(untilInputLayout), true
	}
	return "", false
}
