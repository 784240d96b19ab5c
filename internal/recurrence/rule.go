// Package recurrence parses, builds, and expands the recurrence-rule
// subset tempo supports: FREQ, BYDAY, UNTIL, COUNT and INTERVAL-free
// DAILY/WEEKLY/MONTHLY rules.
package recurrence

import (
	"sort"
	"strconv"
	"strings"
)

const rulePrefix = "RRULE:"

// Freq is the recurrence frequency.
type Freq string

const (
	FreqNone    Freq = ""
	FreqDaily   Freq = "DAILY"
	FreqWeekly  Freq = "WEEKLY"
	FreqMonthly Freq = "MONTHLY"
)

// Weekday is a two-letter weekday code as used in BYDAY.
type Weekday string

const (
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
	Sunday    Weekday = "SU"
)

// Weekdays lists all codes in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// EndKind says how a recurrence terminates.
type EndKind int

const (
	EndNever EndKind = iota
	EndUntil
	EndCount
)

// Rule is the decoded form of a recurrence rule string.
//
// Until holds the raw UNTIL token exactly as it appeared on the wire; it is
// deliberately not reparsed into a date so ambiguous offsets round-trip
// losslessly. ByDay is only serialized for weekly rules, so a non-weekly
// rule's weekday set does not survive an encode/decode cycle.
type Rule struct {
	Freq  Freq
	ByDay []Weekday // meaningful only when Freq is FreqWeekly
	End   EndKind
	Until string // raw wire token, set when End == EndUntil
	Count int    // positive, set when End == EndCount
}

// None reports whether the rule means "no recurrence".
func (r Rule) None() bool {
	return r.Freq == FreqNone
}

// Decode parses a rule string into a Rule. Parsing is permissive: a
// missing prefix, an unrecognized FREQ, or an absent FREQ all yield a
// no-recurrence rule rather than an error, so forward-incompatible rule
// extensions degrade to "none" instead of breaking the caller.
func Decode(s string) Rule {
	if !strings.HasPrefix(s, rulePrefix) {
		return Rule{}
	}

	var (
		freq  Freq
		byDay []Weekday
		until string
		count int
	)

	for _, pair := range strings.Split(strings.TrimPrefix(s, rulePrefix), ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			continue
		}
		switch strings.ToUpper(key) {
		case "FREQ":
			switch Freq(strings.ToUpper(value)) {
			case FreqDaily:
				freq = FreqDaily
			case FreqWeekly:
				freq = FreqWeekly
			case FreqMonthly:
				freq = FreqMonthly
			}
		case "BYDAY":
			byDay = parseByDay(value)
		case "UNTIL":
			until = value
		case "COUNT":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				count = n
			}
		}
	}

	if freq == FreqNone {
		return Rule{}
	}

	rule := Rule{Freq: freq}
	if freq == FreqWeekly {
		rule.ByDay = byDay
	}
	// UNTIL wins when both terminators are present.
	switch {
	case until != "":
		rule.End = EndUntil
		rule.Until = until
	case count > 0:
		rule.End = EndCount
		rule.Count = count
	}

	return rule
}

// Encode serializes a rule back into its wire form. It returns "" for a
// no-recurrence rule, meaning the field is omitted from persistence.
func Encode(r Rule) string {
	if r.Freq == FreqNone {
		return ""
	}

	var b strings.Builder
	b.WriteString(rulePrefix)
	b.WriteString("FREQ=")
	b.WriteString(string(r.Freq))

	if r.Freq == FreqWeekly && len(r.ByDay) > 0 {
		days := normalizeByDay(r.ByDay)
		codes := make([]string, len(days))
		for i, d := range days {
			codes[i] = string(d)
		}
		b.WriteString(";BYDAY=")
		b.WriteString(strings.Join(codes, ","))
	}

	switch r.End {
	case EndUntil:
		if r.Until != "" {
			b.WriteString(";UNTIL=")
			b.WriteString(r.Until)
		}
	case EndCount:
		if r.Count > 0 {
			b.WriteString(";COUNT=")
			b.WriteString(strconv.Itoa(r.Count))
		}
	}

	return b.String()
}

func parseByDay(value string) []Weekday {
	var days []Weekday
	for _, code := range strings.Split(value, ",") {
		d := Weekday(strings.ToUpper(strings.TrimSpace(code)))
		if _, ok := weekdayOrder[d]; ok {
			days = append(days, d)
		}
	}
	return normalizeByDay(days)
}

// normalizeByDay deduplicates and orders weekday codes Monday-first so
// encoding is deterministic.
func normalizeByDay(days []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if _, ok := weekdayOrder[d]; ok && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return weekdayOrder[out[a]] < weekdayOrder[out[b]]
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
