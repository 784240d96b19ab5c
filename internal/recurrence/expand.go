package recurrence

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	applog "github.com/tempo-sh/tempo/internal/log"
)

const defaultMaxOccurrences = 1000

// ExpandConfig bounds an occurrence expansion.
type ExpandConfig struct {
	// RangeStart / RangeEnd define the inclusive window.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrences caps the expansion so a malformed or unbounded rule
	// cannot blow up a render pass. Zero means defaultMaxOccurrences.
	MaxOccurrences int
}

// Expand computes the concrete start times of a recurring event within the
// window. ruleString is the persisted wire form; dtstart anchors the
// series. A no-recurrence rule yields just dtstart when it falls inside
// the window.
func Expand(ruleString string, dtstart time.Time, cfg ExpandConfig) ([]time.Time, error) {
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, errors.New("expand: RangeEnd is before RangeStart")
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}

	rule := Decode(ruleString)
	if rule.None() {
		if dtstart.Before(cfg.RangeStart) || dtstart.After(cfg.RangeEnd) {
			return nil, nil
		}
		return []time.Time{dtstart}, nil
	}

	r, err := rrule.StrToRRule(strippedFor(rule))
	if err != nil {
		return nil, err
	}
	r.DTStart(dtstart)

	rangeStart := cfg.RangeStart.In(dtstart.Location())
	rangeEnd := cfg.RangeEnd.In(dtstart.Location())

	occs := r.Between(rangeStart, rangeEnd, true)
	if len(occs) > cfg.MaxOccurrences {
		occs = occs[:cfg.MaxOccurrences]
		applog.Error("expand: occurrence cap hit", errors.New("max occurrences reached"),
			"rule", ruleString, "cap", cfg.MaxOccurrences)
	}

	return occs, nil
}

// strippedFor re-encodes the decoded rule without the RRULE: prefix, which
// is the form rrule-go's parser accepts. Going through Decode first keeps
// the expansion restricted to the supported subset even when the stored
// string carries extra parameters.
func strippedFor(rule Rule) string {
	return Encode(rule)[len(rulePrefix):]
}
