// Package ics turns iCalendar payloads from subscribed feeds into
// external events.
package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	applog "github.com/tempo-sh/tempo/internal/log"

	"github.com/tempo-sh/tempo/internal/event"
)

// ErrEmptyPayload is returned for a zero-length ICS body.
var ErrEmptyPayload = errors.New("empty ics payload")

// Parse reads one ICS payload into external events for the given
// account/calendar. A VEVENT that cannot be read (missing UID, unusable
// times) is logged and skipped; one broken event never poisons the feed.
//
// Recurring events keep their raw RRULE string. Expansion into concrete
// instances happens at projection time, not here.
func Parse(accountID, calendarID string, body []byte) ([]event.ExternalEvent, error) {
	if len(body) == 0 {
		return nil, ErrEmptyPayload
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var events []event.ExternalEvent
	for _, ve := range cal.Events() {
		e, err := parseVEvent(accountID, calendarID, ve)
		if err != nil {
			applog.Debug("skipping unreadable vevent", "calendar", calendarID, "reason", err)
			continue
		}
		events = append(events, e)
	}

	applog.Info("ics parsed", "calendar", calendarID, "events", len(events))
	return events, nil
}

func parseVEvent(accountID, calendarID string, ve *ical.VEvent) (event.ExternalEvent, error) {
	e := event.ExternalEvent{AccountID: accountID, CalendarID: calendarID}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return e, errors.New("missing UID")
	}
	e.ExternalID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		e.Location = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return e, errors.New("unreadable DTSTART")
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; a missing end means a zero-length marker,
		// which we render as one slot.
		end = start.Add(15 * time.Minute)
	}
	e.Start = start.In(time.Local)
	e.End = end.In(time.Local)

	e.AllDay = isAllDay(ve)

	// The library hands back the bare rule value; the persisted wire form
	// carries the RRULE: prefix.
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		e.RRule = "RRULE:" + p.Value
	}

	return e, nil
}

// isAllDay inspects DTSTART: VALUE=DATE or a bare YYYYMMDD value means an
// all-day event.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
