// Package timegrid provides conversions between wall-clock time and the
// day grid's coordinate spaces: minutes from midnight, vertical pixel
// offsets, and addressable 15-minute slots.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotGranularity is the grid's addressable resolution in minutes.
	SlotGranularity = 15
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// SlotsPerDay is the number of addressable slots in one day.
	SlotsPerDay = MinutesPerDay / SlotGranularity
	// PixelsPerHour is the vertical size of one hour on the grid.
	PixelsPerHour = 60
	// MinBlockHeight is the smallest rendered block height in pixels.
	// Rendering only; scheduling math never reads it.
	MinBlockHeight = 8
)

const slotIDPrefix = "slot-"

// TimeToPixelOffset converts minutes from midnight into a vertical pixel
// offset on the grid.
func TimeToPixelOffset(minutes int) int {
	return minutes * PixelsPerHour / 60
}

// DurationToPixelHeight converts a duration in minutes into a block height,
// floored at MinBlockHeight so very short items stay visible.
func DurationToPixelHeight(minutes int) int {
	h := minutes * PixelsPerHour / 60
	if h < MinBlockHeight {
		return MinBlockHeight
	}
	return h
}

// SnapToGrid rounds minutes from midnight to the nearest slot boundary and
// clamps the result into [0, MinutesPerDay-SlotGranularity].
func SnapToGrid(minutes int) int {
	if minutes < 0 {
		return 0
	}
	snapped := (minutes + SlotGranularity/2) / SlotGranularity * SlotGranularity
	if snapped > MinutesPerDay-SlotGranularity {
		return MinutesPerDay - SlotGranularity
	}
	return snapped
}

// SlotCoordinate addresses one 15-minute cell of the day grid.
type SlotCoordinate struct {
	Date         time.Time // midnight, local timezone
	Hour         int       // 0-23
	MinuteOffset int       // 0, 15, 30 or 45
}

// ID returns the slot identifier string, e.g. "slot-2026-03-09-9-30".
// The hour is unpadded.
func (c SlotCoordinate) ID() string {
	return fmt.Sprintf("%s%s-%d-%d", slotIDPrefix, c.Date.Format("2006-01-02"), c.Hour, c.MinuteOffset)
}

// Time returns the point in time the slot starts at, in the date's location.
func (c SlotCoordinate) Time() time.Time {
	return time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), c.Hour, c.MinuteOffset, 0, 0, c.Date.Location())
}

// MinuteOfDay returns the slot start as minutes from midnight.
func (c SlotCoordinate) MinuteOfDay() int {
	return c.Hour*60 + c.MinuteOffset
}

// SameDay reports whether two slots address the same calendar day.
func (c SlotCoordinate) SameDay(other SlotCoordinate) bool {
	return c.Date.Year() == other.Date.Year() &&
		c.Date.Month() == other.Date.Month() &&
		c.Date.Day() == other.Date.Day()
}

// SlotAt returns the slot containing the given point in time.
// The minute is truncated down to the slot boundary.
func SlotAt(t time.Time) SlotCoordinate {
	return SlotCoordinate{
		Date:         time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		Hour:         t.Hour(),
		MinuteOffset: t.Minute() / SlotGranularity * SlotGranularity,
	}
}

// ParseSlotID decodes a slot identifier back into a SlotCoordinate.
// The date is constructed from the literal components in the local
// timezone, never through a UTC-normalizing parse. Malformed input
// returns ok=false; this runs on every drag-over event and must not panic.
func ParseSlotID(id string) (SlotCoordinate, bool) {
	if !strings.HasPrefix(id, slotIDPrefix) {
		return SlotCoordinate{}, false
	}
	parts := strings.Split(strings.TrimPrefix(id, slotIDPrefix), "-")
	if len(parts) != 5 {
		return SlotCoordinate{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return SlotCoordinate{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || month < 1 || month > 12 {
		return SlotCoordinate{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 2 || day < 1 || day > 31 {
		return SlotCoordinate{}, false
	}
	hour, err := strconv.Atoi(parts[3])
	if err != nil || hour < 0 || hour > 23 {
		return SlotCoordinate{}, false
	}
	offset, err := strconv.Atoi(parts[4])
	if err != nil || !validMinuteOffset(offset) {
		return SlotCoordinate{}, false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range days (e.g. Feb 31); reject those.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return SlotCoordinate{}, false
	}

	return SlotCoordinate{Date: date, Hour: hour, MinuteOffset: offset}, true
}

func validMinuteOffset(m int) bool {
	switch m {
	case 0, 15, 30, 45:
		return true
	default:
		return false
	}
}
