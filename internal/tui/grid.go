package tui

import (
	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/timegrid"
)

// The grid maps one terminal line to one 15-minute slot. All hit testing
// and block placement goes through the conversions below so the mouse and
// the renderer can never disagree about where a slot is.

// gridHeight returns the number of grid lines currently on screen.
func (m *Model) gridHeight() int {
	h := m.height - headerLines - footerLines
	if h < 0 {
		return 0
	}
	return h
}

// totalLines returns the number of slot lines in the visible day range.
func (m *Model) totalLines() int {
	return (m.endMinutes - m.startMinutes) / timegrid.SlotGranularity
}

// maxScroll returns the largest valid scroll offset.
func (m *Model) maxScroll() int {
	max := m.totalLines() - m.gridHeight()
	if max < 0 {
		return 0
	}
	return max
}

// clampScroll keeps the scroll offset inside the day range.
func (m *Model) clampScroll() {
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// lineToMinute converts a terminal row to the minute of day its slot
// starts at. ok=false when the row is outside the grid or past the
// configured day range.
func (m *Model) lineToMinute(y int) (int, bool) {
	row := y - headerLines
	if row < 0 || row >= m.gridHeight() {
		return 0, false
	}
	minute := m.startMinutes + (m.scroll+row)*timegrid.SlotGranularity
	if minute < m.startMinutes || minute >= m.endMinutes {
		return 0, false
	}
	return minute, true
}

// minuteToLine converts a minute of day to its terminal row. ok=false when
// the minute is scrolled out of view.
func (m *Model) minuteToLine(minute int) (int, bool) {
	row := (minute-m.startMinutes)/timegrid.SlotGranularity - m.scroll
	if row < 0 || row >= m.gridHeight() {
		return 0, false
	}
	return row + headerLines, true
}

// slotAt converts a terminal position to the slot it addresses on the
// viewed day. The x coordinate only needs to be inside the grid area.
func (m *Model) slotAt(x, y int) (timegrid.SlotCoordinate, bool) {
	if x < gutterWidth || x >= m.width {
		return timegrid.SlotCoordinate{}, false
	}
	minute, ok := m.lineToMinute(y)
	if !ok {
		return timegrid.SlotCoordinate{}, false
	}
	return timegrid.SlotCoordinate{
		Date:         m.day,
		Hour:         minute / 60,
		MinuteOffset: minute % 60,
	}, true
}

// blockRegion says which part of a block a pointer press landed on.
type blockRegion int

const (
	regionBody blockRegion = iota
	regionTopEdge
	regionBottomEdge
)

// itemAt returns the block under a terminal position and which region of
// it was hit. Overlapping blocks occupy side-by-side column strips; the
// strip is resolved from the item's own cluster width, so clusters of
// different sizes hit-test independently.
func (m *Model) itemAt(x, y int) (agenda.Item, blockRegion, bool) {
	minute, ok := m.lineToMinute(y)
	if !ok || x < gutterWidth {
		return agenda.Item{}, regionBody, false
	}

	gridW := m.width - gutterWidth
	var hit agenda.Item
	found := false
	for _, item := range m.view.Items {
		if minute < item.StartMinutes || minute >= item.EndMinutes {
			continue
		}
		colW := gridW / item.Layout.TotalColumns
		if colW < 1 {
			colW = 1
		}
		left := gutterWidth + item.Layout.ColumnIndex*colW
		right := left + colW
		if item.Layout.ColumnIndex == item.Layout.TotalColumns-1 {
			right = m.width
		}
		if x < left || x >= right {
			continue
		}
		// Ties go to the higher stack order, matching paint order.
		if !found || item.Layout.StackOrder > hit.Layout.StackOrder {
			hit = item
			found = true
		}
	}
	if !found {
		return agenda.Item{}, regionBody, false
	}

	region := regionBody
	firstSlot := hit.StartMinutes / timegrid.SlotGranularity * timegrid.SlotGranularity
	lastSlot := (hit.EndMinutes - 1) / timegrid.SlotGranularity * timegrid.SlotGranularity
	switch {
	case firstSlot == lastSlot:
		// Single-line blocks always move; there is no edge to grab.
		region = regionBody
	case minute/timegrid.SlotGranularity*timegrid.SlotGranularity == firstSlot:
		region = regionTopEdge
	case minute/timegrid.SlotGranularity*timegrid.SlotGranularity == lastSlot:
		region = regionBottomEdge
	}
	return hit, region, true
}

// dragFor maps a press region to the drag payload it starts.
func dragFor(item agenda.Item, region blockRegion) interaction.DragData {
	switch region {
	case regionTopEdge:
		return interaction.ResizeStart{Subject: item.Subject}
	case regionBottomEdge:
		return interaction.ResizeEnd{Subject: item.Subject}
	default:
		return interaction.Move{Subject: item.Subject}
	}
}
