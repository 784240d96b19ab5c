package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/timegrid"
)

// View renders the full screen.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	rows := m.renderGrid()
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	screen := b.String()
	if m.mode == ModeModal && m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	return screen
}

func (m *Model) renderHeader() string {
	title := m.day.Format("Monday, January 2 2006")
	if m.loading {
		title += "  loading..."
	}
	line1 := m.styles.TitleStyle.Render(" " + title)
	line1 += m.styles.HeaderStyle.Render(strings.Repeat(" ", max(0, m.width-lipgloss.Width(line1))))

	sub := fmt.Sprintf(" %d items", len(m.view.Items))
	line2 := m.styles.HeaderStyle.Render(sub)
	line2 += m.styles.HeaderStyle.Render(strings.Repeat(" ", max(0, m.width-lipgloss.Width(line2))))
	return line1 + "\n" + line2
}

// renderGrid draws one line per visible slot.
func (m *Model) renderGrid() []string {
	height := m.gridHeight()
	rows := make([]string, 0, height)

	nowMin := -1
	now := m.now()
	if event.TruncateToDay(now).Equal(m.day) {
		nowMin = now.Hour()*60 + now.Minute()
	}

	for row := 0; row < height; row++ {
		minute := m.startMinutes + (m.scroll+row)*timegrid.SlotGranularity
		if minute >= m.endMinutes {
			rows = append(rows, m.styles.EmptySlotStyle.Render(strings.Repeat(" ", m.width)))
			continue
		}
		rows = append(rows, m.renderRow(minute, nowMin))
	}
	return rows
}

// renderRow draws the gutter and the block strips crossing one slot line.
func (m *Model) renderRow(minute, nowMin int) string {
	var b strings.Builder

	// Gutter: hour lines get a label, the current slot gets a marker.
	label := strings.Repeat(" ", gutterWidth)
	style := m.styles.GutterStyle
	if minute%60 == 0 {
		label = fmt.Sprintf("%5s  ", fmtMinute(minute))
		style = m.styles.GutterHourStyle
	}
	if nowMin >= 0 && nowMin >= minute && nowMin < minute+timegrid.SlotGranularity {
		label = fmt.Sprintf("%5s▸ ", fmtMinute(minute))
		style = m.styles.NowMarkerStyle
	}
	b.WriteString(style.Render(label))

	// Ghost preview takes the whole row while a gesture is active.
	if m.hasPreview {
		pStart := m.preview.Start.Hour()*60 + m.preview.Start.Minute()
		pEnd := m.preview.End.Hour()*60 + m.preview.End.Minute()
		if pEnd == 0 && m.preview.End.After(m.preview.Start) {
			pEnd = timegrid.MinutesPerDay
		}
		if minute >= pStart && minute < pEnd {
			text := ""
			if minute == pStart || (minute-pStart) < timegrid.SlotGranularity {
				text = fmt.Sprintf(" %s - %s", fmtMinute(pStart), fmtMinute(pEnd))
			}
			b.WriteString(m.styles.GhostBlockStyle.Render(padRight(text, m.width-gutterWidth)))
			return b.String()
		}
	}

	b.WriteString(m.renderStrips(minute))
	return b.String()
}

// renderStrips fills the grid area of one row with block strips and empty
// space.
func (m *Model) renderStrips(minute int) string {
	gridW := m.width - gutterWidth
	if gridW <= 0 {
		return ""
	}

	type strip struct {
		left, width int
		item        agenda.Item
	}
	var strips []strip
	for _, item := range m.view.Items {
		if minute < item.StartMinutes || minute >= item.EndMinutes {
			continue
		}
		colW := gridW / item.Layout.TotalColumns
		if colW < 1 {
			colW = 1
		}
		left := item.Layout.ColumnIndex * colW
		w := colW
		if item.Layout.ColumnIndex == item.Layout.TotalColumns-1 {
			w = gridW - left
		}
		strips = append(strips, strip{left: left, width: w, item: item})
	}
	sort.Slice(strips, func(i, j int) bool { return strips[i].left < strips[j].left })

	emptyStyle := m.styles.EmptySlotStyle
	if minute%60 == 0 {
		emptyStyle = m.styles.HourRuleStyle
	}
	if m.controller.State() == interaction.StateHovering {
		h := m.controller.HoverTime()
		if h.Hour()*60+h.Minute() == minute {
			emptyStyle = m.styles.HoverSlotStyle
		}
	}

	var b strings.Builder
	x := 0
	for _, s := range strips {
		if s.left > x {
			b.WriteString(emptyStyle.Render(strings.Repeat(" ", s.left-x)))
			x = s.left
		}
		if s.left < x {
			continue // fully shadowed by the previous strip
		}
		b.WriteString(m.renderStripCell(s.item, minute, s.width))
		x += s.width
	}
	if x < gridW {
		b.WriteString(emptyStyle.Render(strings.Repeat(" ", gridW-x)))
	}
	return b.String()
}

// renderStripCell draws one row of one block. The first row carries the
// title, the second the location.
func (m *Model) renderStripCell(item agenda.Item, minute, width int) string {
	style := m.styles.EventBlockStyle
	if item.Kind == event.KindTask {
		style = m.styles.TaskBlockStyle
		if item.Done {
			style = m.styles.DoneBlockStyle
		}
	}

	row := (minute - item.StartMinutes) / timegrid.SlotGranularity
	text := ""
	switch row {
	case 0:
		text = " " + item.Title
	case 1:
		if item.Location != "" {
			text = " @ " + item.Location
		}
	}
	text = ansi.Truncate(text, width, "…")
	return style.Render(padRight(text, width))
}

func (m *Model) renderFooter() string {
	if m.err != nil {
		line := m.styles.ErrorStyle.Render(" error: " + m.err.Error() + "  (esc to dismiss)")
		return line + m.styles.HelpStyle.Render(strings.Repeat(" ", max(0, m.width-lipgloss.Width(line))))
	}
	if m.statusMsg != "" {
		line := m.styles.StatusStyle.Render(" " + m.statusMsg)
		return line + m.styles.HelpStyle.Render(strings.Repeat(" ", max(0, m.width-lipgloss.Width(line))))
	}
	help := " q quit · h/l day · t today · j/k scroll · y copy · drag to schedule"
	line := m.styles.HelpStyle.Render(help)
	return line + m.styles.HelpStyle.Render(strings.Repeat(" ", max(0, m.width-lipgloss.Width(line))))
}

// copyAgenda puts a plain-text rendition of the day on the clipboard.
func (m *Model) copyAgenda() tea.Cmd {
	if err := clipboard.WriteAll(plainAgenda(m.view)); err != nil {
		LogError("clipboard", err)
		m.status("clipboard unavailable")
		return nil
	}
	m.status("copied to clipboard")
	return nil
}

// plainAgenda renders a day as shareable plain text.
func plainAgenda(day agenda.Day) string {
	var b strings.Builder
	b.WriteString(day.Date.Format("Monday, January 2 2006"))
	b.WriteString("\n")
	for _, item := range day.Items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s-%s %s", mark,
			fmtMinute(item.StartMinutes), fmtMinute(item.EndMinutes), item.Title)
		if item.Location != "" {
			b.WriteString(" @ " + item.Location)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func fmtMinute(min int) string {
	if min >= timegrid.MinutesPerDay {
		min = timegrid.MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
