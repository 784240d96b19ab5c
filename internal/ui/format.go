package ui

import (
	"fmt"
	"strings"

	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/event"
)

// FormatDuration renders minutes as "2h", "45m", or "1h30m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatMinutes renders minutes since midnight as "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// PrintAgenda prints one day's assembled view. Items that share a
// collision cluster are indented by column and carry an n/m marker so the
// side-by-side grid layout survives in plain text.
func PrintAgenda(view agenda.Day) {
	fmt.Printf("%s\n", formatHeader(view.Date.Format("Monday, January 2 2006")))

	if len(view.Items) == 0 {
		fmt.Println(formatMuted("  nothing scheduled"))
		return
	}

	maxTitle := termWidth() - 40
	if maxTitle < 16 {
		maxTitle = 16
	}

	for _, item := range view.Items {
		fmt.Println(agendaRow(item, maxTitle))
	}
}

func agendaRow(item agenda.Item, maxTitle int) string {
	indent := strings.Repeat("  ", item.Layout.ColumnIndex)

	var column string
	if item.Layout.TotalColumns > 1 {
		column = formatMuted(fmt.Sprintf(" [%d/%d]", item.Layout.StackOrder, item.Layout.TotalColumns))
	}

	title := item.Title
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	var label string
	switch {
	case item.Kind == event.KindTask && item.Done:
		label = formatDone("✓ " + title)
	case item.Kind == event.KindTask:
		label = formatTask("○ " + title)
	default:
		label = formatEvent("◆ " + title)
	}

	span := fmt.Sprintf("%s-%s", FormatMinutes(item.StartMinutes), FormatMinutes(item.EndMinutes))
	duration := formatMuted(FormatDuration(item.EndMinutes - item.StartMinutes))

	row := fmt.Sprintf("  %s%s  %s %s%s", indent, span, label, duration, column)
	if item.Location != "" {
		row += formatMuted("  @ " + item.Location)
	}
	return row
}
