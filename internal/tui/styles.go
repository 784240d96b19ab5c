package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tempo-sh/tempo/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorCurrent     lipgloss.Color
	colorWarning     lipgloss.Color

	// Title and header
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style

	// Time gutter
	GutterStyle     lipgloss.Style
	GutterHourStyle lipgloss.Style

	// Grid
	EmptySlotStyle lipgloss.Style
	HourRuleStyle  lipgloss.Style
	NowMarkerStyle lipgloss.Style

	// Blocks
	TaskBlockStyle  lipgloss.Style
	EventBlockStyle lipgloss.Style
	DoneBlockStyle  lipgloss.Style
	GhostBlockStyle lipgloss.Style
	HoverSlotStyle  lipgloss.Style

	// Modal
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalLabelStyle   lipgloss.Style
	ModalValueStyle   lipgloss.Style
	ModalActiveStyle  lipgloss.Style
	ModalDimStyle     lipgloss.Style
	ModalHintStyle    lipgloss.Style
	DayToggleOnStyle  lipgloss.Style
	DayToggleOffStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorCurrent = palette.Current
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.HeaderStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.GutterStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Width(gutterWidth)

	s.GutterHourStyle = s.GutterStyle.
		Foreground(s.colorAccent)

	s.EmptySlotStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	s.HourRuleStyle = lipgloss.NewStyle().
		Foreground(s.colorBgHighlight).
		Background(s.colorBg)

	s.NowMarkerStyle = lipgloss.NewStyle().
		Foreground(s.colorCurrent).
		Background(s.colorBg).
		Bold(true)

	s.TaskBlockStyle = lipgloss.NewStyle().
		Background(palette.TaskBg).
		Foreground(palette.TextOnTask)

	s.EventBlockStyle = lipgloss.NewStyle().
		Background(palette.EventBg).
		Foreground(palette.TextOnEvent)

	s.DoneBlockStyle = lipgloss.NewStyle().
		Background(palette.TaskDoneBg).
		Foreground(s.colorFgMuted).
		Strikethrough(true)

	s.GhostBlockStyle = lipgloss.NewStyle().
		Background(palette.GhostBg).
		Foreground(palette.TextOnGhost).
		Italic(true)

	s.HoverSlotStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Background(s.colorBg).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.ModalValueStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.ModalActiveStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent).
		Bold(true)

	s.ModalDimStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Italic(true)

	s.DayToggleOnStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent).
		Bold(true)

	s.DayToggleOffStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	return s
}
