// Package tui provides the terminal user interface for tempo.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/config"
	"github.com/tempo-sh/tempo/internal/event"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/store"
	"github.com/tempo-sh/tempo/internal/tui/commands"
	"github.com/tempo-sh/tempo/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal       // Creation confirmation modal is open
)

// Grid chrome measurements, in terminal cells.
const (
	gutterWidth = 7 // "HH:MM  "
	headerLines = 2 // title + weekday line
	footerLines = 1
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   store.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	day     time.Time  // Viewed day, midnight local
	view    agenda.Day // Loaded and laid-out blocks
	loading bool

	// Interaction state machine; single owner of gesture state.
	controller *interaction.Controller
	preview    interaction.Preview
	hasPreview bool

	// Modal state
	mode  Mode
	modal *createModal

	// Terminal dimensions and visible grid range
	width        int
	height       int
	startMinutes int // First visible minute of day
	endMinutes   int // One past the last visible minute
	scroll       int // Scroll offset in grid lines (one line = one slot)

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error

	// Injectable clock for tests.
	now func() time.Time
}

// New creates a new TUI model.
func New(repo store.Repository, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	startMin := event.TimeToMinutes(cfg.Grid.DayStart)
	endMin := event.TimeToMinutes(cfg.Grid.DayEnd)
	if startMin < 0 || endMin <= startMin {
		startMin, endMin = 0, 24*60
	}

	calendars := make([]event.Calendar, 0, len(cfg.Calendars))
	for _, c := range cfg.Calendars {
		calendars = append(calendars, event.Calendar{
			AccountID:  c.AccountID,
			CalendarID: c.CalendarID,
			Summary:    c.Summary,
			Writable:   c.Writable,
			Default:    c.Default,
		})
	}
	resolver := func() (event.Calendar, bool) {
		return event.DefaultWritable(calendars)
	}

	now := time.Now
	m := &Model{
		repo:         repo,
		config:       cfg,
		theme:        t,
		styles:       NewStyles(t),
		day:          event.TruncateToDay(now()),
		loading:      true,
		controller:   interaction.NewController(resolver),
		startMinutes: startMin,
		endMinutes:   endMin,
		now:          now,
	}
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadDay(m.repo, m.day),
		commands.FrameTick(),
		commands.AutoReload(),
	)
}

// gestureActive reports whether a reload right now would yank state out
// from under the user.
func (m *Model) gestureActive() bool {
	return m.mode == ModeModal ||
		m.controller.Dragging() != nil ||
		m.controller.State() == interaction.StateCreating ||
		m.controller.State() == interaction.StatePendingConfirmation
}

// setDay switches the viewed day and reloads it. Any in-flight gesture is
// cancelled; its coordinates belong to the old day.
func (m *Model) setDay(day time.Time) tea.Cmd {
	m.controller.Cancel()
	m.hasPreview = false
	m.mode = ModeNormal
	m.modal = nil
	m.day = event.TruncateToDay(day)
	m.loading = true
	return commands.LoadDay(m.repo, m.day)
}

// setView installs a freshly loaded day.
func (m *Model) setView(v agenda.Day) {
	m.view = v
	m.loading = false
}

// status shows a transient message in the footer.
func (m *Model) status(msg string) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(3 * time.Second)
}

// Run starts the TUI.
func Run(repo store.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo store.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
