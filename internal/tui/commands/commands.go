// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-sh/tempo/internal/agenda"
	"github.com/tempo-sh/tempo/internal/interaction"
	"github.com/tempo-sh/tempo/internal/store"
)

// DayLoadedMsg is sent when a day's agenda has been assembled.
type DayLoadedMsg struct {
	Day agenda.Day
}

// MutationDoneMsg is sent after a move/resize/create has been persisted.
// The day is reloaded separately.
type MutationDoneMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FrameTickMsg drives preview flushing, at most once per frame.
type FrameTickMsg struct{}

// AutoReloadMsg asks the view to pick up data refreshed behind its back,
// such as events written by the background feed loop.
type AutoReloadMsg struct{}

// framePeriod is roughly 30 fps; previews staged between ticks coalesce.
const framePeriod = 33 * time.Millisecond

// autoReloadPeriod bounds how stale the grid can get between feed
// refreshes.
const autoReloadPeriod = time.Minute

// LoadDay assembles the agenda for one day.
func LoadDay(repo store.Repository, day time.Time) tea.Cmd {
	return func() tea.Msg {
		view, err := agenda.NewBuilder(repo).Build(context.Background(), day)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DayLoadedMsg{Day: view}
	}
}

// FrameTick schedules the next preview flush.
func FrameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(time.Time) tea.Msg {
		return FrameTickMsg{}
	})
}

// AutoReload schedules the next background reload.
func AutoReload() tea.Cmd {
	return tea.Tick(autoReloadPeriod, func(time.Time) tea.Msg {
		return AutoReloadMsg{}
	})
}

// ApplyMove persists a completed move gesture.
func ApplyMove(repo store.Repository, m interaction.MoveIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ApplyMove(context.Background(), m); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{}
	}
}

// ApplyResize persists a completed resize gesture.
func ApplyResize(repo store.Repository, r interaction.ResizeIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ApplyResize(context.Background(), r); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{}
	}
}

// ApplyCreate persists a confirmed creation, attaching the recurrence
// rule when one was chosen in the editor.
func ApplyCreate(repo store.Repository, c interaction.CreateIntent, title, rule string) tea.Cmd {
	return func() tea.Msg {
		id, err := repo.ApplyCreate(context.Background(), c, title)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if rule != "" {
			if err := repo.SetEventRule(context.Background(), id, rule); err != nil {
				return ErrMsg{Err: err}
			}
		}
		return MutationDoneMsg{}
	}
}
