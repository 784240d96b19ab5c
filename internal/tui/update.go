package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-sh/tempo/internal/tui/commands"
)

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		if m.mode == ModeModal {
			return m.updateModal(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.mode == ModeModal {
			return m, nil
		}
		return m.updateMouse(msg)

	case commands.DayLoadedMsg:
		m.setView(msg.Day)
		LogDayLoaded(msg.Day.Date.Format("2006-01-02"), len(msg.Day.Items))
		return m, nil

	case commands.MutationDoneMsg:
		m.status("saved")
		m.loading = true
		return m, commands.LoadDay(m.repo, m.day)

	case commands.ErrMsg:
		m.err = msg.Err
		LogError("command", msg.Err)
		return m, nil

	case commands.AutoReloadMsg:
		// A gesture or open modal holds positions the reload would move
		// under the pointer; skip and retry on the next tick.
		if m.gestureActive() {
			return m, commands.AutoReload()
		}
		m.loading = true
		return m, tea.Batch(commands.LoadDay(m.repo, m.day), commands.AutoReload())

	case commands.FrameTickMsg:
		if p, ok := m.controller.FlushPreview(); ok {
			m.preview = p
			m.hasPreview = true
		}
		if m.statusMsg != "" && m.now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, commands.FrameTick()
	}

	return m, nil
}

// updateKey handles key presses in normal mode.
func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.controller.Cancel()
		m.hasPreview = false
		m.err = nil
		return m, nil

	case "left", "h":
		return m, m.setDay(m.day.AddDate(0, 0, -1))
	case "right", "l":
		return m, m.setDay(m.day.AddDate(0, 0, 1))
	case "t":
		return m, m.setDay(m.now())

	case "down", "j":
		m.scroll++
		m.clampScroll()
		return m, nil
	case "up", "k":
		m.scroll--
		m.clampScroll()
		return m, nil
	case "g":
		m.scroll = 0
		return m, nil
	case "G":
		m.scroll = m.maxScroll()
		return m, nil

	case "r":
		m.loading = true
		return m, commands.LoadDay(m.repo, m.day)

	case "y":
		return m, m.copyAgenda()
	}
	return m, nil
}

// updateModal routes keys into the creation dialog.
func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, done, confirmed := m.modal.handleKey(msg)
	if !done {
		return m, cmd
	}

	modal := m.modal
	m.mode = ModeNormal
	m.modal = nil

	if !confirmed {
		m.controller.Cancel()
		m.hasPreview = false
		return m, nil
	}

	intent, ok := m.controller.BuildPendingIntent()
	m.controller.Cancel()
	m.hasPreview = false
	if !ok {
		return m, nil
	}
	LogGesture("create_committed", m.controller.State())
	return m, commands.ApplyCreate(m.repo, intent, modal.title.Value(), modal.rule())
}

// updateMouse drives the interaction controller from pointer events.
func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	slot, onGrid := m.slotAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if !onGrid {
			m.controller.SlotLeave()
			return m, nil
		}
		m.controller.SlotHover(slot)
		m.controller.PointerMoveOverSlot(slot)
		return m, nil

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll--
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scroll++
			m.clampScroll()
			return m, nil
		case tea.MouseButtonLeft:
			if item, region, ok := m.itemAt(msg.X, msg.Y); ok {
				LogMouse(msg, item.ID)
				m.controller.BeginDrag(dragFor(item, region))
				return m, nil
			}
			if onGrid {
				LogMouse(msg, slot.ID())
				m.controller.PointerDown(slot)
			}
			return m, nil
		}
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		if m.controller.Dragging() != nil {
			if !onGrid {
				// Released outside the grid; the gesture is lost.
				m.controller.Cancel()
				m.hasPreview = false
				return m, nil
			}
			result, ok := m.controller.Drop(slot)
			m.hasPreview = false
			if !ok {
				return m, nil
			}
			LogGesture("drop", m.controller.State())
			if result.Move != nil {
				return m, commands.ApplyMove(m.repo, *result.Move)
			}
			return m, commands.ApplyResize(m.repo, *result.Resize)
		}

		m.controller.PointerUp()
		if intent, ok := m.controller.BuildPendingIntent(); ok {
			LogGesture("create_pending", m.controller.State())
			m.mode = ModeModal
			m.modal = newCreateModal(intent)
		}
		return m, nil
	}

	return m, nil
}
