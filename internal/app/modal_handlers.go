package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg)
	}
	return m, nil
}

// handleConfirmDeleteModal handles key events for the bulk delete confirmation.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "n":
		m.answerConfirm(false)
	case "y":
		m.answerConfirm(true)
	case keys.Enter:
		m.answerConfirm(state.Confirmed())
	default:
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}
	return m, nil
}

// answerConfirm unblocks the controller's Confirm call and closes the modal.
func (m *Model) answerConfirm(ok bool) {
	if m.pendingConfirm != nil {
		// Reply is buffered, so this never blocks.
		m.pendingConfirm <- ok
		m.pendingConfirm = nil
	}
	m.modal.Hide()
}

// handleHelpModal handles key events for the help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Help, keys.Quit, keys.Enter:
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
