package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/ui"
	"github.com/eora-ai/eora/internal/ui/modals"
)

const (
	msgLoadMessagesFailed = "메시지를 불러오지 못했습니다."
	msgInvalidSession     = "유효하지 않은 세션입니다."
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case bridgeEventMsg:
		model, cmd := m.handleBridgeEvent(msg.msg)
		return model, tea.Batch(cmd, m.bridge.listen())

	case ui.FlashTickMsg:
		m.footer.ClearFlash(msg.Generation)
		return m, nil

	case ui.StopwatchTickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case InitDoneMsg:
		return m.handleInitDone(msg)

	case ListLoadedMsg:
		m.sidebar.SetLoading(false)
		return m, nil

	case SessionCreatedMsg:
		m.header.SetSessionName(msg.Result.Session.Name)
		m.sidebar.SelectSession(msg.Result.Session.ID)
		m.setFocus(FocusChat)
		return m, nil

	case DeleteDoneMsg:
		logger.WithComponent("app").Debug("delete finished",
			"deleted", msg.Result.Deleted, "cancelled", msg.Result.Cancelled)
		return m, nil

	case SessionLoadedMsg:
		return m.handleSessionLoaded(msg)

	case PointsUpdatedMsg:
		return m, nil

	case ChatDoneMsg:
		return m.handleChatDone(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if m.focus == FocusChat && !m.modal.IsVisible() {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Mouse wheel and the like go to the chat viewport.
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handleBridgeEvent applies one View or Confirmer call from the controller.
func (m *Model) handleBridgeEvent(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionsRenderedMsg:
		// A render queued before a direct pull of the state is stale.
		if msg.Snapshot.Version < m.sidebar.Snapshot().Version {
			return m, nil
		}
		m.sidebar.SetSnapshot(msg.Snapshot)
		if sess, ok := msg.Snapshot.Active(); ok {
			m.header.SetSessionName(sess.Name)
		} else {
			m.header.SetSessionName("")
		}

	case PointsRenderedMsg:
		m.header.SetPoints(msg.Text)

	case NoticeMsg:
		return m, m.ShowFlash(msg.Notice.Text, flashTypeFor(msg.Notice.Type))

	case ChatClearedMsg:
		m.chat.Clear()

	case MessagesRenderedMsg:
		m.chat.SetMessages(msg.SessionID, msg.Messages)

	case MessageAppendedMsg:
		m.chat.AppendMessage(msg.SessionID, msg.Message)

	case ConfirmRequestMsg:
		if m.pendingConfirm != nil {
			// One question at a time; a second delete waits its turn as a no.
			msg.Reply <- false
			return m, nil
		}
		m.pendingConfirm = msg.Reply
		m.modal.Show(modals.NewConfirmDeleteState(msg.Prompt, m.selectedNames()))
	}
	return m, nil
}

// selectedNames returns the names of the checked sessions in list order.
func (m *Model) selectedNames() []string {
	snap := m.ctrl.Snapshot()
	var names []string
	for _, sess := range snap.Sessions {
		if snap.IsSelected(sess.ID) {
			names = append(names, sess.Name)
		}
	}
	return names
}

func (m *Model) handleInitDone(msg InitDoneMsg) (tea.Model, tea.Cmd) {
	m.sidebar.SetLoading(false)
	// Reopen the persisted session if the backend still lists it.
	if sess, ok := m.ctrl.Snapshot().Active(); ok {
		return m, m.loadSessionCmd(sess.ID)
	}
	return m, nil
}

func (m *Model) handleSessionLoaded(msg SessionLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.ShowFlashError(msgInvalidSession)
	}
	m.header.SetSessionName(m.activeSessionName())
	if msg.Result.MessagesErr != nil {
		m.chat.SetLoadError(msg.Result.SessionID, msgLoadMessagesFailed)
	}
	m.setFocus(FocusChat)
	return m, nil
}

func (m *Model) handleChatDone(msg ChatDoneMsg) (tea.Model, tea.Cmd) {
	m.chat.SetWaiting(false)
	if msg.Result.Skipped || msg.Result.Err != nil {
		return m, nil
	}
	if m.config.GetNotificationsEnabled() {
		return m, notifyReplyCmd(m.activeSessionName())
	}
	return m, nil
}

// handleKey routes a key press by focus and modal state.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		m.Close()
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.focus == FocusChat {
		switch key {
		case keys.Escape, keys.Tab, keys.ShiftTab:
			m.setFocus(FocusSidebar)
			return m, nil
		case keys.Enter:
			return m.sendInput()
		}
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	if model, cmd, ok := m.ExecuteShortcut(key); ok {
		return model, cmd
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return m, cmd
}

// sendInput sends the chat input. Only one message may be in flight.
func (m *Model) sendInput() (tea.Model, tea.Cmd) {
	if m.chat.IsWaiting() {
		return m, nil
	}
	text := strings.TrimSpace(m.chat.GetInput())
	if text == "" {
		return m, nil
	}
	m.chat.ClearInput()
	m.chat.SetWaiting(true)
	return m, tea.Batch(m.sendMessageCmd(text), ui.StopwatchTick())
}
