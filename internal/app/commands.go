package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/notification"
)

// Results of controller calls, delivered once the call returns.
type (
	InitDoneMsg       struct{ Result controller.InitResult }
	ListLoadedMsg     struct{ Result controller.ListResult }
	SessionCreatedMsg struct{ Result controller.CreateResult }
	DeleteDoneMsg     struct{ Result controller.DeleteResult }
	PointsUpdatedMsg  struct{ Result controller.PointsResult }
	ChatDoneMsg       struct{ Result controller.ChatResult }

	SessionLoadedMsg struct {
		Result controller.LoadResult
		Err    error
	}
)

func (m *Model) initCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		res, ok := ctrl.Init(ctx)
		if !ok {
			return nil
		}
		return InitDoneMsg{Result: res}
	}
}

func (m *Model) loadSessionsCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return ListLoadedMsg{Result: ctrl.LoadSessions(ctx)}
	}
}

func (m *Model) createSessionCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return SessionCreatedMsg{Result: ctrl.CreateSession(ctx)}
	}
}

func (m *Model) deleteSelectedCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return DeleteDoneMsg{Result: ctrl.DeleteSelected(ctx)}
	}
}

func (m *Model) loadSessionCmd(id string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		res, err := ctrl.LoadSession(ctx, id)
		return SessionLoadedMsg{Result: res, Err: err}
	}
}

func (m *Model) updatePointsCmd(change int) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return PointsUpdatedMsg{Result: ctrl.UpdatePoints(ctx, change)}
	}
}

func (m *Model) sendMessageCmd(text string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return ChatDoneMsg{Result: ctrl.SendMessage(ctx, text)}
	}
}

func notifyReplyCmd(sessionName string) tea.Cmd {
	return func() tea.Msg {
		// Best effort; failures are logged by the notification package.
		_ = notification.ReplyReady(sessionName)
		return nil
	}
}
