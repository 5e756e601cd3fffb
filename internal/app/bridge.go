package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/session"
)

// eventBuffer bounds how far the controller may run ahead of the UI.
const eventBuffer = 64

// Messages produced by the controller's View and Confirmer calls.
type (
	SessionsRenderedMsg struct{ Snapshot session.Snapshot }
	PointsRenderedMsg   struct{ Text string }
	NoticeMsg           struct{ Notice controller.Notice }
	ChatClearedMsg      struct{}

	MessagesRenderedMsg struct {
		SessionID string
		Messages  []session.Message
	}

	MessageAppendedMsg struct {
		SessionID string
		Message   session.Message
	}

	// ConfirmRequestMsg asks the user a yes/no question. Exactly one value
	// must be sent on Reply.
	ConfirmRequestMsg struct {
		Prompt string
		Reply  chan<- bool
	}
)

// bridgeEventMsg wraps one event read by the listener so Update knows to
// re-arm it.
type bridgeEventMsg struct {
	msg tea.Msg
}

// bridge implements controller.View and controller.Confirmer by posting
// messages to the Bubble Tea loop.
type bridge struct {
	events chan tea.Msg
	ctx    context.Context
}

func newBridge(ctx context.Context) *bridge {
	return &bridge{events: make(chan tea.Msg, eventBuffer), ctx: ctx}
}

func (b *bridge) post(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.ctx.Done():
	}
}

// listen returns a command that delivers the next event.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return bridgeEventMsg{msg: msg}
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *bridge) RenderSessions(snap session.Snapshot) {
	b.post(SessionsRenderedMsg{Snapshot: snap})
}

func (b *bridge) RenderPoints(text string) {
	b.post(PointsRenderedMsg{Text: text})
}

func (b *bridge) ShowMessage(n controller.Notice) {
	b.post(NoticeMsg{Notice: n})
}

func (b *bridge) ClearChat() {
	b.post(ChatClearedMsg{})
}

func (b *bridge) RenderMessages(id string, msgs []session.Message) {
	b.post(MessagesRenderedMsg{SessionID: id, Messages: msgs})
}

func (b *bridge) AppendMessage(id string, msg session.Message) {
	b.post(MessageAppendedMsg{SessionID: id, Message: msg})
}

// Confirm blocks until the user answers the modal, ctx is done, or the app
// shuts down. Anything but an explicit yes is a no.
func (b *bridge) Confirm(ctx context.Context, prompt string) bool {
	reply := make(chan bool, 1)
	b.post(ConfirmRequestMsg{Prompt: prompt, Reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	case <-b.ctx.Done():
		return false
	}
}
