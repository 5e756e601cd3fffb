package controller

import (
	"context"

	"github.com/eora-ai/eora/internal/session"
)

// NoticeType styles a transient status message.
type NoticeType int

const (
	NoticeInfo NoticeType = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (t NoticeType) String() string {
	switch t {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient status message.
type Notice struct {
	Type NoticeType
	Text string
}

// View is the display the controller renders into. Implementations must not
// call back into the controller synchronously.
type View interface {
	// RenderSessions redraws the session list.
	RenderSessions(snap session.Snapshot)
	// RenderPoints shows the formatted points balance.
	RenderPoints(text string)
	// ShowMessage replaces any visible transient message. The view dismisses
	// it after MessageTimeout.
	ShowMessage(n Notice)
	// ClearChat replaces the chat display with the welcome block.
	ClearChat()
	// RenderMessages shows the messages of a freshly loaded session.
	RenderMessages(sessionID string, msgs []session.Message)
	// AppendMessage adds one message to the chat display.
	AppendMessage(sessionID string, msg session.Message)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// CurrentStore persists the current session pointer across runs.
type CurrentStore interface {
	CurrentSessionID() string
	SetCurrentSessionID(id string) error
}

// NopView discards everything. It stands in when no display is attached.
type NopView struct{}

func (NopView) RenderSessions(session.Snapshot) {}
func (NopView) RenderPoints(string) {}
func (NopView) ShowMessage(Notice) {}
func (NopView) ClearChat() {}
func (NopView) RenderMessages(string, []session.Message) {}
func (NopView) AppendMessage(string, session.Message) {}

type memoryStore struct{ id string }

func (m *memoryStore) CurrentSessionID() string { return m.id }

func (m *memoryStore) SetCurrentSessionID(id string) error {
	m.id = id
	return nil
}
