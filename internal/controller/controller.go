// Package controller implements the session UI controller: the one place
// that owns client-side session state and maps each user action to a backend
// call and a display update.
//
// Network calls never run under the state lock, so independent actions may
// interleave between calls just as concurrent event handlers would.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/eora-ai/eora/internal/api"
	"github.com/eora-ai/eora/internal/errors"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/session"
)

const (
	// MessageTimeout is how long a transient message stays visible.
	MessageTimeout = 3 * time.Second

	DefaultPoints     int64 = 100000
	DefaultPointsText       = "100,000"
)

// User-facing messages.
const (
	MsgCreating      = "새 세션을 생성하고 있습니다..."
	MsgCreated       = "새 세션이 생성되었습니다."
	MsgCreatedLocal  = "로컬 세션이 생성되었습니다."
	MsgNothingChosen = "삭제할 세션을 선택해주세요."
	MsgDeleteFailed  = "세션 삭제에 실패했습니다."
	MsgSendFailed    = "메시지 전송에 실패했습니다."
	deletePromptFmt  = "선택한 %d개의 세션을 삭제하시겠습니까?"
	deleteSuccessFmt = "%d개 세션이 삭제되었습니다."
)

// DeletePrompt is the confirmation question for deleting n sessions.
func DeletePrompt(n int) string {
	return fmt.Sprintf(deletePromptFmt, n)
}

// Backend is the subset of the REST client the controller uses.
type Backend interface {
	ListSessions(ctx context.Context) ([]session.Session, error)
	CreateSession(ctx context.Context, name, userID string) (string, error)
	DeleteSession(ctx context.Context, id string) error
	SessionMessages(ctx context.Context, id string) ([]session.Message, error)
	Points(ctx context.Context) (api.Points, error)
	Chat(ctx context.Context, sessionID, message string) (string, error)
}

// Options configures a Controller. Every field is optional.
type Options struct {
	View      View
	Confirmer Confirmer
	Store     CurrentStore
	UserID    string
	Now       func() time.Time
}

// Controller is the session UI controller.
type Controller struct {
	backend Backend
	view    View
	confirm Confirmer
	store   CurrentStore
	userID  string
	now     func() time.Time
	log     *slog.Logger

	initOnce sync.Once

	mu    sync.Mutex
	state *session.State
}

// New returns a controller whose current session starts at the id persisted
// in opts.Store.
func New(backend Backend, opts Options) *Controller {
	c := &Controller{
		backend: backend,
		view:    opts.View,
		confirm: opts.Confirmer,
		store:   opts.Store,
		userID:  opts.UserID,
		now:     opts.Now,
		log:     logger.WithComponent("controller"),
	}
	if c.view == nil {
		c.view = NopView{}
	}
	if c.confirm == nil {
		// Without anyone to ask, destructive actions are declined.
		c.confirm = ConfirmFunc(func(context.Context, string) bool { return false })
	}
	if c.store == nil {
		c.store = &memoryStore{}
	}
	if c.userID == "" {
		c.userID = "anonymous"
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.state = session.NewState(c.store.CurrentSessionID())
	return c
}

// InitResult reports what the initial load did.
type InitResult struct {
	List   ListResult
	Points PointsResult
}

// Init loads the session list and the points balance. Only the first call
// does anything; later calls return ok=false.
func (c *Controller) Init(ctx context.Context) (res InitResult, ok bool) {
	c.initOnce.Do(func() {
		ok = true
		c.log.Info("initializing", "current", c.Current())
		res.List = c.LoadSessions(ctx)
		res.Points = c.UpdatePoints(ctx, 0)
	})
	return res, ok
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Current returns the current session id, or "".
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Current()
}

// Render redraws the session list from memory.
func (c *Controller) Render() {
	c.view.RenderSessions(c.Snapshot())
}

// mutate applies fn under the state lock and then renders.
func (c *Controller) mutate(fn func(s *session.State)) {
	c.mu.Lock()
	fn(c.state)
	snap := c.state.Snapshot()
	c.mu.Unlock()
	c.view.RenderSessions(snap)
}

func (c *Controller) persistCurrent(id string) {
	if err := c.store.SetCurrentSessionID(id); err != nil {
		c.log.Error("failed to persist current session", "sessionID", id, "error", err)
	}
}

// ListResult is the outcome of LoadSessions.
type ListResult struct {
	Sessions []session.Session
	Err      error
}

// LoadSessions replaces the list with the backend's. On failure the list is
// emptied; no message is shown.
func (c *Controller) LoadSessions(ctx context.Context) ListResult {
	sessions, err := c.backend.ListSessions(ctx)
	if err != nil {
		c.log.Error("failed to load sessions", "error", err)
		sessions = nil
	} else {
		c.log.Info("sessions loaded", "count", len(sessions))
	}
	c.mutate(func(s *session.State) { s.Replace(sessions) })
	return ListResult{Sessions: sessions, Err: err}
}

// ToggleSelection checks or unchecks id for bulk deletion. It reports whether
// id was listed.
func (c *Controller) ToggleSelection(id string, selected bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.state.Toggle(id, selected)
	c.log.Debug("selection toggled", "sessionID", id, "selected", selected, "applied", ok)
	return ok
}

// CreateResult is the outcome of CreateSession. Session is always usable.
type CreateResult struct {
	Session  session.Session
	Fallback bool
	Err      error
}

// CreateSession creates a session on the backend, or a local one if that
// fails, and makes it current.
func (c *Controller) CreateSession(ctx context.Context) CreateResult {
	c.view.ShowMessage(Notice{Type: NoticeInfo, Text: MsgCreating})

	now := c.now()
	name := session.NewSessionName(now)
	id, err := c.backend.CreateSession(ctx, name, c.userID)

	res := CreateResult{Err: err}
	if err != nil {
		c.log.Warn("create failed, using local session", "error", err)
		id = session.LocalSessionID(now)
		name = session.LocalSessionName(now)
		res.Fallback = true
	}
	res.Session = session.Session{ID: id, Name: name, CreatedAt: now}

	c.mutate(func(s *session.State) {
		s.Prepend(res.Session)
		s.SetCurrent(id)
	})
	c.persistCurrent(id)
	c.view.ClearChat()

	if res.Fallback {
		c.view.ShowMessage(Notice{Type: NoticeWarning, Text: MsgCreatedLocal})
	} else {
		c.log.Info("session created", "sessionID", id)
		c.view.ShowMessage(Notice{Type: NoticeSuccess, Text: MsgCreated})
	}
	return res
}

// DeleteResult is the outcome of DeleteSelected.
type DeleteResult struct {
	Requested []string
	Deleted   int
	Failed    map[string]error
	// Empty is set when nothing was selected.
	Empty     bool
	// Cancelled is set when the user declined.
	Cancelled bool
}

// DeleteSelected deletes every selected session after confirmation. Each id
// gets its own request; a failure never stops the rest. All selected ids are
// removed locally afterwards, whether or not the backend agreed.
func (c *Controller) DeleteSelected(ctx context.Context) DeleteResult {
	c.mu.Lock()
	ids := c.state.SelectedIDs()
	c.mu.Unlock()

	res := DeleteResult{Requested: ids, Failed: make(map[string]error)}
	if len(ids) == 0 {
		res.Empty = true
		c.view.ShowMessage(Notice{Type: NoticeWarning, Text: MsgNothingChosen})
		return res
	}

	if !c.confirm.Confirm(ctx, DeletePrompt(len(ids))) {
		res.Cancelled = true
		c.log.Debug("delete cancelled", "count", len(ids))
		return res
	}

	for _, id := range ids {
		if err := c.backend.DeleteSession(ctx, id); err != nil {
			c.log.Error("failed to delete session", "sessionID", id, "error", err)
			res.Failed[id] = err
			continue
		}
		res.Deleted++
	}

	c.mutate(func(s *session.State) {
		s.RemoveIDs(ids)
		s.ClearSelection()
	})

	c.log.Info("bulk delete finished", "requested", len(ids), "deleted", res.Deleted)
	if res.Deleted > 0 {
		c.view.ShowMessage(Notice{Type: NoticeSuccess, Text: fmt.Sprintf(deleteSuccessFmt, res.Deleted)})
	} else {
		c.view.ShowMessage(Notice{Type: NoticeError, Text: MsgDeleteFailed})
	}
	return res
}

// LoadResult is the outcome of LoadSession.
type LoadResult struct {
	SessionID   string
	Messages    []session.Message
	MessagesErr error
}

// LoadSession makes id current and fetches its messages. The only error is
// an invalid id, which changes nothing. A failed message fetch is logged and
// reported in MessagesErr; the session is still loaded.
func (c *Controller) LoadSession(ctx context.Context, id string) (LoadResult, error) {
	if !session.IsValidID(id) {
		err := errors.InvalidSessionID(id)
		c.log.Error("refusing to load session", "error", err)
		return LoadResult{}, err
	}
	id = strings.TrimSpace(id)

	c.mutate(func(s *session.State) { s.SetCurrent(id) })
	c.persistCurrent(id)

	res := LoadResult{SessionID: id}
	msgs, err := c.backend.SessionMessages(ctx, id)
	if err != nil {
		logger.WithSession(id).Error("failed to load messages", "error", err)
		res.MessagesErr = err
		return res, nil
	}
	logger.WithSession(id).Info("messages loaded", "count", len(msgs))
	res.Messages = msgs
	c.view.RenderMessages(id, msgs)
	return res, nil
}

// PointsResult is the outcome of UpdatePoints.
type PointsResult struct {
	Points int64
	Text   string
	Err    error
}

// UpdatePoints fetches and displays the points balance. change is only
// logged.
func (c *Controller) UpdatePoints(ctx context.Context, change int) PointsResult {
	p, err := c.backend.Points(ctx)
	if err != nil {
		c.log.Error("failed to fetch points", "error", err)
		c.view.RenderPoints(DefaultPointsText)
		return PointsResult{Points: DefaultPoints, Text: DefaultPointsText, Err: err}
	}

	points := p.Points
	if !p.Present || points == 0 {
		points = DefaultPoints
	}
	text := humanize.Comma(points)
	c.view.RenderPoints(text)

	if change != 0 {
		c.log.Info("points changed", "change", fmt.Sprintf("%+d", change), "points", points)
	}
	return PointsResult{Points: points, Text: text}
}

// ShowMessage displays a transient status message.
func (c *Controller) ShowMessage(text string, typ NoticeType) {
	c.log.Debug("message", "type", typ.String(), "text", text)
	c.view.ShowMessage(Notice{Type: typ, Text: text})
}

// ClearChat replaces the chat display with the welcome block.
func (c *Controller) ClearChat() {
	c.view.ClearChat()
}

// ChatResult is the outcome of SendMessage.
type ChatResult struct {
	SessionID string
	Reply     string
	// Created is set when a session had to be created first.
	Created   *CreateResult
	Skipped   bool
	Err       error
}

// SendMessage posts text to the current session, creating a session first
// when none is current. Blank text is ignored.
func (c *Controller) SendMessage(ctx context.Context, text string) ChatResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatResult{Skipped: true}
	}

	var res ChatResult
	id := c.Current()
	if !session.IsValidID(id) {
		created := c.CreateSession(ctx)
		res.Created = &created
		id = created.Session.ID
	}
	res.SessionID = id
	log := logger.WithSession(id)

	c.view.AppendMessage(id, session.Message{Role: session.RoleUser, Content: text, Timestamp: c.now()})

	reply, err := c.backend.Chat(ctx, id, text)
	if err != nil {
		log.Error("chat failed", "error", err)
		res.Err = err
		c.view.ShowMessage(Notice{Type: NoticeError, Text: MsgSendFailed})
		return res
	}
	res.Reply = reply
	c.view.AppendMessage(id, session.Message{Role: session.RoleAssistant, Content: reply, Timestamp: c.now()})
	log.Debug("reply received", "length", len(reply))

	c.UpdatePoints(ctx, -1)
	return res
}
