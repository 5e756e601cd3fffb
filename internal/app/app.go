// Package app is the Bubble Tea model for the EORA terminal client.
//
// The model owns no session state. Every action is a controller call run
// inside a tea.Cmd; the controller answers through a View and a Confirmer
// whose calls are turned into messages on an event channel. A listener
// command reads one event at a time and is re-armed after each one.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/config"
	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	ctrl    *controller.Controller

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	bridge *bridge

	// pendingConfirm answers the controller's blocked Confirm call.
	pendingConfirm chan<- bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a model driving the given backend. cfg supplies the user id,
// the persisted current session, and notification settings.
func New(cfg *config.Config, backend controller.Backend, version string) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	b := newBridge(ctx)

	m := &Model{
		config:  cfg,
		version: version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		sidebar: ui.NewSidebar(),
		chat:    ui.NewChat(),
		modal:   ui.NewModal(),
		focus:   FocusSidebar,
		bridge:  b,
		ctx:     ctx,
		cancel:  cancel,
	}
	m.ctrl = controller.New(backend, controller.Options{
		View:      b,
		Confirmer: b,
		Store:     cfg,
		UserID:    cfg.GetUserID(),
	})
	m.sidebar.SetFocused(true)
	return m
}

// Controller exposes the controller, mainly for tests.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Close stops in-flight commands and releases anyone blocked on the bridge.
// It is safe to call more than once.
func (m *Model) Close() {
	if m.pendingConfirm != nil {
		m.pendingConfirm <- false
		m.pendingConfirm = nil
	}
	m.cancel()
}

// Init starts the event listener and the initial load.
func (m *Model) Init() tea.Cmd {
	logger.WithComponent("app").Info("starting", "version", m.version)
	return tea.Batch(
		m.bridge.listen(),
		m.initCmd(),
	)
}

// Focused returns the focused panel.
func (m *Model) Focused() Focus {
	return m.focus
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// activeSessionName returns the name of the current session, if listed.
func (m *Model) activeSessionName() string {
	if sess, ok := m.ctrl.Snapshot().Active(); ok {
		return sess.Name
	}
	return ""
}
