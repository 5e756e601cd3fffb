package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/session"
	"github.com/eora-ai/eora/internal/ui"
	"github.com/eora-ai/eora/internal/ui/modals"
)

func TestInit_LoadsSessionsAndPoints(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	if got := len(m.sidebar.Snapshot().Sessions); got != 3 {
		t.Fatalf("sidebar shows %d sessions, want 3", got)
	}
	if got := m.header.Points(); got != "1,000" {
		t.Errorf("points = %q, want 1,000", got)
	}
	if m.Focused() != FocusSidebar {
		t.Error("sidebar should start focused")
	}
	if !strings.Contains(screen(m), "Go 동시성 공부") {
		t.Error("session names should be rendered")
	}
}

func TestInit_ReopensPersistedSession(t *testing.T) {
	h := newHarness(t, true)
	id := h.store.Sessions()[1].ID
	if err := h.cfg.SetCurrentSessionID(id); err != nil {
		t.Fatal(err)
	}
	m := h.start(t)

	if m.chat.SessionID() != id {
		t.Fatalf("chat shows %q, want %q", m.chat.SessionID(), id)
	}
	if len(m.chat.Messages()) != 2 {
		t.Errorf("chat has %d messages, want 2", len(m.chat.Messages()))
	}
	if !strings.Contains(screen(m), "여행 계획") {
		t.Error("header should name the active session")
	}
}

func TestInit_EmptyList(t *testing.T) {
	h := testModel(t, false)
	if !strings.Contains(screen(h.m), "세션이 없습니다") {
		t.Error("empty list placeholder missing")
	}
}

func TestNewSession(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	run(t, m, sendKey(m, keys.NewSession))

	snap := m.ctrl.Snapshot()
	if len(snap.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(snap.Sessions))
	}
	id := snap.Sessions[0].ID
	if snap.Current != id {
		t.Errorf("current = %q, want new session %q", snap.Current, id)
	}
	if h.cfg.CurrentSessionID() != id {
		t.Errorf("current session was not persisted")
	}
	if m.footer.FlashText() != controller.MsgCreated {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
	if m.Focused() != FocusChat {
		t.Error("chat should be focused after creating a session")
	}
}

func TestNewSession_FallsBackToLocal(t *testing.T) {
	h := testModel(t, false)
	h.store.SetFailCreate(true)
	m := h.m

	run(t, m, sendKey(m, keys.NewSession))

	current := m.ctrl.Current()
	if !strings.HasPrefix(current, session.LocalIDPrefix) {
		t.Errorf("current = %q, want a local id", current)
	}
	if m.footer.FlashText() != controller.MsgCreatedLocal {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
}

func TestToggleSelection(t *testing.T) {
	h := testModel(t, true)
	m := h.m
	first := m.sidebar.Snapshot().Sessions[0].ID

	if cmd := sendKey(m, keys.Space); cmd != nil {
		t.Error("toggling should not start a command")
	}
	if !m.ctrl.Snapshot().IsSelected(first) {
		t.Fatal("first session should be selected")
	}
	if !strings.Contains(screen(m), "[x]") {
		t.Error("checkbox should render as checked")
	}

	sendKey(m, keys.Space)
	if m.ctrl.Snapshot().IsSelected(first) {
		t.Error("second toggle should clear the selection")
	}
}

func TestToggleSelection_QueuedRenderDoesNotUndo(t *testing.T) {
	h := testModel(t, true)
	m := h.m
	first := m.sidebar.Snapshot().Sessions[0].ID

	// Reload without draining so its render is still queued.
	m.ctrl.LoadSessions(context.Background())
	sendKey(m, keys.Space)
	drain(m)

	if !m.ctrl.Snapshot().IsSelected(first) {
		t.Fatal("first session should be selected")
	}
	if !m.sidebar.Snapshot().IsSelected(first) {
		t.Error("sidebar lost the selection to an older render")
	}
	if !strings.Contains(screen(m), "[x]") {
		t.Error("checkbox should render as checked")
	}
}

// startDelete selects the first n sessions and presses delete. It returns a
// channel with the command's result and the confirmation request.
func startDelete(t *testing.T, m *Model, n int) (<-chan tea.Msg, ConfirmRequestMsg) {
	t.Helper()
	for i := 0; i < n; i++ {
		sendKey(m, keys.Space)
		sendKey(m, keys.Down)
	}
	cmd := sendKey(m, keys.DeleteSelected)
	if cmd == nil {
		t.Fatal("delete should start a command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	ev := waitEvent(t, m)
	req, ok := ev.(ConfirmRequestMsg)
	if !ok {
		t.Fatalf("first event = %T, want ConfirmRequestMsg", ev)
	}
	m.handleBridgeEvent(req)
	return done, req
}

func TestDeleteSelected_Confirmed(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	done, req := startDelete(t, m, 2)
	if req.Prompt != controller.DeletePrompt(2) {
		t.Errorf("prompt = %q", req.Prompt)
	}
	if _, ok := m.modal.State.(*modals.ConfirmDeleteState); !ok {
		t.Fatalf("modal = %T, want confirm delete", m.modal.State)
	}

	sendKey(m, "y")
	if m.modal.IsVisible() {
		t.Error("modal should close after answering")
	}

	msg := <-done
	m.Update(msg)
	drain(m)

	if got := len(m.sidebar.Snapshot().Sessions); got != 1 {
		t.Errorf("%d sessions left, want 1", got)
	}
	if got := len(h.store.Sessions()); got != 1 {
		t.Errorf("backend has %d sessions, want 1", got)
	}
	if m.footer.FlashText() != "2개 세션이 삭제되었습니다." {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
}

func TestDeleteSelected_ClearsHeaderForCurrent(t *testing.T) {
	h := testModel(t, true)
	m := h.m
	name := m.sidebar.Snapshot().Sessions[0].Name

	run(t, m, sendKey(m, keys.Enter))
	if m.Focused() == FocusChat {
		sendKey(m, keys.Escape)
	}
	headerLine := func() string { return strings.SplitN(screen(m), "\n", 2)[0] }
	if !strings.Contains(headerLine(), name) {
		t.Fatalf("header = %q, want it to name %q", headerLine(), name)
	}

	done, _ := startDelete(t, m, 1)
	sendKey(m, "y")
	m.Update(<-done)
	drain(m)

	if strings.Contains(headerLine(), name) {
		t.Errorf("header still names the deleted session: %q", headerLine())
	}
}

func TestDeleteSelected_Cancelled(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	done, _ := startDelete(t, m, 1)
	sendKey(m, keys.Escape)

	res := (<-done).(DeleteDoneMsg).Result
	if !res.Cancelled {
		t.Error("result should be cancelled")
	}
	if len(h.store.Sessions()) != 3 {
		t.Error("nothing should be deleted")
	}
	if len(m.ctrl.Snapshot().Selected) != 1 {
		t.Error("selection should survive a cancelled delete")
	}
}

func TestDeleteSelected_EnterUsesHighlightedOption(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	done, _ := startDelete(t, m, 1)
	// "취소" is highlighted first.
	sendKey(m, keys.Enter)

	if res := (<-done).(DeleteDoneMsg).Result; !res.Cancelled {
		t.Error("enter on the default option should cancel")
	}
}

func TestDeleteSelected_NothingSelected(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	run(t, m, sendKey(m, keys.DeleteSelected))

	if m.footer.FlashText() != controller.MsgNothingChosen {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
	if m.modal.IsVisible() {
		t.Error("no confirmation should be asked")
	}
}

func TestDeleteShortcut_NeedsList(t *testing.T) {
	h := testModel(t, false)
	if _, _, ok := h.m.ExecuteShortcut(keys.DeleteSelected); ok {
		t.Error("delete should not fire on an empty list")
	}
}

func TestClose_AnswersPendingConfirm(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	done, _ := startDelete(t, m, 1)
	m.Close()

	if res := (<-done).(DeleteDoneMsg).Result; !res.Cancelled {
		t.Error("closing should decline the pending confirmation")
	}
}

func TestConfirmRequest_OneAtATime(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	first := make(chan bool, 1)
	second := make(chan bool, 1)
	m.handleBridgeEvent(ConfirmRequestMsg{Prompt: "a", Reply: first})
	m.handleBridgeEvent(ConfirmRequestMsg{Prompt: "b", Reply: second})

	select {
	case ok := <-second:
		if ok {
			t.Error("second request should be declined")
		}
	default:
		t.Fatal("second request should be answered immediately")
	}

	sendKey(m, "y")
	if !<-first {
		t.Error("first request should get the user's answer")
	}
}

func TestBridgeConfirm_ContextDone(t *testing.T) {
	b := newBridge(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if b.Confirm(ctx, "delete?") {
		t.Error("Confirm should decline when ctx is done")
	}
}

func TestOpenSession(t *testing.T) {
	h := testModel(t, true)
	m := h.m
	first := m.sidebar.Snapshot().Sessions[0]

	run(t, m, sendKey(m, keys.Enter))

	if m.ctrl.Current() != first.ID || h.cfg.CurrentSessionID() != first.ID {
		t.Error("opened session should become current and persist")
	}
	if len(m.chat.Messages()) != 2 {
		t.Errorf("chat has %d messages", len(m.chat.Messages()))
	}
	if m.Focused() != FocusChat {
		t.Error("chat should be focused")
	}
	out := screen(m)
	if !strings.Contains(out, "채널과 뮤텍스") {
		t.Error("history should be rendered")
	}
	if !strings.Contains(out, "●") {
		t.Error("active marker should be rendered")
	}
}

func TestOpenSession_MessagesFailure(t *testing.T) {
	h := testModel(t, true)
	m := h.m
	first := m.sidebar.Snapshot().Sessions[0].ID
	// Gone on the server but still listed locally.
	if err := h.store.Delete(first); err != nil {
		t.Fatal(err)
	}

	run(t, m, sendKey(m, keys.Enter))

	if m.ctrl.Current() != first {
		t.Error("session should still become current")
	}
	if !strings.Contains(screen(m), msgLoadMessagesFailed) {
		t.Error("load error should be shown in the chat panel")
	}
}

func TestSendMessage_CreatesSession(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	sendKey(m, keys.Tab)
	typeText(m, "hello")
	run(t, m, sendKey(m, keys.Enter))

	msgs := m.chat.Messages()
	if len(msgs) != 2 || msgs[0].Content != "hello" || msgs[1].Role != session.RoleAssistant {
		t.Fatalf("chat messages = %+v", msgs)
	}
	if m.chat.IsWaiting() {
		t.Error("reply indicator should stop")
	}
	if m.chat.GetInput() != "" {
		t.Error("input should be cleared")
	}
	if len(m.ctrl.Snapshot().Sessions) != 1 {
		t.Error("a session should have been created")
	}
	if got := m.header.Points(); got != "999" {
		t.Errorf("points = %q, want 999", got)
	}
}

func TestSendMessage_Failure(t *testing.T) {
	h := testModel(t, false)
	h.store.SetFailChat(true)
	m := h.m

	sendKey(m, keys.Tab)
	typeText(m, "hi")
	run(t, m, sendKey(m, keys.Enter))

	if m.footer.FlashText() != controller.MsgSendFailed {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
	if m.chat.IsWaiting() {
		t.Error("reply indicator should stop after a failure")
	}
}

func TestSendMessage_BlankIgnored(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	sendKey(m, keys.Tab)
	if cmd := sendKey(m, keys.Enter); cmd != nil {
		t.Error("blank input should not send")
	}
}

func TestFocusSwitching(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	sendKey(m, keys.Tab)
	if m.Focused() != FocusChat {
		t.Fatal("tab should focus chat")
	}

	// Shortcut letters are text while typing.
	sendKey(m, keys.Quit)
	if m.ctx.Err() != nil {
		t.Fatal("q in chat must not quit")
	}
	if m.chat.GetInput() != "q" {
		t.Errorf("input = %q, want q", m.chat.GetInput())
	}

	sendKey(m, keys.Escape)
	if m.Focused() != FocusSidebar {
		t.Error("esc should return to the sidebar")
	}
}

func TestHomeClearsChat(t *testing.T) {
	h := testModel(t, true)
	m := h.m

	run(t, m, sendKey(m, keys.Enter))
	sendKey(m, keys.Escape)
	run(t, m, sendKey(m, keys.GoHome))

	if len(m.chat.Messages()) != 0 {
		t.Error("home should clear the chat")
	}
	if !strings.Contains(screen(m), "EORA AI에 오신 것을 환영합니다") {
		t.Error("welcome block should be shown")
	}
}

func TestHelpModal(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	sendKey(m, keys.Help)
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatalf("modal = %T, want help", m.modal.State)
	}
	if !strings.Contains(screen(m), "새 세션") {
		t.Error("help should list shortcuts")
	}

	sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	h := testModel(t, false)
	m := h.m

	cmd := sendKey(m, keys.Quit)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel in-flight work")
	}
}

func TestNoticeFlashTypes(t *testing.T) {
	tests := []struct {
		notice controller.NoticeType
		want   ui.FlashType
	}{
		{controller.NoticeInfo, ui.FlashInfo},
		{controller.NoticeSuccess, ui.FlashSuccess},
		{controller.NoticeWarning, ui.FlashWarning},
		{controller.NoticeError, ui.FlashError},
	}
	for _, tt := range tests {
		if got := flashTypeFor(tt.notice); got != tt.want {
			t.Errorf("flashTypeFor(%v) = %v, want %v", tt.notice, got, tt.want)
		}
	}
}

func TestView_BeforeSize(t *testing.T) {
	h := newHarness(t, false)
	m := New(h.cfg, nil, "test")
	defer m.Close()
	if m.RenderToString() != "Loading..." {
		t.Error("unsized model should render a placeholder")
	}
}
