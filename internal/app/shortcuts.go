package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/clipboard"
	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the sidebar shortcuts.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "n")
	DisplayKey      string                              // Display name in help; defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresSession bool                                // Must have a session under the cursor
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "이동"
	CategorySessions   = "세션"
	CategoryChat       = "채팅"
	CategoryGeneral    = "일반"
)

var categoryOrder = []string{CategoryNavigation, CategorySessions, CategoryChat, CategoryGeneral}

// ShortcutRegistry lists the shortcuts that fire while the sidebar is focused.
var ShortcutRegistry = []Shortcut{
	{Key: keys.Tab, DisplayKey: "Tab", Description: "채팅으로 이동", Category: CategoryNavigation, Handler: shortcutFocusChat},
	{Key: keys.GoHome, Description: "홈 (목록/포인트 새로고침)", Category: CategoryNavigation, Handler: shortcutHome},
	{Key: keys.NewSession, Description: "새 세션", Category: CategorySessions, Handler: shortcutNewSession},
	{Key: keys.Space, DisplayKey: "Space", Description: "선택 토글", Category: CategorySessions, RequiresSession: true, Handler: shortcutToggle},
	{Key: keys.Enter, DisplayKey: "Enter", Description: "세션 열기", Category: CategorySessions, RequiresSession: true, Handler: shortcutOpen},
	{
		Key:         keys.DeleteSelected,
		Description: "선택한 세션 삭제",
		Category:    CategorySessions,
		Handler:     shortcutDeleteSelected,
		// Delete only makes sense once something is listed.
		Condition: func(m *Model) bool { return len(m.sidebar.Snapshot().Sessions) > 0 },
	},
	{Key: keys.Reload, Description: "목록 새로고침", Category: CategorySessions, Handler: shortcutReload},
	{Key: keys.CopyID, Description: "세션 ID 복사", Category: CategorySessions, RequiresSession: true, Handler: shortcutCopyID},
	{Key: keys.RefreshPoints, Description: "포인트 새로고침", Category: CategoryGeneral, Handler: shortcutPoints},
	{Key: keys.Quit, Description: "종료", Category: CategoryGeneral, Handler: shortcutQuit},
}

// displayOnlyShortcuts appear in help but are handled elsewhere.
var displayOnlyShortcuts = []Shortcut{
	{Key: "↑/↓ j/k", Description: "세션 이동", Category: CategoryNavigation},
	{Key: "Enter", Description: "메시지 전송", Category: CategoryChat},
	{Key: "Shift+Enter", Description: "줄바꿈", Category: CategoryChat},
	{Key: "Esc", Description: "세션 목록으로", Category: CategoryChat},
	{Key: "?", Description: "도움말", Category: CategoryGeneral},
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSession && m.sidebar.SelectedSession() == nil {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a sidebar shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == keys.Help {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("app").Debug("shortcut guard failed", "key", key)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups the shortcuts for the help modal.
func helpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)
	add := func(s Shortcut) {
		key := s.DisplayKey
		if key == "" {
			key = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{Key: key, Desc: s.Description})
	}
	for _, s := range ShortcutRegistry {
		add(s)
	}
	for _, s := range displayOnlyShortcuts {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts := categories[cat]; len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutFocusChat(m *Model) (tea.Model, tea.Cmd) {
	m.setFocus(FocusChat)
	return m, nil
}

func shortcutHome(m *Model) (tea.Model, tea.Cmd) {
	m.ctrl.ClearChat()
	return m, tea.Batch(m.loadSessionsCmd(), m.updatePointsCmd(0))
}

func shortcutNewSession(m *Model) (tea.Model, tea.Cmd) {
	return m, m.createSessionCmd()
}

func shortcutToggle(m *Model) (tea.Model, tea.Cmd) {
	sess := m.sidebar.SelectedSession()
	snap := m.sidebar.Snapshot()
	if m.ctrl.ToggleSelection(sess.ID, !snap.IsSelected(sess.ID)) {
		// Toggling never renders; pull the state ourselves.
		m.sidebar.SetSnapshot(m.ctrl.Snapshot())
	}
	return m, nil
}

func shortcutOpen(m *Model) (tea.Model, tea.Cmd) {
	return m, m.loadSessionCmd(m.sidebar.SelectedSession().ID)
}

func shortcutDeleteSelected(m *Model) (tea.Model, tea.Cmd) {
	return m, m.deleteSelectedCmd()
}

func shortcutReload(m *Model) (tea.Model, tea.Cmd) {
	return m, m.loadSessionsCmd()
}

func shortcutCopyID(m *Model) (tea.Model, tea.Cmd) {
	id := m.sidebar.SelectedSession().ID
	if err := clipboard.WriteText(id); err != nil {
		return m, m.ShowFlashError("클립보드에 복사하지 못했습니다.")
	}
	return m, m.ShowFlashSuccess("세션 ID를 복사했습니다: " + id)
}

func shortcutPoints(m *Model) (tea.Model, tea.Cmd) {
	return m, m.updatePointsCmd(0)
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(helpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}
