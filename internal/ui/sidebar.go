package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/session"
)

const (
	checkboxOn   = "[x] "
	checkboxOff  = "[ ] "
	activeMarker = "● "
)

// Sidebar represents the left panel with the session list.
type Sidebar struct {
	snapshot     session.Snapshot
	cursor       int
	scrollOffset int
	width        int
	height       int
	focused      bool
	loading      bool

	// now is stubbed in tests so relative times are stable.
	now func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{
		focused: true,
		loading: true,
		now:     time.Now,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetLoading shows a placeholder until the first list arrives.
func (s *Sidebar) SetLoading(loading bool) {
	s.loading = loading
}

// SetSnapshot replaces what the sidebar shows. The cursor stays on the same
// session when it is still listed; otherwise it is clamped into range.
func (s *Sidebar) SetSnapshot(snap session.Snapshot) {
	var cursorID string
	if sess := s.SelectedSession(); sess != nil {
		cursorID = sess.ID
	}

	s.snapshot = snap
	s.loading = false

	if cursorID != "" {
		for i, sess := range snap.Sessions {
			if sess.ID == cursorID {
				s.cursor = i
				return
			}
		}
	}
	s.cursor = min(s.cursor, max(len(snap.Sessions)-1, 0))
}

// Snapshot returns the snapshot currently shown.
func (s *Sidebar) Snapshot() session.Snapshot {
	return s.snapshot
}

// SelectedSession returns the session under the cursor, or nil.
func (s *Sidebar) SelectedSession() *session.Session {
	if s.cursor < 0 || s.cursor >= len(s.snapshot.Sessions) {
		return nil
	}
	sess := s.snapshot.Sessions[s.cursor]
	return &sess
}

// SelectSession moves the cursor to id if it is listed.
func (s *Sidebar) SelectSession(id string) {
	for i, sess := range s.snapshot.Sessions {
		if sess.ID == id {
			s.cursor = i
			return
		}
	}
}

// SelectedCount returns the number of checked sessions.
func (s *Sidebar) SelectedCount() int {
	n := 0
	for _, sess := range s.snapshot.Sessions {
		if s.snapshot.IsSelected(sess.ID) {
			n++
		}
	}
	return n
}

// Update handles cursor navigation
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	last := len(s.snapshot.Sessions) - 1
	switch keyMsg.String() {
	case keys.Up, "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case keys.Down, "j":
		if s.cursor < last {
			s.cursor++
		}
	case keys.Home, "g":
		s.cursor = 0
	case keys.End, "G":
		s.cursor = max(last, 0)
	case keys.PgUp:
		s.cursor = max(s.cursor-s.pageSize(), 0)
	case keys.PgDown:
		s.cursor = max(min(s.cursor+s.pageSize(), last), 0)
	}
	return s, nil
}

// pageSize is how many sessions fit in the list at once.
func (s *Sidebar) pageSize() int {
	ctx := GetViewContext()
	listHeight := max(ctx.InnerHeight(s.height)-TitleHeight, 0)
	return max(listHeight/SessionRowHeight, 1)
}

// renderRow renders the two lines of one session entry.
func (s *Sidebar) renderRow(sess session.Session, innerWidth int, atCursor bool) string {
	box := checkboxOff
	if s.snapshot.IsSelected(sess.ID) {
		box = checkboxOn
	}
	marker := "  "
	if s.snapshot.IsCurrent(sess.ID) {
		marker = SidebarActiveMarkerStyle.Render(activeMarker)
	}
	prefix := "  "
	if atCursor {
		prefix = "> "
	}

	// Item styles pad one column on each side.
	nameWidth := innerWidth - 2 - runewidth.StringWidth(prefix+box+activeMarker)
	name := sess.Name
	if name == "" {
		name = sess.ID
	}
	name = runewidth.Truncate(name, max(nameWidth, 1), "…")

	when := session.DisplayTime(s.now(), sess)
	if sess.MessageCount > 0 {
		when += " · " + humanize.Comma(int64(sess.MessageCount)) + "개 메시지"
	}

	style := SidebarItemStyle
	if atCursor {
		style = SidebarSelectedStyle
	}
	first := style.Width(innerWidth).Render(prefix + box + marker + name)
	second := SidebarItemStyle.Width(innerWidth).Render(strings.Repeat(" ", runewidth.StringWidth(prefix+box)) + SidebarTimeStyle.Render(when))
	return first + "\n" + second
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	title := PanelTitleStyle.Render("세션")

	var content string
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
	switch {
	case s.loading:
		content = muted.Render("불러오는 중...")
	case len(s.snapshot.Sessions) == 0:
		content = muted.Render("세션이 없습니다. n 으로 새 세션을 만드세요.")
	default:
		visibleRows := s.pageSize()
		if s.cursor < s.scrollOffset {
			s.scrollOffset = s.cursor
		} else if s.cursor >= s.scrollOffset+visibleRows {
			s.scrollOffset = s.cursor - visibleRows + 1
		}
		s.scrollOffset = max(min(s.scrollOffset, len(s.snapshot.Sessions)-visibleRows), 0)

		end := min(s.scrollOffset+visibleRows, len(s.snapshot.Sessions))
		rows := make([]string, 0, end-s.scrollOffset)
		for i := s.scrollOffset; i < end; i++ {
			rows = append(rows, s.renderRow(s.snapshot.Sessions[i], innerWidth, i == s.cursor))
		}
		content = strings.Join(rows, "\n")
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(title + "\n" + content)
}
