package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eora-ai/eora/internal/keys"
	"github.com/eora-ai/eora/internal/session"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// Chat represents the right panel with conversation view
type Chat struct {
	viewport  viewport.Model
	input     textarea.Model
	width     int
	height    int
	focused   bool
	sessionID string
	messages  []session.Message

	waiting       bool      // waiting for the assistant's reply
	waitStartTime time.Time // when waiting started (for stopwatch)
	loadErr       string
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "메시지를 입력하세요..."
	ti.CharLimit = ChatInputCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; the app intercepts it before the textarea sees it.
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.CtrlJ)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	viewportHeight := max(ctx.InnerHeight(chatPanelHeight), 1)

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SessionID returns the id of the session whose messages are shown.
func (c *Chat) SessionID() string {
	return c.sessionID
}

// Clear empties the transcript and shows the welcome block. A pending reply
// indicator survives; the reply may belong to the session being created.
func (c *Chat) Clear() {
	c.sessionID = ""
	c.messages = nil
	c.loadErr = ""
	c.updateContent()
}

// SetMessages replaces the transcript with the history of sessionID.
func (c *Chat) SetMessages(sessionID string, messages []session.Message) {
	c.sessionID = sessionID
	c.messages = append([]session.Message(nil), messages...)
	c.loadErr = ""
	c.updateContent()
}

// SetLoadError shows a notice in place of a history that could not be fetched.
func (c *Chat) SetLoadError(sessionID, text string) {
	c.sessionID = sessionID
	c.messages = nil
	c.loadErr = text
	c.updateContent()
}

// AppendMessage adds one message to the transcript. Messages for a different
// session than the one shown are dropped.
func (c *Chat) AppendMessage(sessionID string, msg session.Message) {
	if c.sessionID != "" && sessionID != c.sessionID {
		return
	}
	c.sessionID = sessionID
	c.messages = append(c.messages, msg)
	c.loadErr = ""
	c.updateContent()
}

// Messages returns a copy of the transcript.
func (c *Chat) Messages() []session.Message {
	return append([]session.Message(nil), c.messages...)
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// SetWaiting toggles the reply indicator.
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
	}
	c.updateContent()
}

// IsWaiting returns whether we're waiting for a reply
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as seconds with one decimal place
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func roleLabel(role string) string {
	if role == session.RoleUser {
		return ChatUserStyle.Render("나:")
	}
	return ChatAssistantStyle.Render("EORA:")
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	switch {
	case c.loadErr != "":
		sb.WriteString(StatusErrorStyle.Render(c.loadErr))
	case len(c.messages) == 0 && !c.waiting:
		sb.WriteString(renderWelcome(wrapWidth))
	default:
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(roleLabel(msg.Role))
			if !msg.Timestamp.IsZero() {
				sb.WriteString(" ")
				sb.WriteString(ChatTimeStyle.Render(msg.Timestamp.Local().Format("15:04")))
			}
			sb.WriteString("\n")
			if msg.Role == session.RoleUser {
				sb.WriteString(ChatMessageStyle.Render(wrapText(strings.TrimSpace(msg.Content), wrapWidth)))
			} else {
				sb.WriteString(renderMarkdown(strings.TrimSpace(msg.Content), wrapWidth))
			}
		}

		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(roleLabel(session.RoleAssistant))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render("생각 중... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(time.Since(c.waitStartTime))))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(StopwatchTickMsg); ok {
		if !c.waiting {
			return c, nil
		}
		c.updateContent()
		return c, StopwatchTick()
	}

	var cmds []tea.Cmd
	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Keys typed into the input must not scroll the transcript.
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
		inputStyle = ChatInputFocusedStyle
	}

	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
