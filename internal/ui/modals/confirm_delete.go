package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// ConfirmDeleteState - State for the bulk delete confirmation modal
// =============================================================================

// ConfirmDeleteState asks whether the selected sessions should be deleted.
// The app owns the reply channel; the state only tracks the choice.
type ConfirmDeleteState struct {
	Prompt        string
	SessionNames  []string
	Options       []string
	SelectedIndex int
}

const maxListedNames = 5

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "세션 삭제" }

func (s *ConfirmDeleteState) Help() string {
	return "↑/↓ select  enter confirm  y/n  esc cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	prompt := lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true).
		MarginBottom(1).
		Render(s.Prompt)

	var names string
	width := ModalWidth - 8
	for i, name := range s.SessionNames {
		if i == maxListedNames {
			names += lipgloss.NewStyle().Foreground(ColorTextMuted).
				Render("  …") + "\n"
			break
		}
		names += lipgloss.NewStyle().Foreground(ColorSecondary).
			Render("  "+TruncateString(name, width)) + "\n"
	}

	options := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, names, options, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// Confirmed reports whether "delete" is the highlighted option.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == 1
}

// NewConfirmDeleteState creates a confirmation defaulting to "cancel".
func NewConfirmDeleteState(prompt string, sessionNames []string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		Prompt:        prompt,
		SessionNames:  sessionNames,
		Options:       []string{"취소", "삭제"},
		SelectedIndex: 0,
	}
}
