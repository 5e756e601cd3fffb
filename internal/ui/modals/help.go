package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// HelpState - State for the keyboard shortcut overview
// =============================================================================

type HelpState struct {
	Sections []HelpSection
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string { return "esc or ? to close" }

func (s *HelpState) Render() string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	sectionStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)

	var b strings.Builder
	for i, section := range s.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, sc := range section.Shortcuts {
			b.WriteString(keyStyle.Render(sc.Key) + descStyle.Render(sc.Desc) + "\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		b.String(),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewHelpState creates the help modal.
func NewHelpState(sections []HelpSection) *HelpState {
	return &HelpState{Sections: sections}
}
