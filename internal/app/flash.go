package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	return ui.FlashTick(m.footer.SetFlash(text, flashType))
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// flashTypeFor maps a controller notice to a footer flash style.
func flashTypeFor(t controller.NoticeType) ui.FlashType {
	switch t {
	case controller.NoticeSuccess:
		return ui.FlashSuccess
	case controller.NoticeWarning:
		return ui.FlashWarning
	case controller.NoticeError:
		return ui.FlashError
	default:
		return ui.FlashInfo
	}
}
