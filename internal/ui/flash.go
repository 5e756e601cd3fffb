package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashType styles a footer flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

func (t FlashType) style() lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch t {
	case FlashSuccess:
		return base.Foreground(ColorSuccess)
	case FlashWarning:
		return base.Foreground(ColorWarning)
	case FlashError:
		return base.Foreground(ColorError)
	default:
		return base.Foreground(ColorInfo)
	}
}

func (t FlashType) icon() string {
	switch t {
	case FlashSuccess:
		return "✓"
	case FlashWarning:
		return "!"
	case FlashError:
		return "✗"
	default:
		return "•"
	}
}

// FlashTickMsg asks the footer to drop the flash with the given generation.
// A newer flash bumps the generation, so stale ticks are ignored.
type FlashTickMsg struct {
	Generation int
}

// FlashTick returns a command that fires FlashTickMsg after FlashDuration.
func FlashTick(generation int) tea.Cmd {
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return FlashTickMsg{Generation: generation}
	})
}
