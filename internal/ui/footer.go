package ui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

var (
	sidebarBindings = []KeyBinding{
		{Key: "n", Desc: "new"},
		{Key: "space", Desc: "select"},
		{Key: "enter", Desc: "open"},
		{Key: "d", Desc: "delete selected"},
		{Key: "r", Desc: "refresh"},
		{Key: "tab", Desc: "chat"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
	chatBindings = []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "shift+enter", Desc: "newline"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "esc", Desc: "sessions"},
	}
	modalBindings = []KeyBinding{
		{Key: "enter", Desc: "confirm"},
		{Key: "esc", Desc: "cancel"},
	}
)

// Footer represents the bottom bar: key hints, or a flash message while one
// is showing. Only one flash is visible at a time.
type Footer struct {
	width          int
	sidebarFocused bool
	modalOpen      bool
	selectedCount  int

	flashText       string
	flashType       FlashType
	flashGeneration int
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{sidebarFocused: true}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(sidebarFocused, modalOpen bool, selectedCount int) {
	f.sidebarFocused = sidebarFocused
	f.modalOpen = modalOpen
	f.selectedCount = selectedCount
}

// SetFlash replaces any visible flash and returns the generation to pass to
// FlashTick.
func (f *Footer) SetFlash(text string, flashType FlashType) int {
	f.flashText = text
	f.flashType = flashType
	f.flashGeneration++
	return f.flashGeneration
}

// ClearFlash drops the flash if generation is still the latest one. It
// reports whether anything was cleared.
func (f *Footer) ClearFlash(generation int) bool {
	if generation != f.flashGeneration || f.flashText == "" {
		return false
	}
	f.flashText = ""
	return true
}

// HasFlash reports whether a flash is showing.
func (f *Footer) HasFlash() bool {
	return f.flashText != ""
}

// FlashText returns the visible flash text, or "".
func (f *Footer) FlashText() string {
	return f.flashText
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashText != "" {
		style := f.flashType.style()
		return FooterStyle.Width(f.width).Render(style.Render(f.flashType.icon() + " " + f.flashText))
	}

	bindings := sidebarBindings
	switch {
	case f.modalOpen:
		bindings = modalBindings
	case !f.sidebarFocused:
		bindings = chatBindings
	}

	var parts []string
	for _, b := range bindings {
		desc := b.Desc
		if b.Key == "d" && f.selectedCount > 0 {
			desc += " (" + strconv.Itoa(f.selectedCount) + ")"
		}
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+desc))
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
