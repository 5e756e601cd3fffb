package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Header represents the top header bar: product name on the left, the
// active session and the user's points on the right.
type Header struct {
	width       int
	sessionName string
	points      string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{points: "…"}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSessionName sets the current session name to display
func (h *Header) SetSessionName(name string) {
	h.sessionName = name
}

// SetPoints sets the formatted points text.
func (h *Header) SetPoints(points string) {
	h.points = points
}

// Points returns the formatted points text.
func (h *Header) Points() string {
	return h.points
}

// View renders the header
func (h *Header) View() string {
	title := HeaderStyle.Render(" EORA AI ")
	pointsText := HeaderPointsStyle.Render("★ " + h.points + " ")

	var name string
	if h.sessionName != "" {
		room := h.width - ansi.StringWidth(title) - ansi.StringWidth(pointsText) - 3
		if room > 0 {
			name = HeaderMutedStyle.Render(" " + ansi.Truncate(h.sessionName, room, "…") + " │ ")
		}
	}

	used := ansi.StringWidth(title) + ansi.StringWidth(name) + ansi.StringWidth(pointsText)
	padding := HeaderMutedStyle.Render(strings.Repeat(" ", max(h.width-used, 0)))

	return title + padding + name + pointsText
}
