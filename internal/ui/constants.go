// Package ui provides constants for layout calculations and configuration.
package ui

import "github.com/eora-ai/eora/internal/controller"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is used when the viewport width is unknown
	DefaultWrapWidth = 80

	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Session list
const (
	// SessionRowHeight is the number of lines each session occupies in the sidebar
	SessionRowHeight = 2

	// ChatInputCharLimit bounds a single outgoing message
	ChatInputCharLimit = 4000
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60
)

// FlashDuration is how long a flash message stays in the footer.
const FlashDuration = controller.MessageTimeout
