// Package ui provides the user interface components for the EORA TUI.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, active session, points               │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Chat Panel                │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer: key hints or a flash message                │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: singleton with the layout arithmetic. All size calculations
// go through it.
//
// Sidebar: the session list. Each row has a selection checkbox, the session
// name, and a relative creation time. The active session carries a marker.
// The list itself is rebuilt from a session.Snapshot; the sidebar only owns
// its cursor and scroll offset.
//
// Chat: message history in a viewport plus a textarea for input. An empty
// transcript shows the welcome block. Assistant replies are rendered as light
// markdown with chroma-highlighted code fences.
//
// Footer: context-aware shortcuts, replaced by a flash message for
// FlashDuration after ShowFlash. One flash at a time; a newer one wins.
//
// Modal: wraps a modals.ModalState (confirm delete, help) and centers it.
//
// # Focus System
//
// Tab toggles between the sidebar and the chat input. Single-letter
// shortcuts only apply while the sidebar is focused, so they can be typed
// into a message.
package ui
