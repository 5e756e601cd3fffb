// Package keys provides string constants for Bubble Tea v2 key press events.
//
// Named keys are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String() so
// they always match the runtime values ("esc", not "escape"). The
// single-letter session shortcuts are plain strings.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter      = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                      // "enter"
	ShiftEnter = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}).String() // "shift+enter"
	Tab        = tea.KeyPressMsg{Code: tea.KeyTab}.String()                        // "tab"
	ShiftTab   = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String()   // "shift+tab"
	Space      = tea.KeyPressMsg{Code: tea.KeySpace}.String()                      // "space"
	Escape     = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                     // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlJ = (tea.KeyPressMsg{Code: 'j', Mod: tea.ModCtrl}).String() // "ctrl+j"
)

// Session list shortcuts. These only fire while the sidebar has focus.
const (
	NewSession     = "n"
	DeleteSelected = "d"
	Reload         = "r"
	RefreshPoints  = "p"
	CopyID         = "y"
	GoHome         = "h"
	Help           = "?"
	Quit           = "q"
)
