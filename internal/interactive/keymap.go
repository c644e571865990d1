// Package interactive implements Grove's keystroke passthrough: while an
// InteractiveState is bound to a workspace's multiplexer session, typed
// keys are forwarded with the multiplexer's key semantics instead of
// driving Grove's own list navigation (spec.md §4.5).
package interactive

import tea "github.com/charmbracelet/bubbletea"

// KeySpec describes one key to forward, preserving send order.
type KeySpec struct {
	Value   string
	Literal bool
}

// MapKey translates a Bubble Tea key message to a multiplexer send-keys
// argument. Returns the key/text to send and whether it should be sent as
// literal text (-l) rather than a named key.
func MapKey(msg tea.KeyMsg) (key string, literal bool) {
	switch msg.String() {
	case "shift+up":
		return "\x1b[1;2A", true
	case "shift+down":
		return "\x1b[1;2B", true
	case "shift+right":
		return "\x1b[1;2C", true
	case "shift+left":
		return "\x1b[1;2D", true
	case "ctrl+up":
		return "\x1b[1;5A", true
	case "ctrl+down":
		return "\x1b[1;5B", true
	case "ctrl+right":
		return "\x1b[1;5C", true
	case "ctrl+left":
		return "\x1b[1;5D", true
	case "alt+up":
		return "\x1b[1;3A", true
	case "alt+down":
		return "\x1b[1;3B", true
	case "alt+right":
		return "\x1b[1;3C", true
	case "alt+left":
		return "\x1b[1;3D", true
	case "shift+tab":
		return "\x1b[Z", true
	case "shift+enter":
		return "\x1b[13;2u", true
	}

	switch msg.Type {
	case tea.KeyEnter:
		return "Enter", false
	case tea.KeyBackspace:
		return "BSpace", false
	case tea.KeyDelete:
		return "DC", false
	case tea.KeyTab:
		return "Tab", false
	case tea.KeySpace:
		return "Space", false
	case tea.KeyUp:
		return "Up", false
	case tea.KeyDown:
		return "Down", false
	case tea.KeyLeft:
		return "Left", false
	case tea.KeyRight:
		return "Right", false
	case tea.KeyHome:
		return "Home", false
	case tea.KeyEnd:
		return "End", false
	case tea.KeyPgUp:
		return "PPage", false
	case tea.KeyPgDown:
		return "NPage", false
	case tea.KeyInsert:
		return "IC", false
	case tea.KeyEscape:
		return "Escape", false
	case tea.KeyCtrlA:
		return "C-a", false
	case tea.KeyCtrlB:
		return "C-b", false
	case tea.KeyCtrlC:
		return "C-c", false
	case tea.KeyCtrlD:
		return "C-d", false
	case tea.KeyCtrlE:
		return "C-e", false
	case tea.KeyCtrlF:
		return "C-f", false
	case tea.KeyCtrlG:
		return "C-g", false
	case tea.KeyCtrlK:
		return "C-k", false
	case tea.KeyCtrlN:
		return "C-n", false
	case tea.KeyCtrlP:
		return "C-p", false
	case tea.KeyCtrlU:
		return "C-u", false
	case tea.KeyCtrlW:
		return "C-w", false
	case tea.KeyF1:
		return "F1", false
	case tea.KeyF2:
		return "F2", false
	case tea.KeyF3:
		return "F3", false
	case tea.KeyF4:
		return "F4", false
	case tea.KeyF5:
		return "F5", false
	case tea.KeyF6:
		return "F6", false
	case tea.KeyF7:
		return "F7", false
	case tea.KeyF8:
		return "F8", false
	case tea.KeyF9:
		return "F9", false
	case tea.KeyF10:
		return "F10", false
	case tea.KeyF11:
		return "F11", false
	case tea.KeyF12:
		return "F12", false
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return string(msg.Runes), true
		}
		return "", true
	}

	if msg.String() != "" {
		return msg.String(), true
	}
	return "", true
}

// IsExitCombo reports whether msg is one of the exit-interactive-mode
// combinations other than double-Escape: Ctrl+\, Ctrl+4, or U+001C.
func IsExitCombo(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+\\", "ctrl+4":
		return true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == 0x1c {
		return true
	}
	return false
}
