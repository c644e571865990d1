package keymap

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleDispatchesGlobalBinding(t *testing.T) {
	r := NewRegistry()
	called := false
	r.RegisterCommand(Command{ID: CmdNewWorkspace, Handler: func() tea.Cmd {
		called = true
		return nil
	}})
	r.RegisterBinding(Binding{Key: "n", Command: CmdNewWorkspace, Context: "global"})

	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, "")
	if !called {
		t.Fatal("expected global binding to fire")
	}
}

func TestHandlePrefersActiveContextOverGlobal(t *testing.T) {
	r := NewRegistry()
	var fired string
	r.RegisterCommand(Command{ID: "global.cmd", Handler: func() tea.Cmd { fired = "global"; return nil }})
	r.RegisterCommand(Command{ID: "ctx.cmd", Handler: func() tea.Cmd { fired = "ctx"; return nil }})
	r.RegisterBinding(Binding{Key: "x", Command: "global.cmd", Context: "global"})
	r.RegisterBinding(Binding{Key: "x", Command: "ctx.cmd", Context: "agent"})

	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, "agent")
	if fired != "ctx" {
		t.Fatalf("expected context binding to win, got %q", fired)
	}
}

func TestUserOverrideWinsOverBindings(t *testing.T) {
	r := NewRegistry()
	var fired string
	r.RegisterCommand(Command{ID: "default.cmd", Handler: func() tea.Cmd { fired = "default"; return nil }})
	r.RegisterCommand(Command{ID: "override.cmd", Handler: func() tea.Cmd { fired = "override"; return nil }})
	r.RegisterBinding(Binding{Key: "q", Command: "default.cmd", Context: "global"})
	r.SetUserOverride("q", "override.cmd")

	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, "")
	if fired != "override" {
		t.Fatalf("expected user override to win, got %q", fired)
	}
}

func TestSequenceBindingRequiresBothKeysWithinTimeout(t *testing.T) {
	r := NewRegistry()
	fired := false
	r.RegisterCommand(Command{ID: "seq.cmd", Handler: func() tea.Cmd { fired = true; return nil }})
	r.RegisterBinding(Binding{Key: "g g", Command: "seq.cmd", Context: "global"})

	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, "")
	if !r.HasPending() {
		t.Fatal("expected a pending sequence after first key")
	}
	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, "")
	if !fired {
		t.Fatal("expected sequence command to fire on second key")
	}
}

func TestSequenceExpiresAfterTimeout(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "g g", Command: "seq.cmd", Context: "global"})

	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, "")
	r.pendingTime = time.Now().Add(-sequenceTimeout - time.Second)
	if r.HasPending() {
		t.Fatal("expected pending sequence to expire")
	}
}

func TestResetPendingClearsSequence(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "g g", Command: "seq.cmd", Context: "global"})
	r.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, "")
	r.ResetPending()
	if r.HasPending() {
		t.Fatal("expected ResetPending to clear pending key")
	}
}
