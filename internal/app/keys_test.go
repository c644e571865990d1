package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRegisterKeymapMoveDownAndUp(t *testing.T) {
	s := newTestState(t)
	s.Workspaces = []*domain.Workspace{{Name: "a"}, {Name: "b"}}
	s.RegisterKeymap()

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, "list")
	require.Equal(t, 1, s.SelectedIndex)

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, "list")
	require.Equal(t, 0, s.SelectedIndex)
}

func TestRegisterKeymapNewWorkspaceOpensCreateDialog(t *testing.T) {
	s := newTestState(t)
	s.RegisterKeymap()

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, "list")
	require.Equal(t, DialogCreate, s.Dialog.Kind)
}

func TestRegisterKeymapDeleteWorkspaceRequiresSelection(t *testing.T) {
	s := newTestState(t)
	s.RegisterKeymap()

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, "list")
	require.False(t, s.Dialog.IsOpen(), "no selected workspace means no delete dialog")

	s.Workspaces = []*domain.Workspace{{Name: "a"}}
	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, "list")
	require.Equal(t, DialogDelete, s.Dialog.Kind)
}

func TestRegisterKeymapToggleUnsafeInCreateDialogTogglesDialogField(t *testing.T) {
	s := newTestState(t)
	s.RegisterKeymap()
	s.Dialog = NewCreateDialog(s.Config)
	before := s.Dialog.SkipPermissions

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")}, "list")
	require.Equal(t, !before, s.Dialog.SkipPermissions)
}

func TestRegisterKeymapPreviewTabCyclingBumpsGeneration(t *testing.T) {
	s := newTestState(t)
	s.RegisterKeymap()
	before := s.Engine.Generation()

	s.Keymap.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")}, "preview")
	require.Equal(t, TabShell, s.PreviewTab)
	require.Greater(t, s.Engine.Generation(), before)
}

func TestEnterInteractiveNoSelectionIsNoop(t *testing.T) {
	s := newTestState(t)
	cmd := s.enterInteractive()
	require.Nil(t, cmd)
	require.Nil(t, s.Interactive)
}

func TestEnterInteractiveBindsLiveSession(t *testing.T) {
	s := newTestState(t)
	ws := &domain.Workspace{Name: "a", Agent: domain.AgentClaude, Status: domain.StatusActive}
	ws.AgentSession = ws.AgentSessionNameOf()
	s.Workspaces = []*domain.Workspace{ws}

	s.enterInteractive()
	require.NotNil(t, s.Interactive)
	require.Equal(t, ws.AgentSession, s.Interactive.Session)
}
