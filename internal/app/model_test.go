package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestModelInitMarksReadyAndRegistersKeymap(t *testing.T) {
	s := newTestState(t)
	s.pending.refreshInFlight = true // avoid the refresh cmd's goroutine touching a real git binary
	m := NewModel(s)

	cmd := m.Init()
	require.NotNil(t, cmd)
	require.True(t, s.Ready)
	require.False(t, s.AppStartTS.IsZero())
}

func TestModelUpdateDelegatesToState(t *testing.T) {
	s := newTestState(t)
	m := NewModel(s)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	next, ok := updated.(Model)
	require.True(t, ok)
	require.Equal(t, 80, s.Width)
	_ = next
}

func TestModelViewDelegatesToState(t *testing.T) {
	s := newTestState(t)
	m := NewModel(s)
	require.Equal(t, s.View(), m.View())
}
