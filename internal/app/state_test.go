package app

import (
	"testing"
	"time"

	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/multiplexer"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	cfg := config.Default()
	s := New(cfg, multiplexer.New(multiplexer.Tmux), nil)
	s.Width = 100
	s.Height = 40
	return s
}

func TestSelectedEmptyList(t *testing.T) {
	s := newTestState(t)
	require.Nil(t, s.Selected())
}

func TestSelectedReturnsCurrentIndex(t *testing.T) {
	s := newTestState(t)
	s.Workspaces = []*domain.Workspace{{Name: "a"}, {Name: "b"}}
	s.SelectedIndex = 1
	require.Equal(t, "b", s.Selected().Name)
}

func TestClampSelectionEmpty(t *testing.T) {
	s := newTestState(t)
	s.SelectedIndex = 5
	s.ClampSelection()
	require.Equal(t, 0, s.SelectedIndex)
}

func TestClampSelectionOutOfRange(t *testing.T) {
	s := newTestState(t)
	s.Workspaces = []*domain.Workspace{{Name: "a"}, {Name: "b"}}
	s.SelectedIndex = 9
	s.ClampSelection()
	require.Equal(t, 1, s.SelectedIndex)

	s.SelectedIndex = -3
	s.ClampSelection()
	require.Equal(t, 0, s.SelectedIndex)
}

func TestMoveSelectionClampsAndBumpsGeneration(t *testing.T) {
	s := newTestState(t)
	s.Workspaces = []*domain.Workspace{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	before := s.Engine.Generation()

	s.MoveSelection(1)
	require.Equal(t, 1, s.SelectedIndex)
	require.Greater(t, s.Engine.Generation(), before)

	s.MoveSelection(100)
	require.Equal(t, 2, s.SelectedIndex)
}

func TestMoveSelectionNoWorkspacesIsNoop(t *testing.T) {
	s := newTestState(t)
	before := s.Engine.Generation()
	s.MoveSelection(1)
	require.Equal(t, 0, s.SelectedIndex)
	require.Equal(t, before, s.Engine.Generation())
}

func TestShowToastAndClearExpired(t *testing.T) {
	s := newTestState(t)
	s.ShowToast("saved", -1)
	require.Equal(t, "saved", s.Toast.Message)
	require.False(t, s.Toast.IsError)

	s.ClearExpiredToast()
	require.Equal(t, "", s.Toast.Message)
}

func TestShowErrorToastMarksIsError(t *testing.T) {
	s := newTestState(t)
	s.ShowErrorToast("boom", time.Hour)
	require.True(t, s.Toast.IsError)
	require.Equal(t, "boom", s.Toast.Message)
}

func TestSidebarInnerWidthMinimumOne(t *testing.T) {
	s := newTestState(t)
	s.Width = 0
	s.SidebarWidthPct = 0
	require.Equal(t, 1, s.SidebarInnerWidth())
}
