package app

import (
	"strings"
	"testing"

	"github.com/jordangarrison/grove/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestViewNotReadyShowsStartupMessage(t *testing.T) {
	s := newTestState(t)
	s.Width, s.Height = 0, 0
	require.Equal(t, "grove starting…", s.View())
}

func TestViewRendersWorkspacesAndRegistersHitRegions(t *testing.T) {
	s := newTestState(t)
	s.Ready = true
	s.Workspaces = []*domain.Workspace{
		{Name: "feature-a", Status: domain.StatusActive},
		{Name: "feature-b", Status: domain.StatusIdle},
	}

	out := s.View()
	require.Contains(t, out, "feature-a")
	require.Contains(t, out, "feature-b")

	found := false
	for _, r := range s.Mouse.HitMap.Regions() {
		if r.ID == regionDivider {
			found = true
		}
	}
	require.True(t, found, "View must register the divider hit region")
}

func TestViewShowsToastWhenSet(t *testing.T) {
	s := newTestState(t)
	s.Ready = true
	s.ShowToast("saved", 1)

	out := s.View()
	require.True(t, strings.Contains(out, "saved"))
}

func TestViewOverlaysDialogWhenOpen(t *testing.T) {
	s := newTestState(t)
	s.Ready = true
	s.Dialog = NewQuitConfirmDialog()

	out := s.View()
	require.Contains(t, out, "Quit grove?")
}

func TestSidebarLineShowsAttentionMarker(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a", NeedsAttention: true}
	line := sidebarLine(ws, 40)
	require.True(t, strings.HasSuffix(line, "!"))
}

func TestSidebarLineTruncatesToWidth(t *testing.T) {
	ws := &domain.Workspace{Name: strings.Repeat("x", 100)}
	line := sidebarLine(ws, 10)
	require.LessOrEqual(t, len(line), 10)
}

func TestDialogTitleKnownKinds(t *testing.T) {
	require.Equal(t, "New workspace", dialogTitle(DialogCreate))
	require.Equal(t, "Delete workspace", dialogTitle(DialogDelete))
	require.Equal(t, "", dialogTitle(DialogNone))
}
