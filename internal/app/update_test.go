package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordangarrison/grove/internal/capture"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/mouse"
	"github.com/stretchr/testify/require"
)

func TestHandleDialogKeyEscapeDismisses(t *testing.T) {
	s := newTestState(t)
	s.Dialog = NewQuitConfirmDialog()

	next, cmd := s.handleDialogKey(tea.KeyMsg{Type: tea.KeyEscape})
	require.Nil(t, cmd)
	require.False(t, next.Dialog.IsOpen())
}

func TestHandleDialogKeyTabCyclesFocus(t *testing.T) {
	s := newTestState(t)
	s.Dialog = NewMergeDialog(&domain.Workspace{Name: "a"})

	s.handleDialogKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, s.Dialog.FocusedField)

	s.handleDialogKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 0, s.Dialog.FocusedField)
}

func TestHandleDialogKeyEnterQuitConfirmReturnsQuit(t *testing.T) {
	s := newTestState(t)
	s.Dialog = NewQuitConfirmDialog()

	_, cmd := s.handleDialogKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
}

func TestSubmitCreateRejectsOutOfRangeProject(t *testing.T) {
	s := newTestState(t)
	s.Dialog = NewCreateDialog(s.Config)
	s.Dialog.ProjectIndex = 3

	_, cmd := s.submitCreate()
	require.Nil(t, cmd)
	require.Equal(t, "select a project", s.Dialog.ErrorMessage)
}

func TestSubmitCreateRejectsInvalidName(t *testing.T) {
	s := newTestState(t)
	s.Projects = []domain.Project{{Name: "repo", Path: "/tmp/repo"}}
	s.Dialog = NewCreateDialog(s.Config)
	s.Dialog.ProjectIndex = 0
	s.Dialog.NameInput.SetValue("")
	s.Dialog.BranchInput.SetValue("main")

	_, cmd := s.submitCreate()
	require.Nil(t, cmd)
	require.NotEmpty(t, s.Dialog.ErrorMessage)
}

func TestSubmitCreateGuardsAgainstDoubleSubmit(t *testing.T) {
	s := newTestState(t)
	s.pending.createInFlight = true
	s.Dialog = NewCreateDialog(s.Config)

	_, cmd := s.submitCreate()
	require.Nil(t, cmd)
}

func TestSubmitDeleteClearsDialogWithNoTarget(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogDelete}

	next, cmd := s.submitDelete()
	require.Nil(t, cmd)
	require.False(t, next.Dialog.IsOpen())
}

func TestSubmitEditGuardsNilTargetAndInFlight(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogEdit}
	_, cmd := s.submitEdit()
	require.Nil(t, cmd)

	s.Dialog = NewEditDialog(&domain.Workspace{Name: "a"})
	s.pending.editInFlight = true
	_, cmd = s.submitEdit()
	require.Nil(t, cmd)
}

func TestSubmitStartGuardsNilTargetAndInFlight(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogStart}
	_, cmd := s.submitStart()
	require.Nil(t, cmd)

	s.Dialog = NewStartDialog(&domain.Workspace{Name: "a"}, s.Config)
	s.pending.startInFlight = true
	_, cmd = s.submitStart()
	require.Nil(t, cmd)
}

func TestSubmitStopGuardsNilTargetAndInFlight(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogStop}
	_, cmd := s.submitStop()
	require.Nil(t, cmd)

	s.Dialog = NewStopDialog(&domain.Workspace{Name: "a"})
	s.pending.stopInFlight = true
	_, cmd = s.submitStop()
	require.Nil(t, cmd)
}

func TestSubmitRestartGuardsNilTargetAndInFlight(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogRestartConfirm}
	_, cmd := s.submitRestart()
	require.Nil(t, cmd)

	s.Dialog = NewRestartConfirmDialog(&domain.Workspace{Name: "a"})
	s.pending.restartInFlight = true
	_, cmd = s.submitRestart()
	require.Nil(t, cmd)
}

func TestSubmitEditBuildsSwitchBranchForMainWorkspace(t *testing.T) {
	s := newTestState(t)
	ws := &domain.Workspace{Name: "main", IsMain: true}
	s.Dialog = NewEditDialog(ws)
	s.Dialog.BranchInput.SetValue("release")

	_, cmd := s.submitEdit()
	require.NotNil(t, cmd)
	require.True(t, s.pending.editInFlight)
}

func TestHandlePollResultMarksOrphanOnMissingSession(t *testing.T) {
	s := newTestState(t)
	ws := &domain.Workspace{Name: "a", AgentSession: "grove-ws-a"}
	s.Workspaces = []*domain.Workspace{ws}
	s.Engine.TryStartPoll()
	gen := s.Engine.Generation()

	result := capture.CaptureResult{
		LiveSession: "grove-ws-a",
		LiveErr:     testError("can't find session grove-ws-a"),
	}
	s.handlePollResult(PreviewPollResultMsg{Generation: gen, Result: result})
	require.True(t, ws.IsOrphaned)
}

func TestSubmitMergeGuardsNilTargetAndInFlight(t *testing.T) {
	s := newTestState(t)
	s.Dialog = Dialog{Kind: DialogMerge}
	_, cmd := s.submitMerge()
	require.Nil(t, cmd)

	s.Dialog = NewMergeDialog(&domain.Workspace{Name: "a"})
	s.pending.mergeInFlight = true
	_, cmd = s.submitMerge()
	require.Nil(t, cmd)
}

func TestHandleMouseClickOnWorkspaceListUpdatesSelection(t *testing.T) {
	s := newTestState(t)
	s.Workspaces = []*domain.Workspace{{Name: "a"}, {Name: "b"}}
	before := s.Engine.Generation()

	action := mouse.MouseAction{
		Type:   mouse.ActionClick,
		Region: &mouse.Region{ID: regionWorkspaceList, Data: 1},
	}
	s.handleMouseClick(action)
	require.Equal(t, 1, s.SelectedIndex)
	require.Equal(t, FocusWorkspaceList, s.Focus)
	require.Greater(t, s.Engine.Generation(), before)
}

func TestHandleMouseClickOnPreviewPaneFocusesPreview(t *testing.T) {
	s := newTestState(t)
	action := mouse.MouseAction{
		Type:   mouse.ActionClick,
		Region: &mouse.Region{ID: regionPreviewPane},
	}
	s.handleMouseClick(action)
	require.Equal(t, FocusPreview, s.Focus)
}

func TestHandleMouseClickNilRegionIsNoop(t *testing.T) {
	s := newTestState(t)
	next, cmd := s.handleMouseClick(mouse.MouseAction{Type: mouse.ActionClick})
	require.Nil(t, cmd)
	require.Same(t, s, next)
}

func TestScrollPreviewClampsAtZero(t *testing.T) {
	s := newTestState(t)
	s.Preview.Offset = 2
	s.scrollPreview(-10)
	require.Equal(t, 0, s.Preview.Offset)
	require.True(t, s.Preview.AutoScroll)
}

func TestScrollPreviewDisablesAutoScrollWhenScrolledBack(t *testing.T) {
	s := newTestState(t)
	s.scrollPreview(5)
	require.Equal(t, 5, s.Preview.Offset)
	require.False(t, s.Preview.AutoScroll)
}

func TestHandlePollResultDropsStaleGeneration(t *testing.T) {
	s := newTestState(t)
	s.Engine.TryStartPoll()
	staleGen := s.Engine.Generation()
	s.Engine.BumpGeneration()

	next, cmd := s.handlePollResult(PreviewPollResultMsg{Generation: staleGen, Result: capture.CaptureResult{}})
	require.Nil(t, cmd)
	require.False(t, next.pending.previewPollInFlight)
}

func TestHandlePollResultAppliesLiveOutput(t *testing.T) {
	s := newTestState(t)
	s.Engine.TryStartPoll()
	gen := s.Engine.Generation()

	result := capture.CaptureResult{LiveSession: "grove-a-agent", LiveOutput: "hello\nworld\n"}
	s.handlePollResult(PreviewPollResultMsg{Generation: gen, Result: result})
	require.Equal(t, []string{"hello", "world"}, s.Preview.Lines)
}

func TestHandleRefreshDoneReplacesWorkspacesAndClampsSelection(t *testing.T) {
	s := newTestState(t)
	s.SelectedIndex = 5

	next, cmd := s.handleRefreshDone(RefreshDoneMsg{Workspaces: []*domain.Workspace{{Name: "a"}}})
	require.Nil(t, cmd)
	require.Len(t, next.Workspaces, 1)
	require.Equal(t, 0, next.SelectedIndex)
}

func TestHandleRefreshDoneErrorShowsToast(t *testing.T) {
	s := newTestState(t)
	s.handleRefreshDone(RefreshDoneMsg{Err: errTest})
	require.True(t, s.Toast.IsError)
}

func TestRefreshCmdGuardsAgainstOverlap(t *testing.T) {
	s := newTestState(t)
	s.pending.refreshInFlight = true
	require.Nil(t, s.refreshCmd())
}

func TestApplyConfigChangeMutatesInMemoryConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := newTestState(t)
	s.Config = config.Default()
	s.applyConfigChange(func(c *config.Config) { c.SidebarWidthPct = 50 })
	require.Equal(t, 50, s.Config.SidebarWidthPct)
}

type testError string

func (e testError) Error() string { return string(e) }

var errTest = testError("boom")
