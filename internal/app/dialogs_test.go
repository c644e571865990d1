package app

import (
	"testing"

	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/lifecycle"
	"github.com/stretchr/testify/require"
)

func TestDialogIsOpen(t *testing.T) {
	require.False(t, Dialog{}.IsOpen())
	require.True(t, Dialog{Kind: DialogCreate}.IsOpen())
}

func TestNewCreateDialogPrefillsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LaunchSkipPermissions = true

	d := NewCreateDialog(cfg)
	require.Equal(t, DialogCreate, d.Kind)
	require.Equal(t, domain.AgentClaude, d.Agent)
	require.True(t, d.SkipPermissions)
	require.True(t, d.NameInput.Focused())
}

func TestNewCreateDialogNilConfigLeavesSkipPermissionsFalse(t *testing.T) {
	d := NewCreateDialog(nil)
	require.False(t, d.SkipPermissions)
}

func TestNewDeleteDialogTargetsWorkspace(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a"}
	d := NewDeleteDialog(ws)
	require.Equal(t, DialogDelete, d.Kind)
	require.Same(t, ws, d.Target)
}

func TestNewMergeDialogDefaultsNoRemoval(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a"}
	d := NewMergeDialog(ws)
	require.Equal(t, DialogMerge, d.Kind)
	require.False(t, d.RemoveWorkspaceAfterMerge)
	require.False(t, d.RemoveBranchAfterMerge)
}

func TestFieldCountPerKind(t *testing.T) {
	require.Equal(t, 7, Dialog{Kind: DialogCreate}.FieldCount())
	require.Equal(t, 2, Dialog{Kind: DialogDelete}.FieldCount())
	require.Equal(t, 3, Dialog{Kind: DialogMerge}.FieldCount())
	require.Equal(t, 4, Dialog{Kind: DialogProject}.FieldCount())
	require.Equal(t, 2, Dialog{Kind: DialogQuitConfirm}.FieldCount())
}

func TestCycleFocusWrapsForward(t *testing.T) {
	d := Dialog{Kind: DialogMerge}
	require.Equal(t, 0, d.FocusedField)
	d.CycleFocus(true)
	require.Equal(t, 1, d.FocusedField)
	d.CycleFocus(true)
	require.Equal(t, 2, d.FocusedField)
	d.CycleFocus(true)
	require.Equal(t, 0, d.FocusedField, "must wrap back to 0 after the last field")
}

func TestCycleFocusWrapsBackward(t *testing.T) {
	d := Dialog{Kind: DialogMerge}
	d.CycleFocus(false)
	require.Equal(t, 2, d.FocusedField, "cycling backward from 0 wraps to the last field")
}

func TestFieldCountFallsBackToGenericConfirmCancel(t *testing.T) {
	require.Equal(t, 2, Dialog{Kind: DialogEdit}.FieldCount())
	require.Equal(t, 2, Dialog{Kind: DialogStart}.FieldCount())
	require.Equal(t, 2, Dialog{Kind: DialogUpdateFromBase}.FieldCount())
}

func TestNewEditDialogPrefillsBaseBranchForNonMainWorkspace(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a", BaseBranch: "develop"}
	d := NewEditDialog(ws)
	require.Equal(t, DialogEdit, d.Kind)
	require.Equal(t, "develop", d.BranchInput.Value())
	require.True(t, d.BranchInput.Focused())
}

func TestNewStartDialogDefaultsAgentWhenUnset(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a"}
	d := NewStartDialog(ws, nil)
	require.Equal(t, DialogStart, d.Kind)
	require.Equal(t, domain.AgentClaude, d.Agent)
}

func TestNewStartDialogKeepsExplicitAgent(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a", Agent: domain.AgentCodex}
	d := NewStartDialog(ws, nil)
	require.Equal(t, domain.AgentCodex, d.Agent)
}

func TestNewUpdateFromBaseDialogDefaultsToMerge(t *testing.T) {
	ws := &domain.Workspace{Name: "feature-a"}
	d := NewUpdateFromBaseDialog(ws)
	require.Equal(t, lifecycle.UpdateMerge, d.UpdateMode)
}

func TestNewSettingsDialogPrefillsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LaunchSkipPermissions = true
	cfg.SidebarWidthPct = 35

	d := NewSettingsDialog(cfg)
	require.Equal(t, DialogSettings, d.Kind)
	require.True(t, d.SettingsSkip)
	require.Equal(t, "35", d.SettingsSidebar)
	require.NotNil(t, d.SettingsForm)
}
