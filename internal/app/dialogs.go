package app

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/huh"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/lifecycle"
)

var errInvalidSidebarPct = errors.New("sidebar width must be between 10 and 90")

// DialogKind discriminates Grove's modal sum type (spec.md §4.7). At most
// one dialog is open at a time; DialogNone means no modal is active.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogCreate
	DialogEdit
	DialogDelete
	DialogStart
	DialogStop
	DialogRestartConfirm
	DialogMerge
	DialogUpdateFromBase
	DialogProject
	DialogSettings
	DialogQuitConfirm
)

// ProjectSubview selects the nested view within the Project dialog.
type ProjectSubview int

const (
	ProjectSubviewList ProjectSubview = iota
	ProjectSubviewAdd
	ProjectSubviewDefaults
	ProjectSubviewReorder
)

// Dialog is the open-modal state (spec.md §3 "Dialog states", §4.7). Only
// the fields relevant to Kind are populated; others are zero.
type Dialog struct {
	Kind         DialogKind
	FocusedField int

	// Create
	NameInput        textinput.Model
	ProjectIndex     int
	BranchMode       lifecycle.BranchMode
	BranchInput      textinput.Model
	BranchCandidates []string
	BranchFilter     string
	Agent            domain.AgentKind
	Prompt           textinput.Model
	InitCommand      textinput.Model
	SkipPermissions  bool

	// Edit / Start / Stop / Delete / Merge / UpdateFromBase target
	Target *domain.Workspace

	// Delete
	DeleteBranchToo bool

	// Merge
	RemoveWorkspaceAfterMerge bool
	RemoveBranchAfterMerge    bool

	// UpdateFromBase
	UpdateMode lifecycle.UpdateFromBaseMode

	// Project
	ProjectSubview    ProjectSubview
	ProjectCursor     int
	ProjectNameInput  textinput.Model
	ProjectPathInput  textinput.Model
	EditingDefaults   domain.ProjectDefaults

	// Settings
	SettingsForm     *huh.Form
	SettingsSkip     bool
	SettingsSidebar  string

	// Validation / in-flight feedback shown inline in the dialog
	ErrorMessage string
}

// IsOpen reports whether any modal dialog is currently active.
func (d Dialog) IsOpen() bool { return d.Kind != DialogNone }

// NewCreateDialog builds a Create dialog prefilled from config defaults
// (spec.md §4.7 "Create dialog specifics").
func NewCreateDialog(cfg *config.Config) Dialog {
	name := textinput.New()
	name.Placeholder = "workspace name"
	name.Focus()
	branch := textinput.New()
	branch.Placeholder = "base branch"
	prompt := textinput.New()
	prompt.Placeholder = "initial prompt (optional)"
	initCmd := textinput.New()
	initCmd.Placeholder = "init command (optional)"

	d := Dialog{
		Kind:        DialogCreate,
		NameInput:   name,
		BranchInput: branch,
		Prompt:      prompt,
		InitCommand: initCmd,
		Agent:       domain.AgentClaude,
	}
	if cfg != nil {
		d.SkipPermissions = cfg.LaunchSkipPermissions
	}
	return d
}

// NewDeleteDialog builds a Delete confirmation targeting ws.
func NewDeleteDialog(ws *domain.Workspace) Dialog {
	return Dialog{Kind: DialogDelete, Target: ws}
}

// NewMergeDialog builds a Merge dialog targeting ws.
func NewMergeDialog(ws *domain.Workspace) Dialog {
	return Dialog{Kind: DialogMerge, Target: ws, RemoveWorkspaceAfterMerge: false, RemoveBranchAfterMerge: false}
}

// NewQuitConfirmDialog builds the quit-confirmation dialog.
func NewQuitConfirmDialog() Dialog {
	return Dialog{Kind: DialogQuitConfirm}
}

// NewEditDialog builds an Edit dialog targeting ws (spec.md §4.6 Edit):
// BranchInput doubles as the new HEAD branch for the main workspace, or a
// base-branch override for any other workspace. Agent carries ws.Agent
// forward unchanged; submitEdit only writes it back if it differs.
func NewEditDialog(ws *domain.Workspace) Dialog {
	branch := textinput.New()
	if ws.IsMain {
		branch.Placeholder = "switch to branch (optional)"
	} else {
		branch.Placeholder = "base branch override (optional)"
		branch.SetValue(ws.BaseBranch)
	}
	branch.Focus()
	return Dialog{Kind: DialogEdit, Target: ws, BranchInput: branch, Agent: ws.Agent}
}

// NewStartDialog builds a Start dialog targeting ws (spec.md §4.6.1): the
// single editable field is the one-shot prompt handed to the agent on
// launch; Unsafe starts from the config default and is toggled with Space
// on its field.
func NewStartDialog(ws *domain.Workspace, cfg *config.Config) Dialog {
	prompt := textinput.New()
	prompt.Placeholder = "prompt (optional)"
	prompt.Focus()
	agent := ws.Agent
	if agent == domain.AgentNone {
		agent = domain.AgentClaude
	}
	d := Dialog{Kind: DialogStart, Target: ws, Prompt: prompt, Agent: agent}
	if cfg != nil {
		d.SkipPermissions = cfg.LaunchSkipPermissions
	}
	return d
}

// NewStopDialog builds a Stop confirmation targeting ws.
func NewStopDialog(ws *domain.Workspace) Dialog {
	return Dialog{Kind: DialogStop, Target: ws}
}

// NewRestartConfirmDialog builds a Restart confirmation targeting ws,
// reusing ws's current agent as the relaunch config; no prompt is passed
// to the relaunch.
func NewRestartConfirmDialog(ws *domain.Workspace) Dialog {
	return Dialog{Kind: DialogRestartConfirm, Target: ws, Agent: ws.Agent}
}

// NewUpdateFromBaseDialog builds an UpdateFromBase dialog targeting ws
// (spec.md §4.6); UpdateMode is a regular merge, and no key in the dialog
// changes it.
func NewUpdateFromBaseDialog(ws *domain.Workspace) Dialog {
	return Dialog{Kind: DialogUpdateFromBase, Target: ws, UpdateMode: lifecycle.UpdateMerge}
}

// NewSettingsDialog builds the Settings dialog (spec.md §6.3's sidebar
// width / default skip-permissions preferences) as a huh.Form instead of
// Grove's usual hand-rolled textinput fields: the preference set here is
// exactly the kind of short, validated, multi-field form huh exists for.
func NewSettingsDialog(cfg *config.Config) Dialog {
	d := Dialog{Kind: DialogSettings}
	if cfg != nil {
		d.SettingsSkip = cfg.LaunchSkipPermissions
		d.SettingsSidebar = strconv.Itoa(cfg.SidebarWidthPct)
	}
	d.SettingsForm = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Skip permissions by default").
			Value(&d.SettingsSkip),
		huh.NewInput().
			Title("Sidebar width %").
			Value(&d.SettingsSidebar).
			Validate(func(v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return err
				}
				if n < config.MinSidebarPct || n > config.MaxSidebarPct {
					return errInvalidSidebarPct
				}
				return nil
			}),
	)).WithShowHelp(false)
	return d
}

// FieldCount returns how many focusable fields this dialog kind has, used
// for Ctrl+N/Ctrl+P and Tab/BackTab cycling (spec.md §4.7).
func (d Dialog) FieldCount() int {
	switch d.Kind {
	case DialogCreate:
		return 7 // name, project, branch, agent, prompt, init command, skip-permissions
	case DialogDelete:
		return 2 // delete-branch-too toggle, confirm/cancel
	case DialogMerge:
		return 3
	case DialogProject:
		return 4
	default:
		return 2 // generic confirm/cancel
	}
}

// CycleFocus moves FocusedField forward (or backward) with wraparound.
func (d *Dialog) CycleFocus(forward bool) {
	n := d.FieldCount()
	if n <= 0 {
		return
	}
	if forward {
		d.FocusedField = (d.FocusedField + 1) % n
	} else {
		d.FocusedField = (d.FocusedField - 1 + n) % n
	}
}
