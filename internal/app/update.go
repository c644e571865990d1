package app

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jordangarrison/grove/internal/capture"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/interactive"
	"github.com/jordangarrison/grove/internal/lifecycle"
	"github.com/jordangarrison/grove/internal/mouse"
	"github.com/jordangarrison/grove/internal/multiplexer"
	"github.com/jordangarrison/grove/internal/ui"
)

// Update is Grove's top-level reducer (spec.md §4.1/§5): it never blocks on
// I/O itself, instead returning a tea.Cmd that runs the work and reports
// back through one of the messages in messages.go.
func (s *State) Update(msg tea.Msg) (*State, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.Width, s.Height = m.Width, m.Height
		return s, s.verifyResizeCmd()

	case tea.KeyMsg:
		return s.handleKey(m)

	case tea.MouseMsg:
		return s.handleMouse(m)

	case TickMsg:
		return s, s.HandleTick(m)

	case ui.SkeletonTickMsg:
		return s, s.skeleton.Update(m)

	case ToastMsg:
		if m.IsError {
			s.ShowErrorToast(m.Message, m.Duration)
		} else {
			s.ShowToast(m.Message, m.Duration)
		}
		return s, nil

	case PreviewPollResultMsg:
		return s.handlePollResult(m)

	case RefreshDoneMsg:
		return s.handleRefreshDone(m)

	case CreateDoneMsg:
		return s.handleCreateDone(m)

	case DeleteDoneMsg:
		return s.handleDeleteDone(m)

	case StartDoneMsg:
		s.pending.startInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("start failed: "+m.Err.Error(), 4*time.Second)
		} else {
			if s.Dialog.Kind == DialogStart {
				s.Dialog = Dialog{}
			}
			s.ShowToast("agent started", 2*time.Second)
		}
		return s, nil

	case StopDoneMsg:
		s.pending.stopInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("stop failed: "+m.Err.Error(), 4*time.Second)
		} else {
			if s.Dialog.Kind == DialogStop {
				s.Dialog = Dialog{}
			}
			s.ShowToast("agent stopped", 2*time.Second)
		}
		return s, nil

	case MergeDoneMsg:
		s.pending.mergeInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("merge failed: "+m.Err.Error(), 4*time.Second)
		} else if m.Conflict {
			s.ShowErrorToast(m.Message, 6*time.Second)
		} else {
			s.Dialog = Dialog{}
			s.ShowToast(m.Message, 3*time.Second)
		}
		return s, nil

	case UpdateFromBaseDoneMsg:
		s.pending.updateFromBaseInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("update failed: "+m.Err.Error(), 4*time.Second)
		} else {
			s.Dialog = Dialog{}
			s.ShowToast("updated from base", 2*time.Second)
		}
		return s, nil

	case EditDoneMsg:
		s.pending.editInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("edit failed: "+m.Err.Error(), 4*time.Second)
		} else {
			s.Dialog = Dialog{}
			s.ShowToast("saved", 2*time.Second)
		}
		return s, nil

	case RestartDoneMsg:
		s.pending.restartInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("restart failed: "+m.Err.Error(), 4*time.Second)
		} else {
			s.Dialog = Dialog{}
			s.ShowToast("agent restarted", 2*time.Second)
		}
		return s, nil

	case ProjectDeleteDoneMsg:
		s.pending.projectDeleteInFlight = false
		if m.Err != nil {
			s.ShowErrorToast("remove project failed: "+m.Err.Error(), 4*time.Second)
		}
		return s, nil

	case CursorSessionMismatchMsg:
		if s.Events != nil {
			s.Events.Append("cursor/stale_dropped", map[string]string{"session": m.Session})
		}
		return s, nil
	}

	return s, nil
}

// handleKey routes a keystroke per spec.md §4.5: interactive passthrough
// first, then dialog-field editing, then list/preview navigation via the
// keymap registry.
func (s *State) handleKey(msg tea.KeyMsg) (*State, tea.Cmd) {
	if s.Interactive != nil {
		return s.handleInteractiveKey(msg)
	}
	if s.Dialog.IsOpen() {
		return s.handleDialogKey(msg)
	}

	ctx := "list"
	if s.Focus == FocusPreview {
		ctx = "preview"
	}
	if cmd := s.Keymap.Handle(msg, ctx); cmd != nil {
		return s, cmd
	}
	return s, nil
}

// handleInteractiveKey implements spec.md §4.5: double-Escape/Ctrl+\ exit,
// everything else forwarded verbatim to the bound session.
func (s *State) handleInteractiveKey(msg tea.KeyMsg) (*State, tea.Cmd) {
	it := s.Interactive

	if msg.Type == tea.KeyEscape {
		if it.HandleEscape() {
			s.Interactive = nil
			return s, nil
		}
		return s, nil
	}
	if interactive.IsExitCombo(msg) {
		s.Interactive = nil
		return s, nil
	}

	it.LastKeyTime = time.Now()
	key, literal := interactive.MapKey(msg)
	if key == "" {
		return s, nil
	}
	seq := it.NextSeq()
	adapter, session := s.Adapter, it.Session
	return s, func() tea.Msg {
		_ = interactive.Forward(context.Background(), adapter, &interactive.State{Session: session}, key, literal)
		_ = seq
		return nil
	}
}

// handleDialogKey routes keys while a modal dialog is open (spec.md §4.7):
// Escape cancels, Tab/Shift+Tab (and Ctrl+N/Ctrl+P) cycle focus, Enter
// submits the dialog from whichever field is focused.
func (s *State) handleDialogKey(msg tea.KeyMsg) (*State, tea.Cmd) {
	if s.Dialog.Kind == DialogSettings {
		return s.updateSettingsForm(msg)
	}

	switch msg.Type {
	case tea.KeyEscape:
		s.Dialog = Dialog{}
		return s, nil
	case tea.KeyTab, tea.KeyCtrlN:
		s.Dialog.CycleFocus(true)
		return s, nil
	case tea.KeyShiftTab, tea.KeyCtrlP:
		s.Dialog.CycleFocus(false)
		return s, nil
	case tea.KeyEnter:
		return s.submitDialog()
	}

	switch s.Dialog.Kind {
	case DialogCreate:
		s.updateCreateField(msg)
	case DialogProject:
		s.updateProjectField(msg)
	case DialogEdit:
		s.updateEditField(msg)
	case DialogStart:
		s.updateStartField(msg)
	}
	return s, nil
}

// updateSettingsForm forwards keys to the Settings dialog's huh.Form,
// which owns its own field focus and validation loop; Escape still cancels
// the dialog outright the way every other Grove dialog does.
func (s *State) updateSettingsForm(msg tea.KeyMsg) (*State, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		s.Dialog = Dialog{}
		return s, nil
	}
	form, cmd := s.Dialog.SettingsForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.Dialog.SettingsForm = f
		if f.State == huh.StateCompleted {
			s.submitSettings()
		}
	}
	return s, cmd
}

func (s *State) submitSettings() {
	pct, err := strconv.Atoi(s.Dialog.SettingsSidebar)
	if err != nil {
		return
	}
	skip := s.Dialog.SettingsSkip
	s.applyConfigChange(func(c *config.Config) {
		c.LaunchSkipPermissions = skip
		c.SidebarWidthPct = pct
	})
	s.SidebarWidthPct = pct
	s.Dialog = Dialog{}
	s.ShowToast("settings saved", 2*time.Second)
}

func (s *State) updateEditField(msg tea.KeyMsg) {
	if s.Dialog.FocusedField == 0 {
		var cmd tea.Cmd
		s.Dialog.BranchInput, cmd = s.Dialog.BranchInput.Update(msg)
		_ = cmd
	}
}

func (s *State) updateStartField(msg tea.KeyMsg) {
	switch s.Dialog.FocusedField {
	case 0:
		var cmd tea.Cmd
		s.Dialog.Prompt, cmd = s.Dialog.Prompt.Update(msg)
		_ = cmd
	case 1:
		if msg.Type == tea.KeySpace {
			s.Dialog.SkipPermissions = !s.Dialog.SkipPermissions
		}
	}
}

func (s *State) updateCreateField(msg tea.KeyMsg) {
	switch s.Dialog.FocusedField {
	case 0:
		var cmd tea.Cmd
		s.Dialog.NameInput, cmd = s.Dialog.NameInput.Update(msg)
		_ = cmd
	case 2:
		var cmd tea.Cmd
		s.Dialog.BranchInput, cmd = s.Dialog.BranchInput.Update(msg)
		_ = cmd
	case 4:
		var cmd tea.Cmd
		s.Dialog.Prompt, cmd = s.Dialog.Prompt.Update(msg)
		_ = cmd
	case 5:
		var cmd tea.Cmd
		s.Dialog.InitCommand, cmd = s.Dialog.InitCommand.Update(msg)
		_ = cmd
	case 6:
		if msg.Type == tea.KeySpace {
			s.Dialog.SkipPermissions = !s.Dialog.SkipPermissions
		}
	}
}

func (s *State) updateProjectField(msg tea.KeyMsg) {
	if s.Dialog.ProjectSubview != ProjectSubviewAdd {
		return
	}
	switch s.Dialog.FocusedField {
	case 0:
		var cmd tea.Cmd
		s.Dialog.ProjectNameInput, cmd = s.Dialog.ProjectNameInput.Update(msg)
		_ = cmd
	case 1:
		var cmd tea.Cmd
		s.Dialog.ProjectPathInput, cmd = s.Dialog.ProjectPathInput.Update(msg)
		_ = cmd
	}
}

// submitDialog dispatches the async task for the open dialog's confirm
// action (spec.md §4.6/§4.7).
func (s *State) submitDialog() (*State, tea.Cmd) {
	switch s.Dialog.Kind {
	case DialogCreate:
		return s.submitCreate()
	case DialogDelete:
		return s.submitDelete()
	case DialogEdit:
		return s.submitEdit()
	case DialogStart:
		return s.submitStart()
	case DialogStop:
		return s.submitStop()
	case DialogRestartConfirm:
		return s.submitRestart()
	case DialogMerge:
		return s.submitMerge()
	case DialogUpdateFromBase:
		return s.submitUpdateFromBase()
	case DialogQuitConfirm:
		return s, tea.Quit
	}
	s.Dialog = Dialog{}
	return s, nil
}

func (s *State) submitEdit() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.editInFlight {
		return s, nil
	}
	req := lifecycle.EditRequest{WorkspacePath: ws.Path, IsMain: ws.IsMain}
	if s.Dialog.Agent != ws.Agent {
		agent := s.Dialog.Agent
		req.Agent = &agent
	}
	if ws.IsMain {
		if v := s.Dialog.BranchInput.Value(); v != "" {
			req.SwitchBranch = v
		}
	} else if v := s.Dialog.BranchInput.Value(); v != ws.BaseBranch {
		req.BaseBranch = &v
	}

	s.pending.editInFlight = true
	name := ws.Name
	return s, func() tea.Msg {
		err := lifecycle.Edit(context.Background(), req)
		return EditDoneMsg{WorkspaceName: name, Err: err}
	}
}

func (s *State) submitStart() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.startInFlight {
		return s, nil
	}
	cfg := lifecycle.StartConfig{
		Agent:  s.Dialog.Agent,
		Prompt: s.Dialog.Prompt.Value(),
		Unsafe: s.Dialog.SkipPermissions,
	}
	s.pending.startInFlight = true
	adapter, width, height := s.Adapter, s.Width, s.Height
	name := ws.Name
	target := ws
	return s, func() tea.Msg {
		err := lifecycle.Start(context.Background(), adapter, target, cfg, width, height)
		return StartDoneMsg{WorkspaceName: name, Err: err}
	}
}

func (s *State) submitStop() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.stopInFlight {
		return s, nil
	}
	s.pending.stopInFlight = true
	adapter, session, name := s.Adapter, ws.AgentSession, ws.Name
	return s, func() tea.Msg {
		err := lifecycle.Stop(context.Background(), adapter, session)
		return StopDoneMsg{WorkspaceName: name, Err: err}
	}
}

func (s *State) submitRestart() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.restartInFlight {
		return s, nil
	}
	cfg := lifecycle.StartConfig{Agent: s.Dialog.Agent}
	s.pending.restartInFlight = true
	adapter, width, height := s.Adapter, s.Width, s.Height
	name := ws.Name
	target := ws
	return s, func() tea.Msg {
		err := lifecycle.Restart(context.Background(), adapter, target, cfg, width, height)
		return RestartDoneMsg{WorkspaceName: name, Err: err}
	}
}

func (s *State) submitCreate() (*State, tea.Cmd) {
	if s.pending.createInFlight {
		return s, nil
	}
	if s.Dialog.ProjectIndex < 0 || s.Dialog.ProjectIndex >= len(s.Projects) {
		s.Dialog.ErrorMessage = "select a project"
		return s, nil
	}
	project := s.Projects[s.Dialog.ProjectIndex]

	req := lifecycle.CreateRequest{
		ProjectPath:   project.Path,
		WorkspaceName: s.Dialog.NameInput.Value(),
		Agent:         s.Dialog.Agent,
	}
	switch s.Dialog.BranchMode.ExistingBranch {
	case "":
		req.Branch = lifecycle.BranchMode{NewBranch: s.Dialog.BranchInput.Value()}
	default:
		req.Branch = s.Dialog.BranchMode
	}
	if err := req.Validate(); err != nil {
		s.Dialog.ErrorMessage = err.Error()
		return s, nil
	}

	startCfg := lifecycle.StartConfig{
		Agent:       req.Agent,
		Prompt:      s.Dialog.Prompt.Value(),
		InitCommand: s.Dialog.InitCommand.Value(),
		Unsafe:      s.Dialog.SkipPermissions,
	}

	s.pending.createInFlight = true
	repoName := project.Name
	return s, func() tea.Msg {
		result, err := lifecycle.Create(context.Background(), req, repoName)
		if err != nil {
			return CreateDoneMsg{Err: err}
		}
		return CreateDoneMsg{
			WorkspacePath: result.WorkspacePath,
			WorkspaceName: req.WorkspaceName,
			SetupWarning:  result.SetupWarning,
			AutoStart:     req.Agent != domain.AgentNone,
			StartConfig:   startCfg,
		}
	}
}

func (s *State) submitDelete() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil {
		s.Dialog = Dialog{}
		return s, nil
	}
	req := lifecycle.DeleteRequest{
		RepoPath:      ws.ProjectPath,
		WorkspacePath: ws.Path,
		Branch:        ws.Branch,
		IsMain:        ws.IsMain,
		DeleteBranch:  s.Dialog.DeleteBranchToo,
	}
	start := s.deleteQueue.Enqueue(req)
	s.Dialog = Dialog{}
	if start == nil {
		return s, nil
	}
	name := ws.Name
	return s, func() tea.Msg {
		err := lifecycle.Delete(context.Background(), *start)
		return DeleteDoneMsg{WorkspaceName: name, Err: err}
	}
}

func (s *State) submitMerge() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.mergeInFlight {
		return s, nil
	}
	req := lifecycle.MergeRequest{
		RepoPath:          ws.ProjectPath,
		BaseBranch:        ws.BaseBranch,
		WorkspaceBranch:   ws.Branch,
		RemoveWorkspace:   s.Dialog.RemoveWorkspaceAfterMerge,
		RemoveLocalBranch: s.Dialog.RemoveBranchAfterMerge,
	}
	s.pending.mergeInFlight = true
	name := ws.Name
	return s, func() tea.Msg {
		result, err := lifecycle.Merge(context.Background(), req)
		if err != nil {
			return MergeDoneMsg{WorkspaceName: name, Err: err}
		}
		return MergeDoneMsg{WorkspaceName: name, Conflict: result.Conflict, Message: result.Message}
	}
}

func (s *State) submitUpdateFromBase() (*State, tea.Cmd) {
	ws := s.Dialog.Target
	if ws == nil || s.pending.updateFromBaseInFlight {
		return s, nil
	}
	req := lifecycle.UpdateFromBaseRequest{
		WorkspacePath:   ws.Path,
		BaseBranch:      ws.BaseBranch,
		Mode:            s.Dialog.UpdateMode,
		IsMainWorkspace: ws.IsMain,
	}
	s.pending.updateFromBaseInFlight = true
	name := ws.Name
	return s, func() tea.Msg {
		err := lifecycle.UpdateFromBase(context.Background(), req)
		return UpdateFromBaseDoneMsg{WorkspaceName: name, Err: err}
	}
}

// handleMouse dispatches a mouse event through the hit map built during the
// last View render (spec.md §4.8): region IDs are the contract between
// view.go (which registers them) and this reducer (which interprets them).
func (s *State) handleMouse(msg tea.MouseMsg) (*State, tea.Cmd) {
	if s.Interactive != nil {
		s.Interactive.NoteMouseEvent()
	}
	action := s.Mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		return s.handleMouseClick(action)
	case mouse.ActionDrag:
		if s.Mouse.DragRegion() == regionDivider {
			pct := config.ClampSidebarPct(s.Mouse.DragStartValue() + action.DragDX*100/max(s.Width, 1))
			s.SidebarWidthPct = pct
		}
	case mouse.ActionDragEnd:
		s.applyConfigChange(func(c *config.Config) { c.SidebarWidthPct = s.SidebarWidthPct })
	case mouse.ActionScrollUp:
		s.scrollPreview(action.Delta)
	case mouse.ActionScrollDown:
		s.scrollPreview(action.Delta)
	}
	return s, nil
}

const regionDivider = "divider"

func (s *State) handleMouseClick(action mouse.MouseAction) (*State, tea.Cmd) {
	if action.Region == nil {
		return s, nil
	}
	switch action.Region.ID {
	case regionDivider:
		s.Mouse.StartDrag(action.X, action.Y, regionDivider, s.SidebarWidthPct)
	case regionWorkspaceList:
		if idx, ok := action.Region.Data.(int); ok {
			s.SelectedIndex = idx
			s.ClampSelection()
			s.Engine.BumpGeneration()
			s.Focus = FocusWorkspaceList
		}
	case regionPreviewPane:
		s.Focus = FocusPreview
	}
	return s, nil
}

func (s *State) scrollPreview(delta int) {
	s.Preview.Offset += delta
	if s.Preview.Offset < 0 {
		s.Preview.Offset = 0
	}
	s.Preview.AutoScroll = s.Preview.Offset == 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (s *State) verifyResizeCmd() tea.Cmd {
	ws := s.Selected()
	if ws == nil || ws.AgentSession == "" {
		return nil
	}
	s.resizeVerify = ResizeVerify{Pending: true, Session: ws.AgentSession, ExpectedW: s.Width, ExpectedH: s.Height}
	adapter, session, w, h := s.Adapter, ws.AgentSession, s.Width, s.Height
	return func() tea.Msg {
		_ = adapter.ResizeWindow(context.Background(), session, w, h)
		return nil
	}
}

// handlePollResult absorbs one capture.CaptureResult, discarding it if its
// generation is stale (spec.md §4.3, testable property 2).
func (s *State) handlePollResult(m PreviewPollResultMsg) (*State, tea.Cmd) {
	rerun := s.Engine.FinishPoll()
	s.pending.previewPollInFlight = false

	if m.Generation != s.Engine.Generation() {
		if s.Events != nil {
			s.Events.Append("stale_result_dropped", map[string]any{"generation": m.Generation})
		}
		if rerun {
			return s, s.startPollCmd()
		}
		return s, nil
	}

	selected := s.Selected()
	if m.Result.LiveErr == nil && m.Result.LiveSession != "" {
		_, changedCleaned := s.Preview.ApplyCapture(m.Result.LiveOutput)
		s.Engine.NoteActivity(changedCleaned)
		if s.Preview.AutoScroll {
			s.Preview.Offset = 0
		}

		if selected != nil && selected.AgentSession == m.Result.LiveSession {
			status := capture.InferStatus(capture.Clean(m.Result.LiveOutput), s.Engine.RecentlyChanging())
			if status != selected.Status {
				selected.Status = status
				selected.NeedsAttention = false // the selected workspace is, by definition, being watched
			}
			selected.IsOrphaned = false
		}
	} else if m.Result.LiveErr != nil && multiplexer.IsMissingSessionError(m.Result.LiveErr) {
		if selected != nil && selected.AgentSession == m.Result.LiveSession {
			selected.IsOrphaned = true
			if s.Interactive != nil && s.Interactive.Session == m.Result.LiveSession {
				s.Interactive = nil
			}
		}
	}
	if m.Result.CursorErr == nil && m.Result.CursorSession == m.Result.LiveSession {
		if s.Interactive != nil && s.Interactive.Session == m.Result.CursorSession {
			s.Interactive.CursorRow = m.Result.Cursor.Row
			s.Interactive.CursorCol = m.Result.Cursor.Col
			s.Interactive.PaneWidth = m.Result.Cursor.PaneWidth
			s.Interactive.PaneHeight = m.Result.Cursor.PaneHeight
			s.Interactive.Visible = m.Result.Cursor.Visible
		}
	}

	for _, sc := range m.Result.StatusCaptures {
		if sc.Err != nil {
			continue
		}
		cleaned := capture.Clean(sc.Output)
		status := capture.InferStatus(cleaned, false)
		for _, w := range s.Workspaces {
			if w.AgentSession == sc.Session {
				if status != w.Status {
					w.Status = status
					w.NeedsAttention = status.NeedsAttention() && w != s.Selected()
				}
			}
		}
	}

	if rerun {
		return s, s.startPollCmd()
	}
	return s, nil
}

// startPollCmd kicks off the next capture.Engine.RunPoll as a tea.Cmd,
// tagged with the current generation.
func (s *State) startPollCmd() tea.Cmd {
	if !s.Engine.TryStartPoll() {
		return nil
	}
	s.pending.previewPollInFlight = true

	ws := s.Selected()
	var liveSession string
	var liveEsc bool
	if ws != nil {
		liveSession, liveEsc = capture.LiveTarget(ws, int(s.PreviewTab))
	}
	statusTargets := capture.StatusPollTargets(s.Workspaces, liveSession)
	generation := s.Engine.Generation()
	engine := s.Engine

	return func() tea.Msg {
		result := engine.RunPoll(context.Background(), generation, liveSession, liveEsc, statusTargets)
		return PreviewPollResultMsg{Generation: generation, Result: result}
	}
}

func (s *State) handleRefreshDone(m RefreshDoneMsg) (*State, tea.Cmd) {
	s.pending.refreshInFlight = false
	if m.Err != nil {
		s.ShowErrorToast("refresh failed: "+m.Err.Error(), 4*time.Second)
		return s, nil
	}
	s.Workspaces = m.Workspaces
	s.ClampSelection()
	if len(s.Workspaces) > 0 {
		s.skeleton.Stop()
	}
	return s, nil
}

func (s *State) handleCreateDone(m CreateDoneMsg) (*State, tea.Cmd) {
	s.pending.createInFlight = false
	if m.Err != nil {
		s.Dialog.ErrorMessage = m.Err.Error()
		return s, nil
	}
	s.Dialog = Dialog{}
	if m.SetupWarning != "" {
		s.ShowErrorToast("setup: "+m.SetupWarning, 5*time.Second)
	} else {
		s.ShowToast("workspace created", 2*time.Second)
	}
	return s, tea.Batch(s.refreshCmd(), s.launchCreatedWorkspaceCmd(m))
}

// launchCreatedWorkspaceCmd implements spec.md §4.7's "Create dialog
// specifics": every successful create auto-launches a companion shell,
// and, when the dialog's agent selection calls for it, also starts the
// agent session using the prompt/init-command/unsafe fields gathered in
// the dialog.
func (s *State) launchCreatedWorkspaceCmd(m CreateDoneMsg) tea.Cmd {
	ws := &domain.Workspace{Name: m.WorkspaceName, Path: m.WorkspacePath, Agent: m.StartConfig.Agent}
	ws.AgentSession = ws.AgentSessionNameOf()
	adapter, width, height := s.Adapter, s.Width, s.Height
	autoStart, cfg := m.AutoStart, m.StartConfig

	return func() tea.Msg {
		if err := lifecycle.StartShell(context.Background(), adapter, ws, width, height); err != nil {
			return StartDoneMsg{WorkspaceName: ws.Name, Err: err}
		}
		if !autoStart {
			return nil
		}
		err := lifecycle.Start(context.Background(), adapter, ws, cfg, width, height)
		return StartDoneMsg{WorkspaceName: ws.Name, Err: err}
	}
}

func (s *State) handleDeleteDone(m DeleteDoneMsg) (*State, tea.Cmd) {
	next := s.deleteQueue.CompleteAndDequeue()
	if m.Err != nil {
		s.ShowErrorToast("delete failed: "+m.Err.Error(), 4*time.Second)
	} else {
		s.ShowToast("workspace deleted", 2*time.Second)
	}
	cmds := []tea.Cmd{s.refreshCmd()}
	if next != nil {
		req := *next
		cmds = append(cmds, func() tea.Msg {
			err := lifecycle.Delete(context.Background(), req)
			return DeleteDoneMsg{Err: err}
		})
	}
	return s, tea.Batch(cmds...)
}

// refreshCmd re-walks every configured project's worktrees (spec.md §4.6
// "Refresh"). Discovery itself is synchronous git-plumbing, so it still
// runs off the UI goroutine via tea.Cmd to keep Update non-blocking.
func (s *State) refreshCmd() tea.Cmd {
	if s.pending.refreshInFlight {
		return nil
	}
	s.pending.refreshInFlight = true
	projects := s.Projects
	cmd := func() tea.Msg {
		return RefreshDoneMsg{Workspaces: lifecycle.DiscoverAll(projects)}
	}
	if len(s.Workspaces) == 0 {
		return tea.Batch(cmd, s.skeleton.Start())
	}
	return cmd
}

// applyConfigChange persists a config mutation, logging (not panicking) on
// a write failure — spec.md §6.3's atomic rewrite is best-effort from the
// TUI's perspective; the in-memory state always wins for this session.
func (s *State) applyConfigChange(mutate func(*config.Config)) {
	mutate(s.Config)
	if err := config.Save(s.Config); err != nil && s.Events != nil {
		s.Events.Append("config/save_failed", map[string]string{"error": err.Error()})
	}
}
