package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordangarrison/grove/internal/capture"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/interactive"
	"github.com/jordangarrison/grove/internal/keymap"
)

// RegisterKeymap wires Grove's global keybindings (spec.md §6.5) into the
// state's keymap.Registry. Handlers close over s so Handle's returned
// tea.Cmd can read/mutate state directly, matching the teacher's
// closure-based command registration.
func (s *State) RegisterKeymap() {
	reg := s.Keymap

	reg.RegisterCommand(keymap.Command{ID: keymap.CmdQuitConfirm, Handler: func() tea.Cmd {
		s.Dialog = NewQuitConfirmDialog()
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdDismissModal, Handler: func() tea.Cmd {
		s.Dialog = Dialog{}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdMoveDown, Handler: func() tea.Cmd {
		s.MoveSelection(1)
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdMoveUp, Handler: func() tea.Cmd {
		s.MoveSelection(-1)
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdToggleFocus, Handler: func() tea.Cmd {
		if s.Focus == FocusWorkspaceList {
			s.Focus = FocusPreview
		} else {
			s.Focus = FocusWorkspaceList
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdEnter, Handler: func() tea.Cmd {
		return s.enterInteractive()
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdNewWorkspace, Handler: func() tea.Cmd {
		s.Dialog = NewCreateDialog(s.Config)
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdDeleteWorkspace, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewDeleteDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdMergeWorkspace, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewMergeDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdEditWorkspace, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewEditDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdStartAgent, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewStartDialog(ws, s.Config)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdStopAgent, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewStopDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdRestartAgent, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewRestartConfirmDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdUpdateFromBase, Handler: func() tea.Cmd {
		if ws := s.Selected(); ws != nil {
			s.Dialog = NewUpdateFromBaseDialog(ws)
		}
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdToggleUnsafe, Handler: func() tea.Cmd {
		if s.Dialog.Kind == DialogCreate || s.Dialog.Kind == DialogStart {
			s.Dialog.SkipPermissions = !s.Dialog.SkipPermissions
			return nil
		}
		s.applyConfigChange(func(c *config.Config) {
			c.LaunchSkipPermissions = !c.LaunchSkipPermissions
		})
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdPrevPreviewTab, Handler: func() tea.Cmd {
		s.PreviewTab = s.PreviewTab.Prev()
		s.Engine.BumpGeneration()
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdNextPreviewTab, Handler: func() tea.Cmd {
		s.PreviewTab = s.PreviewTab.Next()
		s.Engine.BumpGeneration()
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdJumpToBottom, Handler: func() tea.Cmd {
		s.Preview.Offset = 0
		s.Preview.AutoScroll = true
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdScrollPageUp, Handler: func() tea.Cmd {
		s.scrollPreview(s.Height / 2)
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdScrollPageDown, Handler: func() tea.Cmd {
		s.scrollPreview(-s.Height / 2)
		return nil
	}})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdQuit, Handler: func() tea.Cmd { return tea.Quit }})
	reg.RegisterCommand(keymap.Command{ID: keymap.CmdOpenSettings, Handler: func() tea.Cmd {
		s.Dialog = NewSettingsDialog(s.Config)
		return s.Dialog.SettingsForm.Init()
	}})

	reg.RegisterBinding(keymap.Binding{Key: "ctrl+c", Command: keymap.CmdQuitConfirm, Context: "global"})
	reg.RegisterBinding(keymap.Binding{Key: "q", Command: keymap.CmdQuitConfirm, Context: "global"})
	reg.RegisterBinding(keymap.Binding{Key: "esc", Command: keymap.CmdDismissModal, Context: "global"})
	reg.RegisterBinding(keymap.Binding{Key: "down", Command: keymap.CmdMoveDown, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "j", Command: keymap.CmdMoveDown, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "up", Command: keymap.CmdMoveUp, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "k", Command: keymap.CmdMoveUp, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "tab", Command: keymap.CmdToggleFocus, Context: "global"})
	reg.RegisterBinding(keymap.Binding{Key: "enter", Command: keymap.CmdEnter, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "n", Command: keymap.CmdNewWorkspace, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "d", Command: keymap.CmdDeleteWorkspace, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "m", Command: keymap.CmdMergeWorkspace, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "e", Command: keymap.CmdEditWorkspace, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "s", Command: keymap.CmdStartAgent, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "x", Command: keymap.CmdStopAgent, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "r", Command: keymap.CmdRestartAgent, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "u", Command: keymap.CmdUpdateFromBase, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: "!", Command: keymap.CmdToggleUnsafe, Context: "list"})
	reg.RegisterBinding(keymap.Binding{Key: ",", Command: keymap.CmdOpenSettings, Context: "global"})
	reg.RegisterBinding(keymap.Binding{Key: "[", Command: keymap.CmdPrevPreviewTab, Context: "preview"})
	reg.RegisterBinding(keymap.Binding{Key: "]", Command: keymap.CmdNextPreviewTab, Context: "preview"})
	reg.RegisterBinding(keymap.Binding{Key: "G", Command: keymap.CmdJumpToBottom, Context: "preview"})
	reg.RegisterBinding(keymap.Binding{Key: "pgup", Command: keymap.CmdScrollPageUp, Context: "preview"})
	reg.RegisterBinding(keymap.Binding{Key: "pgdown", Command: keymap.CmdScrollPageDown, Context: "preview"})
}

// enterInteractive binds InteractiveState to the selected workspace's
// live session (spec.md §4.5), or does nothing if there is none.
func (s *State) enterInteractive() tea.Cmd {
	ws := s.Selected()
	if ws == nil {
		return nil
	}
	session, _ := capture.LiveTarget(ws, int(s.PreviewTab))
	if session == "" {
		return nil
	}
	s.Interactive = interactive.New(session)
	return nil
}
