package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/lifecycle"
	"github.com/jordangarrison/grove/internal/styles"
	"github.com/jordangarrison/grove/internal/ui"
)

// Mouse hit-region IDs shared between View (which registers them) and
// Update (which interprets clicks against them) — spec.md §4.8.
const (
	regionWorkspaceList = "workspace"
	regionPreviewPane   = "preview"
)

// View renders the full frame: header, sidebar/preview split, divider,
// status line, and (when open) the modal dialog overlay (spec.md §4.8).
func (s *State) View() string {
	if !s.Ready || s.Width == 0 || s.Height == 0 {
		return "grove starting…"
	}

	s.Mouse.HitMap.Clear()

	header := s.renderHeader()
	status := s.renderStatusLine()
	bodyHeight := s.Height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	sidebarW := s.SidebarInnerWidth()
	previewW := s.Width - sidebarW - 1
	if previewW < 1 {
		previewW = 1
	}

	sidebar := s.renderSidebar(sidebarW, bodyHeight)
	divider := s.renderDivider(bodyHeight)
	preview := s.renderPreview(previewW, bodyHeight)

	s.Mouse.HitMap.AddRect(regionDivider, sidebarW, lipgloss.Height(header), 1, bodyHeight, nil)
	s.Mouse.HitMap.AddRect(regionPreviewPane, sidebarW+1, lipgloss.Height(header), previewW, bodyHeight, nil)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, preview)
	frame := lipgloss.JoinVertical(lipgloss.Left, header, body, status)

	if s.Dialog.IsOpen() {
		return s.overlayDialog(frame)
	}
	return frame
}

func (s *State) renderHeader() string {
	title := styles.Logo.Render("grove")
	if s.ShowHelp {
		title += "  " + styles.Muted.Render("(? for help)")
	}
	return styles.Header.Width(s.Width).Render(title)
}

func (s *State) renderStatusLine() string {
	if s.Toast.Message != "" {
		style := styles.ToastSuccess
		if s.Toast.IsError {
			style = styles.ToastError
		}
		return style.Width(s.Width).Render(s.Toast.Message)
	}
	hint := "↑/↓ select  enter open  n new  e edit  s start  x stop  r restart  u update  d delete  m merge  ! unsafe  q quit"
	return styles.Footer.Width(s.Width).Render(hint)
}

func (s *State) renderSidebar(width, height int) string {
	if len(s.Workspaces) == 0 && s.pending.refreshInFlight {
		return s.skeleton.View(width)
	}

	var b strings.Builder
	visible := height
	if visible < 1 {
		visible = 1
	}
	for i, ws := range s.Workspaces {
		line := sidebarLine(ws, width)
		if ws.Status == domain.StatusThinking {
			line = thinkingSidebarLine(line, s.spinnerFrame)
		}
		style := styles.ListItemNormal
		if i == s.SelectedIndex {
			if s.Focus == FocusWorkspaceList {
				style = styles.ListItemFocused
			} else {
				style = styles.ListItemSelected
			}
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
		s.Mouse.HitMap.AddRect(regionWorkspaceList, 0, i, width, 1, i)
	}

	scrollbar := ui.RenderScrollbar(ui.ScrollbarParams{
		TotalItems:   len(s.Workspaces),
		ScrollOffset: 0,
		VisibleItems: visible,
		TrackHeight:  height,
	})

	list := styles.PanelNoBorder.Width(width).Height(height).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, scrollbar)
}

func sidebarLine(ws *domain.Workspace, width int) string {
	icon := ws.Status.Icon()
	attn := ""
	if ws.NeedsAttention {
		attn = "!"
	}
	line := fmt.Sprintf("%s %s%s", icon, ws.Name, attn)
	if len(line) > width && width > 1 {
		line = line[:width]
	}
	return line
}

// thinkingSidebarLine appends a braille spinner frame to a Thinking-status
// row, driven off the shared animation counter rather than sidebarLine's
// own state (sidebarLine stays a pure, 2-arg function for its tests).
func thinkingSidebarLine(line string, frame int) string {
	return line + " " + ui.AtFrame(frame).View()
}

func (s *State) renderDivider(height int) string {
	return ui.RenderDivider(height)
}

func (s *State) renderPreview(width, height int) string {
	lines := s.Preview.Lines
	start := 0
	if len(lines) > height {
		start = len(lines) - height - s.Preview.Offset
		if start < 0 {
			start = 0
		}
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines
	if start < end {
		visible = lines[start:end]
	}

	if s.Selection != nil && s.Selection.HasSelection() {
		visible = append([]string(nil), visible...)
		for i, line := range visible {
			if startCol, endCol, ok := s.Selection.ColsForLine(start + i); ok {
				visible[i] = ui.InjectCharacterRangeBackground(line, startCol, endCol)
			}
		}
	}

	tabs := s.renderPreviewTabs()
	body := strings.Join(visible, "\n")
	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		styles.PanelNoBorder.Width(width).Height(height-lipgloss.Height(tabs)).Render(body))
}

func (s *State) renderPreviewTabs() string {
	labels := []string{"agent", "shell", "git"}
	var rendered []string
	for i, l := range labels {
		style := styles.TabTextInactive
		if PreviewTab(i) == s.PreviewTab {
			style = styles.TabTextActive
		}
		rendered = append(rendered, style.Render(l))
	}
	return strings.Join(rendered, "  ")
}

// overlayDialog centers the active dialog's modal box over the base frame
// (spec.md §4.7). Fields are rendered directly against each Dialog's
// bubbles/textinput widgets rather than through a generic field framework —
// Grove's dialog set is small and fixed enough that per-kind text beats an
// abstraction layer.
func (s *State) overlayDialog(base string) string {
	if s.Dialog.Kind == DialogSettings && s.Dialog.SettingsForm != nil {
		box := styles.ModalBox.Render(s.Dialog.SettingsForm.View())
		return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, box,
			lipgloss.WithWhitespaceBackground(styles.BgOverlay))
	}

	title := dialogTitle(s.Dialog.Kind)
	var body strings.Builder
	body.WriteString(styles.ModalTitle.Render(title))
	body.WriteString("\n")
	if s.Dialog.ErrorMessage != "" {
		body.WriteString(styles.StatusBlocked.Render(s.Dialog.ErrorMessage))
		body.WriteString("\n")
	}
	body.WriteString(s.dialogFieldsText())

	if isConfirmDialog(s.Dialog.Kind) {
		body.WriteString("\n\n")
		focusIdx := 0
		if s.Dialog.FocusedField == s.Dialog.FieldCount()-1 {
			focusIdx = 1
		}
		body.WriteString(ui.RenderButtonPair("Confirm", "Cancel", focusIdx, -1))
	}

	box := styles.ModalBox.Render(body.String())
	return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(styles.BgOverlay))
}

// isConfirmDialog reports whether k is a plain confirm/cancel dialog that
// should show a rendered button pair rather than just a text hint.
func isConfirmDialog(k DialogKind) bool {
	switch k {
	case DialogDelete, DialogStop, DialogRestartConfirm, DialogUpdateFromBase, DialogQuitConfirm:
		return true
	default:
		return false
	}
}

func dialogTitle(k DialogKind) string {
	switch k {
	case DialogCreate:
		return "New workspace"
	case DialogEdit:
		return "Edit workspace"
	case DialogDelete:
		return "Delete workspace"
	case DialogStart:
		return "Start agent"
	case DialogStop:
		return "Stop agent"
	case DialogRestartConfirm:
		return "Restart agent"
	case DialogMerge:
		return "Merge workspace"
	case DialogUpdateFromBase:
		return "Update from base"
	case DialogProject:
		return "Projects"
	case DialogSettings:
		return "Settings"
	case DialogQuitConfirm:
		return "Quit grove?"
	default:
		return ""
	}
}

func (s *State) dialogFieldsText() string {
	switch s.Dialog.Kind {
	case DialogCreate:
		return fmt.Sprintf("name: %s\nbranch: %s\nagent: %s\nskip permissions: %v",
			s.Dialog.NameInput.View(), s.Dialog.BranchInput.View(), s.Dialog.Agent, s.Dialog.SkipPermissions)
	case DialogDelete:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("delete %q? also delete branch: %v", name, s.Dialog.DeleteBranchToo)
	case DialogEdit:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("editing %q\nbranch: %s\nagent: %s", name, s.Dialog.BranchInput.View(), s.Dialog.Agent)
	case DialogStart:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("start %q\nagent: %s\nprompt: %s\nskip permissions: %v",
			name, s.Dialog.Agent, s.Dialog.Prompt.View(), s.Dialog.SkipPermissions)
	case DialogStop:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("stop agent for %q?", name)
	case DialogRestartConfirm:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("restart agent for %q?", name)
	case DialogUpdateFromBase:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		mode := "merge"
		if s.Dialog.UpdateMode == lifecycle.UpdateFastForward {
			mode = "fast-forward"
		}
		return fmt.Sprintf("update %q from base (%s)?", name, mode)
	case DialogMerge:
		name := ""
		if s.Dialog.Target != nil {
			name = s.Dialog.Target.Name
		}
		return fmt.Sprintf("merge %q into base? remove workspace: %v  remove branch: %v",
			name, s.Dialog.RemoveWorkspaceAfterMerge, s.Dialog.RemoveBranchAfterMerge)
	case DialogQuitConfirm:
		return "enter to confirm, esc to cancel"
	default:
		return ""
	}
}
