// Package app implements Grove's central Model-Update-View state machine
// (spec.md §3/§4): the workspace list, dialog machine, preview/interactive
// state, and the tick scheduler that drives polling cadence.
package app

import (
	"time"

	"github.com/jordangarrison/grove/internal/capture"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/eventlog"
	"github.com/jordangarrison/grove/internal/interactive"
	"github.com/jordangarrison/grove/internal/keymap"
	"github.com/jordangarrison/grove/internal/lifecycle"
	"github.com/jordangarrison/grove/internal/mouse"
	"github.com/jordangarrison/grove/internal/multiplexer"
	"github.com/jordangarrison/grove/internal/ui"
)

// Focus is which half of the split view receives list-navigation keys
// (spec.md §3, AppState).
type Focus int

const (
	FocusWorkspaceList Focus = iota
	FocusPreview
)

// Mode is the coarse input-routing mode.
type Mode int

const (
	ModeList Mode = iota
	ModePreview
)

// PreviewTab selects which session a workspace's preview pane targets.
type PreviewTab int

const (
	TabAgent PreviewTab = iota
	TabShell
	TabGit
)

func (t PreviewTab) Next() PreviewTab { return (t + 1) % 3 }
func (t PreviewTab) Prev() PreviewTab { return (t + 2) % 3 }

// pendingFlags tracks the "at most one in-flight task per class" discipline
// (spec.md §3, Pending-task flags).
type pendingFlags struct {
	refreshInFlight        bool
	createInFlight         bool
	editInFlight           bool
	startInFlight          bool
	stopInFlight           bool
	restartInFlight        bool
	mergeInFlight          bool
	updateFromBaseInFlight bool
	projectDeleteInFlight  bool
	previewPollInFlight    bool
	previewPollRequested   bool
}

// ResizeVerify tracks the single post-resize verification round (spec.md
// §4.3, "Pending resize verification").
type ResizeVerify struct {
	Pending      bool
	Session      string
	ExpectedW    int
	ExpectedH    int
	RetriedOnce  bool
}

// State is Grove's root application state (spec.md §3 AppState, merged
// with PreviewState/InteractiveState/dialog/pending-task state — kept as
// one struct the way the teacher's Model aggregates its own UI state).
type State struct {
	Workspaces    []*domain.Workspace
	SelectedIndex int
	Focus         Focus
	Mode          Mode
	PreviewTab    PreviewTab

	Dialog Dialog

	Preview     *capture.PreviewState
	Selection   *capture.Selection
	Interactive *interactive.State

	pending      pendingFlags
	deleteQueue  lifecycle.DeleteQueue
	resizeVerify ResizeVerify

	Width, Height   int
	SidebarWidthPct int
	ShowHelp        bool
	DraggingDivider bool

	Toast        Toast
	LastError    error

	Config   *config.Config
	Projects []domain.Project

	Adapter multiplexer.Adapter
	Engine  *capture.Engine
	Events  *eventlog.Log
	Keymap  *keymap.Registry
	Mouse   *mouse.Handler

	NextTickDueAt      time.Time
	NextTickIntervalMS int

	AppStartTS time.Time
	Ready      bool

	// spinnerFrame drives every braille-spinner/skeleton-shimmer render
	// this tick from a single shared counter (spec.md §4.8), advanced once
	// per HandleTick rather than each component ticking independently.
	spinnerFrame int

	// dragKind is reserved for the hit region that started the in-flight
	// mouse drag (mouse.Handler clears its own DragRegion before reporting
	// ActionDragEnd); nothing assigns it, so it is always "".
	dragKind string

	// previewRect/previewLineStart are reserved for the preview body's
	// screen geometry, for mapping a click/drag's (x, y) back to a
	// (buffer line, visual column); nothing assigns them, including View.
	previewRect      mouse.Rect
	previewLineStart int

	// skeleton is the sidebar's loading placeholder, shown while the
	// first refresh is in flight and no workspaces have been discovered
	// yet (spec.md §4.8).
	skeleton ui.Skeleton
}

// Toast is a transient status line message (spec.md §4.9 toast_shown).
type Toast struct {
	Message string
	Expiry  time.Time
	IsError bool
}

// New constructs initial application state from a loaded config and a
// chosen multiplexer adapter.
func New(cfg *config.Config, adapter multiplexer.Adapter, events *eventlog.Log) *State {
	projects := make([]domain.Project, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		projects = append(projects, p.ToDomain())
	}

	s := &State{
		Focus:           FocusWorkspaceList,
		Mode:            ModeList,
		PreviewTab:      TabAgent,
		Preview:         capture.NewPreviewState(),
		Selection:       capture.NewSelection(),
		Config:          cfg,
		Projects:        projects,
		Adapter:         adapter,
		Engine:          capture.NewEngine(adapter),
		Events:          events,
		Keymap:          keymap.NewRegistry(),
		Mouse:           mouse.NewHandler(),
		SidebarWidthPct: cfg.SidebarWidthPct,
		skeleton:        ui.NewSkeleton(6, nil),
	}
	return s
}

// Selected returns the currently selected workspace, or nil if the list
// is empty.
func (s *State) Selected() *domain.Workspace {
	if len(s.Workspaces) == 0 {
		return nil
	}
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Workspaces) {
		return nil
	}
	return s.Workspaces[s.SelectedIndex]
}

// ClampSelection keeps SelectedIndex within [0, len) after the list
// shrinks or grows, saturating to 0 when empty (spec.md §3 AppState
// invariant).
func (s *State) ClampSelection() {
	if len(s.Workspaces) == 0 {
		s.SelectedIndex = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Workspaces) {
		s.SelectedIndex = len(s.Workspaces) - 1
	}
}

// MoveSelection changes SelectedIndex by delta, clamping at the list
// bounds, and bumps the poll generation since the live capture target
// may have changed.
func (s *State) MoveSelection(delta int) {
	if len(s.Workspaces) == 0 {
		return
	}
	s.SelectedIndex += delta
	s.ClampSelection()
	s.Engine.BumpGeneration()
	s.Preview.AutoScroll = true
	s.Preview.Offset = 0
}

// ShowToast sets a transient status message (spec.md §4.9 toast_shown).
func (s *State) ShowToast(msg string, d time.Duration) {
	s.Toast = Toast{Message: msg, Expiry: time.Now().Add(d)}
	if s.Events != nil {
		s.Events.Append("toast_shown", map[string]string{"message": msg})
	}
}

// ShowErrorToast sets a transient error status message.
func (s *State) ShowErrorToast(msg string, d time.Duration) {
	s.Toast = Toast{Message: msg, Expiry: time.Now().Add(d), IsError: true}
	if s.Events != nil {
		s.Events.Append("toast_shown", map[string]any{"message": msg, "is_error": true})
	}
}

// ClearExpiredToast clears the toast once its expiry has passed.
func (s *State) ClearExpiredToast() {
	if s.Toast.Message != "" && time.Now().After(s.Toast.Expiry) {
		s.Toast = Toast{}
	}
}

// SidebarInnerWidth returns the sidebar column width in cells for the
// current viewport and ratio.
func (s *State) SidebarInnerWidth() int {
	w := s.Width * s.SidebarWidthPct / 100
	if w < 1 {
		w = 1
	}
	return w
}
