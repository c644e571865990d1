package app

import (
	"time"

	"github.com/jordangarrison/grove/internal/capture"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/lifecycle"
)

// TickMsg is the scheduler's timer message (spec.md §4.1).
type TickMsg struct {
	At time.Time
}

// ToastMsg requests a transient status line message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool
}

// PreviewPollResultMsg carries the result of one capture engine poll,
// tagged with the generation it was started under (spec.md §4.3).
type PreviewPollResultMsg struct {
	Generation uint64
	Result     capture.CaptureResult
}

// RefreshDoneMsg delivers a freshly discovered workspace list.
type RefreshDoneMsg struct {
	Workspaces []*domain.Workspace
	Err        error
}

// CreateDoneMsg signals workspace creation completed. StartConfig carries
// the dialog's prompt/init-command/unsafe fields through to
// handleCreateDone, which uses them when AutoStart is set (spec.md §4.7
// "Create dialog specifics").
type CreateDoneMsg struct {
	WorkspacePath string
	WorkspaceName string
	SetupWarning  string
	AutoStart     bool
	StartConfig   lifecycle.StartConfig
	Err           error
}

// DeleteDoneMsg signals workspace deletion completed.
type DeleteDoneMsg struct {
	WorkspaceName string
	Err           error
}

// StartDoneMsg signals an agent session was spawned.
type StartDoneMsg struct {
	WorkspaceName string
	Err           error
}

// StopDoneMsg signals an agent session was killed.
type StopDoneMsg struct {
	WorkspaceName string
	Err           error
}

// RestartDoneMsg signals an agent session was stopped and relaunched.
type RestartDoneMsg struct {
	WorkspaceName string
	Err           error
}

// MergeDoneMsg signals a merge attempt completed (possibly with a
// conflict, which is not itself an error — spec.md §4.6).
type MergeDoneMsg struct {
	WorkspaceName string
	Conflict      bool
	Message       string
	Err           error
}

// UpdateFromBaseDoneMsg signals an update-from-base attempt completed.
type UpdateFromBaseDoneMsg struct {
	WorkspaceName string
	Err           error
}

// EditDoneMsg signals an edit (agent/base-branch/HEAD switch) completed.
type EditDoneMsg struct {
	WorkspaceName string
	Err           error
}

// ProjectDeleteDoneMsg signals a project was removed from the config.
type ProjectDeleteDoneMsg struct {
	ProjectName string
	Err         error
}

// CursorSessionMismatchMsg signals a cursor capture result arrived for a
// session that is no longer the interactive target (spec.md §4.3).
type CursorSessionMismatchMsg struct {
	Session string
}

// InteractivePasteResultMsg reports the outcome of Alt+v (paste into the
// bound session).
type InteractivePasteResultMsg struct {
	Err         error
	Empty       bool
	SessionDead bool
}

// InputLatencyMsg records the coalesced input-to-preview latency for one
// or more pending forwarded keystrokes (spec.md §4.5).
type InputLatencyMsg struct {
	SeqsResolved int
	LatencyMS    int64
}
