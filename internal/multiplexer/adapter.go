// Package multiplexer is the sole writer of state-mutating terminal
// multiplexer commands. Grove treats the multiplexer (tmux or zellij) as a
// shared mutable resource outside the process; every method here either
// issues one external command or is a read the rest of the runtime treats
// as idempotent.
//
// Runtime code outside bootstrap must never call ListRunningSessions — that
// is the single enumeration/"status" escape hatch, and calling it on a hot
// path breaks the single-writer invariant Grove's tests enforce by
// source/trace assertion.
package multiplexer

import "context"

// Kind identifies which multiplexer backend an Adapter talks to.
type Kind string

const (
	Tmux   Kind = "tmux"
	Zellij Kind = "zellij"
)

// CursorReport is the five-field result of a cursor/pane-geometry query.
type CursorReport struct {
	Visible    bool
	Col        int
	Row        int
	PaneWidth  int
	PaneHeight int
}

// Adapter is the narrow interface the rest of Grove programs against. Both
// TmuxAdapter and ZellijAdapter implement it; nothing above this package
// branches on which backend is in use.
type Adapter interface {
	Kind() Kind

	// SpawnDetachedSession creates session `name` rooted at `cwd` and sizes
	// it to (width, height). Returns nil if the session already exists
	// (spec.md §7: duplicate-session is treated as success).
	SpawnDetachedSession(ctx context.Context, name, cwd string, width, height int) error

	// SendLiteral sends text exactly, with no key-name translation.
	SendLiteral(ctx context.Context, session, text string) error

	// SendNamed sends a symbolic key such as "Enter", "Escape", "BTab", "C-c".
	SendNamed(ctx context.Context, session, keyName string) error

	// PasteBuffer delivers a (possibly large/multi-line) payload via the
	// multiplexer's buffer mechanism rather than a key stream.
	PasteBuffer(ctx context.Context, session, text string) error

	// CapturePane reads rendered pane contents. includeEscapeSequences=true
	// yields a stream carrying ANSI SGR and control sequences.
	CapturePane(ctx context.Context, session string, scrollback int, includeEscapeSequences bool) (string, error)

	// CaptureCursor queries cursor position and pane geometry.
	CaptureCursor(ctx context.Context, session string) (CursorReport, error)

	// ResizeWindow explicitly resizes a session's window.
	ResizeWindow(ctx context.Context, session string, width, height int) error

	// KillSession tears a session down. Missing-session is not an error.
	KillSession(ctx context.Context, session string) error

	// ListRunningSessions enumerates live session names. Bootstrap-only.
	ListRunningSessions(ctx context.Context) (map[string]bool, error)
}

// New constructs the Adapter for the requested backend.
func New(kind Kind) Adapter {
	switch kind {
	case Zellij:
		return &ZellijAdapter{}
	default:
		return &TmuxAdapter{}
	}
}

// HistoryLimit is the scrollback history tmux is configured with on spawn
// (spec.md §4.2). Zellij has no equivalent knob; ZellijAdapter no-ops it.
const HistoryLimit = 10000
