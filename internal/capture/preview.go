// Package capture implements Grove's preview/polling subsystem: adaptive
// capture cadence, single-writer discipline, generation-tracked async
// results, ANSI style carryover, and status inference from captured pane
// text (spec.md §4.3, §4.4).
package capture

import (
	"context"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/multiplexer"
)

// PreviewState is the rolling buffer for the currently-live-captured
// workspace pane (spec.md §3).
type PreviewState struct {
	Lines       []string // plain, ANSI-stripped
	RenderLines []string // raw, with ANSI preserved
	Offset      int       // rows scrolled back from tail
	AutoScroll  bool

	styleCarry StyleCarry
	lastRawHash    uint64
	lastCleanHash  uint64
}

// NewPreviewState returns a PreviewState with auto-scroll enabled, the
// default for a freshly selected workspace.
func NewPreviewState() *PreviewState {
	return &PreviewState{AutoScroll: true}
}

// ApplyCapture absorbs one capture-pane result into the preview buffer,
// carrying ANSI style across the capture boundary, and returns the two
// changedness bits spec.md §4.3 and testable-property E3 describe.
func (p *PreviewState) ApplyCapture(raw string) (changedRaw, changedCleaned bool) {
	rawHash := xxhash.Sum64String(raw)
	changedRaw = rawHash != p.lastRawHash
	p.lastRawHash = rawHash

	cleanedRaw := Clean(raw)
	cleanHash := xxhash.Sum64String(cleanedRaw)
	changedCleaned = cleanHash != p.lastCleanHash
	p.lastCleanHash = cleanHash

	// The capture's final newline terminates its last row; it does not
	// start another one.
	lines := SplitLines(strings.TrimSuffix(cleanedRaw, "\n"))
	p.RenderLines = p.styleCarry.ApplyToLines(lines)
	p.Lines = make([]string, len(lines))
	for i, l := range p.RenderLines {
		p.Lines[i] = StripAll(l)
	}
	return changedRaw, changedCleaned
}

// Engine runs the preview/capture subsystem for one AppState: it owns the
// poll generation counter and the single-writer in-flight guard described
// in spec.md §4.1/§4.3 and testable properties 2 and 3.
type Engine struct {
	Adapter multiplexer.Adapter

	generation      uint64
	pollInFlight    bool
	pollRequested   bool
	activityWindow  []bool // recent changed_cleaned bits, for poll-interval decay
}

// NewEngine constructs a capture Engine bound to the given multiplexer
// adapter.
func NewEngine(adapter multiplexer.Adapter) *Engine {
	return &Engine{Adapter: adapter}
}

// BumpGeneration increments and returns the new poll generation. Called
// whenever the selected workspace changes or an in-flight poll's target
// becomes irrelevant (spec.md §3, §4.3).
func (e *Engine) BumpGeneration() uint64 {
	e.generation++
	return e.generation
}

// Generation returns the current poll generation.
func (e *Engine) Generation() uint64 { return e.generation }

// activityWindowSize bounds how many recent changed_cleaned bits feed the
// poll-interval decay (spec.md §4.1 "whether output is changing").
const activityWindowSize = 5

// NoteActivity records one tick's changed_cleaned bit.
func (e *Engine) NoteActivity(changed bool) {
	e.activityWindow = append(e.activityWindow, changed)
	if len(e.activityWindow) > activityWindowSize {
		e.activityWindow = e.activityWindow[len(e.activityWindow)-activityWindowSize:]
	}
}

// RecentlyChanging reports whether any of the last few ticks' captures
// changed the cleaned output.
func (e *Engine) RecentlyChanging() bool {
	for _, c := range e.activityWindow {
		if c {
			return true
		}
	}
	return false
}

// TryStartPoll implements the single-writer / coalescing discipline: it
// returns true if the caller may start a new poll now, or marks
// pollRequested and returns false if one is already in flight.
func (e *Engine) TryStartPoll() bool {
	if e.pollInFlight {
		e.pollRequested = true
		return false
	}
	e.pollInFlight = true
	return true
}

// FinishPoll marks the in-flight poll complete and reports whether a
// coalesced re-poll was requested while it ran.
func (e *Engine) FinishPoll() (rerunRequested bool) {
	e.pollInFlight = false
	rerunRequested = e.pollRequested
	e.pollRequested = false
	return rerunRequested
}

// LiveTarget chooses this tick's live-capture session per spec.md §4.3
// rule 1, or "" if no live pane applies.
func LiveTarget(w *domain.Workspace, previewTab int) (session string, includeEscapeSequences bool) {
	const (
		tabAgent = iota
		tabShell
		tabGit
	)
	switch previewTab {
	case tabAgent:
		if w.Status == domain.StatusActive || w.Status == domain.StatusThinking ||
			w.Status == domain.StatusWaiting || w.Status == domain.StatusDone ||
			w.Status == domain.StatusError {
			return w.AgentSession, true
		}
	case tabShell:
		if w.ShellSession != "" {
			return w.ShellSession, true
		}
	case tabGit:
		if w.GitSession != "" {
			return w.GitSession, true
		}
	}
	return "", false
}

// StatusPollTargets implements spec.md §4.3 rule 2: every workspace whose
// status indicates a possibly-running agent and whose session is not
// already the live target this tick.
func StatusPollTargets(workspaces []*domain.Workspace, liveSession string) []*domain.Workspace {
	var out []*domain.Workspace
	for _, w := range workspaces {
		switch w.Status {
		case domain.StatusActive, domain.StatusThinking, domain.StatusWaiting, domain.StatusDone, domain.StatusError:
			if w.AgentSession != liveSession {
				out = append(out, w)
			}
		}
	}
	return out
}

// CaptureResult is the payload of one completed poll (spec.md §4.3).
type CaptureResult struct {
	Generation uint64

	LiveSession   string
	LiveIncludeEsc bool
	LiveOutput    string
	LiveErr       error

	CursorSession string
	Cursor        multiplexer.CursorReport
	CursorErr     error

	StatusCaptures []WorkspaceStatusCapture
}

// WorkspaceStatusCapture is one non-live workspace's background status
// poll result.
type WorkspaceStatusCapture struct {
	Session string
	Output  string
	Err     error
}

// RunPoll performs one tick's full capture round: the live pane, its
// cursor, and every background status target, all tagged with the given
// generation. It is the function a tea.Cmd closure invokes on the task
// pool (spec.md §5: the reducer never blocks on I/O).
func (e *Engine) RunPoll(ctx context.Context, generation uint64, liveSession string, liveIncludeEsc bool, statusTargets []*domain.Workspace) CaptureResult {
	result := CaptureResult{Generation: generation}

	if liveSession != "" {
		out, err := e.Adapter.CapturePane(ctx, liveSession, domain.LiveCaptureScrollback, liveIncludeEsc)
		result.LiveSession = liveSession
		result.LiveIncludeEsc = liveIncludeEsc
		result.LiveOutput = out
		result.LiveErr = err

		if err == nil {
			result.CursorSession = liveSession
			result.Cursor, result.CursorErr = e.Adapter.CaptureCursor(ctx, liveSession)
		}
	}

	for _, w := range statusTargets {
		out, err := e.Adapter.CapturePane(ctx, w.AgentSession, domain.LiveCaptureScrollback, false)
		result.StatusCaptures = append(result.StatusCaptures, WorkspaceStatusCapture{
			Session: w.AgentSession,
			Output:  out,
			Err:     err,
		})
	}

	return result
}

// PollInterval implements spec.md §4.1's adaptive tick pacing: interactive
// typing and in-flight polls force a short interval; idle states relax to
// seconds.
func PollInterval(interactiveActive, pollInFlight bool, timeSinceLastKey time.Duration, outputChanging bool) time.Duration {
	switch {
	case interactiveActive && timeSinceLastKey < 2*time.Second:
		return 15 * time.Millisecond
	case pollInFlight:
		return 20 * time.Millisecond
	case outputChanging:
		return 100 * time.Millisecond
	case timeSinceLastKey < 10*time.Second:
		return 500 * time.Millisecond
	default:
		return 2 * time.Second
	}
}
