package interactive

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/jordangarrison/grove/internal/multiplexer"
)

// DoubleEscapeDelay is the window within which a second Escape press exits
// interactive mode (spec.md §4.5).
const DoubleEscapeDelay = 150 * time.Millisecond

// MouseFragmentWindow is how long after a real mouse event Grove will
// swallow the next one or two characters that look like leaking mouse-SGR
// bytes (spec.md §4.5, §9 Open Questions: "a few dozen ms").
const MouseFragmentWindow = 30 * time.Millisecond

// PasteBufferThreshold is the payload size above which a paste is
// delivered via the multiplexer's paste-buffer mechanism instead of a key
// stream (spec.md §4.5).
const PasteBufferThreshold = 256

// State is bound to one multiplexer session while the operator types into
// it (spec.md §3's InteractiveState).
type State struct {
	Session    string
	CursorRow  int
	CursorCol  int
	Visible    bool
	PaneWidth  int
	PaneHeight int

	LastKeyTime        time.Time
	BracketedPaste     bool

	escapePressed bool
	escapeTime    time.Time

	lastMouseEventTime time.Time

	nextSeq       uint64
	pendingInputs []pendingInput

	CachedSelection string // last copied text, used as Alt+v fallback source
}

type pendingInput struct {
	seq uint64
	at  time.Time
}

// New returns a State bound to session.
func New(session string) *State {
	return &State{Session: session, LastKeyTime: time.Now()}
}

// NoteMouseEvent records that a real mouse event was just observed, for
// the fragment-filtering gate in ShouldSwallowRune.
func (s *State) NoteMouseEvent() {
	s.lastMouseEventTime = time.Now()
}

// looksLikeMouseFragment reports whether r is one of the leading bytes of
// an SGR/X10 mouse sequence Grove is known to see fragmented.
func looksLikeMouseFragment(r string) bool {
	switch r {
	case "[", "<", "M":
		return true
	}
	return false
}

// ShouldSwallowRune implements spec.md §4.5's mouse-fragment filter: a
// character arriving within MouseFragmentWindow of a real mouse event, and
// that looks like a leading mouse-sequence byte, is dropped rather than
// forwarded.
func (s *State) ShouldSwallowRune(r string) bool {
	if !looksLikeMouseFragment(r) {
		return false
	}
	return time.Since(s.lastMouseEventTime) < MouseFragmentWindow
}

// HandleEscape implements the double-escape exit protocol. Returns true if
// this press should exit interactive mode.
func (s *State) HandleEscape() (exit bool) {
	if s.escapePressed && time.Since(s.escapeTime) < DoubleEscapeDelay {
		s.escapePressed = false
		return true
	}
	s.escapePressed = true
	s.escapeTime = time.Now()
	return false
}

// NextSeq assigns and returns the next monotonic input sequence number
// (spec.md §4.5 input sequence numbering).
func (s *State) NextSeq() uint64 {
	s.nextSeq++
	seq := s.nextSeq
	s.pendingInputs = append(s.pendingInputs, pendingInput{seq: seq, at: time.Now()})
	return seq
}

// ResolveOldestPending pops the oldest pending input (if any) and returns
// its seq and latency since it was sent, for the input_to_preview_ms event
// spec.md §4.5 describes. ok is false if there was nothing pending.
func (s *State) ResolveOldestPending(now time.Time) (seq uint64, latency time.Duration, ok bool) {
	if len(s.pendingInputs) == 0 {
		return 0, 0, false
	}
	oldest := s.pendingInputs[0]
	s.pendingInputs = s.pendingInputs[1:]
	return oldest.seq, now.Sub(oldest.at), true
}

// ClearPending discards all pending input traces, called on exiting
// interactive mode.
func (s *State) ClearPending() {
	s.pendingInputs = nil
}

// Forward sends one keystroke to the bound session via adapter, using
// MapKey's literal/named distinction.
func Forward(ctx context.Context, adapter multiplexer.Adapter, s *State, key string, literal bool) error {
	if literal {
		return adapter.SendLiteral(ctx, s.Session, key)
	}
	return adapter.SendNamed(ctx, s.Session, key)
}

// ForwardPaste delivers payload to the bound session, wrapping it in
// bracketed-paste markers when the pane has bracketed paste enabled, and
// routing large payloads through the paste-buffer mechanism rather than a
// key stream (spec.md §4.5).
func ForwardPaste(ctx context.Context, adapter multiplexer.Adapter, s *State, payload string) error {
	text := payload
	if s.BracketedPaste {
		text = "\x1b[200~" + payload + "\x1b[201~"
	}
	if len(payload) > PasteBufferThreshold {
		return adapter.PasteBuffer(ctx, s.Session, text)
	}
	return adapter.SendLiteral(ctx, s.Session, text)
}

// CopyToClipboard mirrors Alt+c: pushes text to both the cached selection
// slot (used as an Alt+v fallback when no system clipboard is reachable,
// e.g. over SSH) and the system clipboard.
func CopyToClipboard(s *State, text string) error {
	s.CachedSelection = text
	return clipboard.WriteAll(text)
}

// PasteFromClipboard returns the text Alt+v should deliver: the system
// clipboard if reachable, else the cached selection.
func PasteFromClipboard(s *State) string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	return s.CachedSelection
}
