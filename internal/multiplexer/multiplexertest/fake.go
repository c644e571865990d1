// Package multiplexertest provides an in-memory multiplexer.Adapter fake
// for use by other packages' tests.
package multiplexertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jordangarrison/grove/internal/multiplexer"
)

// Fake is an in-memory Adapter used by tests across the capture,
// interactive, and lifecycle packages. It records every call so tests can
// assert on write ordering (spec.md E1/E2 scenarios and the single-writer
// property).
type Fake struct {
	mu sync.Mutex

	Calls []string

	Sessions map[string]bool
	Captures map[string]string // session -> next capture-pane result
	Cursors  map[string]multiplexer.CursorReport
	Errors   map[string]error // call signature -> error to return
}

// NewFake returns a ready-to-use Fake adapter.
func NewFake() *Fake {
	return &Fake{
		Sessions: map[string]bool{},
		Captures: map[string]string{},
		Cursors:  map[string]multiplexer.CursorReport{},
		Errors:   map[string]error{},
	}
}

func (f *Fake) record(call string) {
	f.Calls = append(f.Calls, call)
}

func (f *Fake) Kind() multiplexer.Kind { return multiplexer.Tmux }

func (f *Fake) SpawnDetachedSession(ctx context.Context, name, cwd string, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("spawn %s %s %dx%d", name, cwd, width, height))
	if err := f.Errors["spawn:"+name]; err != nil {
		return err
	}
	f.Sessions[name] = true
	return nil
}

func (f *Fake) SendLiteral(ctx context.Context, session, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("send-literal %s %q", session, text))
	return f.Errors["send:"+session]
}

func (f *Fake) SendNamed(ctx context.Context, session, keyName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("send-named %s %s", session, keyName))
	return f.Errors["send:"+session]
}

func (f *Fake) PasteBuffer(ctx context.Context, session, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("paste %s (%d bytes)", session, len(text)))
	return f.Errors["paste:"+session]
}

func (f *Fake) CapturePane(ctx context.Context, session string, scrollback int, includeEscapeSequences bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("capture %s scrollback=%d esc=%v", session, scrollback, includeEscapeSequences))
	if err := f.Errors["capture:"+session]; err != nil {
		return "", err
	}
	return f.Captures[session], nil
}

func (f *Fake) CaptureCursor(ctx context.Context, session string) (multiplexer.CursorReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("cursor %s", session))
	if err := f.Errors["cursor:"+session]; err != nil {
		return multiplexer.CursorReport{}, err
	}
	return f.Cursors[session], nil
}

func (f *Fake) ResizeWindow(ctx context.Context, session string, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("resize %s %dx%d", session, width, height))
	return f.Errors["resize:"+session]
}

func (f *Fake) KillSession(ctx context.Context, session string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("kill %s", session))
	delete(f.Sessions, session)
	return f.Errors["kill:"+session]
}

func (f *Fake) ListRunningSessions(ctx context.Context) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list-sessions")
	out := map[string]bool{}
	for k, v := range f.Sessions {
		out[k] = v
	}
	return out, nil
}
