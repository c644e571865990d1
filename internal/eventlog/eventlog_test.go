package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndRecent(t *testing.T) {
	l := New()
	l.Append("dialog_opened", map[string]string{"dialog": "create"})
	l.Append("dialog_confirmed", map[string]string{"dialog": "create"})

	events := l.Recent(10)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != "dialog_opened" || events[1].Kind != "dialog_confirmed" {
		t.Fatalf("unexpected order: %+v", events)
	}
	for _, ev := range events {
		if ev.ID == "" {
			t.Error("expected non-empty event ID")
		}
	}
}

func TestCountKind(t *testing.T) {
	l := New()
	l.Append("stale_result_dropped", nil)
	l.Append("tick/skipped", map[string]string{"reason": "not_due"})
	l.Append("stale_result_dropped", nil)

	if got := l.CountKind("stale_result_dropped"); got != 2 {
		t.Fatalf("CountKind = %d, want 2", got)
	}
}

func TestRingCapacityBounded(t *testing.T) {
	l := New()
	l.ringCap = 3
	for i := 0; i < 10; i++ {
		l.Append("tick/skipped", nil)
	}
	if got := len(l.Recent(100)); got != 3 {
		t.Fatalf("ring should cap at 3, got %d", got)
	}
}

func TestOpenPersistsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Append("agent_started", map[string]string{"workspace": "feature-a"})
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"agent_started"`) {
		t.Fatalf("expected persisted agent_started event, got %q", data)
	}

	l2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l2.Close()
}
