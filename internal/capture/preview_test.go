package capture

import "testing"

func TestStyleCarryAcrossLines(t *testing.T) {
	var carry StyleCarry
	lines := []string{
		"\x1b[31mred line",
		"still red",
		"\x1b[0mreset here",
		"plain",
	}
	out := carry.ApplyToLines(lines)
	if out[0] != "\x1b[31mred line" {
		t.Fatalf("line0 = %q", out[0])
	}
	if out[1] != "\x1b[31mstill red" {
		t.Fatalf("expected carried SGR on line1, got %q", out[1])
	}
	if out[2] != "\x1b[31m\x1b[0mreset here" {
		t.Fatalf("line2 = %q", out[2])
	}
	if out[3] != "plain" {
		t.Fatalf("expected no carry after reset, got %q", out[3])
	}
}

func TestApplyCaptureChangedBits(t *testing.T) {
	p := NewPreviewState()

	changedRaw, changedCleaned := p.ApplyCapture("hello\x1b[?1000h\x1b[<35;192;47M")
	if !changedRaw || !changedCleaned {
		t.Fatalf("first capture: changedRaw=%v changedCleaned=%v, want true,true", changedRaw, changedCleaned)
	}

	changedRaw, changedCleaned = p.ApplyCapture("hello\x1b[?1000l")
	if !changedRaw {
		t.Fatalf("second capture: changedRaw=%v, want true", changedRaw)
	}
	if changedCleaned {
		t.Fatalf("second capture: changedCleaned=%v, want false (E3)", changedCleaned)
	}
}

func TestInferStatusPriorityOrder(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Approve command? [y/n]", "waiting"},
		{"Thinking...", "thinking"},
		{"Error: build failed", "error"},
		{"Task completed", "done"},
		{"compiling package foo", "active"},
	}
	for _, c := range cases {
		got := InferStatus(c.text, true)
		if got.String() != c.want {
			t.Errorf("InferStatus(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestInferStatusWaitingBeatsThinking(t *testing.T) {
	// A prompt that also contains a spinner-like word should still match
	// the higher-priority waiting rule first (spec.md §4.4 priority order).
	got := InferStatus("thinking... Approve command? [y/n]", true)
	if got.String() != "waiting" {
		t.Fatalf("got %s, want waiting", got)
	}
}
