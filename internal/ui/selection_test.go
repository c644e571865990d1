package ui

import (
	"strings"
	"testing"
)

// --- ExpandTabs tests ---

func TestExpandTabs_NoTabs(t *testing.T) {
	input := "hello world"
	got := ExpandTabs(input, 4)
	if got != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestExpandTabs_SingleTab(t *testing.T) {
	input := "\thello"
	got := ExpandTabs(input, 4)
	if got != "    hello" {
		t.Errorf("got %q, want %q", got, "    hello")
	}
}

func TestExpandTabs_MidTab(t *testing.T) {
	input := "ab\tcd"
	got := ExpandTabs(input, 4)
	// "ab" is 2 chars, tab expands to 2 spaces (4 - 2%4 = 2)
	if got != "ab  cd" {
		t.Errorf("got %q, want %q", got, "ab  cd")
	}
}

func TestExpandTabs_ZeroWidth(t *testing.T) {
	input := "\thello"
	got := ExpandTabs(input, 0)
	if got != input {
		t.Errorf("zero tabWidth should return unchanged, got %q", got)
	}
}

// --- VisualSubstring tests ---

func TestVisualSubstring_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		start    int
		end      int
		expected string
	}{
		{"full word", "hello world", 6, 11, "world"},
		{"mid-word", "hello world", 2, 7, "llo w"},
		{"to end", "hello", 2, -1, "llo"},
		{"from start", "hello", 0, 3, "hel"},
		{"single char", "hello", 2, 3, "l"},
		{"empty string", "", 0, 5, ""},
		{"start beyond len", "hello", 10, 15, ""},
	}

	for _, tt := range tests {
		got := VisualSubstring(tt.input, tt.start, tt.end)
		if got != tt.expected {
			t.Errorf("%s: VisualSubstring(%q, %d, %d) = %q, want %q",
				tt.name, tt.input, tt.start, tt.end, got, tt.expected)
		}
	}
}

func TestVisualSubstring_WithANSI(t *testing.T) {
	input := "\x1b[31mhello\x1b[0m world"
	got := VisualSubstring(input, 6, 11)
	if got != "world" {
		t.Errorf("ANSI: VisualSubstring = %q, want %q", got, "world")
	}

	got = VisualSubstring(input, 0, 5)
	if got != "hello" {
		t.Errorf("ANSI within: VisualSubstring = %q, want %q", got, "hello")
	}
}

func TestVisualSubstring_MultiWidth(t *testing.T) {
	input := "A\U0001f389B" // A + party popper emoji (2 cols) + B

	got := VisualSubstring(input, 1, 3)
	if got != "\U0001f389" {
		t.Errorf("emoji: VisualSubstring(%q, 1, 3) = %q, want %q", input, got, "\U0001f389")
	}

	got = VisualSubstring(input, 0, -1)
	if got != "A\U0001f389B" {
		t.Errorf("all: VisualSubstring(%q, 0, -1) = %q, want %q", input, got, "A\U0001f389B")
	}
}

// --- InjectCharacterRangeBackground tests ---

func TestInjectCharacterRangeBackground_FullLine(t *testing.T) {
	input := "hello world"
	result := InjectCharacterRangeBackground(input, 0, -1)
	expected := InjectSelectionBackground(input)
	if result != expected {
		t.Errorf("full line: got %q, want %q", result, expected)
	}
}

func TestInjectCharacterRangeBackground_Partial(t *testing.T) {
	input := "hello world"
	result := InjectCharacterRangeBackground(input, 6, 10)

	selBg := GetSelectionBgANSI()
	if !strings.Contains(result, selBg) {
		t.Error("partial: result should contain selection background ANSI")
	}
	if !strings.Contains(result, "\x1b[49m") {
		t.Error("partial: result should contain background-only ANSI reset")
	}
}

func TestInjectCharacterRangeBackground_EmptyString(t *testing.T) {
	result := InjectCharacterRangeBackground("", 0, 5)
	if result != "" {
		t.Errorf("empty: got %q, want empty", result)
	}
}

// --- VisualColAtRelativeX tests ---

func TestVisualColAtRelativeX_PlainText(t *testing.T) {
	col := VisualColAtRelativeX("hello world", 5)
	if col != 5 {
		t.Errorf("plain text: col = %d, want 5", col)
	}
}

func TestVisualColAtRelativeX_BeyondEnd(t *testing.T) {
	col := VisualColAtRelativeX("hello", 100)
	// Should clamp to last char (col 4)
	if col != 4 {
		t.Errorf("beyond end: col = %d, want 4", col)
	}
}

func TestVisualColAtRelativeX_EmptyLine(t *testing.T) {
	col := VisualColAtRelativeX("", 5)
	if col != 0 {
		t.Errorf("empty line: col = %d, want 0", col)
	}
}

func TestVisualColAtRelativeX_NegativeX(t *testing.T) {
	col := VisualColAtRelativeX("hello", -5)
	if col != 0 {
		t.Errorf("negative X: col = %d, want 0", col)
	}
}

func TestVisualColAtRelativeX_MultiWidth(t *testing.T) {
	// "A" at col 0, emoji at cols 1-2, "B" at col 3
	line := "A\U0001f389B"
	expanded := ExpandTabs(line, 4) // no tabs, just use as-is

	// X=1 should snap to col 1 (start of emoji)
	col := VisualColAtRelativeX(expanded, 1)
	if col != 1 {
		t.Errorf("emoji start: col = %d, want 1", col)
	}

	// X=2 should snap to col 1 (within emoji, snaps to start)
	col = VisualColAtRelativeX(expanded, 2)
	if col != 1 {
		t.Errorf("emoji mid: col = %d, want 1", col)
	}

	// X=3 should be col 3 (the "B")
	col = VisualColAtRelativeX(expanded, 3)
	if col != 3 {
		t.Errorf("after emoji: col = %d, want 3", col)
	}
}

func TestVisualColAtRelativeX_ExactEnd(t *testing.T) {
	// "hello" occupies cols 0-4, cumWidth=5
	// X=4 is the last char
	col := VisualColAtRelativeX("hello", 4)
	if col != 4 {
		t.Errorf("exact last char: col = %d, want 4", col)
	}
}
