package capture

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// SelectionPoint is a position in the preview buffer as (line, visual
// column). Negative values mark an unset point; the -1 "end of line"
// column appears only in ColsForLine's returned end column.
type SelectionPoint struct {
	Line int
	Col  int
}

func (p SelectionPoint) valid() bool { return p.Line >= 0 && p.Col >= 0 }

func (p SelectionPoint) before(other SelectionPoint) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// Selection tracks a mouse-drag text selection over preview lines
// (spec.md §4.8, testable property 7: selection is grapheme-aware, never
// splits a multi-cell cluster).
type Selection struct {
	Start, End, anchor SelectionPoint
	Active             bool
}

// NewSelection returns an empty Selection.
func NewSelection() *Selection {
	return &Selection{Start: SelectionPoint{-1, -1}, End: SelectionPoint{-1, -1}, anchor: SelectionPoint{-1, -1}}
}

// Clear resets the selection to empty.
func (s *Selection) Clear() {
	s.Active = false
	s.Start = SelectionPoint{-1, -1}
	s.End = SelectionPoint{-1, -1}
	s.anchor = SelectionPoint{-1, -1}
}

// HasSelection reports whether a non-empty range is selected.
func (s *Selection) HasSelection() bool {
	return s.Start.valid() && s.End.valid()
}

// LineSelected reports whether line idx falls within the selected range.
func (s *Selection) LineSelected(idx int) bool {
	if !s.HasSelection() {
		return false
	}
	lo, hi := s.Start.Line, s.End.Line
	if lo > hi {
		lo, hi = hi, lo
	}
	return idx >= lo && idx <= hi
}

// ColAtX maps a visual X offset within a line to the nearest grapheme
// cluster's starting column, never landing mid-cluster.
func ColAtX(line string, x int) int {
	if x < 0 {
		return 0
	}
	expanded := ansi.Strip(line)
	gr := uniseg.NewGraphemes(expanded)
	cum := 0
	last := 0
	has := false
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		has = true
		if x >= cum && x < cum+w {
			return cum
		}
		last = cum
		cum += w
	}
	if !has {
		return 0
	}
	if x >= cum {
		return last
	}
	return x
}

// StartDrag begins a selection anchored at (line, col); the selection
// does not activate until the first Drag call (which activates it even at
// the anchor point), matching the teacher's click-without-motion-clears-
// selection behavior.
func (s *Selection) StartDrag(line, col int) {
	s.Active = false
	s.Start = SelectionPoint{-1, -1}
	s.End = SelectionPoint{-1, -1}
	s.anchor = SelectionPoint{line, col}
}

// Drag extends the selection to (line, col), ordering Start/End by
// document position regardless of drag direction.
func (s *Selection) Drag(line, col int) {
	current := SelectionPoint{line, col}
	if !s.Start.valid() {
		s.Start = s.anchor
		s.End = s.anchor
	}
	s.Active = true
	if current.before(s.anchor) {
		s.Start, s.End = current, s.anchor
	} else {
		s.Start, s.End = s.anchor, current
	}
}

// Finish ends an active drag. A click with no motion clears the
// selection rather than leaving a zero-width one.
func (s *Selection) Finish() {
	if !s.Start.valid() {
		s.Clear()
		return
	}
	s.Active = false
}

// ColsForLine returns the visual column range [start, end] (inclusive) on
// buffer line idx that renderPreview should highlight, or ok=false when
// idx falls outside the selection. endCol of -1 means "to end of line"
// (spec.md §4.8, testable property 7).
func (s *Selection) ColsForLine(idx int) (startCol, endCol int, ok bool) {
	if !s.LineSelected(idx) {
		return 0, 0, false
	}
	lo, hi := s.Start, s.End
	switch {
	case lo.Line == hi.Line:
		return lo.Col, hi.Col, true
	case idx == lo.Line:
		return lo.Col, -1, true
	case idx == hi.Line:
		return 0, hi.Col, true
	default:
		return 0, -1, true
	}
}

// ExtractText returns the selected text from lines (already tab-expanded,
// one entry per buffer line), stripped of ANSI sequences.
func (s *Selection) ExtractText(lines []string) string {
	if !s.HasSelection() || len(lines) == 0 {
		return ""
	}
	startLine, endLine := s.Start.Line, s.End.Line
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}
	if endLine < startLine {
		return ""
	}

	out := make([]string, endLine-startLine+1)
	for i := startLine; i <= endLine; i++ {
		out[i-startLine] = ansi.Strip(lines[i])
	}

	if startLine == endLine {
		out[0] = visualSubstring(out[0], s.Start.Col, s.End.Col+1)
	} else {
		out[0] = visualSubstring(out[0], s.Start.Col, -1)
		last := len(out) - 1
		out[last] = visualSubstring(out[last], 0, s.End.Col+1)
	}
	return strings.Join(out, "\n")
}

// visualSubstring returns the substring of s spanning visual columns
// [start, end) (end == -1 means to end of line), rounding outward so a
// multi-cell grapheme cluster is never split.
func visualSubstring(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	var sb strings.Builder
	cum := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if end >= 0 && cum >= end {
			break
		}
		if cum+w > start || cum >= start {
			sb.WriteString(cluster)
		}
		cum += w
	}
	return sb.String()
}
