package capture

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sgrResetPattern matches an SGR reset: CSI 0 m, CSI m, or CSI ; m forms.
var sgrResetPattern = regexp.MustCompile(`\x1b\[[0;]*m`)

// sgrPattern matches any SGR sequence (CSI ... m) so carried style can be
// tracked without a full terminal-state machine.
var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StyleCarry tracks the last-seen SGR sequence so it can be re-applied at
// the start of the next line/capture, per spec.md §4.3/§4.9 ("ANSI style
// carryover") and testable property 6.
type StyleCarry struct {
	active string // the most recent non-reset SGR sequence seen, "" if reset
}

// Apply prepends the carried style to content (so a renderer sees the style
// in effect from the very first cell) and returns the prefixed content,
// then updates the carry state by scanning content for further SGR sequences.
func (c *StyleCarry) Apply(content string) string {
	prefixed := content
	if c.active != "" {
		prefixed = c.active + content
	}
	c.update(content)
	return prefixed
}

// update scans content for SGR sequences in order and records the last one
// seen, treating any reset sequence as clearing the carry.
func (c *StyleCarry) update(content string) {
	matches := sgrPattern.FindAllString(content, -1)
	for _, m := range matches {
		if sgrResetPattern.MatchString(m) {
			c.active = ""
		} else {
			c.active = m
		}
	}
}

// ApplyToLines applies carryover across a slice of lines in order, so style
// active at the end of line N is seen at the start of line N+1 (spec.md
// testable property 6). Returns the styled lines.
func (c *StyleCarry) ApplyToLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = c.Apply(line)
	}
	return out
}

// transientControlPattern strips control sequences that toggle terminal
// modes (mouse reporting, bracketed paste), report mouse events in SGR form
// (CSI < ... M/m), or set a window title — these are "dirt" that should not
// count toward output-changed detection once cleaned, per spec.md §4.3's
// changed_cleaned bit and E3.
var transientControlPattern = regexp.MustCompile(`\x1b\[\?(?:1000|1002|1003|1006|1015|1049|2004)[hl]|\x1b\[<[0-9;]*[Mm]|\x1b\][0-2];[^\x07\x1b]*(?:\x07|\x1b\\)`)

// Clean strips transient mode-toggle, SGR mouse-report and OSC title sequences from raw
// captured text, leaving SGR/content sequences intact for style carryover
// and status-pattern matching to operate on.
func Clean(raw string) string {
	return transientControlPattern.ReplaceAllString(raw, "")
}

// StripAll removes every ANSI control sequence, returning plain text
// suitable for status-pattern matching and selection byte-range mapping.
func StripAll(s string) string {
	return ansi.Strip(s)
}

// VisualWidth returns the grapheme-aware on-screen column width of s.
func VisualWidth(s string) int {
	return ansi.StringWidth(s)
}

// CutVisual returns the visual-column slice [from, to) of s, preserving
// ANSI styling within the slice (spec.md §4.8 selection / §8 property 7).
func CutVisual(s string, from, to int) string {
	return ansi.Cut(s, from, to)
}

// SplitLines splits captured text on newlines without trimming trailing
// empty lines, matching how a multiplexer capture-pane result is laid out.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}
