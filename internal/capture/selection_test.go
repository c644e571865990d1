package capture

import "testing"

func TestStartDragWithoutMotionHasNoSelection(t *testing.T) {
	s := NewSelection()
	s.StartDrag(2, 5)
	if s.HasSelection() {
		t.Fatal("click without drag motion should not create a selection")
	}
	s.Finish()
	if s.HasSelection() {
		t.Fatal("Finish after no-motion click should leave selection empty")
	}
}

func TestDragOrdersStartBeforeEndRegardlessOfDirection(t *testing.T) {
	s := NewSelection()
	s.StartDrag(3, 10)
	s.Drag(1, 2) // dragged upward/backward from the anchor

	if s.Start.Line != 1 || s.Start.Col != 2 {
		t.Fatalf("expected start to be the earlier point, got %+v", s.Start)
	}
	if s.End.Line != 3 || s.End.Col != 10 {
		t.Fatalf("expected end to be the anchor, got %+v", s.End)
	}
}

func TestLineSelectedRange(t *testing.T) {
	s := NewSelection()
	s.StartDrag(1, 0)
	s.Drag(3, 5)

	for _, idx := range []int{1, 2, 3} {
		if !s.LineSelected(idx) {
			t.Errorf("expected line %d to be selected", idx)
		}
	}
	if s.LineSelected(0) || s.LineSelected(4) {
		t.Error("lines outside the range should not be selected")
	}
}

func TestColsForLineOutsideSelectionIsNotOK(t *testing.T) {
	s := NewSelection()
	s.StartDrag(1, 0)
	s.Drag(3, 5)

	if _, _, ok := s.ColsForLine(0); ok {
		t.Fatal("line before selection must report ok=false")
	}
}

func TestColsForLineSingleLineSelection(t *testing.T) {
	s := NewSelection()
	s.StartDrag(2, 4)
	s.Drag(2, 9)

	start, end, ok := s.ColsForLine(2)
	if !ok || start != 4 || end != 9 {
		t.Fatalf("expected [4,9] ok=true, got [%d,%d] ok=%v", start, end, ok)
	}
}

func TestColsForLineMultiLineSelectionEdges(t *testing.T) {
	s := NewSelection()
	s.StartDrag(1, 3)
	s.Drag(3, 5)

	if start, end, ok := s.ColsForLine(1); !ok || start != 3 || end != -1 {
		t.Fatalf("first line should run from its start col to end of line, got [%d,%d] ok=%v", start, end, ok)
	}
	if start, end, ok := s.ColsForLine(2); !ok || start != 0 || end != -1 {
		t.Fatalf("middle line should be fully selected, got [%d,%d] ok=%v", start, end, ok)
	}
	if start, end, ok := s.ColsForLine(3); !ok || start != 0 || end != 5 {
		t.Fatalf("last line should run from col 0 to its end col, got [%d,%d] ok=%v", start, end, ok)
	}
}

func TestExtractTextSingleLine(t *testing.T) {
	lines := []string{"hello world"}
	s := NewSelection()
	s.StartDrag(0, 0)
	s.Drag(0, 4)

	got := s.ExtractText(lines)
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestExtractTextMultiLine(t *testing.T) {
	lines := []string{"first line", "second line", "third line"}
	s := NewSelection()
	s.StartDrag(0, 6)
	s.Drag(2, 4)

	got := s.ExtractText(lines)
	want := "line\nsecond line\nthird"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestColAtXDoesNotSplitWideGrapheme(t *testing.T) {
	line := "a文b" // 文 occupies 2 visual cells
	col := ColAtX(line, 1)
	if col != 1 {
		t.Fatalf("expected snap to start of wide grapheme at col 1, got %d", col)
	}
}

func TestClearResetsSelection(t *testing.T) {
	s := NewSelection()
	s.StartDrag(0, 0)
	s.Drag(1, 1)
	s.Clear()
	if s.HasSelection() || s.Active {
		t.Fatal("expected Clear to fully reset selection state")
	}
}
