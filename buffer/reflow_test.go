package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func wrapOptions(w int) Options {
	opt := DefaultOptions()
	opt.MaxRowWidth = w
	return opt
}

func TestReflow_InsertWrapsAtLastSpace(t *testing.T) {
	b := New("hello worl", wrapOptions(10))
	b.SetCursor(0, 10)

	b.InsertChar('d')
	if diff := cmp.Diff([]string{"hello ", "world"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := b.Cursor(); got.Row != 1 || got.Col != 5 {
		t.Fatalf("cursor=%v, want (1,5)", got)
	}

	b.Undo()
	if diff := cmp.Diff([]string{"hello worl"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if b.CanUndo() {
		t.Fatalf("insert and wrap must be one history entry")
	}
}

func TestReflow_ExactWidthDoesNotWrap(t *testing.T) {
	b := New("hello wor", wrapOptions(10))
	b.SetCursor(0, 9)
	b.InsertChar('l')
	if diff := cmp.Diff([]string{"hello worl"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReflow_HardSplitWithoutSpace(t *testing.T) {
	b := New("abcdefghij", wrapOptions(10))
	b.SetCursor(0, 10)
	b.InsertChar('k')
	if diff := cmp.Diff([]string{"abcdefghij", "k"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := b.Cursor(); got.Row != 1 || got.Col != 1 {
		t.Fatalf("cursor=%v, want (1,1)", got)
	}
}

func TestReflow_LongInsertWrapsRepeatedly(t *testing.T) {
	b := New("", wrapOptions(4))
	b.InsertStr("aaa bbb ccc")
	if diff := cmp.Diff([]string{"aaa ", "bbb ", "ccc"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := b.Cursor(); got.Row != 2 || got.Col != 3 {
		t.Fatalf("cursor=%v, want (2,3)", got)
	}
	b.Undo()
	if got := b.Text(); got != "" {
		t.Fatalf("text=%q", got)
	}
}

func TestReflow_SplitAvoidsLinks(t *testing.T) {
	b := New("ab cdefghi", wrapOptions(10))
	l := b.LinkStore().Add(0, 1, 5)
	b.SetCursor(0, 10)

	b.InsertChar('j')
	if diff := cmp.Diff([]string{"a", "b cdefghij"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, l.ID, 1, 0, 4)

	b.Undo()
	assertSpan(t, b, l.ID, 0, 1, 5)
}

func TestReflow_LinkCoveringRowPreventsSplit(t *testing.T) {
	b := New("abcdefghij", wrapOptions(10))
	l := b.LinkStore().Add(0, 0, 10)
	b.SetCursor(0, 5)

	b.InsertChar('X')
	if diff := cmp.Diff([]string{"abcdeXfghij"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, l.ID, 0, 0, 11)
}

func TestReflow_JoinPinsLinkBackToItsRow(t *testing.T) {
	b := New("hello\nbig world", wrapOptions(10))
	l := b.LinkStore().Add(1, 4, 9)
	b.SetCursor(1, 0)

	b.DeleteChar()
	if diff := cmp.Diff([]string{"hellobig ", "world"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, l.ID, 1, 0, 5)
	if got := b.Cursor(); got.Row != 0 || got.Col != 5 {
		t.Fatalf("cursor=%v, want (0,5)", got)
	}

	b.Undo()
	if diff := cmp.Diff([]string{"hello", "big world"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, l.ID, 1, 4, 9)
	if got := b.Cursor(); got.Row != 1 || got.Col != 0 {
		t.Fatalf("cursor=%v, want (1,0)", got)
	}
}

func TestWrapColumn(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		w     int
		links []Link
		want  int
	}{
		{"last space", "aa bb cc dd", 8, nil, 6},
		{"space at width", "aaaaaaa bbb", 8, nil, 8},
		{"no space", "abcdefghijk", 8, nil, 8},
		{"multibyte", "héllo wörld", 8, nil, 6},
		{"moves to link start", "aa bb cccccc", 8, []Link{{StartCol: 4, EndCol: 12}}, 4},
		{"link at column zero", "aaaaaaaaaaa", 8, []Link{{StartCol: 0, EndCol: 9}}, 9},
		{"link boundary is fine", "aaaaaaaabbb", 8, []Link{{StartCol: 8, EndCol: 11}}, 8},
		{"overlapping links from zero", "abcdxy", 4, []Link{{StartCol: 0, EndCol: 3}, {StartCol: 2, EndCol: 4}}, 4},
		{"overlapping links move to run start", "abcdefghij", 6, []Link{{StartCol: 5, EndCol: 8}, {StartCol: 2, EndCol: 6}}, 2},
		{"overlapping links at zero", "abcdefgh", 4, []Link{{StartCol: 2, EndCol: 6}, {StartCol: 0, EndCol: 3}}, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapColumn(tc.line, tc.w, tc.links); got != tc.want {
				t.Fatalf("wrapColumn=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestReflow_OverlappingLinksAreNotCut(t *testing.T) {
	b := New("abcd", wrapOptions(4))
	a, err := b.AddLink(0, 0, 3)
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	c, err := b.AddLink(0, 2, 4)
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	b.SetCursor(0, 3)

	if !b.InsertStr("xy") {
		t.Fatalf("expected insert to modify")
	}
	if diff := cmp.Diff([]string{"abcxyd"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, a.ID, 0, 0, 3)
	assertSpan(t, b, c.ID, 0, 2, 6)

	b.Undo()
	if diff := cmp.Diff([]string{"abcd"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, c.ID, 0, 2, 4)
}

func TestReflow_OverlappingLinksSplitAroundRun(t *testing.T) {
	b := New("zabcdefg", wrapOptions(5))
	a, _ := b.AddLink(0, 1, 4)
	c, _ := b.AddLink(0, 3, 7)
	b.SetCursor(0, 8)

	b.InsertChar('h')
	if diff := cmp.Diff([]string{"z", "abcdef", "gh"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, a.ID, 1, 0, 3)
	assertSpan(t, b, c.ID, 1, 2, 6)
	if got := b.Cursor(); got.Row != 2 || got.Col != 2 {
		t.Fatalf("cursor=%v, want (2,2)", got)
	}

	b.Undo()
	if diff := cmp.Diff([]string{"zabcdefg"}, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assertSpan(t, b, a.ID, 0, 1, 4)
	assertSpan(t, b, c.ID, 0, 3, 7)
}
