package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
)

func pos(row, col int) buffer.Pos { return buffer.Pos{Row: row, Col: col, Offset: col} }

func TestHitTest_NoLineNums_ClampsAndYOffset(t *testing.T) {
	m := New(Config{Text: "abc\ndef\nghi"})
	m.viewport.YOffset = 1

	if got := m.screenToDocPos(2, 0); got != pos(1, 2) {
		t.Fatalf("pos at (2,0) with yoffset=1: got %v, want %v", got, pos(1, 2))
	}

	// Clamp x past end of line.
	if got := m.screenToDocPos(999, 0); got != pos(1, 3) {
		t.Fatalf("pos at (999,0): got %v, want %v", got, pos(1, 3))
	}

	// Clamp y past the last row.
	if got := m.screenToDocPos(0, 99); got != pos(2, 0) {
		t.Fatalf("pos at (0,99): got %v, want %v", got, pos(2, 0))
	}
}

func TestHitTest_WithLineNums_GutterMapsToStartOfLine(t *testing.T) {
	m := New(Config{Text: "abcd\nefgh", ShowLineNums: true})

	// 2 lines => 1 digit + 1 gutter space => width 2.
	for _, x := range []int{0, 1, 2} {
		if got := m.screenToDocPos(x, 0); got != pos(0, 0) {
			t.Fatalf("click x=%d: got %v, want %v", x, got, pos(0, 0))
		}
	}
	if got := m.screenToDocPos(3, 0); got != pos(0, 1) {
		t.Fatalf("second cell x=3: got %v, want %v", got, pos(0, 1))
	}
}

func TestHitTest_WideRunesAndRoundTrip(t *testing.T) {
	m := New(Config{Text: "界x"})
	m = m.SetSize(10, 2)

	cases := []struct {
		x       int
		wantCol int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
	}
	for _, tc := range cases {
		if got := m.ScreenToDoc(tc.x, 0); got.Col != tc.wantCol {
			t.Fatalf("ScreenToDoc(%d,0): got col %d, want %d", tc.x, got.Col, tc.wantCol)
		}
	}

	x, y, ok := m.DocToScreen(m.buf.PosAt(0, 1))
	if !ok || x != 2 || y != 0 {
		t.Fatalf("DocToScreen(0,1): got (%d,%d,%v), want (2,0,true)", x, y, ok)
	}
	if _, _, ok := m.DocToScreen(m.buf.PosAt(5, 0)); !ok {
		t.Fatalf("expected clamped position to be visible")
	}
}

func TestViewportState(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n10", ShowLineNums: true})
	m = m.SetSize(10, 3)
	m.buf.SetCursor(5, 0)
	m, _ = m.Update(struct{}{})

	got := m.ViewportState()
	want := ViewportState{TopRow: 3, VisibleRows: 3, GutterWidth: 3}
	if got != want {
		t.Fatalf("viewport state: got %+v, want %+v", got, want)
	}
	if _, _, ok := m.DocToScreen(pos(0, 0)); ok {
		t.Fatalf("expected row 0 to be scrolled out of view")
	}
}

func TestMouse_ClickDragAndShiftClick(t *testing.T) {
	m := New(Config{Text: "hello\nworld"})
	m = m.SetSize(20, 5)

	press := tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m, _ = m.Update(press)
	if got := m.buf.Cursor(); got != pos(0, 1) {
		t.Fatalf("cursor after click: got %v, want %v", got, pos(0, 1))
	}

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionMotion})
	r, ok := m.buf.Selection()
	if !ok || r.Start != pos(0, 1) || r.End != pos(1, 3) {
		t.Fatalf("selection after drag: got %v (%v), want (0,1)-(1,3)", r, ok)
	}

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionRelease})
	m, _ = m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionMotion})
	if r, _ := m.buf.Selection(); r.End != pos(1, 3) {
		t.Fatalf("motion after release changed selection: %v", r)
	}

	shift := tea.MouseMsg{X: 0, Y: 0, Shift: true, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m, _ = m.Update(shift)
	r, ok = m.buf.Selection()
	if !ok || r.Start != pos(0, 0) || r.End != pos(0, 1) {
		t.Fatalf("selection after shift-click: got %v (%v), want (0,0)-(0,1)", r, ok)
	}

	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if _, ok := m.buf.Selection(); ok {
		t.Fatalf("plain click must clear the selection")
	}
}
