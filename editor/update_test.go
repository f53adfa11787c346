package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return c.err }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{}, // keep styles minimal for this test
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(runes("X"))
	if got := m.buf.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 0, Col: 2, Offset: 2}) {
		t.Fatalf("cursor after insert: got %v, want (0,2)", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 0, Col: 1, Offset: 1}) {
		t.Fatalf("cursor after backspace: got %v, want (0,1)", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.buf.Text(); got != "a \n" {
		t.Fatalf("text after space+enter: got %q, want %q", got, "a \n")
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{
		Text:      "ab",
		ReadOnly:  true,
		Clipboard: cb,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.buf.Cursor(); got.Col != 1 {
		t.Fatalf("cursor after move: got %v, want col 1", got)
	}

	for _, msg := range []tea.KeyMsg{
		runes("X"),
		{Type: tea.KeyBackspace},
		{Type: tea.KeyCtrlK},
		{Type: tea.KeyEnter},
		{Type: tea.KeyTab},
	} {
		m, _ = m.Update(msg)
		if got := m.buf.Text(); got != "ab" {
			t.Fatalf("text after %q in read-only: got %q, want %q", msg.String(), got, "ab")
		}
	}

	// Cut degrades to copy.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after cut in read-only: got %q", got)
	}
	if cb.s != "a" {
		t.Fatalf("clipboard after read-only cut: got %q, want %q", cb.s, "a")
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: "", HistorySize: 100})
	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("b"))
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after typing: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_CopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{
		Text:      "hello",
		Clipboard: cb,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := cb.s; got != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", got, "he")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("cursor after cut: got %v, want origin", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "hello" {
		t.Fatalf("text after paste: got %q, want %q", got, "hello")
	}
}

func TestUpdate_CutPasteMovesLink(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "go home now", Clipboard: cb, HistorySize: 10})
	l, err := m.buf.AddLink(0, 3, 7)
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	m.buf.SelectRange(buffer.Pos{Row: 0, Col: 3}, buffer.Pos{Row: 0, Col: 8})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(runes(" "))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})

	if got := m.buf.Text(); got != "go now home " {
		t.Fatalf("text after move: got %q, want %q", got, "go now home ")
	}
	got, ok := m.buf.Link(l.ID)
	if !ok {
		t.Fatalf("link %d lost after cut+paste", l.ID)
	}
	if got.StartCol != 7 || got.EndCol != 11 {
		t.Fatalf("link after paste: got %+v, want cols 7-11", got)
	}
}

func TestUpdate_PasteUsesForeignClipboardText(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "ab", Clipboard: cb})
	m.buf.SelectRange(buffer.Pos{}, buffer.Pos{Row: 0, Col: 1})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	cb.s = "x\r\ny"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "abx\ny" {
		t.Fatalf("text after paste: got %q, want %q", got, "abx\ny")
	}
	y, _ := m.buf.Yank()
	if len(y.Links) != 0 || y.Text() != "x\ny" {
		t.Fatalf("yank after foreign paste: got %+v", y)
	}
}

func TestUpdate_ClipboardErrorsAreIgnored(t *testing.T) {
	cb := &memClipboard{err: errors.New("no clipboard")}
	m := New(Config{Text: "ab", Clipboard: cb})
	m.buf.SelectRange(buffer.Pos{}, buffer.Pos{Row: 0, Col: 2})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "abab" {
		t.Fatalf("text after paste with failing clipboard: got %q, want %q", got, "abab")
	}
}

func TestUpdate_BracketedPasteInsertsLiterally(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1\r\n2"), Paste: true})
	if got := m.buf.Text(); got != "1\n2" {
		t.Fatalf("text after paste: got %q, want %q", got, "1\n2")
	}
}

func TestUpdate_WordAndLineDeletes(t *testing.T) {
	m := New(Config{Text: "one two\nthree", HistorySize: 10})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if got := m.buf.Text(); got != "one \nthree" {
		t.Fatalf("text after ctrl+w: got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d"), Alt: true})
	if got := m.buf.Text(); got != " \nthree" {
		t.Fatalf("text after alt+d: got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if got := m.buf.Text(); got != "three" {
		t.Fatalf("text after ctrl+k: got %q", got)
	}
}

func TestUpdate_ToggleLink(t *testing.T) {
	m := New(Config{Text: "see docs", HistorySize: 10})
	m.buf.SelectRange(buffer.Pos{Row: 0, Col: 4}, buffer.Pos{Row: 0, Col: 8})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	links := m.buf.LiveLinks()
	if len(links) != 1 || links[0].StartCol != 4 || links[0].EndCol != 8 {
		t.Fatalf("links after link key: got %+v", links)
	}

	// Cursor sits at the link end; toggling again unlinks.
	m.buf.ClearSelection()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if n := len(m.buf.LiveLinks()); n != 0 {
		t.Fatalf("links after unlink: got %d, want 0", n)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if n := len(m.buf.LiveLinks()); n != 1 {
		t.Fatalf("links after undo: got %d, want 1", n)
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"}).Blur()
	m, _ = m.Update(runes("X"))
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after typing while blurred: got %q", got)
	}
}

func TestUpdate_ViewportFollowsCursor_Minimal(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5\n6\n7\n8\n9"})
	m = m.SetSize(10, 3)

	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("initial yoffset: got %d, want %d", got, 0)
	}

	// Move to row 2: still visible, no scroll.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset at row 2: got %d, want %d", got, 0)
	}

	// Move to row 3: scroll down by one line.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset at row 3: got %d, want %d", got, 1)
	}

	// Move up above the viewport: yoffset follows cursor row.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // row 2
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // row 1
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // row 0
	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset after moving above view: got %d, want %d", got, 0)
	}
}
