package buffer

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Options struct {
	// HistorySize bounds the number of undo steps. 0 disables undo/redo.
	HistorySize int
	// MaxRowWidth is the maximum row length in runes. Rows that grow past it
	// wrap their overhang onto a new row. 0 disables wrapping.
	MaxRowWidth int
	// TabWidth is the tab stop distance used by InsertTab. 0 disables tabs.
	TabWidth int

	// Logger receives trace output for every apply and shift step.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		HistorySize: 1000,
		TabWidth:    4,
	}
}

type selectionState struct {
	active bool
	anchor Pos
}

// Buffer is the document state: rows, cursor, selection, links, history and
// the yank slot. Every mutator returns true when it changed the document.
type Buffer struct {
	lines   []string
	version uint64

	cursor Pos
	sel    selectionState

	links      *LinkStore
	copiedFrom map[uint64]uint64
	hist       *History

	yank    Yank
	hasYank bool

	opt Options
	log *log.Logger

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	b := &Buffer{
		lines:      splitLines(text),
		links:      NewLinkStore(),
		copiedFrom: make(map[uint64]uint64),
		hist:       NewHistory(opt.HistorySize),
		opt:        opt,
		log:        logger,
	}
	b.cursor = b.PosAt(0, 0)
	return b
}

func (b *Buffer) Options() Options { return b.opt }

func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the rows.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

// SetCursor moves the cursor to (row, col), clamped into the document.
func (b *Buffer) SetCursor(row, col int) {
	next := b.PosAt(row, col)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Selection returns the normalized range between the selection anchor and the
// cursor. An empty selection is reported as inactive.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.cursor})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// StartSelection anchors a selection at the cursor.
func (b *Buffer) StartSelection() {
	if b.sel.active && b.sel.anchor == b.cursor {
		return
	}
	b.sel = selectionState{active: true, anchor: b.cursor}
	b.version++
}

// SelectRange anchors the selection at anchor and moves the cursor to end.
func (b *Buffer) SelectRange(anchor, end Pos) {
	next := selectionState{active: true, anchor: b.PosAt(anchor.Row, anchor.Col)}
	cursor := b.PosAt(end.Row, end.Col)
	if b.sel == next && b.cursor == cursor {
		return
	}
	b.sel = next
	b.cursor = cursor
	b.version++
}

// SelectAll selects the whole document.
func (b *Buffer) SelectAll() {
	b.SelectRange(Pos{}, b.endPos())
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selectionState{}
	b.version++
}

// Links returns the live links keyed by id.
func (b *Buffer) Links() map[uint64]Link {
	out := make(map[uint64]Link)
	for _, l := range b.links.Live() {
		out[l.ID] = l
	}
	return out
}

// LiveLinks returns the live links in document order.
func (b *Buffer) LiveLinks() []Link { return b.links.Live() }

// Link returns the live link with id.
func (b *Buffer) Link(id uint64) (Link, bool) {
	l, st, ok := b.links.Get(id)
	if !ok || st != LinkLive {
		return Link{}, false
	}
	return l, true
}

// LinkText returns the text covered by the live link id.
func (b *Buffer) LinkText(id uint64) (string, bool) {
	l, ok := b.Link(id)
	if !ok {
		return "", false
	}
	return sliceCols(b.lines[l.Row], l.StartCol, l.EndCol), true
}

// LinkAt returns the live link covering (row, col).
func (b *Buffer) LinkAt(row, col int) (Link, bool) {
	for _, l := range b.links.OnRow(row) {
		if l.Contains(col) {
			return l, true
		}
	}
	return Link{}, false
}

func (b *Buffer) LinkStore() *LinkStore { return b.links }

// CopiedFrom reports the link id a pasted copy was duplicated from.
func (b *Buffer) CopiedFrom(id uint64) (uint64, bool) {
	src, ok := b.copiedFrom[id]
	return src, ok
}

func (b *Buffer) History() *History { return b.hist }

func (b *Buffer) CanUndo() bool { return b.hist.CanUndo() }

func (b *Buffer) CanRedo() bool { return b.hist.CanRedo() }

// Undo reverts the last history entry and moves the cursor to where it was
// before that entry.
func (b *Buffer) Undo() bool {
	cb := b.beginChange(ChangeSourceUndo)
	before, after, ok := b.hist.Undo(&b.lines, b.links)
	if !ok {
		return false
	}
	b.log.Printf("undo: cursor %v -> %v", before, after)
	b.finishReplay(cb, after)
	return true
}

// Redo reapplies the next history entry.
func (b *Buffer) Redo() bool {
	cb := b.beginChange(ChangeSourceRedo)
	before, after, ok := b.hist.Redo(&b.lines, b.links)
	if !ok {
		return false
	}
	b.log.Printf("redo: cursor %v -> %v", before, after)
	b.finishReplay(cb, after)
	return true
}

func (b *Buffer) finishReplay(cb changeBuilder, cursor Pos) {
	b.cursor = b.PosAt(cursor.Row, cursor.Col)
	b.sel = selectionState{}
	b.version++
	b.commitChange(cb)
	b.checkInvariants(cb.source.String())
}

// txn collects the edits of one user action.
type txn struct {
	change  changeBuilder
	edits   []Edit
	keepSel bool
}

func (b *Buffer) begin() *txn {
	return &txn{change: b.beginChange(ChangeSourceEdit)}
}

// do applies e forward through the same path redo uses and records it.
func (b *Buffer) do(t *txn, e Edit) {
	b.log.Printf("apply %v before=%v after=%v", e.Kind, e.Before, e.After)
	e.Redo(&b.lines, b.links)
	t.edits = append(t.edits, e)
	t.change.addEdit(e)
}

// commit pushes the collected edits as one history entry.
func (b *Buffer) commit(t *txn, cursor Pos) bool {
	if len(t.edits) == 0 {
		return false
	}
	b.cursor = b.PosAt(cursor.Row, cursor.Col)
	if !t.keepSel {
		b.sel = selectionState{}
	}
	b.version++
	b.hist.Push(Entry{
		Edits:        t.edits,
		CursorBefore: t.change.cursorBefore,
		CursorAfter:  b.cursor,
	})
	b.commitChange(t.change)
	b.checkInvariants(t.edits[0].Kind.Op.String())
	return true
}

// checkInvariants panics when the document state is inconsistent. A failure
// means history and the link store diverged.
func (b *Buffer) checkInvariants(op string) {
	if len(b.lines) == 0 {
		panic(fmt.Sprintf("buffer: no rows after %s", op))
	}
	c := b.cursor
	if c.Row < 0 || c.Row >= len(b.lines) {
		panic(fmt.Sprintf("buffer: cursor %v exceeds %d rows after %s", c, len(b.lines), op))
	}
	if n := b.lineLen(c.Row); c.Col < 0 || c.Col > n {
		panic(fmt.Sprintf("buffer: cursor %v exceeds row length %d after %s", c, n, op))
	}
	b.links.eachLive(nil, func(l *Link) {
		if l.Row < 0 || l.Row >= len(b.lines) {
			panic(fmt.Sprintf("buffer: link %+v on missing row after %s", *l, op))
		}
		if l.StartCol < 0 || l.StartCol > l.EndCol || l.EndCol > b.lineLen(l.Row) {
			panic(fmt.Sprintf("buffer: link %+v outside row %q after %s", *l, b.lines[l.Row], op))
		}
	})
}

func splitLines(text string) []string {
	text = normalizeNewlines(text)
	return strings.Split(text, "\n")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
