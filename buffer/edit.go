package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/linkarea/internal/grapheme"
)

// ErrInvalidLink is returned when a link would not fit its row.
var ErrInvalidLink = errors.New("buffer: invalid link")

// InsertChar inserts r at the cursor, replacing the active selection.
func (b *Buffer) InsertChar(r rune) bool {
	if r == '\n' {
		return b.InsertNewline()
	}
	t := b.begin()
	at := b.replaceSelection(t)
	after := Pos{Row: at.Row, Col: at.Col + 1, Offset: at.Offset + utf8.RuneLen(r)}
	b.do(t, NewEdit(EditKind{Op: OpInsertChar, Char: r}, at, after))
	cursor := b.rewrap(t, at.Row, at.Row, after)
	return b.commit(t, cursor)
}

// InsertStr inserts s at the cursor, replacing the active selection. Text with
// line breaks is inserted as one chunk.
func (b *Buffer) InsertStr(s string) bool {
	s = normalizeNewlines(s)
	t := b.begin()
	at := b.replaceSelection(t)
	if s == "" {
		cursor := b.rewrap(t, at.Row, at.Row, at)
		return b.commit(t, cursor)
	}
	cursor := b.insertLines(t, at, strings.Split(s, "\n"), nil)
	cursor = b.rewrap(t, at.Row, cursor.Row, cursor)
	return b.commit(t, cursor)
}

// InsertTab inserts spaces up to the next tab stop.
func (b *Buffer) InsertTab() bool {
	w := b.opt.TabWidth
	if w <= 0 {
		return false
	}
	col := b.cursor.Col
	if r, ok := b.Selection(); ok {
		col = r.Start.Col
	}
	return b.InsertStr(strings.Repeat(" ", w-col%w))
}

// InsertNewline splits the cursor row. A link spanning the split column is
// removed first since links never cross rows.
func (b *Buffer) InsertNewline() bool {
	t := b.begin()
	at := b.replaceSelection(t)
	b.dropLinksAround(t, at)
	b.do(t, NewEdit(EditKind{Op: OpInsertNewline}, at, Pos{Row: at.Row + 1}))
	return b.commit(t, Pos{Row: at.Row + 1})
}

// DeleteChar deletes the rune before the cursor, joining with the previous
// row at column 0. Links covering the deleted rune are removed.
func (b *Buffer) DeleteChar() bool {
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	at := b.cursor
	if at.Col == 0 {
		if at.Row == 0 {
			return false
		}
		return b.joinRows(at.Row, at)
	}
	t := b.begin()
	prev := b.PosAt(at.Row, at.Col-1)
	ch, _ := utf8.DecodeRuneInString(b.lines[at.Row][prev.Offset:])
	kind := EditKind{Op: OpDeleteChar, Char: ch, Links: b.links.ExtractChar(at.Row, prev.Col)}
	b.do(t, NewEdit(kind, at, prev))
	return b.commit(t, prev)
}

// DeleteNextChar deletes the rune under the cursor, joining with the next row
// at the end of a row.
func (b *Buffer) DeleteNextChar() bool {
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	at := b.cursor
	if at.Col == b.lineLen(at.Row) {
		if at.Row == len(b.lines)-1 {
			return false
		}
		return b.joinRows(at.Row+1, at)
	}
	t := b.begin()
	next := b.PosAt(at.Row, at.Col+1)
	ch, _ := utf8.DecodeRuneInString(b.lines[at.Row][at.Offset:])
	kind := EditKind{Op: OpDeleteChar, Char: ch, Links: b.links.ExtractChar(at.Row, at.Col)}
	b.do(t, NewEdit(kind, next, at))
	return b.commit(t, at)
}

// joinRows folds row onto row-1 and rewraps the result.
func (b *Buffer) joinRows(row int, cursor Pos) bool {
	t := b.begin()
	join := b.PosAt(row-1, b.lineLen(row-1))
	b.do(t, NewEdit(EditKind{Op: OpDeleteNewline}, b.PosAt(row, 0), join))
	if cursor.Row == row {
		cursor = join
	}
	cursor = b.rewrap(t, row-1, row-1, cursor)
	return b.commit(t, cursor)
}

// DeleteWord deletes back to the start of the previous word and yanks it.
func (b *Buffer) DeleteWord() bool {
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	at := b.cursor
	if at.Col == 0 {
		return b.DeleteChar()
	}
	start := grapheme.WordStartBefore(b.lines[at.Row], at.Col)
	return b.deleteAndYank(Range{Start: b.PosAt(at.Row, start), End: at})
}

// DeleteNextWord deletes forward to the end of the next word and yanks it.
func (b *Buffer) DeleteNextWord() bool {
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	at := b.cursor
	if at.Col == b.lineLen(at.Row) {
		return b.DeleteNextChar()
	}
	end := grapheme.WordEndAfter(b.lines[at.Row], at.Col)
	return b.deleteAndYank(Range{Start: at, End: b.PosAt(at.Row, end)})
}

// DeleteLine removes the cursor row and yanks it with its line break. The
// only row of the buffer is cleared instead.
func (b *Buffer) DeleteLine() bool {
	row := b.cursor.Row
	line := b.lines[row]
	onRow := b.links.OnRow(row)
	if len(b.lines) == 1 && line == "" && len(onRow) == 0 {
		return false
	}

	start := b.PosAt(row, 0)
	b.setYank(Yank{
		Lines: []string{line, ""},
		Links: Relative(onRow, start),
		At:    start,
	})

	t := b.begin()
	if len(b.lines) == 1 {
		b.deleteRange(t, Range{Start: start, End: b.PosAt(row, b.lineLen(row))})
		return b.commit(t, start)
	}
	kind := EditKind{Op: OpDeleteLine, Text: line, Links: onRow}
	b.do(t, NewEdit(kind, start, start))
	next := minInt(row, len(b.lines)-1)
	return b.commit(t, b.PosAt(next, b.cursor.Col))
}

// DeleteSelection deletes the active selection and yanks it.
func (b *Buffer) DeleteSelection() bool {
	r, ok := b.Selection()
	if !ok {
		return false
	}
	return b.deleteAndYank(r)
}

func (b *Buffer) deleteAndYank(r Range) bool {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return false
	}
	b.setYank(b.capture(r))
	t := b.begin()
	b.deleteRange(t, r)
	cursor := b.rewrap(t, r.Start.Row, r.Start.Row, r.Start)
	return b.commit(t, cursor)
}

// deleteRange records the removal of r, extracting every link it overlaps.
func (b *Buffer) deleteRange(t *txn, r Range) {
	links := b.links.ExtractRange(r)
	b.log.Printf("delete %v-%v extracts %d links", r.Start, r.End, len(links))
	if r.Start.Row == r.End.Row {
		text := b.lines[r.Start.Row][r.Start.Offset:r.End.Offset]
		b.do(t, NewEdit(EditKind{Op: OpDeleteStr, Text: text, Links: links}, r.End, r.Start))
		return
	}
	kind := EditKind{Op: OpDeleteChunk, Lines: b.textLines(r), Links: links}
	b.do(t, NewEdit(kind, r.End, r.Start))
}

// replaceSelection deletes the active selection without yanking it and
// returns the insertion point.
func (b *Buffer) replaceSelection(t *txn) Pos {
	r, ok := b.Selection()
	b.sel = selectionState{}
	if !ok {
		return b.cursor
	}
	b.deleteRange(t, r)
	b.cursor = r.Start
	return r.Start
}

// insertLines records the insertion of parts at at and returns the position
// after the inserted text. links are placed by the insert itself.
func (b *Buffer) insertLines(t *txn, at Pos, parts []string, links []Link) Pos {
	if len(parts) == 1 {
		s := parts[0]
		if s == "" && len(links) == 0 {
			return at
		}
		after := Pos{Row: at.Row, Col: at.Col + runeLen(s), Offset: at.Offset + len(s)}
		b.do(t, NewEdit(EditKind{Op: OpInsertStr, Text: s, Links: links}, at, after))
		return after
	}
	b.dropLinksAround(t, at)
	after := chunkEnd(at, parts)
	b.do(t, NewEdit(EditKind{Op: OpInsertChunk, Lines: parts, Links: links}, at, after))
	return after
}

// dropLinksAround removes the links a row split at at would cut in two.
func (b *Buffer) dropLinksAround(t *txn, at Pos) {
	inside := b.links.ExtractInside(at)
	if len(inside) == 0 {
		return
	}
	b.do(t, NewEdit(EditKind{Op: OpDeleteStr, Links: inside}, at, at))
}

// textLines returns the rows covered by r, cut at its boundaries.
func (b *Buffer) textLines(r Range) []string {
	if r.Start.Row == r.End.Row {
		return []string{b.lines[r.Start.Row][r.Start.Offset:r.End.Offset]}
	}
	out := make([]string, 0, r.End.Row-r.Start.Row+1)
	out = append(out, b.lines[r.Start.Row][r.Start.Offset:])
	out = append(out, b.lines[r.Start.Row+1:r.End.Row]...)
	out = append(out, b.lines[r.End.Row][:r.End.Offset])
	return out
}

// AddLink creates a live link on row spanning [start, end). The span must be
// non-empty. The creation is recorded in history so undo removes the link
// again.
func (b *Buffer) AddLink(row, start, end int) (Link, error) {
	if row < 0 || row >= len(b.lines) {
		return Link{}, fmt.Errorf("%w: row %d outside %d rows", ErrInvalidLink, row, len(b.lines))
	}
	if start < 0 || start >= end || end > b.lineLen(row) {
		return Link{}, fmt.Errorf("%w: span [%d,%d) outside row %d of length %d", ErrInvalidLink, start, end, row, b.lineLen(row))
	}
	l := b.links.reserve(Link{Row: row, StartCol: start, EndCol: end})
	t := b.begin()
	t.keepSel = true
	at := b.cursor
	b.do(t, NewEdit(EditKind{Op: OpInsertStr, Links: []Link{l}}, at, at))
	b.commit(t, at)
	return l, nil
}

// RemoveLink tombstones the live link id. Undo brings it back.
func (b *Buffer) RemoveLink(id uint64) bool {
	l, ok := b.Link(id)
	if !ok {
		return false
	}
	t := b.begin()
	t.keepSel = true
	at := b.cursor
	b.do(t, NewEdit(EditKind{Op: OpDeleteStr, Links: []Link{l}}, at, at))
	return b.commit(t, at)
}
