package buffer

import "github.com/iw2rmb/linkarea/internal/grapheme"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // row start (doc start for MoveDoc)
	DirEnd  // row end (doc end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
	// Extend keeps or starts a selection anchored at the current cursor;
	// otherwise the selection is cleared.
	Extend bool
}

// Move moves the cursor and reports whether cursor or selection changed.
func (b *Buffer) Move(m Move) bool {
	prevCursor := b.cursor
	prevSel := b.sel

	next := b.moveCursor(prevCursor, m)
	next = b.PosAt(next.Row, next.Col)

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active {
			anchor = prevSel.anchor
		}
		nextSel = selectionState{active: true, anchor: anchor}
	}

	if prevCursor == next && prevSel == nextSel {
		return false
	}
	b.cursor = next
	b.sel = nextSel
	b.version++
	return true
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveRune:
		return b.moveRune(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveRune(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if col > 0 {
			return Pos{Row: row, Col: col - 1}
		}
		if row == 0 {
			return p
		}
		return Pos{Row: row - 1, Col: b.lineLen(row - 1)}
	case DirRight:
		if col < b.lineLen(row) {
			return Pos{Row: row, Col: col + 1}
		}
		if row == lastRow {
			return p
		}
		return Pos{Row: row + 1}
	default:
		return b.moveLine(p, dir)
	}
}

// moveWord stops at UAX #29 word boundaries and crosses rows at their ends.
func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	line := b.lines[row]

	switch dir {
	case DirLeft:
		if col == 0 {
			return b.moveRune(p, DirLeft)
		}
		return Pos{Row: row, Col: grapheme.WordStartBefore(line, col)}
	case DirRight:
		if col == b.lineLen(row) {
			return b.moveRune(p, DirRight)
		}
		return Pos{Row: row, Col: grapheme.WordEndAfter(line, col)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col

	switch dir {
	case DirHome:
		return Pos{Row: row}
	case DirEnd:
		return Pos{Row: row, Col: b.lineLen(row)}
	case DirUp:
		if row == 0 {
			return p
		}
		return Pos{Row: row - 1, Col: col}
	case DirDown:
		if row == len(b.lines)-1 {
			return p
		}
		return Pos{Row: row + 1, Col: col}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	last := len(b.lines) - 1
	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return Pos{Row: last, Col: b.lineLen(last)}
	default:
		return p
	}
}
