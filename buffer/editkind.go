package buffer

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// EditOp enumerates the atomic, invertible text mutations.
type EditOp uint8

const (
	OpInsertChar EditOp = iota
	OpDeleteChar
	OpInsertStr
	OpDeleteStr
	OpInsertLine
	OpDeleteLine
	OpInsertChunk
	OpDeleteChunk
	OpInsertNewline
	OpDeleteNewline
)

var editOpNames = [...]string{
	OpInsertChar:    "InsertChar",
	OpDeleteChar:    "DeleteChar",
	OpInsertStr:     "InsertStr",
	OpDeleteStr:     "DeleteStr",
	OpInsertLine:    "InsertLine",
	OpDeleteLine:    "DeleteLine",
	OpInsertChunk:   "InsertChunk",
	OpDeleteChunk:   "DeleteChunk",
	OpInsertNewline: "InsertNewline",
	OpDeleteNewline: "DeleteNewline",
}

func (op EditOp) String() string {
	if int(op) < len(editOpNames) {
		return editOpNames[op]
	}
	return fmt.Sprintf("EditOp(%d)", uint8(op))
}

// IsInsert reports whether op adds text. Every insert op has exactly one
// delete inverse.
func (op EditOp) IsInsert() bool { return op%2 == 0 }

// Invert returns the structurally opposite op.
func (op EditOp) Invert() EditOp {
	if op.IsInsert() {
		return op + 1
	}
	return op - 1
}

// EditKind is one atomic mutation with its payload.
//
// Char is set for the char ops, Text for the str and line ops, Lines (at least
// two) for the chunk ops. Links holds snapshots of the links the edit touched:
// insert ops resurrect them with the snapshot geometry, delete ops tombstone
// them.
type EditKind struct {
	Op    EditOp
	Char  rune
	Text  string
	Lines []string
	Links []Link
}

// Invert returns the opposite kind with an identical payload.
func (k EditKind) Invert() EditKind {
	k.Op = k.Op.Invert()
	return k
}

func (k EditKind) String() string {
	var payload string
	switch k.Op {
	case OpInsertChar, OpDeleteChar:
		payload = fmt.Sprintf("%q", k.Char)
	case OpInsertStr, OpDeleteStr, OpInsertLine, OpDeleteLine:
		payload = fmt.Sprintf("%q", k.Text)
	case OpInsertChunk, OpDeleteChunk:
		payload = fmt.Sprintf("%q", k.Lines)
	case OpInsertNewline, OpDeleteNewline:
	}
	if len(k.Links) > 0 {
		ids := make([]string, 0, len(k.Links))
		for _, l := range k.Links {
			ids = append(ids, fmt.Sprint(l.ID))
		}
		payload += " links=[" + strings.Join(ids, " ") + "]"
	}
	return k.Op.String() + "(" + payload + ")"
}

// Apply mutates lines at the positions implied by before and after and applies
// the link side effect. Insert ops work at before; delete ops start at after.
//
// The returned Moved set lists every link the step placed itself.
func (k EditKind) Apply(lines []string, links *LinkStore, before, after Pos) ([]string, Moved) {
	switch k.Op {
	case OpInsertChar:
		row := before.Row
		lines[row] = insertAt(lines[row], before.Offset, string(k.Char))
	case OpDeleteChar:
		row := after.Row
		lines[row] = removeAt(lines[row], after.Offset, utf8.RuneLen(k.Char))
	case OpInsertStr:
		row := before.Row
		lines[row] = insertAt(lines[row], before.Offset, k.Text)
	case OpDeleteStr:
		row := after.Row
		lines[row] = removeAt(lines[row], after.Offset, len(k.Text))
	case OpInsertLine:
		lines = slices.Insert(lines, before.Row, k.Text)
	case OpDeleteLine:
		if len(lines) == 1 {
			panic("buffer: DeleteLine would leave the buffer without rows")
		}
		lines = slices.Delete(lines, after.Row, after.Row+1)
	case OpInsertChunk:
		lines = insertChunk(lines, k.Lines, before)
	case OpDeleteChunk:
		lines = deleteChunk(lines, k.Lines, after)
	case OpInsertNewline:
		row := before.Row
		line := lines[row]
		lines[row] = line[:before.Offset]
		lines = slices.Insert(lines, row+1, line[before.Offset:])
	case OpDeleteNewline:
		row := before.Row
		if row <= 0 {
			panic(fmt.Sprintf("buffer: DeleteNewline at invalid position %v", before))
		}
		lines[row-1] += lines[row]
		lines = slices.Delete(lines, row, row+1)
	default:
		panic(fmt.Sprintf("buffer: unknown edit op %v", k.Op))
	}

	if len(k.Links) == 0 {
		return lines, nil
	}
	if k.Op.IsInsert() {
		moved := make(Moved, len(k.Links))
		for _, snap := range k.Links {
			links.resurrect(snap)
			moved.add(snap.ID)
		}
		return lines, moved
	}
	for _, snap := range k.Links {
		links.tombstone(snap.ID)
	}
	return lines, nil
}

func insertAt(line string, off int, s string) string {
	return line[:off] + s + line[off:]
}

func removeAt(line string, off, n int) string {
	return line[:off] + line[off+n:]
}

func insertChunk(lines, chunk []string, at Pos) []string {
	if len(chunk) < 2 {
		panic(fmt.Sprintf("buffer: chunk needs at least two lines, got %q", chunk))
	}
	row := at.Row
	line := lines[row]
	tail := chunk[len(chunk)-1] + line[at.Offset:]
	lines[row] = line[:at.Offset] + chunk[0]

	rows := make([]string, 0, len(chunk)-1)
	rows = append(rows, chunk[1:len(chunk)-1]...)
	rows = append(rows, tail)
	return slices.Insert(lines, row+1, rows...)
}

func deleteChunk(lines, chunk []string, at Pos) []string {
	if len(chunk) < 2 {
		panic(fmt.Sprintf("buffer: chunk needs at least two lines, got %q", chunk))
	}
	row := at.Row
	last := row + len(chunk) - 1
	rest := lines[last][len(chunk[len(chunk)-1]):]
	lines[row] = lines[row][:at.Offset] + rest
	return slices.Delete(lines, row+1, last+1)
}
