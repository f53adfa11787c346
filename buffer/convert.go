package buffer

import "unicode/utf8"

// byteOffset returns the byte offset of rune column col in line.
// Columns past the end map to len(line).
func byteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}

// runeCol returns the rune column of byte offset off in line.
func runeCol(line string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(line) {
		off = len(line)
	}
	return utf8.RuneCountInString(line[:off])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// sliceCols returns line[start:end) addressed in rune columns.
func sliceCols(line string, start, end int) string {
	return line[byteOffset(line, start):byteOffset(line, end)]
}

// PosAt returns the clamped position for (row, col) with its byte offset.
func (b *Buffer) PosAt(row, col int) Pos {
	row = clampInt(row, 0, len(b.lines)-1)
	line := b.lines[row]
	col = clampInt(col, 0, runeLen(line))
	return Pos{Row: row, Col: col, Offset: byteOffset(line, col)}
}

// PosFromByteOffset converts a byte offset inside row into a Pos.
// It reports false when row is out of bounds or off splits a rune.
func (b *Buffer) PosFromByteOffset(row, off int) (Pos, bool) {
	if row < 0 || row >= len(b.lines) {
		return Pos{}, false
	}
	line := b.lines[row]
	if off < 0 || off > len(line) {
		return Pos{}, false
	}
	if off < len(line) && !utf8.RuneStart(line[off]) {
		return Pos{}, false
	}
	return Pos{Row: row, Col: runeCol(line, off), Offset: off}, true
}

// lineLen returns the rune length of row, or 0 when out of bounds.
func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return runeLen(b.lines[row])
}

func (b *Buffer) endPos() Pos {
	last := len(b.lines) - 1
	return b.PosAt(last, b.lineLen(last))
}
