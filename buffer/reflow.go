package buffer

import (
	"cmp"
	"slices"
)

// rewrap splits rows first..last (and the rows their overhang spills onto)
// until none is wider than MaxRowWidth. Each split is an InsertNewline edit in
// t. The returned cursor follows the text it was on.
func (b *Buffer) rewrap(t *txn, first, last int, cursor Pos) Pos {
	w := b.opt.MaxRowWidth
	if w <= 0 {
		return cursor
	}
	for row := first; row <= last && row < len(b.lines); row++ {
		if b.lineLen(row) <= w {
			continue
		}
		col := wrapColumn(b.lines[row], w, b.links.OnRow(row))
		if col <= 0 || col >= b.lineLen(row) {
			b.log.Printf("rewrap: row %d cannot be split below width %d", row, w)
			continue
		}
		at := b.PosAt(row, col)
		b.log.Printf("rewrap: split row %d at col %d", row, col)
		b.do(t, NewEdit(EditKind{Op: OpInsertNewline}, at, Pos{Row: row + 1}))

		switch {
		case cursor.Row == row && cursor.Col >= col:
			cursor = Pos{Row: row + 1, Col: cursor.Col - col}
		case cursor.Row > row:
			cursor.Row++
		}
		// The tail is the next row; it is checked on the next iteration.
		last++
	}
	return b.PosAt(cursor.Row, cursor.Col)
}

// wrapColumn returns the rune column at which line is split to fit width w:
// just after the last space within the first w runes, or w when there is none.
// A column inside a link moves to the start of the link, or of the run of
// overlapping links around it, when that keeps text on the row and to the end
// of the run otherwise.
func wrapColumn(line string, w int, links []Link) int {
	col := w
	i := 0
	for _, r := range line {
		if i >= w {
			break
		}
		if r == ' ' {
			col = i + 1
		}
		i++
	}
	for _, s := range linkRuns(links) {
		if s.StartCol < col && col < s.EndCol {
			if s.StartCol > 0 {
				return s.StartCol
			}
			return s.EndCol
		}
	}
	return col
}

// linkRuns merges overlapping spans into disjoint runs ordered by start.
// Spans that only touch stay separate since splitting between them cuts
// neither.
func linkRuns(links []Link) []Link {
	spans := slices.Clone(links)
	slices.SortFunc(spans, func(a, b Link) int { return cmp.Compare(a.StartCol, b.StartCol) })
	var out []Link
	for _, l := range spans {
		if n := len(out); n > 0 && l.StartCol < out[n-1].EndCol {
			out[n-1].EndCol = max(out[n-1].EndCol, l.EndCol)
			continue
		}
		out = append(out, Link{Row: l.Row, StartCol: l.StartCol, EndCol: l.EndCol})
	}
	return out
}
