package editor

import "github.com/iw2rmb/linkarea/buffer"

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Gutter clicks map to column 0. Coordinates past the end of a row map to the
// row end; rows past the document map to the last row.
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	x -= m.gutterWidth()
	if x < 0 {
		return m.buf.PosAt(row, 0)
	}
	cells := layoutCells(m.buf.Line(row), m.cfg.TabWidth)
	for _, c := range cells {
		if x < c.StartCell+c.Width {
			return m.buf.PosAt(row, c.Col)
		}
	}
	return m.buf.PosAt(row, len(cells))
}

// docToScreenPos maps a document position to viewport-local coordinates.
//
// ok is false when the position is scrolled out of view.
func (m *Model) docToScreenPos(p buffer.Pos) (x, y int, ok bool) {
	y = p.Row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return 0, 0, false
	}
	x = m.gutterWidth()
	cells := layoutCells(m.buf.Line(p.Row), m.cfg.TabWidth)
	if p.Col < len(cells) {
		x += cells[p.Col].StartCell
	} else if len(cells) > 0 {
		last := cells[len(cells)-1]
		x += last.StartCell + last.Width
	}
	return x, y, true
}
