package buffer

// Link shifting. Every pass walks the live links only; tombstoned links stay
// frozen until an insert edit resurrects them. Links listed in moved were
// already placed by the apply step of the same edit and are skipped.

// ShiftSameRow adjusts links for text inserted on a single row between from
// and to. Links starting at or after the insertion column move right; a link
// strictly containing the column grows.
func (s *LinkStore) ShiftSameRow(from, to Pos, moved Moved) {
	dc := to.Col - from.Col
	if dc == 0 {
		return
	}
	s.eachLive(moved, func(l *Link) {
		if l.Row != from.Row {
			return
		}
		switch {
		case l.StartCol >= from.Col:
			l.StartCol += dc
			l.EndCol += dc
		case l.EndCol > from.Col:
			l.EndCol += dc
		}
	})
}

// ShiftAfterInsert adjusts links for text inserted between from and to, where
// the insertion may span rows. Links on from.Row at or after from.Col take
// both deltas; links below take the row delta only.
func (s *LinkStore) ShiftAfterInsert(from, to Pos, moved Moved) {
	dr := to.Row - from.Row
	if dr == 0 {
		s.ShiftSameRow(from, to, moved)
		return
	}
	dc := to.Col - from.Col
	s.eachLive(moved, func(l *Link) {
		switch {
		case l.Row == from.Row && l.StartCol >= from.Col:
			l.Row += dr
			l.StartCol += dc
			l.EndCol += dc
		case l.Row > from.Row:
			l.Row += dr
		}
	})
}

// ShiftAfterDelete adjusts links for the removal of [from, to).
//
// Links on to.Row at or after to.Col fold onto from.Row and move left by the
// width removed from that row; links below to.Row move up by the removed row
// count. A link strictly around a single-row range shrinks. Links overlapping
// the range must have been extracted beforehand.
//
// When the removal joins rows and the joined row overflows the maximum width,
// the caller follows this pass with ShiftNewline at the wrap column; a folded
// link that starts beyond the wrap column thereby returns to its row with its
// columns reduced by the amount of text that moved to the previous row.
func (s *LinkStore) ShiftAfterDelete(from, to Pos, moved Moved) {
	dr := to.Row - from.Row
	dc := from.Col - to.Col
	if dr == 0 && dc == 0 {
		return
	}
	width := to.Col - from.Col
	s.eachLive(moved, func(l *Link) {
		switch {
		case l.Row == to.Row && l.StartCol >= to.Col:
			l.Row = from.Row
			l.StartCol += dc
			l.EndCol += dc
		case dr == 0 && l.Row == from.Row && l.StartCol < from.Col && l.EndCol > from.Col:
			l.EndCol = maxInt(from.Col, l.EndCol-width)
		case l.Row > to.Row:
			l.Row -= dr
		}
	})
}

// ShiftNewline adjusts links for a row split at at. Links below move down one
// row; links on the split row at or after the split column move to the new
// row, rebased by the split column.
func (s *LinkStore) ShiftNewline(at Pos, moved Moved) {
	s.eachLive(moved, func(l *Link) {
		switch {
		case l.Row > at.Row:
			l.Row++
		case l.Row == at.Row && l.StartCol >= at.Col:
			l.Row++
			l.StartCol -= at.Col
			l.EndCol -= at.Col
		}
	})
}

// ShiftPrevLine adjusts links for row being joined onto row-1, whose length
// before the join was prevLen.
func (s *LinkStore) ShiftPrevLine(row, prevLen int, moved Moved) {
	s.eachLive(moved, func(l *Link) {
		switch {
		case l.Row == row:
			l.Row--
			l.StartCol += prevLen
			l.EndCol += prevLen
		case l.Row > row:
			l.Row--
		}
	})
}

// ShiftAfterEdit reconciles live links after k was applied with before and
// after, skipping the links the apply already placed.
func (s *LinkStore) ShiftAfterEdit(k EditKind, before, after Pos, moved Moved) {
	switch k.Op {
	case OpInsertChar:
		s.ShiftSameRow(before, colPos(before, 1), moved)
	case OpInsertStr:
		s.ShiftSameRow(before, colPos(before, runeLen(k.Text)), moved)
	case OpDeleteChar:
		s.ShiftAfterDelete(after, colPos(after, 1), moved)
	case OpDeleteStr:
		s.ShiftAfterDelete(after, colPos(after, runeLen(k.Text)), moved)
	case OpInsertLine:
		s.ShiftAfterInsert(Pos{Row: before.Row}, Pos{Row: before.Row + 1}, moved)
	case OpDeleteLine:
		s.ShiftAfterDelete(Pos{Row: after.Row}, Pos{Row: after.Row + 1}, moved)
	case OpInsertChunk:
		s.ShiftAfterInsert(before, chunkEnd(before, k.Lines), moved)
	case OpDeleteChunk:
		s.ShiftAfterDelete(after, chunkEnd(after, k.Lines), moved)
	case OpInsertNewline:
		s.ShiftNewline(before, moved)
	case OpDeleteNewline:
		s.ShiftPrevLine(before.Row, after.Col, moved)
	}
}

// ExtractRange returns snapshots of the live links overlapping r. The test is
// inclusive at both ends: a link touching the range boundary is extracted
// too. Links are never split.
func (s *LinkStore) ExtractRange(r Range) []Link {
	r = NormalizeRange(r)
	var out []Link
	s.eachLive(nil, func(l *Link) {
		if l.Row < r.Start.Row || l.Row > r.End.Row {
			return
		}
		if l.Row == r.Start.Row && l.EndCol < r.Start.Col {
			return
		}
		if l.Row == r.End.Row && l.StartCol > r.End.Col {
			return
		}
		out = append(out, *l)
	})
	sortLinks(out)
	return out
}

// ExtractChar returns snapshots of the live links covering the rune at
// (row, col).
func (s *LinkStore) ExtractChar(row, col int) []Link {
	var out []Link
	s.eachLive(nil, func(l *Link) {
		if l.Row == row && l.Contains(col) {
			out = append(out, *l)
		}
	})
	sortLinks(out)
	return out
}

// ExtractInside returns snapshots of the live links strictly containing the
// column boundary at p, i.e. links a row split at p would cut in two.
func (s *LinkStore) ExtractInside(p Pos) []Link {
	var out []Link
	s.eachLive(nil, func(l *Link) {
		if l.Row == p.Row && l.StartCol < p.Col && p.Col < l.EndCol {
			out = append(out, *l)
		}
	})
	sortLinks(out)
	return out
}

// Relative rebases absolute snapshots to origin: rows become offsets from
// origin.Row and columns on the first row become offsets from origin.Col.
func Relative(links []Link, origin Pos) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		l.Row -= origin.Row
		if l.Row == 0 {
			l.StartCol -= origin.Col
			l.EndCol -= origin.Col
		}
		out = append(out, l)
	}
	return out
}

// Absolute is the inverse of Relative.
func Absolute(links []Link, origin Pos) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if l.Row == 0 {
			l.StartCol += origin.Col
			l.EndCol += origin.Col
		}
		l.Row += origin.Row
		out = append(out, l)
	}
	return out
}

func colPos(p Pos, n int) Pos {
	return Pos{Row: p.Row, Col: p.Col + n}
}

func chunkEnd(start Pos, chunk []string) Pos {
	last := chunk[len(chunk)-1]
	return Pos{Row: start.Row + len(chunk) - 1, Col: runeLen(last), Offset: len(last)}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
