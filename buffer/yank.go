package buffer

import "strings"

// Yank is the clipboard payload: one line for a piece, two or more for a
// chunk. Links are snapshots relative to the payload start (row 0 columns
// count from At.Col) and never reach past the payload text.
type Yank struct {
	Lines []string
	Links []Link
	// At is the absolute position the payload was captured from.
	At Pos
}

func (y Yank) Text() string { return strings.Join(y.Lines, "\n") }

// IsChunk reports whether the payload spans rows.
func (y Yank) IsChunk() bool { return len(y.Lines) > 1 }

func (y Yank) clone() Yank {
	y.Lines = append([]string(nil), y.Lines...)
	y.Links = append([]Link(nil), y.Links...)
	return y
}

// Yank returns the current clipboard payload.
func (b *Buffer) Yank() (Yank, bool) {
	if !b.hasYank {
		return Yank{}, false
	}
	return b.yank.clone(), true
}

// SetYank replaces the clipboard payload, e.g. with text from the system
// clipboard. Links are clipped to the payload text; links left empty or on a
// missing line are dropped.
func (b *Buffer) SetYank(y Yank) {
	if len(y.Lines) == 0 {
		y.Lines = []string{""}
	}
	y = y.clone()
	links := y.Links[:0]
	for _, l := range y.Links {
		if l.Row < 0 || l.Row >= len(y.Lines) {
			continue
		}
		l.StartCol = max(l.StartCol, 0)
		l.EndCol = min(l.EndCol, runeLen(y.Lines[l.Row]))
		if l.StartCol >= l.EndCol {
			continue
		}
		links = append(links, l)
	}
	y.Links = links
	b.setYank(y)
}

func (b *Buffer) setYank(y Yank) {
	b.yank = y
	b.hasYank = true
	b.log.Printf("yank %q with %d links", y.Text(), len(y.Links))
}

// capture builds the payload for r. Links overlapping r are clipped to it;
// links that only touch a boundary are left out.
func (b *Buffer) capture(r Range) Yank {
	r = NormalizeRange(r)
	var links []Link
	for _, l := range b.links.ExtractRange(r) {
		lo, hi := 0, b.lineLen(l.Row)
		if l.Row == r.Start.Row {
			lo = r.Start.Col
		}
		if l.Row == r.End.Row {
			hi = r.End.Col
		}
		start, end := maxInt(l.StartCol, lo), minInt(l.EndCol, hi)
		if start > end || (start == end && l.Len() > 0) {
			continue
		}
		l.StartCol, l.EndCol = start, end
		links = append(links, l)
	}
	return Yank{
		Lines: b.textLines(r),
		Links: Relative(links, r.Start),
		At:    r.Start,
	}
}

// Copy stores the selection in the yank slot. The document is unchanged.
func (b *Buffer) Copy() bool {
	r, ok := b.Selection()
	if !ok {
		return false
	}
	b.setYank(b.capture(r))
	return true
}

// Cut yanks and deletes the selection. Its links are tombstoned so a later
// Paste moves them.
func (b *Buffer) Cut() bool {
	return b.DeleteSelection()
}

// Paste inserts the yank at the cursor, replacing the selection. A yanked link
// whose original is tombstoned is moved to the pasted text; one whose original
// is still live is copied under a new id.
func (b *Buffer) Paste() bool {
	if !b.hasYank {
		return false
	}
	y := b.yank
	t := b.begin()
	at := b.replaceSelection(t)
	links := b.placeYank(Absolute(y.Links, at))
	cursor := b.insertLines(t, at, y.Lines, links)
	cursor = b.rewrap(t, at.Row, cursor.Row, cursor)
	return b.commit(t, cursor)
}

// placeYank resolves yanked snapshots to the ids the insert will resurrect.
func (b *Buffer) placeYank(abs []Link) []Link {
	out := make([]Link, 0, len(abs))
	for _, l := range abs {
		_, st, ok := b.links.Get(l.ID)
		if ok && st == LinkTombstoned {
			b.log.Printf("paste moves link %d to %d:%d-%d", l.ID, l.Row, l.StartCol, l.EndCol)
			out = append(out, l)
			continue
		}
		cp := b.links.reserve(l)
		if ok {
			b.copiedFrom[cp.ID] = l.ID
		}
		b.log.Printf("paste copies link %d as %d", l.ID, cp.ID)
		out = append(out, cp)
	}
	return out
}
