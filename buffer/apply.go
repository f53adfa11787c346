package buffer

import "strings"

// TextEdit replaces Range with Text.
type TextEdit struct {
	Range Range
	Text  string
}

// Apply applies edits in order as one history entry. Each range is
// interpreted against the document as left by the previous edit and clamped
// into bounds. Links overlapping a replaced range are removed.
//
// The cursor ends after the last effective edit and the selection is cleared.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}
	t := b.begin()
	b.sel = selectionState{}
	cursor := b.cursor
	for _, e := range edits {
		r := NormalizeRange(Range{
			Start: b.PosAt(e.Range.Start.Row, e.Range.Start.Col),
			End:   b.PosAt(e.Range.End.Row, e.Range.End.Col),
		})
		text := normalizeNewlines(e.Text)
		if r.IsEmpty() && text == "" {
			continue
		}
		if !r.IsEmpty() {
			b.deleteRange(t, r)
		}
		end := r.Start
		if text != "" {
			end = b.insertLines(t, r.Start, strings.Split(text, "\n"), nil)
		}
		cursor = b.rewrap(t, r.Start.Row, end.Row, end)
	}
	return b.commit(t, cursor)
}
