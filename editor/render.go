package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/linkarea/buffer"
)

// paint is the highlight class of one cell. Higher values win.
type paint uint8

const (
	paintText paint = iota
	paintLink
	paintHopMatch
	paintSelection
	paintHopLabel
	paintCursor
)

func (m *Model) renderContent() string {
	lines := m.buf.Lines()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	digits := gutterDigits(len(lines))
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()

	out := make([]string, 0, len(lines))
	for row, line := range lines {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			sb.WriteString(m.renderGutter(row, digits, m.focused && row == cursor.Row))
		}
		sb.WriteString(m.renderLine(row, line, cursor, sel, selOK))
		s := sb.String()
		if width > 0 {
			s = ansi.Truncate(s, width, "")
		}
		out = append(out, s)
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(row int, line string, cursor buffer.Pos, sel buffer.Range, selOK bool) string {
	cells := layoutCells(line, m.cfg.TabWidth)
	// One extra slot past the last rune holds an end-of-line cursor.
	paints := make([]paint, len(cells)+1)
	over := func(from, to int, p paint) {
		from = clampInt(from, 0, len(cells))
		to = clampInt(to, 0, len(cells))
		for c := from; c < to; c++ {
			paints[c] = max(paints[c], p)
		}
	}

	for _, l := range m.buf.LinkStore().OnRow(row) {
		over(l.StartCol, l.EndCol, paintLink)
	}

	labels := make(map[int]string)
	for _, mt := range m.hopMatches {
		if mt.Row != row {
			continue
		}
		over(mt.Start, mt.End, paintHopMatch)
		if mt.Label == 0 {
			continue
		}
		for i, r := range strconv.Itoa(mt.Label) {
			c := mt.Start + i
			if c >= len(cells) {
				break
			}
			labels[c] = string(r)
			paints[c] = max(paints[c], paintHopLabel)
		}
	}

	if from, to, ok := selectionColsForRow(sel, selOK, row, len(cells)); ok {
		over(from, to, paintSelection)
	}

	if m.focused && row == cursor.Row {
		paints[clampInt(cursor.Col, 0, len(cells))] = paintCursor
	}

	var sb strings.Builder
	var run strings.Builder
	cur := paintText
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.styleFor(cur).Render(run.String()))
		run.Reset()
	}
	for i, c := range cells {
		if paints[i] != cur {
			flush()
			cur = paints[i]
		}
		text := c.Text
		if lbl, ok := labels[i]; ok {
			text = lbl + strings.Repeat(" ", max(c.Width-1, 0))
		}
		run.WriteString(text)
	}
	flush()
	if paints[len(cells)] == paintCursor {
		sb.WriteString(m.cfg.Style.Cursor.Render(" "))
	}
	return sb.String()
}

func (m *Model) styleFor(p paint) lipgloss.Style {
	st := m.cfg.Style
	switch p {
	case paintLink:
		return st.Link
	case paintHopMatch:
		return st.HopMatch
	case paintSelection:
		return st.Selection
	case paintHopLabel:
		return st.HopLabel
	case paintCursor:
		return st.Cursor
	default:
		return st.Text
	}
}

// selectionColsForRow returns the selected columns of row, end exclusive.
func selectionColsForRow(sel buffer.Range, ok bool, row, rowLen int) (from, to int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	from, to = 0, rowLen
	if row == sel.Start.Row {
		from = sel.Start.Col
	}
	if row == sel.End.Row {
		to = sel.End.Col
	}
	return from, to, from < to
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
