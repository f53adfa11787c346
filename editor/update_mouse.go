package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused {
		return m, cmd
	}

	// Only left button interactions move the cursor or select.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}

		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			m.mouseAnchor = m.selectionAnchor()
			m.buf.SelectRange(m.mouseAnchor, p)
		} else {
			m.mouseAnchor = p
			m.buf.ClearSelection()
			m.buf.SetCursor(p.Row, p.Col)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.buf.SelectRange(m.mouseAnchor, m.screenToDocPos(x, y))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

// selectionAnchor returns the fixed end of the current selection, or the
// cursor when nothing is selected.
func (m Model) selectionAnchor() buffer.Pos {
	cur := m.buf.Cursor()
	r, ok := m.buf.Selection()
	if !ok {
		return cur
	}
	if r.Start == cur {
		return r.End
	}
	return r.Start
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
