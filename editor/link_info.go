package editor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type linkInfoPopup struct {
	View string
	X, Y int
}

// linkInfoText describes the link under the cursor.
func (m Model) linkInfoText() (string, int, int, bool) {
	cur := m.buf.Cursor()
	l, ok := m.buf.LinkAt(cur.Row, cur.Col)
	if !ok {
		return "", 0, 0, false
	}
	text, _ := m.buf.LinkText(l.ID)
	info := fmt.Sprintf("link %d: %s", l.ID, text)
	if src, ok := m.buf.CopiedFrom(l.ID); ok {
		info += fmt.Sprintf(" (copy of %d)", src)
	}
	return info, l.Row, l.StartCol, true
}

// linkInfoPopup places the description below the link, or above it when the
// link sits on the last visible row.
func (m Model) linkInfoPopup() (linkInfoPopup, bool) {
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	height := m.visibleRowCount()
	if width <= 0 || height < 2 {
		return linkInfoPopup{}, false
	}
	info, row, col, ok := m.linkInfoText()
	if !ok {
		return linkInfoPopup{}, false
	}
	x, y, ok := m.DocToScreen(m.buf.PosAt(row, col))
	if !ok {
		return linkInfoPopup{}, false
	}

	view := m.cfg.Style.LinkInfo.Render(ansi.Truncate(info, width, "…"))
	if w := lipgloss.Width(view); w > width {
		view = ansi.Truncate(view, width, "")
	}
	x = clampInt(x, 0, width-lipgloss.Width(view))
	if y+1 < height {
		y++
	} else {
		y--
	}
	return linkInfoPopup{View: view, X: x, Y: y}, true
}

func (m Model) renderView() string {
	base := m.viewport.View()
	if !m.cfg.ShowLinkInfo || !m.focused {
		return base
	}
	popup, ok := m.linkInfoPopup()
	if !ok {
		return base
	}
	return overlay.Composite(popup.View, base, overlay.Left, overlay.Top, popup.X, popup.Y)
}
