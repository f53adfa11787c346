package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertStr(string(msg.Runes))
		}
		return m
	}

	km := m.cfg.KeyMap

	if m.hop.Active() {
		if key.Matches(msg, km.HopCancel) {
			return m.ClearHop()
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && isDigit(msg.Runes[0]) {
			return m.hopDigit(msg.Runes[0])
		}
	}

	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
		m.buf.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	}
	edit := func(fn func() bool) {
		if !m.cfg.ReadOnly {
			fn()
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		move(buffer.MoveRune, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		move(buffer.MoveRune, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		move(buffer.MoveRune, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		move(buffer.MoveRune, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		move(buffer.MoveRune, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		move(buffer.MoveRune, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		move(buffer.MoveRune, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		move(buffer.MoveRune, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		move(buffer.MoveDoc, buffer.DirEnd, false)
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectAll()

	case key.Matches(msg, km.Backspace):
		edit(m.buf.DeleteChar)
	case key.Matches(msg, km.Delete):
		edit(m.buf.DeleteNextChar)
	case key.Matches(msg, km.DeleteWord):
		edit(m.buf.DeleteWord)
	case key.Matches(msg, km.DeleteNextWord):
		edit(m.buf.DeleteNextWord)
	case key.Matches(msg, km.DeleteLine):
		edit(m.buf.DeleteLine)
	case key.Matches(msg, km.Enter):
		edit(m.buf.InsertNewline)
	case key.Matches(msg, km.Tab):
		edit(m.buf.InsertTab)

	case key.Matches(msg, km.Undo):
		edit(m.buf.Undo)
	case key.Matches(msg, km.Redo):
		edit(m.buf.Redo)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if m.cfg.ReadOnly {
			m.copySelection()
		} else {
			m.cutSelection()
		}
	case key.Matches(msg, km.Paste):
		edit(m.pasteClipboard)

	case key.Matches(msg, km.ToggleLink):
		edit(m.toggleLink)

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			edit(func() bool { return m.buf.InsertStr(string(msg.Runes)) })
		} else if msg.Type == tea.KeySpace {
			edit(func() bool { return m.buf.InsertChar(' ') })
		}
	}

	return m
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (m Model) copySelection() {
	if !m.buf.Copy() {
		return
	}
	m.writeYank()
}

func (m Model) cutSelection() {
	if !m.buf.Cut() {
		return
	}
	m.writeYank()
}

func (m Model) writeYank() {
	if m.cfg.Clipboard == nil {
		return
	}
	y, ok := m.buf.Yank()
	if !ok {
		return
	}
	if err := m.cfg.Clipboard.WriteText(y.Text()); err != nil {
		m.log.Printf("clipboard: write: %v", err)
	}
}

// pasteClipboard pastes the yank slot. Text copied elsewhere replaces the
// slot first; text equal to the slot keeps its links.
func (m Model) pasteClipboard() bool {
	if m.cfg.Clipboard != nil {
		s, err := m.cfg.Clipboard.ReadText()
		switch {
		case err != nil:
			m.log.Printf("clipboard: read: %v", err)
		case s != "":
			s = normalizeNewlines(s)
			if y, ok := m.buf.Yank(); !ok || y.Text() != s {
				m.buf.SetYank(buffer.Yank{Lines: strings.Split(s, "\n"), At: m.buf.Cursor()})
			}
		}
	}
	return m.buf.Paste()
}

// toggleLink links a selection confined to one row, or removes the link under
// the cursor.
func (m Model) toggleLink() bool {
	if r, ok := m.buf.Selection(); ok {
		if r.Start.Row != r.End.Row {
			return false
		}
		if _, err := m.buf.AddLink(r.Start.Row, r.Start.Col, r.End.Col); err != nil {
			m.log.Printf("link: %v", err)
			return false
		}
		return true
	}
	cur := m.buf.Cursor()
	l, ok := m.buf.LinkAt(cur.Row, cur.Col)
	if !ok && cur.Col > 0 {
		l, ok = m.buf.LinkAt(cur.Row, cur.Col-1)
	}
	if !ok {
		return false
	}
	return m.buf.RemoveLink(l.ID)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
