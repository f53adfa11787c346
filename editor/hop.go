package editor

import (
	"fmt"
	"strconv"

	"github.com/iw2rmb/linkarea/buffer"
	"github.com/iw2rmb/linkarea/hop"
)

// SetHopPattern highlights every match of q and labels them for HopTo. An
// empty q leaves hop mode. Labels are drawn over the first cells of their
// match and may run into the cells that follow it.
func (m Model) SetHopPattern(q string) (Model, error) {
	if err := m.hop.SetPattern(q); err != nil {
		return m, err
	}
	m.hopDigits = ""
	m.rebuildContent()
	return m, nil
}

// ClearHop leaves hop mode.
func (m Model) ClearHop() Model {
	if !m.hop.Active() {
		return m
	}
	m.hop.Clear()
	m.hopMatches = nil
	m.hopDigits = ""
	m.rebuildContent()
	return m
}

// HopActive reports whether a hop pattern is set.
func (m Model) HopActive() bool { return m.hop.Active() }

// HopMatches returns the labelled matches currently on screen.
func (m Model) HopMatches() []hop.Match {
	return append([]hop.Match(nil), m.hopMatches...)
}

// HopTo moves the cursor to the start of the match labelled label and leaves
// hop mode.
func (m Model) HopTo(label int) (Model, bool) {
	mt, ok := m.hop.Lookup(label)
	if !ok {
		return m, false
	}
	m.buf.ClearSelection()
	m.buf.SetCursor(mt.Row, mt.Start)
	m = m.ClearHop()
	m.syncFromBuffer()
	m.followCursor()
	return m, true
}

// Linkify adds a link over every match of pattern and returns how many links
// were created. Each link is its own undo step.
func (m Model) Linkify(pattern string) (Model, int, error) {
	if m.cfg.ReadOnly {
		return m, 0, nil
	}
	mt := hop.New(m.cfg.HopTimeout)
	if err := mt.SetPattern(pattern); err != nil {
		return m, 0, err
	}
	matches, err := mt.Scan(m.buf.Lines())
	if err != nil {
		return m, 0, fmt.Errorf("linkify: %w", err)
	}
	n := 0
	for _, match := range matches {
		if linked(m.buf, match) {
			continue
		}
		if _, err := m.buf.AddLink(match.Row, match.Start, match.End); err != nil {
			m.log.Printf("linkify: skip %d:%d-%d: %v", match.Row, match.Start, match.End, err)
			continue
		}
		n++
	}
	m.syncFromBuffer()
	return m, n, nil
}

func linked(b *buffer.Buffer, mt hop.Match) bool {
	for _, l := range b.LinkStore().OnRow(mt.Row) {
		if l.StartCol == mt.Start && l.EndCol == mt.End {
			return true
		}
	}
	return false
}

func (m *Model) rescanHop() {
	if !m.hop.Active() {
		m.hopMatches = nil
		return
	}
	matches, err := m.hop.Scan(m.buf.Lines())
	if err != nil {
		m.log.Printf("hop: scan %q: %v", m.hop.Pattern(), err)
		m.hopMatches = nil
		return
	}
	m.hopMatches = matches
}

// hopDigit consumes one typed digit in hop mode. Two digits complete a label.
func (m Model) hopDigit(r rune) Model {
	m.hopDigits += string(r)
	if len(m.hopDigits) < 2 {
		return m
	}
	label, err := strconv.Atoi(m.hopDigits)
	m.hopDigits = ""
	if err != nil {
		return m
	}
	if next, ok := m.HopTo(label); ok {
		return next
	}
	return m
}
