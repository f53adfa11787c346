package editor

import (
	"io"
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
	"github.com/iw2rmb/linkarea/hop"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	log *log.Logger

	focused bool

	viewport viewport.Model

	hop        *hop.Matcher
	hopMatches []hop.Match
	// hopDigits holds the first typed digit of a two digit label.
	hopDigits string

	mouseDragging bool
	mouseAnchor   buffer.Pos

	lastBufVersion uint64
	lastCursor     buffer.Pos
}

func New(cfg Config) Model {
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, cfg.bufferOptions()),
		log:      logger,
		focused:  true,
		viewport: viewport.New(0, 0),
		hop:      hop.New(cfg.HopTimeout),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.buf.Version()
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
		// Manual wheel scrolling must not snap back to the cursor.
		m.syncFromBuffer()
	case tea.KeyMsg:
		if m.focused {
			m = m.updateKey(msg)
		}
		if m.syncFromBuffer() {
			m.followCursor()
		}
	default:
		// Hosts may mutate the buffer directly between messages.
		if m.syncFromBuffer() {
			m.followCursor()
		}
	}
	m.notify(before)
	return m, cmd
}

func (m Model) View() string { return m.renderView() }

func (m *Model) notify(before uint64) {
	if m.cfg.OnChange == nil || m.buf.Version() == before {
		return
	}
	m.cfg.OnChange(buildChangeEvent(m.buf, before))
}

// syncFromBuffer re-renders when the buffer moved on since the last render
// and reports whether the cursor changed.
func (m *Model) syncFromBuffer() (cursorChanged bool) {
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.rescanHop()
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}
