// Command linkarea-demo is a terminal editor showing link tracking, hops and
// linkification on top of the editor package.
//
// Keys: ctrl+f hop prompt, ctrl+l link/unlink, ctrl+s save, ctrl+q quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/linkarea"
	"github.com/iw2rmb/linkarea/editor"
	"github.com/iw2rmb/linkarea/internal/config"
)

const welcome = `linkarea demo

Links follow their text through every edit, undo and redo.
Select a word and press ctrl+l to link it; cut and paste moves it.
Press ctrl+f, type a pattern and enter, then type a label to hop.
See https://github.com/iw2rmb/linkarea for details.`

type model struct {
	editor editor.Model
	prompt textinput.Model
	asking bool

	path   string
	status string
	log    *log.Logger
}

func newModel(cfg config.Config, path, text string, logger *log.Logger) (model, error) {
	ecfg := editor.DefaultConfig()
	ecfg.Text = text
	ecfg.ShowLineNums = cfg.Editor.LineNumbers
	ecfg.ReadOnly = cfg.Editor.ReadOnly
	ecfg.HistorySize = cfg.Editor.HistorySize
	ecfg.MaxRowWidth = cfg.Editor.MaxRowWidth
	ecfg.TabWidth = cfg.Editor.TabWidth
	ecfg.HopTimeout = cfg.HopTimeout()
	ecfg.Logger = logger
	if cfg.Editor.SystemClipboard {
		if cb := (editor.SystemClipboard{}); cb.Available() {
			ecfg.Clipboard = cb
		}
	}

	m := model{
		editor: editor.New(ecfg),
		prompt: textinput.New(),
		path:   path,
		log:    logger,
	}
	m.prompt.Prompt = "hop /"
	for _, p := range cfg.Hop.Linkify {
		var (
			n   int
			err error
		)
		m.editor, n, err = m.editor.Linkify(p)
		if err != nil {
			return m, fmt.Errorf("linkify %q: %w", p, err)
		}
		logger.Printf("linkify %q: %d links", p, n)
	}
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		m.prompt.Width = msg.Width - len(m.prompt.Prompt) - 1
		return m, nil
	case tea.KeyMsg:
		if m.asking {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+f":
			m.asking = true
			m.prompt.SetValue("")
			m.editor = m.editor.Blur()
			return m, m.prompt.Focus()
		case "ctrl+s":
			m.status = m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.asking = false
		m.prompt.Blur()
		m.editor = m.editor.Focus()
		return m, nil
	case tea.KeyEnter:
		m.asking = false
		m.prompt.Blur()
		m.editor = m.editor.Focus()
		var err error
		m.editor, err = m.editor.SetHopPattern(m.prompt.Value())
		switch {
		case err != nil:
			m.status = err.Error()
		case m.editor.HopActive():
			m.status = fmt.Sprintf("%d matches, type a label", len(m.editor.HopMatches()))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m model) save() string {
	if m.path == "" {
		return "no file to save to"
	}
	if err := os.WriteFile(m.path, []byte(m.editor.Buffer().Text()), 0o644); err != nil {
		m.log.Printf("save %s: %v", m.path, err)
		return err.Error()
	}
	return "saved " + m.path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func (m model) View() string {
	if m.asking {
		return m.editor.View() + "\n" + m.prompt.View()
	}
	b := m.editor.Buffer()
	cur := b.Cursor()
	parts := []string{
		fmt.Sprintf("%d:%d", cur.Row+1, cur.Col+1),
		fmt.Sprintf("links %d", len(b.LiveLinks())),
		fmt.Sprintf("v%d", b.Version()),
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.editor.View() + "\n" + statusStyle.Render(strings.Join(parts, "  "))
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "linkarea ", log.LstdFlags|log.Lmicroseconds), func() { _ = f.Close() }, nil
}

func readText(path string) (string, error) {
	if path == "" {
		return welcome, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return string(data), err
}

func run() error {
	configPath := flag.String("config", "linkarea.toml", "config file (.toml, .yaml or .yml)")
	logPath := flag.String("log", "", "write trace output to this file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(linkarea.Version())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if *logPath != "" {
		cfg.Logging.File = *logPath
	}

	logger, closeLog, err := openLog(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closeLog()

	path := flag.Arg(0)
	text, err := readText(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	m, err := newModel(cfg, path, text, logger)
	if err != nil {
		return err
	}
	logger.Printf("start %s, config %+v", linkarea.Version(), cfg)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
