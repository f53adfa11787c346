package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/linkarea/buffer"
)

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text: "ab",
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got := events[0].Text; got != "ab" {
		t.Fatalf("event text after move: got %q, want %q", got, "ab")
	}
	if got := events[0].Cursor; got != (buffer.Pos{Row: 0, Col: 1, Offset: 1}) {
		t.Fatalf("event cursor after move: got %v, want (0,1)", got)
	}
	if events[0].HasChange {
		t.Fatalf("cursor move reported a document change: %+v", events[0].Change)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // to EOL
	if len(events) != 2 {
		t.Fatalf("events after move to EOL: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // no-op at EOL
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	ev := events[2]
	if got := ev.Text; got != "abX" {
		t.Fatalf("event text after insert: got %q, want %q", got, "abX")
	}
	if !ev.HasChange || ev.Change.Source != buffer.ChangeSourceEdit || len(ev.Change.Edits) == 0 {
		t.Fatalf("event change after insert: got %+v", ev.Change)
	}
	if ev.Change.VersionAfter != ev.Version {
		t.Fatalf("change version: got %d, want %d", ev.Change.VersionAfter, ev.Version)
	}
}

func TestOnChange_CarriesSelectionAndLinks(t *testing.T) {
	var last ChangeEvent
	m := New(Config{
		Text:     "hello",
		OnChange: func(ev ChangeEvent) { last = ev },
	})
	if _, err := m.buf.AddLink(0, 1, 3); err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if !last.Selection.Active {
		t.Fatalf("expected active selection in event")
	}
	if got := last.Selection.Range; got.Start.Col != 0 || got.End.Col != 1 {
		t.Fatalf("event selection: got %v, want cols 0-1", got)
	}
	if len(last.Links) != 1 || last.Links[0].StartCol != 1 {
		t.Fatalf("event links: got %+v", last.Links)
	}
}
