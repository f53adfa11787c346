package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
//
// Precedence when several apply to one cell: Cursor, HopLabel, Selection,
// HopMatch, Link, Text.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Link     lipgloss.Style
	HopMatch lipgloss.Style
	HopLabel lipgloss.Style

	// LinkInfo frames the popup describing the link under the cursor.
	LinkInfo lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		HopMatch:      lipgloss.NewStyle().Background(lipgloss.Color("58")),
		HopLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
		LinkInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
	}
}
