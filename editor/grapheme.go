package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/linkarea/internal/grapheme"
)

// cell is one buffer column laid out on screen.
type cell struct {
	Col       int
	StartCell int
	Width     int
	Text      string
}

// layoutCells places every rune of line on terminal cells. Tabs expand to the
// next stop.
func layoutCells(line string, tabWidth int) []cell {
	if line == "" {
		return nil
	}
	out := make([]cell, 0, len(line))
	visualCol := 0
	for _, r := range line {
		c := cell{Col: len(out), StartCell: visualCol, Text: string(r)}
		if r == '\t' {
			c.Width = tabAdvance(visualCol, tabWidth)
			c.Text = strings.Repeat(" ", c.Width)
		} else {
			c.Width = runeCellWidth(r)
		}
		out = append(out, c)
		visualCol += c.Width
	}
	return out
}

func runeCellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = grapheme.Width(string(r))
	}
	if w < 0 {
		w = 0
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}
