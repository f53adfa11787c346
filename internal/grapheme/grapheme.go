package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// segment is one UAX #29 word segment with its starting rune column.
type segment struct {
	col  int
	text string
}

func words(text string) []segment {
	var out []segment
	col := 0
	state := -1
	for text != "" {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		out = append(out, segment{col: col, text: word})
		col += utf8.RuneCountInString(word)
	}
	return out
}

// WordStartBefore returns the rune column where the word ending at or before
// col starts. Whitespace directly before col is skipped first.
func WordStartBefore(line string, col int) int {
	if col <= 0 {
		return 0
	}
	segs := words(prefix(line, col))
	i := len(segs) - 1
	for i >= 0 && IsSpace(segs[i].text) {
		i--
	}
	if i < 0 {
		return 0
	}
	return segs[i].col
}

// WordEndAfter returns the rune column where the word starting at or after col
// ends. Whitespace directly after col is skipped first.
func WordEndAfter(line string, col int) int {
	if col < 0 {
		col = 0
	}
	rest := line[byteIndex(line, col):]
	segs := words(rest)
	i := 0
	for i < len(segs) && IsSpace(segs[i].text) {
		i++
	}
	if i == len(segs) {
		return col + utf8.RuneCountInString(rest)
	}
	return col + segs[i].col + utf8.RuneCountInString(segs[i].text)
}

// Width returns the monospace display width of text.
func Width(text string) int {
	return uniseg.StringWidth(text)
}

// IsSpace reports whether all runes in s are Unicode whitespace.
func IsSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func prefix(line string, col int) string {
	return line[:byteIndex(line, col)]
}

func byteIndex(line string, col int) int {
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}
