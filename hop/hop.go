// Package hop finds regular expression matches in a document and labels them
// so a cursor can jump to one by typing its label.
//
// Columns are rune based, matching buffer.Pos.Col.
package hop

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// FirstLabel is the first label handed out by Scan. Starting at 10 keeps every
// label two digits wide.
const FirstLabel = 10

// LastLabel is the highest label Scan assigns; later matches stay unlabelled.
const LastLabel = 99

// ErrNoPattern is returned by operations that need an active pattern.
var ErrNoPattern = errors.New("hop: no pattern")

// Span is a match [Start, End) in rune columns.
type Span struct {
	Start int
	End   int
}

// Match is a labelled span on Row.
type Match struct {
	Label int
	Row   int
	Span
}

type Matcher struct {
	re      *regexp2.Regexp
	timeout time.Duration
	labels  map[int]Match
	order   []Match
}

// New returns a matcher without a pattern. timeout bounds each match attempt;
// 0 disables the bound.
func New(timeout time.Duration) *Matcher {
	return &Matcher{timeout: timeout, labels: make(map[int]Match)}
}

// SetPattern compiles q. An empty q clears the pattern; setting the current
// pattern again keeps the existing labels.
func (m *Matcher) SetPattern(q string) error {
	if q == "" {
		m.Clear()
		return nil
	}
	if m.re != nil && m.re.String() == q {
		return nil
	}
	re, err := regexp2.Compile(q, regexp2.RE2)
	if err != nil {
		return fmt.Errorf("hop: compile %q: %w", q, err)
	}
	if m.timeout > 0 {
		re.MatchTimeout = m.timeout
	}
	m.re = re
	m.reset()
	return nil
}

// Clear drops the pattern and all labels.
func (m *Matcher) Clear() {
	m.re = nil
	m.reset()
}

func (m *Matcher) reset() {
	clear(m.labels)
	m.order = m.order[:0]
}

// Pattern returns the active pattern, or "".
func (m *Matcher) Pattern() string {
	if m.re == nil {
		return ""
	}
	return m.re.String()
}

func (m *Matcher) Active() bool { return m.re != nil }

// Matches returns the non-empty matches in line. A match attempt that times
// out ends the scan of that line.
func (m *Matcher) Matches(line string) []Span {
	if m.re == nil {
		return nil
	}
	var out []Span
	match, err := m.re.FindStringMatch(line)
	for err == nil && match != nil {
		if match.Length > 0 {
			out = append(out, Span{Start: match.Index, End: match.Index + match.Length})
		}
		match, err = m.re.FindNextMatch(match)
	}
	return out
}

// Scan matches every line and relabels the results in document order.
func (m *Matcher) Scan(lines []string) ([]Match, error) {
	if m.re == nil {
		return nil, ErrNoPattern
	}
	m.reset()
	label := FirstLabel
	for row, line := range lines {
		for _, s := range m.Matches(line) {
			mt := Match{Row: row, Span: s}
			if label <= LastLabel {
				mt.Label = label
				m.labels[label] = mt
				label++
			}
			m.order = append(m.order, mt)
		}
	}
	return append([]Match(nil), m.order...), nil
}

// Lookup returns the match carrying label from the last Scan.
func (m *Matcher) Lookup(label int) (Match, bool) {
	mt, ok := m.labels[label]
	return mt, ok
}

// OnRow returns the matches of the last Scan on row.
func (m *Matcher) OnRow(row int) []Match {
	var out []Match
	for _, mt := range m.order {
		if mt.Row == row {
			out = append(out, mt)
		}
	}
	return out
}
