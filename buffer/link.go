package buffer

import (
	"fmt"
	"sort"
)

// Link is a span [StartCol, EndCol) on a single row.
//
// ID is stable for the link's lifetime; it is the only identity preserved
// across undo, redo and copy.
type Link struct {
	ID       uint64
	Row      int
	StartCol int
	EndCol   int
}

func (l Link) Len() int { return l.EndCol - l.StartCol }

// Contains reports whether col falls inside the link span.
func (l Link) Contains(col int) bool {
	return col >= l.StartCol && col < l.EndCol
}

// LinkState tells whether a stored link is visible or waiting for undo.
type LinkState uint8

const (
	LinkLive LinkState = iota
	// LinkTombstoned links keep their geometry frozen until an edit
	// resurrects them. Shifts and queries ignore them.
	LinkTombstoned
)

func (s LinkState) String() string {
	switch s {
	case LinkLive:
		return "live"
	case LinkTombstoned:
		return "tombstoned"
	default:
		return fmt.Sprintf("LinkState(%d)", uint8(s))
	}
}

type linkEntry struct {
	link  Link
	state LinkState
}

// Moved is the set of link ids an apply step has already positioned.
// Shift passes skip them.
type Moved map[uint64]struct{}

func (m Moved) Has(id uint64) bool {
	if m == nil {
		return false
	}
	_, ok := m[id]
	return ok
}

func (m Moved) add(id uint64) { m[id] = struct{}{} }

// LinkStore maps link ids to links. Ids are allocated from a counter owned by
// the store and are strictly increasing.
type LinkStore struct {
	entries map[uint64]*linkEntry
	nextID  uint64
}

func NewLinkStore() *LinkStore {
	return &LinkStore{
		entries: make(map[uint64]*linkEntry),
		nextID:  1,
	}
}

// Add stores a new live link and returns it with its id. The addition is not
// recorded in history; Buffer.AddLink is. Empty spans are accepted here but
// undo restores them exactly only while no edit touches their column.
func (s *LinkStore) Add(row, start, end int) Link {
	l := s.reserve(Link{Row: row, StartCol: start, EndCol: end})
	s.entries[l.ID].state = LinkLive
	return l
}

// reserve stores l tombstoned under a fresh id.
func (s *LinkStore) reserve(l Link) Link {
	l.ID = s.nextID
	s.nextID++
	s.entries[l.ID] = &linkEntry{link: l, state: LinkTombstoned}
	return l
}

func (s *LinkStore) Get(id uint64) (Link, LinkState, bool) {
	e, ok := s.entries[id]
	if !ok {
		return Link{}, 0, false
	}
	return e.link, e.state, true
}

func (s *LinkStore) mustEntry(id uint64) *linkEntry {
	e, ok := s.entries[id]
	if !ok {
		panic(fmt.Sprintf("buffer: link %d referenced by history is missing from the store", id))
	}
	return e
}

// resurrect makes the stored link live with the snapshot's geometry.
func (s *LinkStore) resurrect(snap Link) {
	e := s.mustEntry(snap.ID)
	e.link = snap
	e.state = LinkLive
}

func (s *LinkStore) tombstone(id uint64) {
	e := s.mustEntry(id)
	e.state = LinkTombstoned
}

func (s *LinkStore) Len() int { return len(s.entries) }

func (s *LinkStore) LiveLen() int {
	n := 0
	for _, e := range s.entries {
		if e.state == LinkLive {
			n++
		}
	}
	return n
}

// NextID returns the id the next added link will receive.
func (s *LinkStore) NextID() uint64 { return s.nextID }

// Live returns live links ordered by row, start column, then id.
func (s *LinkStore) Live() []Link {
	return s.collect(func(e *linkEntry) bool { return e.state == LinkLive })
}

// OnRow returns the live links on row in column order.
func (s *LinkStore) OnRow(row int) []Link {
	return s.collect(func(e *linkEntry) bool {
		return e.state == LinkLive && e.link.Row == row
	})
}

// Tombstoned returns the links currently waiting for resurrection.
func (s *LinkStore) Tombstoned() []Link {
	return s.collect(func(e *linkEntry) bool { return e.state == LinkTombstoned })
}

func (s *LinkStore) collect(keep func(*linkEntry) bool) []Link {
	var out []Link
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e.link)
		}
	}
	sortLinks(out)
	return out
}

// eachLive calls fn for every live link not in moved.
func (s *LinkStore) eachLive(moved Moved, fn func(l *Link)) {
	for id, e := range s.entries {
		switch e.state {
		case LinkLive:
			if moved.Has(id) {
				continue
			}
			fn(&e.link)
		case LinkTombstoned:
		}
	}
}

func sortLinks(links []Link) {
	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		return a.ID < b.ID
	})
}
