package buffer

// Edit is one EditKind together with the positions it was recorded at.
//
// Before and After are the positions immediately preceding and following the
// forward application. Undo applies the inverted kind with the roles swapped.
type Edit struct {
	Kind   EditKind
	Before Pos
	After  Pos
}

func NewEdit(kind EditKind, before, after Pos) Edit {
	return Edit{Kind: kind, Before: before, After: after}
}

// Redo applies the edit forward and reconciles the remaining links.
func (e Edit) Redo(lines *[]string, links *LinkStore) {
	next, moved := e.Kind.Apply(*lines, links, e.Before, e.After)
	*lines = next
	links.ShiftAfterEdit(e.Kind, e.Before, e.After, moved)
}

// Undo applies the inverted edit and reconciles the remaining links.
func (e Edit) Undo(lines *[]string, links *LinkStore) {
	inv := e.Kind.Invert()
	next, moved := inv.Apply(*lines, links, e.After, e.Before)
	*lines = next
	links.ShiftAfterEdit(inv, e.After, e.Before, moved)
}

// Entry is one history step: the edits of a single user action and the
// cursor around it.
type Entry struct {
	Edits        []Edit
	CursorBefore Pos
	CursorAfter  Pos
}

func (en Entry) redo(lines *[]string, links *LinkStore) {
	for _, e := range en.Edits {
		e.Redo(lines, links)
	}
}

func (en Entry) undo(lines *[]string, links *LinkStore) {
	for i := len(en.Edits) - 1; i >= 0; i-- {
		en.Edits[i].Undo(lines, links)
	}
}

// History is a bounded list of entries with a cursor index. Entries left of
// the index are done; entries at and after it can be redone.
type History struct {
	entries  []Entry
	index    int
	capacity int
}

// NewHistory returns an empty history. A capacity of 0 disables it.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity}
}

// Push appends en, evicting the oldest entry at capacity and dropping any
// redo tail.
func (h *History) Push(en Entry) {
	if h.capacity == 0 {
		return
	}
	if len(h.entries) == h.capacity {
		h.entries[0] = Entry{}
		h.entries = h.entries[1:]
		if h.index > 0 {
			h.index--
		}
	}
	if h.index < len(h.entries) {
		clear(h.entries[h.index:])
		h.entries = h.entries[:h.index]
	}
	h.entries = append(h.entries, en)
	h.index++
}

// Redo applies the entry at the index forward. It returns the cursor before
// and after that entry, or ok=false when there is nothing to redo.
func (h *History) Redo(lines *[]string, links *LinkStore) (before, after Pos, ok bool) {
	if h.index == len(h.entries) {
		return Pos{}, Pos{}, false
	}
	en := h.entries[h.index]
	en.redo(lines, links)
	h.index++
	return en.CursorBefore, en.CursorAfter, true
}

// Undo applies the entry left of the index inverted. The returned pair has the
// roles swapped: before is where the cursor was, after is where it lands.
func (h *History) Undo(lines *[]string, links *LinkStore) (before, after Pos, ok bool) {
	if h.index == 0 {
		return Pos{}, Pos{}, false
	}
	h.index--
	en := h.entries[h.index]
	en.undo(lines, links)
	return en.CursorAfter, en.CursorBefore, true
}

func (h *History) CanUndo() bool { return h.index > 0 }

func (h *History) CanRedo() bool { return h.index < len(h.entries) }

func (h *History) Len() int { return len(h.entries) }

func (h *History) Index() int { return h.index }

func (h *History) Capacity() int { return h.capacity }
