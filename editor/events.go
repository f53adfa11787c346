package editor

import "github.com/iw2rmb/linkarea/buffer"

// ChangeEvent is passed to Config.OnChange after an update that changed the
// buffer.
type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// Change is the buffer's record of the last effective mutation. It is
	// zero when only the cursor or selection moved.
	Change    buffer.Change
	HasChange bool

	Links []buffer.Link

	// Text is the whole document; hosts can diff if needed.
	Text string
}

func buildChangeEvent(b *buffer.Buffer, since uint64) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Links:   b.LiveLinks(),
		Text:    b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	if c, ok := b.LastChange(); ok && c.VersionAfter > since {
		ev.Change = c
		ev.HasChange = true
	}
	return ev
}
