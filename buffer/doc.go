// Package buffer implements the in-memory, line-oriented document model for
// linkarea: text rows, exact undo/redo, and links (single-row spans) that track
// every mutation.
//
// Coordinates are 0-based (Row, Col) in runes. A Pos additionally carries the
// byte Offset of Col inside its row so that apply steps never recompute it.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// A Buffer is not safe for concurrent use; one session owns it exclusively.
package buffer
