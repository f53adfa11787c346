// Package editor provides a Bubble Tea component backed by the buffer
// package.
//
// The package handles key and mouse input, viewport following, rendering of
// selections, links and hop labels, and host integration hooks (system
// clipboard, change events, pattern hops and linkification).
package editor
