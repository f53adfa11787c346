package editor

import (
	"log"
	"reflect"
	"time"

	"github.com/iw2rmb/linkarea/buffer"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	// ShowLinkInfo pops up the id and text of the link under the cursor.
	ShowLinkInfo bool

	// KeyMap defaults to DefaultKeyMap when left zero.
	KeyMap KeyMap

	// Clipboard mirrors copies and cuts into a host clipboard and seeds
	// pastes from it. Nil keeps the yank slot private to the buffer.
	Clipboard Clipboard

	// ReadOnly allows movement, selection and copy but no mutation.
	ReadOnly bool

	// Forwarded to buffer.Options.
	HistorySize int
	MaxRowWidth int
	TabWidth    int
	Logger      *log.Logger

	// HopTimeout bounds a single regex evaluation. 0 means no limit.
	HopTimeout time.Duration

	// OnChange is called after every update that changed the buffer.
	OnChange func(ChangeEvent)
}

// DefaultConfig returns a Config with the default buffer limits, styles and
// key bindings.
func DefaultConfig() Config {
	opt := buffer.DefaultOptions()
	return Config{
		ShowLineNums: true,
		ShowLinkInfo: true,
		Style:        DefaultStyle(),
		KeyMap:       DefaultKeyMap(),
		HistorySize:  opt.HistorySize,
		TabWidth:     opt.TabWidth,
		HopTimeout:   time.Second,
	}
}

func (c Config) bufferOptions() buffer.Options {
	return buffer.Options{
		HistorySize: c.HistorySize,
		MaxRowWidth: c.MaxRowWidth,
		TabWidth:    c.TabWidth,
		Logger:      c.Logger,
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}
