// Package config loads settings for the linkarea demo from a TOML or YAML
// file and LINKAREA_* environment variables.
//
// Precedence, lowest first: Default, the file, the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/linkarea/buffer"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LINKAREA_"

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")
	// ErrInvalidValue is returned when a setting is out of range or does not
	// parse.
	ErrInvalidValue = errors.New("config: invalid value")
)

type Config struct {
	Editor  Editor  `toml:"editor" yaml:"editor"`
	Hop     Hop     `toml:"hop" yaml:"hop"`
	Logging Logging `toml:"logging" yaml:"logging"`
}

type Editor struct {
	HistorySize     int  `toml:"history_size" yaml:"history_size"`
	MaxRowWidth     int  `toml:"max_row_width" yaml:"max_row_width"`
	TabWidth        int  `toml:"tab_width" yaml:"tab_width"`
	LineNumbers     bool `toml:"line_numbers" yaml:"line_numbers"`
	ReadOnly        bool `toml:"read_only" yaml:"read_only"`
	SystemClipboard bool `toml:"system_clipboard" yaml:"system_clipboard"`
}

type Hop struct {
	// TimeoutMS bounds one regex evaluation in milliseconds. 0 disables the
	// limit.
	TimeoutMS int `toml:"timeout_ms" yaml:"timeout_ms"`
	// Linkify lists patterns whose matches become links when a file is
	// opened.
	Linkify []string `toml:"linkify" yaml:"linkify"`
}

type Logging struct {
	// File receives trace output. Empty discards it.
	File string `toml:"file" yaml:"file"`
}

func Default() Config {
	opt := buffer.DefaultOptions()
	return Config{
		Editor: Editor{
			HistorySize:     opt.HistorySize,
			MaxRowWidth:     opt.MaxRowWidth,
			TabWidth:        opt.TabWidth,
			LineNumbers:     true,
			SystemClipboard: true,
		},
		Hop: Hop{TimeoutMS: 1000},
	}
}

// Load returns Default overlaid with the file at path. A missing file or an
// empty path yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(path, data, &c); err != nil {
		return Default(), err
	}
	return c, c.Validate()
}

func decode(path string, data []byte, c *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return nil
}

// ApplyEnv overlays LINKAREA_* variables found through lookup, usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"HISTORY_SIZE", &c.Editor.HistorySize},
		{"MAX_ROW_WIDTH", &c.Editor.MaxRowWidth},
		{"TAB_WIDTH", &c.Editor.TabWidth},
		{"HOP_TIMEOUT_MS", &c.Hop.TimeoutMS},
	}
	for _, v := range ints {
		s, ok := lookup(EnvPrefix + v.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidValue, EnvPrefix, v.name, s)
		}
		*v.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"LINE_NUMBERS", &c.Editor.LineNumbers},
		{"READ_ONLY", &c.Editor.ReadOnly},
		{"SYSTEM_CLIPBOARD", &c.Editor.SystemClipboard},
	}
	for _, v := range bools {
		s, ok := lookup(EnvPrefix + v.name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidValue, EnvPrefix, v.name, s)
		}
		*v.dst = b
	}

	if s, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Logging.File = s
	}
	if s, ok := lookup(EnvPrefix + "LINKIFY"); ok {
		c.Hop.Linkify = nil
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Hop.Linkify = append(c.Hop.Linkify, p)
			}
		}
	}
	return c.Validate()
}

func (c Config) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"editor.history_size", c.Editor.HistorySize},
		{"editor.max_row_width", c.Editor.MaxRowWidth},
		{"editor.tab_width", c.Editor.TabWidth},
		{"hop.timeout_ms", c.Hop.TimeoutMS},
	}
	for _, ch := range checks {
		if ch.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidValue, ch.name, ch.v)
		}
	}
	return nil
}

func (c Config) BufferOptions() buffer.Options {
	return buffer.Options{
		HistorySize: c.Editor.HistorySize,
		MaxRowWidth: c.Editor.MaxRowWidth,
		TabWidth:    c.Editor.TabWidth,
	}
}

func (c Config) HopTimeout() time.Duration {
	return time.Duration(c.Hop.TimeoutMS) * time.Millisecond
}
