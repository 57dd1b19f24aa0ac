package output

import (
	"fmt"
	"io"
	"sync"

	"tasksync/internal/tasksync"
)

// TextView renders entries to a terminal. Every Render prints the whole
// list again.
type TextView struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	strike bool
	quiet  bool
	err    error
}

// TextOption configures a TextView.
type TextOption func(*TextView)

// WithFormat selects text, JSON or YAML output.
func WithFormat(f Format) TextOption {
	return func(v *TextView) { v.format = f }
}

// WithStrike enables the ANSI line-through for completed tasks.
func WithStrike(on bool) TextOption {
	return func(v *TextView) { v.strike = on }
}

// WithQuiet suppresses the empty-list message.
func WithQuiet(on bool) TextOption {
	return func(v *TextView) { v.quiet = on }
}

// NewTextView returns a view writing to w.
func NewTextView(w io.Writer, opts ...TextOption) *TextView {
	v := &TextView{w: w, format: FormatText}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Render implements tasksync.View.
func (v *TextView) Render(entries []tasksync.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.format {
	case FormatJSON:
		v.err = WriteJSON(v.w, entries)
	case FormatYAML:
		v.err = WriteYAML(v.w, entries)
	default:
		if len(entries) == 0 {
			if !v.quiet {
				fmt.Fprintln(v.w, EmptyMessage)
			}
			return
		}
		for i, e := range entries {
			FormatEntry(v.w, i+1, e, v.strike)
		}
	}
}

// Err returns the last encoding error, if any.
func (v *TextView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}
