// Package surface provides display surfaces the coordinator mounts
// rendered trees and diagnostics on.
package surface

import (
	"fmt"
	"io"
	"sync"

	"github.com/Mr-Dark-debug/astview/internal/render"
)

// ────────────────────────────────────────────────────────────
// Buffer
// ────────────────────────────────────────────────────────────

// Buffer holds the current contents of a display region in memory.
// Each Replace swaps the whole element under a lock, so concurrent writers
// never interleave and the last write wins.
type Buffer struct {
	mu      sync.Mutex
	current *render.Element
	notice  string
	writes  int
}

// NewBuffer returns an empty surface.
func NewBuffer() *Buffer { return &Buffer{} }

// Replace mounts el, discarding whatever was shown before.
func (b *Buffer) Replace(el *render.Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = el
	b.writes++
}

// Notify records a blocking notice.
func (b *Buffer) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notice = message
}

// Current returns the mounted element, or nil if nothing was mounted.
func (b *Buffer) Current() *render.Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Notice returns the last notice, or "".
func (b *Buffer) Notice() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notice
}

// Writes returns how many times the surface was replaced.
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// ────────────────────────────────────────────────────────────
// Writer
// ────────────────────────────────────────────────────────────

// Format selects how a Writer prints elements.
type Format string

const (
	FormatTree Format = "tree"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTree, FormatHTML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want tree, html or json)", s)
	}
}

// Writer prints every replaced element to out and notices to notices.
// Writes are serialised so overlapping requests never interleave output.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	notices io.Writer
	format  Format
	theme   render.Theme
	err     error
}

// NewWriter creates a Writer. theme is used by FormatTree only.
func NewWriter(out, notices io.Writer, format Format, theme render.Theme) *Writer {
	return &Writer{out: out, notices: notices, format: format, theme: theme}
}

// Replace prints el in the configured format.
func (w *Writer) Replace(el *render.Element) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	switch w.format {
	case FormatHTML:
		if err = render.WriteHTML(w.out, el); err == nil {
			_, err = io.WriteString(w.out, "\n")
		}
	case FormatJSON:
		err = render.WriteJSON(w.out, el)
	default:
		err = render.WriteText(w.out, el, w.theme)
	}
	if err != nil && w.err == nil {
		w.err = err
	}
}

// Notify prints the notice on its own line.
func (w *Writer) Notify(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintln(w.notices, message); err != nil && w.err == nil {
		w.err = err
	}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
