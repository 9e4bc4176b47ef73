package panel

import (
	"errors"
	"slices"
)

// ErrReadOnly is returned when a buffer is written outside a refresh.
var ErrReadOnly = errors.New("buffer is read-only")

// Buffer is a line-addressed, normally read-only text buffer.
type Buffer struct {
	lines    []string
	readOnly bool
}

func NewBuffer() *Buffer {
	return &Buffer{readOnly: true}
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the zero-based line i.
func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Lines returns a copy of the buffer content.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

func (b *Buffer) ReadOnly() bool {
	return b.readOnly
}

// SetLines replaces the whole content. It fails while the buffer is read-only.
func (b *Buffer) SetLines(lines []string) error {
	if b.readOnly {
		return ErrReadOnly
	}
	b.lines = slices.Clone(lines)
	return nil
}

// Rewrite lifts read-only, replaces every line and restores read-only.
func (b *Buffer) Rewrite(lines []string) error {
	b.readOnly = false
	defer func() { b.readOnly = true }()
	return b.SetLines(lines)
}
