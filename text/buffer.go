package text

import (
	"fmt"

	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/renderer/core"
)

// Line is one wrapped row of text with the colors it is drawn in.
type Line struct {
	Text       string
	Foreground core.Color
	Background core.Color
}

// Buffer is an ordered, bounded sequence of lines. When full, appending
// evicts the oldest line first.
type Buffer struct {
	lines    []Line
	capacity int
}

// CapacityFor returns the number of lines a viewport of the given height
// keeps: one row is reserved as the cursor rest position, but at least one
// line is always kept.
func CapacityFor(viewportHeight int) int {
	return max(viewportHeight-1, 1)
}

// NewBuffer creates a buffer holding at most capacity lines (minimum 1).
func NewBuffer(capacity int) *Buffer {
	return &Buffer{capacity: max(capacity, 1)}
}

// Capacity returns the maximum number of lines kept.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// SetCapacity changes the bound, evicting the oldest lines that no longer
// fit. It returns the number of lines evicted.
func (b *Buffer) SetCapacity(capacity int) int {
	b.capacity = max(capacity, 1)
	return b.trim()
}

func (b *Buffer) trim() int {
	over := len(b.lines) - b.capacity
	if over <= 0 {
		return 0
	}
	b.lines = append(b.lines[:0], b.lines[over:]...)
	return over
}

// Append adds l at the end, evicting the oldest line first if the buffer is
// full. It reports whether a line was evicted.
func (b *Buffer) Append(l Line) bool {
	evicted := false
	if len(b.lines) >= b.capacity {
		b.lines = append(b.lines[:0], b.lines[1:]...)
		evicted = true
	}
	b.lines = append(b.lines, l)
	return evicted
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Clear discards every line.
func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
}

// Replace discards the current lines and loads lines in order. If lines
// exceeds the capacity only the newest lines are kept.
func (b *Buffer) Replace(lines []Line) {
	b.lines = append(b.lines[:0], lines...)
	b.trim()
}

// DefaultSlotCapacity is the number of slots when none is configured.
const DefaultSlotCapacity = 32

// Slots is a fixed-size table of saved buffer snapshots. A slot keeps its
// snapshot until overwritten.
type Slots struct {
	slots [][]Line
	saved []bool
}

// NewSlots creates a table of n slots; n <= 0 selects DefaultSlotCapacity.
func NewSlots(n int) *Slots {
	if n <= 0 {
		n = DefaultSlotCapacity
	}
	return &Slots{
		slots: make([][]Line, n),
		saved: make([]bool, n),
	}
}

// Cap returns the number of slots.
func (s *Slots) Cap() int {
	return len(s.slots)
}

func (s *Slots) check(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("%w: slot %d (table holds %d)", box.ErrInvalidHandle, i, len(s.slots))
	}
	return nil
}

// Save stores a copy of lines in slot i, overwriting any previous snapshot.
func (s *Slots) Save(i int, lines []Line) error {
	if err := s.check(i); err != nil {
		return err
	}
	snap := make([]Line, len(lines))
	copy(snap, lines)
	s.slots[i] = snap
	s.saved[i] = true
	return nil
}

// Load returns a copy of slot i. A slot never saved yields no lines.
func (s *Slots) Load(i int) ([]Line, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	out := make([]Line, len(s.slots[i]))
	copy(out, s.slots[i])
	return out, nil
}

// Saved reports whether slot i holds a snapshot.
func (s *Slots) Saved(i int) bool {
	return s.check(i) == nil && s.saved[i]
}
