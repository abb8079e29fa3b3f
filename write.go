package boxwin

import (
	"github.com/dshills/boxwin/text"
)

// WriteText wraps input to the current viewport width, appends the lines
// to the live buffer and redraws the viewport from the buffer.
//
// New lines are tagged with the surface's active colors, overridden per
// channel by opts.Colors. When the buffer is full the oldest lines are
// evicted. Afterwards the cursor rests on the first column of the last
// viewport row and the active colors are those of the last line drawn.
func (s *Session) WriteText(input string, opts WriteOptions) error {
	if err := s.requireViewport("write"); err != nil {
		return err
	}
	if opts.Clear {
		s.buffer.Clear()
	}

	fg, bg := opts.Colors.Resolve(s.surface.Foreground(), s.surface.Background())
	evicted := 0
	for _, l := range text.Wrap(input, s.viewport.Width) {
		if s.buffer.Append(text.Line{Text: l, Foreground: fg, Background: bg}) {
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Debug("evicted %d lines from box %d", evicted, s.current)
	}

	s.flush()
	return nil
}

// Flush redraws the current viewport from the live buffer.
func (s *Session) Flush() error {
	if err := s.requireViewport("flush"); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *Session) flush() {
	v := s.viewport
	s.blank()
	for i, l := range s.buffer.Lines() {
		s.surface.SetCursorPosition(v.OriginX, v.OriginY+i)
		s.surface.SetForeground(l.Foreground)
		s.surface.SetBackground(l.Background)
		// Lines wrapped for a wider box are cut to this one.
		s.surface.WriteString(text.Truncate(l.Text, v.Width))
	}
	s.surface.SetCursorPosition(v.OriginX, v.OriginY+v.Height-1)
	s.surface.Show()
}
