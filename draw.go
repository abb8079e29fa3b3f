package boxwin

import (
	"strings"

	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/text"
)

// DrawBox registers g, renders its border and makes it the current box.
// Nothing is written when g is rejected.
func (s *Session) DrawBox(g box.Geometry, opts DrawOptions) (box.Handle, error) {
	h, err := s.registry.Create(g)
	if err != nil {
		return -1, opError("draw", "", err)
	}
	s.render(g, opts)
	s.selectBox(h, g)
	s.log.Debug("drew box %d at (%d, %d) size %dx%d", h, g.X, g.Y, g.Width, g.Height)
	return h, nil
}

// RedrawBox renders box h again from its stored geometry and selects it.
func (s *Session) RedrawBox(h box.Handle, opts DrawOptions) error {
	g, err := s.registry.Get(h)
	if err != nil {
		return opError("redraw", boxTarget(h), err)
	}
	s.render(g, opts)
	s.selectBox(h, g)
	return nil
}

func (s *Session) render(g box.Geometry, opts DrawOptions) {
	opts.Colors.apply(s.surface)

	row := make([]rune, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := range row {
			row[x] = box.BorderGlyph(opts.Style, x, y, g.Width, g.Height)
		}
		s.surface.SetCursorPosition(g.X, g.Y+y)
		s.surface.WriteString(string(row))
	}

	// A 3-wide box has no room for brackets between its corners.
	if opts.Title != "" && g.Width > box.MinSize {
		s.surface.SetCursorPosition(g.X+1, g.Y)
		s.surface.WriteString("[" + text.Truncate(opts.Title, g.Width-4) + "]")
	}
	s.surface.Show()
}

// ClearBox blanks the interior of the current box with the active colors.
// The text buffer is kept and the cursor is left after the last blank row.
func (s *Session) ClearBox() error {
	if err := s.requireViewport("clear"); err != nil {
		return err
	}
	s.blank()
	s.surface.Show()
	return nil
}

// ClearBoxAt selects box h and blanks its interior.
func (s *Session) ClearBoxAt(h box.Handle) error {
	g, err := s.registry.Get(h)
	if err != nil {
		return opError("clear", boxTarget(h), err)
	}
	s.selectBox(h, g)
	return s.ClearBox()
}

func (s *Session) blank() {
	v := s.viewport
	spaces := strings.Repeat(" ", v.Width)
	for y := 0; y < v.Height; y++ {
		s.surface.SetCursorPosition(v.OriginX, v.OriginY+y)
		s.surface.WriteString(spaces)
	}
}

// PrintChar writes r at viewport-local (x, y). Coordinates are clamped to
// [0, Width] x [0, Height], so out-of-range points land on the far edge.
func (s *Session) PrintChar(x, y int, r rune, colors ColorSpec) error {
	if err := s.requireViewport("print"); err != nil {
		return err
	}
	x, y = s.viewport.Clamp(x, y)
	colors.apply(s.surface)
	s.surface.SetCursorPosition(s.viewport.OriginX+x, s.viewport.OriginY+y)
	s.surface.WriteRune(r)
	s.surface.Show()
	return nil
}
