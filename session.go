// Package boxwin draws bordered boxes on a character-cell surface and keeps
// a word-wrapped, bounded text buffer for the selected box.
//
// All state lives in a Session: the registry of every box drawn, the
// selected box's viewport, the live text buffer and the save slots.
// A Session is not safe for concurrent use.
package boxwin

import (
	"github.com/google/uuid"

	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/backend"
	"github.com/dshills/boxwin/text"
)

// Session renders boxes and text onto a single surface.
type Session struct {
	id       string
	surface  backend.Surface
	registry *box.Registry
	buffer   *text.Buffer
	slots    *text.Slots
	log      *logging.Logger

	current  box.Handle
	viewport box.Viewport
}

// NewSession creates a session drawing on s. The surface must already be
// initialized.
func NewSession(s backend.Surface, opts Options) *Session {
	id := uuid.NewString()
	_, h := s.Size()

	return &Session{
		id:       id,
		surface:  s,
		registry: box.NewRegistry(opts.BoxCapacity),
		buffer:   text.NewBuffer(text.CapacityFor(h)),
		slots:    text.NewSlots(opts.SlotCapacity),
		log:      logging.OrNull(opts.Logger).WithComponent("session").WithField("session", id),
		current:  -1,
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Surface returns the surface the session draws on.
func (s *Session) Surface() backend.Surface {
	return s.surface
}

// Current returns the selected box and its viewport. ok is false when no
// box has been drawn or selected yet.
func (s *Session) Current() (h box.Handle, v box.Viewport, ok bool) {
	if s.current < 0 {
		return -1, box.Viewport{}, false
	}
	return s.current, s.viewport, true
}

// Boxes returns the geometry of every box drawn, indexed by handle.
func (s *Session) Boxes() []box.Geometry {
	return s.registry.All()
}

// Box returns the geometry registered under h.
func (s *Session) Box(h box.Handle) (box.Geometry, error) {
	g, err := s.registry.Get(h)
	if err != nil {
		return box.Geometry{}, opError("get", boxTarget(h), err)
	}
	return g, nil
}

// Corner returns the x or y coordinate of a corner of box h.
func (s *Session) Corner(h box.Handle, c box.Corner, a box.Axis) (int, error) {
	v, err := s.registry.Corner(h, c, a)
	if err != nil {
		return 0, opError("corner", boxTarget(h), err)
	}
	return v, nil
}

// SelectBox makes h the current box and parks the cursor at its viewport
// origin. Nothing is drawn.
func (s *Session) SelectBox(h box.Handle) (box.Viewport, error) {
	g, err := s.registry.Get(h)
	if err != nil {
		return box.Viewport{}, opError("select", boxTarget(h), err)
	}
	s.selectBox(h, g)
	return s.viewport, nil
}

// selectBox replaces the current viewport and resizes the live buffer to
// the new interior height.
func (s *Session) selectBox(h box.Handle, g box.Geometry) {
	s.current = h
	s.viewport = g.Viewport()
	if n := s.buffer.SetCapacity(text.CapacityFor(s.viewport.Height)); n > 0 {
		s.log.Debug("buffer trimmed by %d lines for box %d", n, h)
	}
	s.surface.SetCursorPosition(s.viewport.OriginX, s.viewport.OriginY)
}

func (s *Session) requireViewport(op string) error {
	if s.current < 0 {
		return opError(op, "", ErrNoViewport)
	}
	return nil
}

// ClearBuffer discards the live buffer. The screen is not touched.
func (s *Session) ClearBuffer() {
	s.buffer.Clear()
}

// Lines returns a copy of the live buffer, oldest first.
func (s *Session) Lines() []text.Line {
	return s.buffer.Lines()
}

// SaveBuffer stores a snapshot of the live buffer in slot i.
func (s *Session) SaveBuffer(i int) error {
	if err := s.slots.Save(i, s.buffer.Lines()); err != nil {
		return opError("save", slotTarget(i), err)
	}
	s.log.Debug("saved %d lines to slot %d", s.buffer.Len(), i)
	return nil
}

// RestoreBuffer replaces the live buffer with the snapshot in slot i.
// A slot never saved restores an empty buffer. Call Flush to show it.
func (s *Session) RestoreBuffer(i int) error {
	lines, err := s.slots.Load(i)
	if err != nil {
		return opError("restore", slotTarget(i), err)
	}
	s.buffer.Replace(lines)
	s.log.Debug("restored %d lines from slot %d", s.buffer.Len(), i)
	return nil
}

// SlotCapacity returns the number of save slots.
func (s *Session) SlotCapacity() int {
	return s.slots.Cap()
}
