package boxwin

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/boxwin/renderer/core"
	"github.com/dshills/boxwin/text"
)

// Dump returns an indented JSON snapshot of the session: surface size,
// current box, every registered box, the live buffer and the saved slots.
// LoadSlots accepts the same document.
func (s *Session) Dump() (string, error) {
	d := &dumper{doc: "{}"}

	w, h := s.surface.Size()
	d.set("session", s.id)
	d.set("surface.width", w)
	d.set("surface.height", h)
	d.set("current", int(s.current))

	d.raw("boxes", "[]")
	for i, g := range s.registry.All() {
		d.set(fmt.Sprintf("boxes.%d.x", i), g.X)
		d.set(fmt.Sprintf("boxes.%d.y", i), g.Y)
		d.set(fmt.Sprintf("boxes.%d.width", i), g.Width)
		d.set(fmt.Sprintf("boxes.%d.height", i), g.Height)
	}

	d.lines("buffer", s.buffer.Lines())

	d.raw("slots", "[]")
	n := 0
	for i := 0; i < s.slots.Cap(); i++ {
		if !s.slots.Saved(i) {
			continue
		}
		lines, err := s.slots.Load(i)
		if err != nil {
			return "", opError("dump", slotTarget(i), err)
		}
		d.set(fmt.Sprintf("slots.%d.index", n), i)
		d.lines(fmt.Sprintf("slots.%d.lines", n), lines)
		n++
	}

	if d.err != nil {
		return "", opError("dump", "", d.err)
	}
	return string(pretty.Pretty([]byte(d.doc))), nil
}

// dumper accumulates sjson edits, keeping the first error.
type dumper struct {
	doc string
	err error
}

func (d *dumper) set(path string, v any) {
	if d.err == nil {
		d.doc, d.err = sjson.Set(d.doc, path, v)
	}
}

func (d *dumper) raw(path, v string) {
	if d.err == nil {
		d.doc, d.err = sjson.SetRaw(d.doc, path, v)
	}
}

func (d *dumper) lines(path string, lines []text.Line) {
	d.raw(path, "[]")
	for i, l := range lines {
		d.set(fmt.Sprintf("%s.%d.text", path, i), l.Text)
		d.set(fmt.Sprintf("%s.%d.fg", path, i), l.Foreground.String())
		d.set(fmt.Sprintf("%s.%d.bg", path, i), l.Background.String())
	}
}

// LoadSlots fills save slots from the "slots" array of a Dump document.
// Slots not mentioned keep their contents. The document is checked in full
// before any slot is written.
func (s *Session) LoadSlots(doc string) error {
	if !gjson.Valid(doc) {
		return opError("load", "", fmt.Errorf("%w: malformed JSON", ErrInvalidSnapshot))
	}
	slots := gjson.Get(doc, "slots")
	if !slots.Exists() {
		return nil
	}
	if !slots.IsArray() {
		return opError("load", "", fmt.Errorf("%w: slots is not an array", ErrInvalidSnapshot))
	}

	type entry struct {
		index int
		lines []text.Line
	}
	var entries []entry
	for _, sl := range slots.Array() {
		idx := sl.Get("index")
		if idx.Type != gjson.Number {
			return opError("load", "", fmt.Errorf("%w: slot without index", ErrInvalidSnapshot))
		}
		if idx.Num != float64(idx.Int()) {
			return opError("load", "", fmt.Errorf("%w: slot index %s is not an integer", ErrInvalidSnapshot, idx.Raw))
		}
		i := int(idx.Int())
		if i < 0 || i >= s.slots.Cap() {
			return opError("load", slotTarget(i), fmt.Errorf("%w: table holds %d slots", ErrInvalidHandle, s.slots.Cap()))
		}

		lines, err := parseLines(sl.Get("lines"))
		if err != nil {
			return opError("load", slotTarget(i), err)
		}
		entries = append(entries, entry{index: i, lines: lines})
	}

	for _, e := range entries {
		if err := s.slots.Save(e.index, e.lines); err != nil {
			return opError("load", slotTarget(e.index), err)
		}
	}
	s.log.Debug("loaded %d slots", len(entries))
	return nil
}

func parseLines(r gjson.Result) ([]text.Line, error) {
	if r.Exists() && !r.IsArray() {
		return nil, fmt.Errorf("%w: lines is not an array", ErrInvalidSnapshot)
	}
	var lines []text.Line
	for _, l := range r.Array() {
		fg, err := parseColorField(l, "fg")
		if err != nil {
			return nil, err
		}
		bg, err := parseColorField(l, "bg")
		if err != nil {
			return nil, err
		}
		lines = append(lines, text.Line{Text: l.Get("text").String(), Foreground: fg, Background: bg})
	}
	return lines, nil
}

func parseColorField(l gjson.Result, key string) (core.Color, error) {
	v := l.Get(key)
	if !v.Exists() {
		return 0, fmt.Errorf("%w: line without %s", ErrInvalidSnapshot, key)
	}
	c, err := core.ParseColor(v.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, key, err)
	}
	return c, nil
}
