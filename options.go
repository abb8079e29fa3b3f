package boxwin

import (
	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/backend"
	"github.com/dshills/boxwin/renderer/core"
)

// Options configures a Session.
type Options struct {
	// BoxCapacity bounds the box registry. Zero means unbounded.
	BoxCapacity int

	// SlotCapacity is the number of buffer save slots.
	// Zero selects text.DefaultSlotCapacity.
	SlotCapacity int

	// Logger receives debug output. Nil disables logging.
	Logger *logging.Logger
}

// ColorSpec overrides the foreground, the background, or both. Channels not
// set keep the surface's active color.
type ColorSpec struct {
	Fg, Bg       core.Color
	HasFg, HasBg bool
}

// Foreground overrides only the foreground.
func Foreground(c core.Color) ColorSpec {
	return ColorSpec{Fg: c, HasFg: true}
}

// Background overrides only the background.
func Background(c core.Color) ColorSpec {
	return ColorSpec{Bg: c, HasBg: true}
}

// Colors overrides both channels.
func Colors(fg, bg core.Color) ColorSpec {
	return ColorSpec{Fg: fg, Bg: bg, HasFg: true, HasBg: true}
}

// IsZero reports whether c overrides nothing.
func (c ColorSpec) IsZero() bool {
	return !c.HasFg && !c.HasBg
}

// Resolve returns the colors to use given the currently active ones.
func (c ColorSpec) Resolve(fg, bg core.Color) (core.Color, core.Color) {
	if c.HasFg {
		fg = c.Fg
	}
	if c.HasBg {
		bg = c.Bg
	}
	return fg, bg
}

func (c ColorSpec) apply(s backend.Surface) {
	if c.HasFg {
		s.SetForeground(c.Fg)
	}
	if c.HasBg {
		s.SetBackground(c.Bg)
	}
}

// DrawOptions controls how a box border is rendered.
type DrawOptions struct {
	Style  box.GlyphStyle
	Colors ColorSpec
	// Title is shown in brackets on the top edge, truncated to the box
	// width minus four.
	Title string
}

// WriteOptions controls WriteText.
type WriteOptions struct {
	// Clear discards the buffered lines before the new text is added.
	Clear bool
	// Colors tag the new lines; unset channels take the active colors.
	Colors ColorSpec
}
