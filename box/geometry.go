// Package box holds box geometry, the append-only box registry and the
// border glyph table.
package box

import "fmt"

// MinSize is the smallest width and height a box may have: one border cell
// on each side around a single interior cell.
const MinSize = 3

// Handle identifies a registered box. Handles are assigned 0, 1, 2, ... and
// stay valid for the life of the registry.
type Handle int

// Geometry is a box's position and outer size in screen cells.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Validate reports ErrGeometryTooSmall when the box cannot hold an interior.
func (g Geometry) Validate() error {
	if g.Width < MinSize || g.Height < MinSize {
		return fmt.Errorf("%w: %dx%d", ErrGeometryTooSmall, g.Width, g.Height)
	}
	return nil
}

// Viewport returns the interior text frame of the box.
func (g Geometry) Viewport() Viewport {
	return Viewport{
		OriginX: g.X + 1,
		OriginY: g.Y + 1,
		Width:   g.Width - 2,
		Height:  g.Height - 2,
	}
}

// Viewport is the interior of a box, border excluded.
type Viewport struct {
	OriginX, OriginY int
	Width, Height    int
}

// Clamp pulls a viewport-local coordinate into [0, Width] x [0, Height].
// The upper bounds are inclusive, so a clamped point may land on the right
// or bottom border.
func (v Viewport) Clamp(x, y int) (int, int) {
	return min(max(x, 0), v.Width), min(max(y, 0), v.Height)
}

// Corner names one of a box's four corners.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Axis selects the coordinate a corner query returns.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Corner returns the screen coordinate of a corner along an axis.
func (g Geometry) Corner(c Corner, a Axis) (int, error) {
	if c > CornerBottomRight {
		return 0, fmt.Errorf("unknown corner %d", c)
	}
	switch a {
	case AxisX:
		if c == CornerTopRight || c == CornerBottomRight {
			return g.X + g.Width - 1, nil
		}
		return g.X, nil
	case AxisY:
		if c == CornerBottomLeft || c == CornerBottomRight {
			return g.Y + g.Height - 1, nil
		}
		return g.Y, nil
	default:
		return 0, fmt.Errorf("unknown axis %d", a)
	}
}
