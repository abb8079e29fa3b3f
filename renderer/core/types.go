package core

// Style is the pair of palette colors a cell is drawn with.
type Style struct {
	Foreground Color
	Background Color
}

// DefaultStyle returns the console default: gray on black.
func DefaultStyle() Style {
	return Style{Foreground: Gray, Background: Black}
}

// Cell is one character cell of a surface. A cell holds one grapheme
// cluster: Rune is its first rune and Combining the rest.
type Cell struct {
	Rune      rune
	Combining []rune
	Style     Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// String returns the cell's grapheme cluster.
func (c Cell) String() string {
	return string(c.Rune) + string(c.Combining)
}

// IsEmpty reports whether the cell holds a space or nothing.
func (c Cell) IsEmpty() bool {
	return c.Rune == ' ' || c.Rune == 0
}
