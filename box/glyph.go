package box

import (
	"fmt"
	"strings"
)

// GlyphStyle selects which set of border glyphs a box is drawn with.
type GlyphStyle uint8

const (
	StyleSingle GlyphStyle = iota // ─│┌┐└┘├┤┬┴┼
	StyleDouble                   // ═║╔╗╚╝╠╣╦╩╬
	StyleBlock                    // █ everywhere
	StyleASCII                    // -|+
)

// styleCount is the number of defined glyph styles.
const styleCount = 4

var styleNames = [styleCount]string{"single", "double", "block", "ascii"}

func (s GlyphStyle) String() string {
	if int(s) >= styleCount {
		return fmt.Sprintf("style(%d)", uint8(s))
	}
	return styleNames[s]
}

// ParseGlyphStyle parses a style name as used in configuration and scripts.
// Case is ignored.
func ParseGlyphStyle(name string) (GlyphStyle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range styleNames {
		if n == name {
			return GlyphStyle(i), nil
		}
	}
	return StyleSingle, fmt.Errorf("unknown glyph style %q", name)
}

// GlyphPos names a slot within a style's glyph range.
type GlyphPos uint8

const (
	GlyphHorizontal  GlyphPos = iota // top and bottom edges
	GlyphVertical                    // left and right edges
	GlyphTopLeft                     // corners
	GlyphTopRight                    //
	GlyphBottomLeft                  //
	GlyphBottomRight                 //
	GlyphTeeRight                    // ├ junctions
	GlyphTeeLeft                     // ┤
	GlyphTeeDown                     // ┬
	GlyphTeeUp                       // ┴
	GlyphCross                       // ┼
)

// GlyphsPerStyle is the size of each style's range in the table.
const GlyphsPerStyle = 11

// glyphTable holds every style's range back to back; a style's glyph for
// pos lives at style*GlyphsPerStyle + pos.
var glyphTable = [styleCount * GlyphsPerStyle]rune{
	'─', '│', '┌', '┐', '└', '┘', '├', '┤', '┬', '┴', '┼',
	'═', '║', '╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬',
	'█', '█', '█', '█', '█', '█', '█', '█', '█', '█', '█',
	'-', '|', '+', '+', '+', '+', '+', '+', '+', '+', '+',
}

// Glyph returns the glyph for pos in style. Unknown styles fall back to
// StyleSingle.
func Glyph(style GlyphStyle, pos GlyphPos) rune {
	if int(style) >= styleCount {
		style = StyleSingle
	}
	if pos >= GlyphsPerStyle {
		return ' '
	}
	return glyphTable[int(style)*GlyphsPerStyle+int(pos)]
}

// Glyphs returns all glyphs of a style in table order.
func Glyphs(style GlyphStyle) []rune {
	out := make([]rune, GlyphsPerStyle)
	for i := range out {
		out[i] = Glyph(style, GlyphPos(i))
	}
	return out
}

// BorderGlyph returns the rune drawn at box-local cell (col, row) of a
// width x height box: corner glyphs at the four corners, vertical glyphs on
// the left and right columns, horizontal glyphs on the top and bottom rows,
// and a space inside.
func BorderGlyph(style GlyphStyle, col, row, width, height int) rune {
	lastCol, lastRow := width-1, height-1
	switch {
	case col == 0 && row == 0:
		return Glyph(style, GlyphTopLeft)
	case col == 0 && row == lastRow:
		return Glyph(style, GlyphBottomLeft)
	case col == lastCol && row == lastRow:
		return Glyph(style, GlyphBottomRight)
	case col == lastCol && row == 0:
		return Glyph(style, GlyphTopRight)
	case col == 0 || col == lastCol:
		return Glyph(style, GlyphVertical)
	case row == 0 || row == lastRow:
		return Glyph(style, GlyphHorizontal)
	default:
		return ' '
	}
}
