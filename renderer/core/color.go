// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the session and its backends.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 16-entry palette index.
// The index is bit-composed: Red=1, Green=2, Blue=4, Dark=8.
type Color uint8

// Color component bits.
const (
	BitRed   Color = 1
	BitGreen Color = 2
	BitBlue  Color = 4
	BitDark  Color = 8
)

// Palette colors.
const (
	Black       Color = 0
	Red               = BitRed
	Green             = BitGreen
	Yellow            = BitRed | BitGreen
	Blue              = BitBlue
	Magenta           = BitRed | BitBlue
	Cyan              = BitGreen | BitBlue
	White             = BitRed | BitGreen | BitBlue
	DarkGray          = BitDark
	DarkRed           = BitDark | Red
	DarkGreen         = BitDark | Green
	DarkYellow        = BitDark | Yellow
	DarkBlue          = BitDark | Blue
	DarkMagenta       = BitDark | Magenta
	DarkCyan          = BitDark | Cyan
	Gray              = BitDark | White
)

// PaletteSize is the number of addressable colors.
const PaletteSize = 16

var colorNames = [PaletteSize]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"darkgray", "darkred", "darkgreen", "darkyellow", "darkblue", "darkmagenta", "darkcyan", "gray",
}

// palette holds the RGB rendition of each index.
var palette = [PaletteSize]colorful.Color{
	mustHex("#000000"), mustHex("#ff0000"), mustHex("#00ff00"), mustHex("#ffff00"),
	mustHex("#0000ff"), mustHex("#ff00ff"), mustHex("#00ffff"), mustHex("#ffffff"),
	mustHex("#808080"), mustHex("#800000"), mustHex("#008000"), mustHex("#808000"),
	mustHex("#000080"), mustHex("#800080"), mustHex("#008080"), mustHex("#c0c0c0"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether c addresses a palette entry.
func (c Color) Valid() bool {
	return c < PaletteSize
}

// Has reports whether all bits of part are set in c.
func (c Color) Has(part Color) bool {
	return c&part == part
}

// String returns the palette name of the color.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// RGB returns the 8-bit RGB components of the palette entry.
// Out-of-range colors render as black.
func (c Color) RGB() (r, g, b uint8) {
	if !c.Valid() {
		return 0, 0, 0
	}
	return palette[c].RGB255()
}

// Hex returns the palette entry as #rrggbb.
func (c Color) Hex() string {
	if !c.Valid() {
		return palette[Black].Hex()
	}
	return palette[c].Hex()
}

// Nearest returns the palette color perceptually closest to rgb.
func Nearest(rgb colorful.Color) Color {
	best := Black
	bestDist := rgb.DistanceLab(palette[Black])
	for i := 1; i < PaletteSize; i++ {
		if d := rgb.DistanceLab(palette[i]); d < bestDist {
			best = Color(i)
			bestDist = d
		}
	}
	return best
}

// NearestRGB returns the palette color closest to the given 8-bit components.
func NearestRGB(r, g, b uint8) Color {
	return Nearest(colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	})
}

// ParseColor parses a palette name ("darkred", "dark-red"), a decimal index
// ("9") or a hex color ("#8b0000", "8b0000", "#f00"). Hex colors snap to the
// nearest palette entry.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Black, fmt.Errorf("empty color")
	}

	name := strings.ToLower(s)
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	if name == "grey" {
		return Gray, nil
	}
	if name == "darkgrey" {
		return DarkGray, nil
	}

	if idx, err := strconv.Atoi(s); err == nil {
		if idx < 0 || idx >= PaletteSize {
			return Black, fmt.Errorf("color index %d out of range 0-%d", idx, PaletteSize-1)
		}
		return Color(idx), nil
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Black, fmt.Errorf("invalid color: %s", s)
	}
	rgb, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return Black, fmt.Errorf("invalid color: %s", s)
	}
	return Nearest(rgb), nil
}
