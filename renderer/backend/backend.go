// Package backend provides the terminal surface abstraction boxes are drawn on.
package backend

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/boxwin/renderer/core"
)

// ErrSizeUnsupported is returned by Resize when the surface cannot take the
// requested dimensions.
var ErrSizeUnsupported = errors.New("surface size unsupported")

// Surface defines the cursor-addressed, color-stateful character display
// the session renders to. Implementations handle actual drawing to the
// terminal or another display.
type Surface interface {
	// Init initializes the surface for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases resources and restores terminal state.
	Shutdown()

	// Size returns the current drawable dimensions.
	Size() (width, height int)

	// Resize requests new drawable dimensions.
	// Returns ErrSizeUnsupported if the size cannot be applied.
	Resize(width, height int) error

	// SetCursorPosition moves the write cursor.
	SetCursorPosition(col, row int)

	// CursorPosition returns the write cursor.
	CursorPosition() (col, row int)

	// WriteRune writes r at the cursor with the active colors and advances
	// the cursor one column. Cells outside the surface are silently dropped.
	WriteRune(r rune)

	// WriteString writes s one grapheme cluster per cell, advancing the
	// cursor one column per cluster.
	WriteString(s string)

	// SetForeground sets the active foreground color.
	SetForeground(c core.Color)

	// SetBackground sets the active background color.
	SetBackground(c core.Color)

	// Foreground returns the active foreground color.
	Foreground() core.Color

	// Background returns the active background color.
	Background() core.Color

	// Show synchronizes pending writes with the actual display.
	Show()
}

// FitSize applies the largest size not exceeding width x height that the
// surface accepts, shrinking both dimensions by one after every rejection.
// It returns the accepted size.
func FitSize(s Surface, width, height int) (int, int, error) {
	for width >= 1 && height >= 1 {
		err := s.Resize(width, height)
		if err == nil {
			return width, height, nil
		}
		if !errors.Is(err, ErrSizeUnsupported) {
			return 0, 0, err
		}
		width--
		height--
	}
	return 0, 0, ErrSizeUnsupported
}

// NullBackend is an in-memory surface for testing.
type NullBackend struct {
	width, height       int
	maxWidth, maxHeight int
	cells               [][]core.Cell
	cursorX             int
	cursorY             int
	style               core.Style
	shows               int
}

// NewNullBackend creates an in-memory surface with the given dimensions.
// The dimensions are also the largest size Resize accepts.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:     width,
		height:    height,
		maxWidth:  width,
		maxHeight: height,
		style:     core.DefaultStyle(),
	}
	b.allocate()
	return b
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

// Resize reallocates the cell grid. Content is discarded.
func (b *NullBackend) Resize(width, height int) error {
	if width < 1 || height < 1 || width > b.maxWidth || height > b.maxHeight {
		return ErrSizeUnsupported
	}
	b.width = width
	b.height = height
	b.allocate()
	return nil
}

func (b *NullBackend) SetCursorPosition(col, row int) {
	b.cursorX = col
	b.cursorY = row
}

func (b *NullBackend) CursorPosition() (int, int) {
	return b.cursorX, b.cursorY
}

func (b *NullBackend) WriteRune(r rune) {
	b.writeCluster([]rune{r})
}

func (b *NullBackend) WriteString(s string) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		b.writeCluster(g.Runes())
	}
}

func (b *NullBackend) writeCluster(rs []rune) {
	if b.cursorX >= 0 && b.cursorX < b.width && b.cursorY >= 0 && b.cursorY < b.height {
		c := core.NewStyledCell(rs[0], b.style)
		if len(rs) > 1 {
			c.Combining = rs[1:]
		}
		b.cells[b.cursorY][b.cursorX] = c
	}
	b.cursorX++
}

func (b *NullBackend) SetForeground(c core.Color) { b.style.Foreground = c }
func (b *NullBackend) SetBackground(c core.Color) { b.style.Background = c }
func (b *NullBackend) Foreground() core.Color     { return b.style.Foreground }
func (b *NullBackend) Background() core.Color     { return b.style.Background }
func (b *NullBackend) Show()                      { b.shows++ }

// GetCell returns the cell at the given position for testing.
// Returns an empty cell for positions outside the surface.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Text returns n cells of row y starting at column x for testing.
func (b *NullBackend) Text(x, y, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(b.GetCell(x+i, y).String())
	}
	return sb.String()
}

// Row returns the whole of row y for testing.
func (b *NullBackend) Row(y int) string {
	return b.Text(0, y, b.width)
}

// ShowCount returns how many times Show was called, for testing.
func (b *NullBackend) ShowCount() int {
	return b.shows
}
