package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/rivo/uniseg"

	"github.com/dshills/boxwin/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys the CLI reacts to.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyCtrlC
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int

	// Interrupt event payload
	Data any
}

// paletteColors maps each palette index onto tcell's ANSI palette.
var paletteColors = [core.PaletteSize]tcell.Color{
	core.Black:       tcell.ColorBlack,
	core.Red:         tcell.ColorRed,
	core.Green:       tcell.ColorLime,
	core.Yellow:      tcell.ColorYellow,
	core.Blue:        tcell.ColorBlue,
	core.Magenta:     tcell.ColorFuchsia,
	core.Cyan:        tcell.ColorAqua,
	core.White:       tcell.ColorWhite,
	core.DarkGray:    tcell.ColorGray,
	core.DarkRed:     tcell.ColorMaroon,
	core.DarkGreen:   tcell.ColorGreen,
	core.DarkYellow:  tcell.ColorOlive,
	core.DarkBlue:    tcell.ColorNavy,
	core.DarkMagenta: tcell.ColorPurple,
	core.DarkCyan:    tcell.ColorTeal,
	core.Gray:        tcell.ColorSilver,
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithTrueColor renders palette entries as exact RGB instead of the
// terminal's own ANSI palette.
func WithTrueColor(enable bool) TerminalOption {
	return func(t *Terminal) {
		t.trueColor = enable
	}
}

// Terminal implements Surface using tcell for terminal output.
type Terminal struct {
	screen        tcell.Screen
	mu            sync.Mutex
	width, height int // logical size; zero means the full screen
	cursorX       int
	cursorY       int
	style         core.Style
	trueColor     bool
}

// NewTerminal creates a new terminal surface.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	encoding.Register()
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		screen: screen,
		style:  core.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(t.tcellStyle())
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sizeLocked()
}

func (t *Terminal) sizeLocked() (int, int) {
	sw, sh := t.screen.Size()
	if t.width > 0 && t.height > 0 {
		return min(t.width, sw), min(t.height, sh)
	}
	return sw, sh
}

// Resize limits drawing to width x height. Sizes larger than the physical
// screen are rejected.
func (t *Terminal) Resize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sw, sh := t.screen.Size()
	if width < 1 || height < 1 || width > sw || height > sh {
		return ErrSizeUnsupported
	}
	t.width = width
	t.height = height
	return nil
}

func (t *Terminal) SetCursorPosition(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursorX = col
	t.cursorY = row
}

func (t *Terminal) CursorPosition() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cursorX, t.cursorY
}

func (t *Terminal) WriteRune(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.writeLocked([]rune{r}, t.tcellStyle())
}

func (t *Terminal) WriteString(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := t.tcellStyle()
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		t.writeLocked(g.Runes(), style)
	}
}

// writeLocked puts one grapheme cluster at the cursor. Caller holds t.mu.
func (t *Terminal) writeLocked(cluster []rune, style tcell.Style) {
	w, h := t.sizeLocked()
	if t.cursorX >= 0 && t.cursorX < w && t.cursorY >= 0 && t.cursorY < h {
		t.screen.SetContent(t.cursorX, t.cursorY, cluster[0], cluster[1:], style)
	}
	t.cursorX++
}

func (t *Terminal) SetForeground(c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.style.Foreground = c
}

func (t *Terminal) SetBackground(c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.style.Background = c
}

func (t *Terminal) Foreground() core.Color {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.style.Foreground
}

func (t *Terminal) Background() core.Color {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.style.Background
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(t.cursorX, t.cursorY)
	t.screen.Show()
}

// PollEvent waits for and returns the next terminal event.
// This is a blocking call.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data.
func (t *Terminal) Interrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data)) // best-effort; event queue may be full
}

// tcellStyle converts the active colors. Caller holds t.mu.
func (t *Terminal) tcellStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(t.tcellColor(t.style.Foreground)).
		Background(t.tcellColor(t.style.Background))
}

func (t *Terminal) tcellColor(c core.Color) tcell.Color {
	if !c.Valid() {
		return tcell.ColorDefault
	}
	if t.trueColor {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return paletteColors[c]
}

// colorFromTcell converts a tcell color back to the nearest palette entry.
func colorFromTcell(tc tcell.Color) core.Color {
	for i, pc := range paletteColors {
		if pc == tc {
			return core.Color(i)
		}
	}
	if tc == tcell.ColorDefault {
		return core.Black
	}
	r, g, b := tc.RGB()
	return core.NearestRGB(uint8(r), uint8(g), uint8(b))
}

// CellAt returns the cell drawn at (x, y), mapped back to palette colors.
func (t *Terminal) CellAt(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, combc, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := style.Decompose()
	return core.Cell{
		Rune:      mainc,
		Combining: combc,
		Style:     core.Style{Foreground: colorFromTcell(fg), Background: colorFromTcell(bg)},
	}
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{
			Type: EventInterrupt,
			Data: e.Data(),
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyNone
	}
}
