package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/boxwin/renderer/core"
)

func newSimTerminal(t *testing.T, w, h int, opts ...TerminalOption) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim, opts...)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalWrite(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 10)

	term.SetForeground(core.DarkRed)
	term.SetBackground(core.White)
	term.SetCursorPosition(2, 3)
	term.WriteString("ok")
	term.Show()

	cell := term.CellAt(2, 3)
	if cell.Rune != 'o' {
		t.Errorf("expected 'o', got %q", cell.Rune)
	}
	if cell.Style.Foreground != core.DarkRed || cell.Style.Background != core.White {
		t.Errorf("expected darkred on white, got %+v", cell.Style)
	}
	if term.CellAt(3, 3).Rune != 'k' {
		t.Errorf("expected 'k', got %q", term.CellAt(3, 3).Rune)
	}

	x, y := term.CursorPosition()
	if x != 4 || y != 3 {
		t.Errorf("expected cursor (4, 3), got (%d, %d)", x, y)
	}
}

func TestTerminalTrueColor(t *testing.T) {
	term, _ := newSimTerminal(t, 20, 5, WithTrueColor(true))

	term.SetForeground(core.DarkCyan)
	term.SetCursorPosition(0, 0)
	term.WriteRune('#')

	if got := term.CellAt(0, 0).Style.Foreground; got != core.DarkCyan {
		t.Errorf("expected darkcyan round trip, got %s", got)
	}
}

func TestTerminalResize(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 10)

	if err := term.Resize(50, 10); !errors.Is(err, ErrSizeUnsupported) {
		t.Errorf("expected ErrSizeUnsupported, got %v", err)
	}
	if err := term.Resize(30, 8); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := term.Size(); w != 30 || h != 8 {
		t.Errorf("expected (30, 8), got (%d, %d)", w, h)
	}

	// Writes beyond the logical size are dropped.
	term.SetCursorPosition(30, 0)
	term.WriteRune('x')
	if term.CellAt(30, 0).Rune == 'x' {
		t.Error("write outside logical size should be dropped")
	}

	w, h, err := FitSize(term, 45, 12)
	if err != nil {
		t.Fatalf("FitSize failed: %v", err)
	}
	// 45x12 shrinks in lockstep until the width fits the 40 column screen.
	if w != 40 || h != 7 {
		t.Errorf("expected (40, 7), got (%d, %d)", w, h)
	}
}

func TestTerminalInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 5)

	term.Interrupt("reload")
	for i := 0; i < 10; i++ {
		ev := term.PollEvent()
		if ev.Type == EventInterrupt {
			if ev.Data != "reload" {
				t.Errorf("expected payload %q, got %v", "reload", ev.Data)
			}
			return
		}
	}
	t.Error("interrupt event not delivered")
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyF1, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorFromTcell(t *testing.T) {
	for i := 0; i < core.PaletteSize; i++ {
		c := core.Color(i)
		if got := colorFromTcell(paletteColors[c]); got != c {
			t.Errorf("colorFromTcell(%s) = %s", c, got)
		}
	}
	if got := colorFromTcell(tcell.ColorDefault); got != core.Black {
		t.Errorf("default should map to black, got %s", got)
	}
}

func TestTerminalWritesClusterPerCell(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 2)

	term.SetCursorPosition(0, 1)
	term.WriteString("a\u0308bc")

	if x, _ := term.CursorPosition(); x != 3 {
		t.Errorf("cursor advanced to %d, want 3", x)
	}
	if c := term.CellAt(0, 1); c.Rune != 'a' || string(c.Combining) != "\u0308" {
		t.Errorf("cell 0 = %q %q, want a with combining diaeresis", c.Rune, c.Combining)
	}
	if got := term.CellAt(1, 1).Rune; got != 'b' {
		t.Errorf("cell 1 = %q, want 'b'", got)
	}
}
