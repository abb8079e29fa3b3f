package script

import (
	"bytes"
	"context"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/boxwin"
	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/backend"
	"github.com/dshills/boxwin/renderer/core"
)

func setupDriverTest(t *testing.T, opts ...Option) (*Driver, *backend.NullBackend) {
	t.Helper()
	nb := backend.NewNullBackend(80, 24)
	if err := nb.Init(); err != nil {
		t.Fatal(err)
	}
	d := NewDriver(boxwin.NewSession(nb, boxwin.Options{}), opts...)
	t.Cleanup(d.Close)
	return d, nb
}

func run(t *testing.T, d *Driver, code string) {
	t.Helper()
	if err := d.RunString(context.Background(), code); err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
}

func global(d *Driver, name string) lua.LValue {
	return d.state.L.GetGlobal(name)
}

func TestDriver_DrawAndWrite(t *testing.T) {
	d, nb := setupDriverTest(t)
	run(t, d, `
		h = box.draw(2, 2, 20, 6, {title = "log"})
		box.write("the quick brown fox jumps", {clear = true})
	`)

	if got := global(d, "h"); got != lua.LNumber(0) {
		t.Errorf("handle = %v, want 0", got)
	}
	if got := nb.Text(2, 2, 7); got != "┌[log]─" {
		t.Errorf("top edge = %q", got)
	}
	if got := nb.Text(3, 3, 15); got != "the quick brown" {
		t.Errorf("row 0 = %q", got)
	}
	if got := nb.Text(3, 4, 9); got != "fox jumps" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestDriver_DefaultStyle(t *testing.T) {
	d, nb := setupDriverTest(t, WithDefaultStyle(box.StyleASCII))
	run(t, d, `
		box.draw(0, 0, 3, 3)
		box.draw(4, 0, 3, 3, {style = "double"})
	`)

	if got := nb.Text(0, 0, 3); got != "+-+" {
		t.Errorf("default style row = %q", got)
	}
	if got := nb.Text(4, 0, 3); got != "╔═╗" {
		t.Errorf("double style row = %q", got)
	}
}

func TestDriver_Colors(t *testing.T) {
	d, nb := setupDriverTest(t)
	run(t, d, `
		box.draw(0, 0, 10, 4, {fg = "darkred", bg = 4})
		box.write("hi", {fg = "#00ff00"})
	`)

	if c := nb.GetCell(0, 0); c.Style.Foreground != core.DarkRed || c.Style.Background != core.Blue {
		t.Errorf("border style = %+v", c.Style)
	}
	lines := d.Session().Lines()
	if len(lines) != 1 || lines[0].Foreground != core.Green || lines[0].Background != core.Blue {
		t.Errorf("lines = %+v", lines)
	}
}

func TestDriver_SelectCornerAndSize(t *testing.T) {
	d, _ := setupDriverTest(t)
	run(t, d, `
		a = box.draw(5, 10, 20, 8)
		b = box.draw(0, 0, 4, 4)
		w, h = box.select(a)
		cx = box.corner(a, "bottomright", "x")
		cy = box.corner(a, "bottomright", "y")
		cur = box.current()
		sw, sh = box.size()
	`)

	checks := map[string]lua.LValue{
		"w":   lua.LNumber(18),
		"h":   lua.LNumber(6),
		"cx":  lua.LNumber(24),
		"cy":  lua.LNumber(17),
		"cur": lua.LNumber(0),
		"sw":  lua.LNumber(80),
		"sh":  lua.LNumber(24),
	}
	for name, want := range checks {
		if got := global(d, name); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestDriver_CurrentBeforeDraw(t *testing.T) {
	d, _ := setupDriverTest(t)
	run(t, d, `cur = box.current()`)
	if got := global(d, "cur"); got != lua.LNil {
		t.Errorf("current() = %v, want nil", got)
	}
}

func TestDriver_SaveRestore(t *testing.T) {
	d, _ := setupDriverTest(t)
	run(t, d, `
		box.draw(0, 0, 20, 6)
		box.write("first")
		box.save(3)
		box.clear_buffer()
		box.write("second")
		box.restore(3)
		box.flush()
		local l = box.lines()
		n = #l
		text = l[1].text
		fg = l[1].fg
	`)

	if got := global(d, "n"); got != lua.LNumber(1) {
		t.Errorf("#lines = %v, want 1", got)
	}
	if got := global(d, "text"); got != lua.LString("first") {
		t.Errorf("text = %v, want first", got)
	}
	if got := global(d, "fg"); got != lua.LString("gray") {
		t.Errorf("fg = %v, want gray", got)
	}
}

func TestDriver_ClearAndChar(t *testing.T) {
	d, nb := setupDriverTest(t)
	run(t, d, `
		a = box.draw(0, 0, 6, 4)
		box.draw(10, 0, 6, 4)
		box.char(0, 0, "xyz")
		box.char(99, 99, "q", {fg = "cyan"})
		box.clear(a)
	`)

	if got := nb.Text(1, 1, 4); got != "    " {
		t.Errorf("cleared box row = %q", got)
	}
	if got := nb.Text(11, 1, 1); got != "x" {
		t.Errorf("char at origin = %q, want x", got)
	}
	// Clamped to the bottom-right corner of the viewport.
	if c := nb.GetCell(15, 3); c.Rune != 'q' || c.Style.Foreground != core.Cyan {
		t.Errorf("clamped char = %+v", c)
	}
}

func TestDriver_Glyphs(t *testing.T) {
	d, _ := setupDriverTest(t)
	run(t, d, `g = box.glyphs("ascii")`)
	want := string(box.Glyphs(box.StyleASCII))
	if got := global(d, "g"); got != lua.LString(want) {
		t.Errorf("glyphs = %v, want %q", got, want)
	}
}

func TestDriver_Dump(t *testing.T) {
	d, _ := setupDriverTest(t)
	run(t, d, `
		box.draw(1, 2, 3, 4)
		doc = box.dump()
	`)
	doc := lua.LVAsString(global(d, "doc"))
	if !strings.Contains(doc, `"boxes"`) || !strings.Contains(doc, d.Session().ID()) {
		t.Errorf("dump = %s", doc)
	}
}

func TestDriver_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"too small", `box.draw(0, 0, 2, 2)`, "geometry too small"},
		{"bad handle", `box.select(7)`, "invalid handle"},
		{"write without box", `box.write("x")`, "no box selected"},
		{"bad slot", `box.draw(0, 0, 5, 5) box.save(99)`, "invalid handle"},
		{"bad style", `box.draw(0, 0, 5, 5, {style = "wavy"})`, "unknown glyph style"},
		{"bad color", `box.draw(0, 0, 5, 5, {fg = "plaid"})`, "fg"},
		{"bad corner", `box.draw(0, 0, 5, 5) box.corner(0, "middle", "x")`, "unknown corner"},
		{"bad axis", `box.draw(0, 0, 5, 5) box.corner(0, "topleft", "z")`, "axis"},
		{"empty char", `box.draw(0, 0, 5, 5) box.char(0, 0, "")`, "empty string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := setupDriverTest(t)
			err := d.RunString(context.Background(), tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("RunString(%q) = %v, want error containing %q", tt.code, err, tt.want)
			}
		})
	}
}

func TestDriver_PrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	d, _ := setupDriverTest(t, WithLogger(log))

	run(t, d, `print("hello", 42)`)
	if out := buf.String(); !strings.Contains(out, "hello\t42") || !strings.Contains(out, "component=script") {
		t.Errorf("log output = %q", out)
	}
}
