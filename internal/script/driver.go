package script

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/boxwin"
	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/core"
)

// ModuleName is the global through which scripts reach the session.
const ModuleName = "box"

// Driver exposes a Session to Lua scripts.
type Driver struct {
	session *boxwin.Session
	state   *State
	log     *logging.Logger
	style   box.GlyphStyle
	timeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger that receives script print output.
func WithLogger(l *logging.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithDefaultStyle sets the border style used when draw is given none.
func WithDefaultStyle(style box.GlyphStyle) Option {
	return func(d *Driver) {
		d.style = style
	}
}

// WithRunTimeout bounds each script run.
func WithRunTimeout(t time.Duration) Option {
	return func(d *Driver) {
		d.timeout = t
	}
}

// NewDriver creates a Lua state with the box module bound to session.
func NewDriver(session *boxwin.Session, opts ...Option) *Driver {
	d := &Driver{
		session: session,
		style:   box.StyleSingle,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logging.OrNull(d.log).WithComponent("script")

	d.state = NewState(func(line string) {
		d.log.Info("%s", line)
	}, WithTimeout(d.timeout))
	d.register(d.state.L)
	return d
}

// Session returns the session scripts draw on.
func (d *Driver) Session() *boxwin.Session {
	return d.session
}

// RunFile executes the script at path.
func (d *Driver) RunFile(ctx context.Context, path string) error {
	d.log.Debug("running %s", path)
	if err := d.state.DoFile(ctx, path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes a chunk of Lua source.
func (d *Driver) RunString(ctx context.Context, code string) error {
	if err := d.state.DoString(ctx, code); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close releases the Lua state.
func (d *Driver) Close() {
	d.state.Close()
}

func (d *Driver) register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "draw", L.NewFunction(d.draw))
	L.SetField(mod, "redraw", L.NewFunction(d.redraw))
	L.SetField(mod, "select", L.NewFunction(d.selectBox))
	L.SetField(mod, "current", L.NewFunction(d.current))
	L.SetField(mod, "corner", L.NewFunction(d.corner))
	L.SetField(mod, "clear", L.NewFunction(d.clear))
	L.SetField(mod, "char", L.NewFunction(d.char))
	L.SetField(mod, "write", L.NewFunction(d.write))
	L.SetField(mod, "flush", L.NewFunction(d.flush))
	L.SetField(mod, "lines", L.NewFunction(d.lines))
	L.SetField(mod, "clear_buffer", L.NewFunction(d.clearBuffer))
	L.SetField(mod, "save", L.NewFunction(d.save))
	L.SetField(mod, "restore", L.NewFunction(d.restore))
	L.SetField(mod, "size", L.NewFunction(d.size))
	L.SetField(mod, "glyphs", L.NewFunction(d.glyphs))
	L.SetField(mod, "dump", L.NewFunction(d.dump))

	L.SetGlobal(ModuleName, mod)
}

// draw(x, y, w, h [, {style=, fg=, bg=, title=}]) -> handle
func (d *Driver) draw(L *lua.LState) int {
	g := box.Geometry{
		X:      L.CheckInt(1),
		Y:      L.CheckInt(2),
		Width:  L.CheckInt(3),
		Height: L.CheckInt(4),
	}
	opts := d.drawOptions(L, 5)

	h, err := d.session.DrawBox(g, opts)
	if err != nil {
		L.RaiseError("draw: %v", err)
		return 0
	}
	L.Push(lua.LNumber(h))
	return 1
}

// redraw(handle [, opts])
func (d *Driver) redraw(L *lua.LState) int {
	h := box.Handle(L.CheckInt(1))
	if err := d.session.RedrawBox(h, d.drawOptions(L, 2)); err != nil {
		L.RaiseError("redraw: %v", err)
	}
	return 0
}

// select(handle) -> width, height
// Returns the viewport size of the selected box.
func (d *Driver) selectBox(L *lua.LState) int {
	v, err := d.session.SelectBox(box.Handle(L.CheckInt(1)))
	if err != nil {
		L.RaiseError("select: %v", err)
		return 0
	}
	L.Push(lua.LNumber(v.Width))
	L.Push(lua.LNumber(v.Height))
	return 2
}

// current() -> handle or nil
func (d *Driver) current(L *lua.LState) int {
	h, _, ok := d.session.Current()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(h))
	return 1
}

var cornerNames = map[string]box.Corner{
	"topleft":     box.CornerTopLeft,
	"topright":    box.CornerTopRight,
	"bottomleft":  box.CornerBottomLeft,
	"bottomright": box.CornerBottomRight,
}

// corner(handle, "topleft"|"topright"|"bottomleft"|"bottomright", "x"|"y") -> n
func (d *Driver) corner(L *lua.LState) int {
	h := box.Handle(L.CheckInt(1))
	c, ok := cornerNames[L.CheckString(2)]
	if !ok {
		L.ArgError(2, "unknown corner")
		return 0
	}
	var a box.Axis
	switch L.CheckString(3) {
	case "x":
		a = box.AxisX
	case "y":
		a = box.AxisY
	default:
		L.ArgError(3, `axis must be "x" or "y"`)
		return 0
	}

	n, err := d.session.Corner(h, c, a)
	if err != nil {
		L.RaiseError("corner: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// clear([handle])
// Blanks the interior of the given box, or of the current one.
func (d *Driver) clear(L *lua.LState) int {
	var err error
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		err = d.session.ClearBoxAt(box.Handle(L.CheckInt(1)))
	} else {
		err = d.session.ClearBox()
	}
	if err != nil {
		L.RaiseError("clear: %v", err)
	}
	return 0
}

// char(x, y, ch [, {fg=, bg=}])
// Writes the first character of ch at viewport-local x, y.
func (d *Driver) char(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	s := L.CheckString(3)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		L.ArgError(3, "empty string")
		return 0
	}
	colors := d.colorSpec(L, L.OptTable(4, nil))

	if err := d.session.PrintChar(x, y, r, colors); err != nil {
		L.RaiseError("char: %v", err)
	}
	return 0
}

// write(text [, {clear=, fg=, bg=}])
func (d *Driver) write(L *lua.LState) int {
	input := L.CheckString(1)
	var opts boxwin.WriteOptions
	if tbl := L.OptTable(2, nil); tbl != nil {
		opts.Clear = lua.LVAsBool(tbl.RawGetString("clear"))
		opts.Colors = d.colorSpec(L, tbl)
	}

	if err := d.session.WriteText(input, opts); err != nil {
		L.RaiseError("write: %v", err)
	}
	return 0
}

// flush()
func (d *Driver) flush(L *lua.LState) int {
	if err := d.session.Flush(); err != nil {
		L.RaiseError("flush: %v", err)
	}
	return 0
}

// lines() -> {{text=, fg=, bg=}, ...}
func (d *Driver) lines(L *lua.LState) int {
	tbl := L.NewTable()
	for i, l := range d.session.Lines() {
		row := L.NewTable()
		row.RawSetString("text", lua.LString(l.Text))
		row.RawSetString("fg", lua.LString(l.Foreground.String()))
		row.RawSetString("bg", lua.LString(l.Background.String()))
		tbl.RawSetInt(i+1, row)
	}
	L.Push(tbl)
	return 1
}

// clear_buffer()
func (d *Driver) clearBuffer(L *lua.LState) int {
	d.session.ClearBuffer()
	return 0
}

// save(slot)
func (d *Driver) save(L *lua.LState) int {
	if err := d.session.SaveBuffer(L.CheckInt(1)); err != nil {
		L.RaiseError("save: %v", err)
	}
	return 0
}

// restore(slot)
// Replaces the live buffer; call flush to show it.
func (d *Driver) restore(L *lua.LState) int {
	if err := d.session.RestoreBuffer(L.CheckInt(1)); err != nil {
		L.RaiseError("restore: %v", err)
	}
	return 0
}

// size() -> width, height of the surface
func (d *Driver) size(L *lua.LState) int {
	w, h := d.session.Surface().Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

// glyphs(style) -> string of the style's eleven glyphs
func (d *Driver) glyphs(L *lua.LState) int {
	style, err := box.ParseGlyphStyle(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LString(string(box.Glyphs(style))))
	return 1
}

// dump() -> json
func (d *Driver) dump(L *lua.LState) int {
	doc, err := d.session.Dump()
	if err != nil {
		L.RaiseError("dump: %v", err)
		return 0
	}
	L.Push(lua.LString(doc))
	return 1
}

func (d *Driver) drawOptions(L *lua.LState, n int) boxwin.DrawOptions {
	opts := boxwin.DrawOptions{Style: d.style}
	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return opts
	}
	if v := tbl.RawGetString("style"); v != lua.LNil {
		style, err := box.ParseGlyphStyle(lua.LVAsString(v))
		if err != nil {
			L.ArgError(n, err.Error())
		}
		opts.Style = style
	}
	if v := tbl.RawGetString("title"); v != lua.LNil {
		opts.Title = lua.LVAsString(v)
	}
	opts.Colors = d.colorSpec(L, tbl)
	return opts
}

// colorSpec reads the fg and bg fields of tbl. Colors are palette names,
// indices or hex strings.
func (d *Driver) colorSpec(L *lua.LState, tbl *lua.LTable) boxwin.ColorSpec {
	var cs boxwin.ColorSpec
	if tbl == nil {
		return cs
	}
	if v := tbl.RawGetString("fg"); v != lua.LNil {
		cs.Fg = checkColor(L, "fg", v)
		cs.HasFg = true
	}
	if v := tbl.RawGetString("bg"); v != lua.LNil {
		cs.Bg = checkColor(L, "bg", v)
		cs.HasBg = true
	}
	return cs
}

func checkColor(L *lua.LState, field string, v lua.LValue) core.Color {
	var s string
	switch val := v.(type) {
	case lua.LNumber:
		s = strconv.Itoa(int(val))
	case lua.LString:
		s = string(val)
	default:
		L.RaiseError("%s: expected color name or index, got %s", field, v.Type())
		return core.Black
	}
	c, err := core.ParseColor(s)
	if err != nil {
		L.RaiseError("%s: %v", field, err)
	}
	return c
}
