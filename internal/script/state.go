// Package script runs Lua scripts against a boxwin Session.
//
// Scripts see a global table named "box" whose functions map onto the
// Session operations (draw, select, write, save, restore and so on). Only
// the base, table, string and math libraries are opened; file loading and
// the io, os, debug and package libraries are unavailable.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a run exceeds its time limit.
	ErrTimeout = errors.New("lua execution timeout")
)

// State wraps a gopher-lua state restricted to safe libraries.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes runs
// started from different goroutines.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the time limit for one run. Zero or less disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed Lua state. print output goes to out, one
// call per line; a nil out discards it.
func NewState(out func(string), opts ...StateOption) *State {
	s := &State{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	removeUnsafeGlobals(s.L)
	installPrint(s.L, out)
	return s
}

// openSafeLibraries opens only the base, table, string and math libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func removeUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installPrint replaces print so output is captured instead of written to
// stdout, which belongs to the terminal surface.
func installPrint(L *lua.LState, out func(string)) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		if out != nil {
			out(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// DoFile executes a Lua file. The run stops when ctx is done or the
// timeout passes.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

func (s *State) run(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := doWithRecovery(fn)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. Further runs return ErrStateClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
