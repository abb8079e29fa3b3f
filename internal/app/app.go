// Package app provides the main application structure for the boxwin
// command. It wires configuration, logging, the drawing surface, a boxwin
// session and the Lua script driver together and runs the event loop.
package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/boxwin"
	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/internal/config"
	"github.com/dshills/boxwin/internal/script"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/backend"
	"github.com/dshills/boxwin/renderer/core"
)

// Options configures the application. Non-zero fields override the
// corresponding configuration settings.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ScriptPath is the Lua script to run.
	ScriptPath string

	// Watch re-runs the script whenever it changes.
	Watch bool

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Width and Height request a surface size.
	Width, Height int

	// Terminal draws on the controlling terminal.
	Terminal bool

	// Surface is drawn on when set, taking precedence over Terminal.
	// Without either an in-memory surface of the configured size is used,
	// which is useful for scripting and dumps.
	Surface backend.Surface

	// Stderr receives log output when no log file is configured.
	// Defaults to os.Stderr.
	Stderr io.Writer
}

// EventSource is implemented by surfaces that deliver input, such as
// backend.Terminal. Without one Run returns after the script finishes.
type EventSource interface {
	PollEvent() backend.Event
	Interrupt(data any)
}

// Application is the central coordinator for the boxwin components.
type Application struct {
	mu sync.Mutex

	config *config.Config
	log    *logging.Logger

	// Log output while a terminal owns the screen, written to stderr
	// once it is released.
	pending *syncBuffer
	logFile *os.File

	surface backend.Surface
	events  EventSource
	session *boxwin.Session

	style  box.GlyphStyle
	fg, bg core.Color

	metrics *Metrics
	running atomic.Bool
	opts    Options
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	app := &Application{opts: opts, metrics: NewMetrics()}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run initializes the surface, runs the script and, when the surface
// delivers input, handles events until a quit key is pressed or ctx is
// done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	defer app.flushPending()
	defer app.logMetrics()
	if err := app.surface.Init(); err != nil {
		return &InitError{Component: "surface", Err: err}
	}
	defer app.surface.Shutdown()

	sc := app.config.Surface()
	w, h, err := backend.FitSize(app.surface, sc.Width, sc.Height)
	if err != nil {
		return &InitError{Component: "surface", Err: err}
	}
	if w != sc.Width || h != sc.Height {
		app.log.Info("surface shrunk to %dx%d", w, h)
	}

	if err := app.render(ctx); err != nil {
		if app.events == nil || !app.config.Script().Watch {
			return err
		}
		app.log.Error("%v", err)
	}

	if app.events == nil {
		return nil
	}
	return app.eventLoop(ctx)
}

// render starts a fresh session on a blank surface and runs the script
// against it.
func (app *Application) render(ctx context.Context) error {
	sess := app.newSession()

	path := app.config.Script().Path
	if path == "" {
		app.surface.Show()
		return nil
	}

	driver := script.NewDriver(sess,
		script.WithLogger(app.log),
		script.WithDefaultStyle(app.style),
	)
	defer driver.Close()

	start := time.Now()
	err := driver.RunFile(ctx, path)
	app.metrics.RecordRun(time.Since(start), err != nil)
	app.surface.Show()
	if err != nil {
		return NewComponentError("script", "run", err)
	}
	return nil
}

func (app *Application) logMetrics() {
	m := app.metrics.Snapshot()
	if m.Runs == 0 {
		return
	}
	app.log.Debug("script runs=%d failed=%d reloads=%d avg=%s max=%s",
		m.Runs, m.Failed, m.Reloads, m.AvgRun, m.MaxRun)
}

func (app *Application) newSession() *boxwin.Session {
	app.surface.SetForeground(app.fg)
	app.surface.SetBackground(app.bg)
	clearSurface(app.surface)

	sc := app.config.Session()
	sess := boxwin.NewSession(app.surface, boxwin.Options{
		BoxCapacity:  sc.BoxCapacity,
		SlotCapacity: sc.SlotCapacity,
		Logger:       app.log,
	})

	app.mu.Lock()
	app.session = sess
	app.mu.Unlock()

	app.log.Debug("session %s started", sess.ID())
	return sess
}

// clearSurface blanks every cell with the active colors.
func clearSurface(s backend.Surface) {
	w, h := s.Size()
	blank := strings.Repeat(" ", w)
	for y := 0; y < h; y++ {
		s.SetCursorPosition(0, y)
		s.WriteString(blank)
	}
	s.SetCursorPosition(0, 0)
}

// Session returns the session of the latest script run, or nil before Run.
func (app *Application) Session() *boxwin.Session {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.session
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Close releases the log file. Call it after Run returns.
func (app *Application) Close() error {
	app.flushPending()
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

func (app *Application) flushPending() {
	if app.pending == nil {
		return
	}
	_, _ = app.pending.WriteTo(app.opts.Stderr)
}

// syncBuffer is a bytes.Buffer safe for use by the logger and the watcher
// goroutine at once.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// WriteTo drains the buffer into w.
func (b *syncBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}
