package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/internal/config"
	"github.com/dshills/boxwin/logging"
	"github.com/dshills/boxwin/renderer/backend"
	"github.com/dshills/boxwin/renderer/core"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 4),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initSurface,
		b.initLogging,
		b.initDefaults,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads the configuration and applies command line overrides.
func (b *bootstrapper) initConfig() error {
	cfg := config.New(config.WithFile(b.opts.ConfigPath))
	if err := cfg.Load(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	overrides := map[string]any{}
	if b.opts.ScriptPath != "" {
		overrides["script.path"] = b.opts.ScriptPath
	}
	if b.opts.Watch {
		overrides["script.watch"] = true
	}
	if b.opts.LogLevel != "" {
		overrides["logging.level"] = b.opts.LogLevel
	}
	if b.opts.Width > 0 {
		overrides["surface.width"] = b.opts.Width
	}
	if b.opts.Height > 0 {
		overrides["surface.height"] = b.opts.Height
	}
	for path, v := range overrides {
		if err := cfg.Set(path, v); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}

	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if sc := cfg.Script(); sc.Watch && sc.Path == "" {
		return &InitError{Component: "config", Err: ErrWatchWithoutScript}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initSurface picks the drawing surface. Surfaces that deliver input also
// drive the event loop.
func (b *bootstrapper) initSurface() error {
	sc := b.app.config.Surface()
	s := b.opts.Surface
	switch {
	case s != nil:
	case b.opts.Terminal:
		t, err := backend.NewTerminal(backend.WithTrueColor(sc.TrueColor))
		if err != nil {
			return &InitError{Component: "surface", Err: err}
		}
		s = t
	default:
		s = backend.NewNullBackend(sc.Width, sc.Height)
	}
	b.app.surface = s
	if es, ok := s.(EventSource); ok {
		b.app.events = es
	}
	b.initOrder = append(b.initOrder, "surface")
	return nil
}

// initLogging creates the logger. Without a log file, output waits in
// memory while a terminal owns the screen.
func (b *bootstrapper) initLogging() error {
	lc := b.app.config.Logging()

	var out io.Writer = b.opts.Stderr
	switch {
	case lc.File != "":
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		b.app.logFile = f
		out = f
	case b.app.events != nil:
		b.app.pending = &syncBuffer{}
		out = b.app.pending
	}

	b.app.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(lc.Level),
		Output: out,
		Prefix: "boxwin",
	})
	b.initOrder = append(b.initOrder, "logging")
	return nil
}

// initDefaults resolves the default border style and colors.
func (b *bootstrapper) initDefaults() error {
	style, err := box.ParseGlyphStyle(b.app.config.Session().DefaultStyle)
	if err != nil {
		return &InitError{Component: "defaults", Err: err}
	}
	colors := b.app.config.Colors()
	fg, err := core.ParseColor(colors.Foreground)
	if err != nil {
		return &InitError{Component: "defaults", Err: fmt.Errorf("foreground: %w", err)}
	}
	bg, err := core.ParseColor(colors.Background)
	if err != nil {
		return &InitError{Component: "defaults", Err: fmt.Errorf("background: %w", err)}
	}

	b.app.style = style
	b.app.fg, b.app.bg = fg, bg
	b.initOrder = append(b.initOrder, "defaults")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "logging":
			if b.app.logFile != nil {
				b.app.logFile.Close()
				b.app.logFile = nil
			}
			b.app.log = nil
		case "surface":
			b.app.surface = nil
			b.app.events = nil
		case "config":
			b.app.config = nil
		}
	}
}
