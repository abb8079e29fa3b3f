package app

import (
	"context"

	"github.com/dshills/boxwin/internal/script"
	"github.com/dshills/boxwin/renderer/backend"
)

// Interrupt payloads posted to the event source.
type (
	reloadRequest struct{}
	quitRequest   struct{}
)

// eventLoop handles input until a quit key or ctx ends it. Script changes
// arrive as interrupts so every re-run happens on this goroutine.
func (app *Application) eventLoop(ctx context.Context) error {
	if sc := app.config.Script(); sc.Watch {
		w, err := script.NewWatcher(sc.Path, 0)
		if err != nil {
			return NewComponentError("watcher", "start", err)
		}
		defer w.Close()
		go app.forwardWatch(w)
		app.log.Info("watching %s", w.Path())
	}

	stop := context.AfterFunc(ctx, func() {
		app.events.Interrupt(quitRequest{})
	})
	defer stop()

	for {
		ev := app.events.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			if isQuitKey(ev) {
				return nil
			}
		case backend.EventResize:
			app.redraw(ctx)
		case backend.EventInterrupt:
			switch ev.Data.(type) {
			case reloadRequest:
				app.log.Info("script changed, reloading")
				app.metrics.RecordReload()
				app.redraw(ctx)
			case quitRequest:
				return nil
			}
		}
	}
}

// forwardWatch turns watcher events into interrupts until the watcher is
// closed.
func (app *Application) forwardWatch(w *script.Watcher) {
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
			app.events.Interrupt(reloadRequest{})
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			app.log.Warn("watch: %v", err)
		}
	}
}

// redraw re-runs the script. Errors are logged so a broken edit does not
// end a watch session.
func (app *Application) redraw(ctx context.Context) {
	if err := app.render(ctx); err != nil {
		app.log.Error("%v", err)
	}
}

func isQuitKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return true
	case backend.KeyRune:
		return ev.Rune == 'q' || ev.Rune == 'Q'
	}
	return false
}
