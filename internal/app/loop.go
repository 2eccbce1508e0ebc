package app

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/pager"
	renderui "github.com/kk-code-lab/rpager/internal/ui/render"
)

// Run drives the event loop until the user quits or ctx is cancelled. Terminal
// input, reactor readiness, redraw requests and actions are all handled on
// this goroutine.
func (app *Application) Run(ctx context.Context) error {
	eventChan := make(chan tcell.Event)
	pollDone := make(chan struct{})
	defer close(pollDone)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-pollDone:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	app.render()
	renderPending := false

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case <-ctx.Done():
			app.shouldQuit = true
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case ev := <-app.reactor.Events():
			app.reactor.Dispatch(ev)
		case <-app.redrawCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	return nil
}

// render draws the active document and feeds the result back to the loader,
// which may request another redraw.
func (app *Application) render() {
	info := app.renderer.Render(renderui.View{
		Doc:      app.session.Active(),
		Index:    app.session.ActiveIndex(),
		Count:    app.session.Len(),
		Message:  app.message,
		ShowHelp: app.showHelp,
		Arg:      app.input.Count(),
	})
	app.session.OnRender(info)
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.message = ""
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		app.input.ProcessEvent(ev)
	case *tcell.EventMouse:
		app.input.ProcessEvent(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action pager.Action) bool {
	if action == nil || app.shouldQuit {
		return false
	}

	result, err := app.session.Apply(action)
	if err != nil && !errors.Is(err, pager.ErrMarkNotFound) {
		app.logger.Error("apply action", "action", action, "err", err)
	}
	if result.Message != "" {
		app.message = result.Message
	}

	switch {
	case result.Quit:
		app.shouldQuit = true
		return false
	case result.Suspend:
		app.suspendToShell()
		app.resumeAfterStop()
	case result.ToggleHelp:
		app.showHelp = !app.showHelp
		app.input.SetHelpVisible(app.showHelp)
	}
	return true
}
