package app

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/config"
	"github.com/kk-code-lab/rpager/internal/logx"
	"github.com/kk-code-lab/rpager/internal/pager"
	"github.com/kk-code-lab/rpager/internal/reactor"
	"github.com/kk-code-lab/rpager/internal/source"
	inputui "github.com/kk-code-lab/rpager/internal/ui/input"
	renderui "github.com/kk-code-lab/rpager/internal/ui/render"
	"pkt.systems/pslog"
)

// Input is one source to page, with the name shown in the title bar.
type Input struct {
	Name   string
	Source source.Source
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	session  *pager.Session
	reactor  *reactor.PollReactor
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan pager.Action
	redrawCh chan struct{}
	logger   pslog.Logger

	mouse      bool
	showHelp   bool
	message    string
	shouldQuit bool
	closed     bool
}

type options struct {
	screen tcell.Screen
	config *config.Config
	logger pslog.Logger
}

// Option configures NewApplication.
type Option func(*options)

// WithScreen uses scr instead of the terminal. The screen must not be
// initialised yet.
func WithScreen(scr tcell.Screen) Option {
	return func(o *options) {
		o.screen = scr
	}
}

// WithConfig applies user settings.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.config = cfg
		}
	}
}

// WithLogger sets the logger shared by the loader, reactor and sources.
func WithLogger(logger pslog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewApplication opens a session over inputs and initialises the screen. On
// error every input source has been closed.
func NewApplication(inputs []Input, opts ...Option) (*Application, error) {
	o := options{config: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logx.New(io.Discard, "error")
	}
	cfg := o.config

	app := &Application{
		actionCh: make(chan pager.Action, 10),
		redrawCh: make(chan struct{}, 1),
		logger:   o.logger,
	}
	app.reactor = reactor.NewPollReactor(reactor.WithLogger(o.logger))

	loader := pager.NewLoader(app.reactor,
		pager.WithLookahead(cfg.LookaheadScreens),
		pager.WithRedraw(app.requestRedraw),
		pager.WithLogger(o.logger),
	)
	docs := make([]*pager.Document, 0, len(inputs))
	for _, in := range inputs {
		docs = append(docs, pager.NewDocument(in.Name, in.Source))
	}
	session, err := pager.NewSession(loader, docs...)
	if err != nil {
		closeInputs(inputs)
		return nil, err
	}
	app.session = session
	if cfg.Follow {
		for i := 0; i < session.Len(); i++ {
			session.ToggleFollow(session.Document(i))
		}
	}

	screen := o.screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			_ = session.Close()
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("init screen: %w", err)
	}
	app.mouse = cfg.Mouse
	if app.mouse {
		screen.EnableMouse()
	}
	app.screen = screen

	app.renderer = renderui.NewRenderer(screen,
		renderui.WithTheme(renderui.ThemeFromConfig(cfg.Theme)),
		renderui.WithTabWidth(cfg.TabWidth),
	)
	app.input = inputui.NewInputHandler(app.actionCh)

	app.logger.Info("session opened", "documents", session.Len())
	return app, nil
}

// Session exposes the open documents.
func (app *Application) Session() *pager.Session {
	return app.session
}

// Close releases sources, reactor watchers and the terminal. It is safe to
// call more than once.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true

	err := app.session.Close()
	app.reactor.Close()
	app.screen.Fini()
	if err != nil {
		app.logger.Error("close session", "err", err)
	}
	return err
}

// requestRedraw coalesces redraw requests; one pending request is enough.
func (app *Application) requestRedraw() {
	select {
	case app.redrawCh <- struct{}{}:
	default:
	}
}

func closeInputs(inputs []Input) {
	for _, in := range inputs {
		if in.Source != nil {
			_ = in.Source.Close()
		}
	}
}
