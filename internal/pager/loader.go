package pager

import (
	"github.com/kk-code-lab/rpager/internal/reactor"
	"pkt.systems/pslog"
)

// DefaultLookahead is how many screens of content are kept loaded below the
// viewport.
const DefaultLookahead = 2

// maxSyncReads caps one synchronous fill so a generator that yields no line
// terminators cannot stall the event loop; the next render continues it.
const maxSyncReads = 4096

// RenderInfo is what the renderer reports after drawing a document.
type RenderInfo struct {
	Height        int
	TotalLines    int
	LastVisible   int
	BottomVisible bool
}

// Loader decides after every render whether a document needs more input and
// pulls it from the document's source.
type Loader struct {
	reactor   reactor.Reactor
	lookahead int
	redraw    func()
	logger    pslog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookahead sets the number of screens to keep loaded ahead.
func WithLookahead(screens int) LoaderOption {
	return func(l *Loader) {
		if screens > 0 {
			l.lookahead = screens
		}
	}
}

// WithRedraw sets the callback used to request a redraw after new content was
// appended. It may be called more often than strictly needed.
func WithRedraw(fn func()) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.redraw = fn
		}
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger pslog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader that registers stream handles with r.
func NewLoader(r reactor.Reactor, opts ...LoaderOption) *Loader {
	l := &Loader{
		reactor:   r,
		lookahead: DefaultLookahead,
		redraw:    func() {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnRender starts a fill for doc when fewer than lookahead screens are loaded
// below the viewport, or when doc is in follow mode.
func (l *Loader) OnRender(doc *Document, info RenderInfo) {
	if doc == nil {
		return
	}
	doc.setHeight(info.Height)

	if doc.awaiting || doc.src.Exhausted() {
		return
	}

	target := l.lookahead * doc.height
	below := info.TotalLines - info.LastVisible
	if below >= target && !doc.follow {
		return
	}

	need := target - below
	if need < 1 {
		need = 1
	}
	l.fill(doc, need)
}

func (l *Loader) fill(doc *Document, need int) {
	h, ok := doc.src.Handle()
	if !ok {
		l.fillSync(doc, need)
		return
	}

	doc.awaiting = true
	doc.need = need
	if l.logger != nil {
		l.logger.Debug("fill started", "doc", doc.name, "need", need)
	}
	l.reactor.Register(h, func() {
		l.receive(doc, h)
	})
}

// receive handles one readiness notification: exactly one ReadChunk.
func (l *Loader) receive(doc *Document, h reactor.Handle) {
	runs := doc.src.ReadChunk()
	doc.need -= doc.appendRuns(runs)

	exhausted := doc.src.Exhausted()
	if doc.need <= 0 || exhausted {
		l.reactor.Unregister(h)
		doc.awaiting = false
		if l.logger != nil {
			l.logger.Debug("fill finished", "doc", doc.name, "lines", doc.buf.Len(), "eof", exhausted)
		}
	}

	if len(runs) > 0 || exhausted {
		l.redraw()
	}
}

func (l *Loader) fillSync(doc *Document, need int) {
	var appended bool
	reads := 0
	for ; reads < maxSyncReads && need > 0 && !doc.src.Exhausted(); reads++ {
		runs := doc.src.ReadChunk()
		if len(runs) > 0 {
			appended = true
		}
		need -= doc.appendRuns(runs)
	}
	// A capped fill is continued by the render the redraw causes.
	capped := reads == maxSyncReads && need > 0 && !doc.src.Exhausted()
	if appended || capped || doc.src.Exhausted() {
		l.redraw()
	}
}

// cancel drops an outstanding registration for doc.
func (l *Loader) cancel(doc *Document) {
	if !doc.awaiting {
		return
	}
	if h, ok := doc.src.Handle(); ok {
		l.reactor.Unregister(h)
	}
	doc.awaiting = false
	doc.need = 0
}
