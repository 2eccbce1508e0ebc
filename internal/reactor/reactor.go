// Package reactor delivers "ready to read" notifications for file descriptors
// to a single event-loop goroutine.
//
// Watchers poll in their own goroutines but never run callbacks; they post an
// Event and the loop calls Dispatch, so every callback runs on the loop.
package reactor

import (
	"time"

	"pkt.systems/pslog"
)

// Handle identifies a waitable input, normally a file descriptor.
type Handle uintptr

// Reactor is the registration surface used by the loader.
type Reactor interface {
	// Register asks for cb to be called each time h is readable, until
	// Unregister. Registering an already registered handle replaces cb.
	Register(h Handle, cb func())
	Unregister(h Handle)
}

// Event is a readiness notification waiting to be dispatched.
type Event struct {
	Handle Handle
	w      *watcher
}

const defaultPollInterval = 200 * time.Millisecond

// PollReactor is a level-triggered Reactor. Register, Unregister, Dispatch and
// Close must all be called from the loop goroutine.
type PollReactor struct {
	watchers     map[Handle]*watcher
	events       chan Event
	pollInterval time.Duration
	logger       pslog.Logger
}

type watcher struct {
	handle Handle
	cb     func()
	stop   chan struct{}
	resume chan struct{}
}

// Option configures a PollReactor.
type Option func(*PollReactor)

// WithPollInterval bounds how long a watcher blocks in a single poll before
// checking whether it was unregistered.
func WithPollInterval(d time.Duration) Option {
	return func(r *PollReactor) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithLogger sets the logger used for poll failures.
func WithLogger(logger pslog.Logger) Option {
	return func(r *PollReactor) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewPollReactor creates an idle reactor.
func NewPollReactor(opts ...Option) *PollReactor {
	r := &PollReactor{
		watchers:     make(map[Handle]*watcher),
		events:       make(chan Event),
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events is the channel the loop selects on.
func (r *PollReactor) Events() <-chan Event {
	return r.events
}

// Register implements Reactor.
func (r *PollReactor) Register(h Handle, cb func()) {
	if cb == nil {
		return
	}
	if w, ok := r.watchers[h]; ok {
		w.cb = cb
		return
	}
	w := &watcher{
		handle: h,
		cb:     cb,
		stop:   make(chan struct{}),
		resume: make(chan struct{}, 1),
	}
	r.watchers[h] = w
	go r.watch(w)
}

// Unregister implements Reactor. Unknown handles are ignored.
func (r *PollReactor) Unregister(h Handle) {
	w, ok := r.watchers[h]
	if !ok {
		return
	}
	delete(r.watchers, h)
	close(w.stop)
}

// registered reports whether h currently has a callback.
func (r *PollReactor) registered(h Handle) bool {
	_, ok := r.watchers[h]
	return ok
}

// Dispatch runs the callback for ev if its registration is still current and
// lets the watcher poll again. Stale events are dropped.
func (r *PollReactor) Dispatch(ev Event) {
	w, ok := r.watchers[ev.Handle]
	if !ok || w != ev.w {
		return
	}
	w.cb()
	select {
	case w.resume <- struct{}{}:
	default:
	}
}

// Close unregisters every handle.
func (r *PollReactor) Close() {
	for h := range r.watchers {
		r.Unregister(h)
	}
}

func (r *PollReactor) watch(w *watcher) {
	for {
		ready, err := waitReady(w.handle, r.pollInterval)
		select {
		case <-w.stop:
			return
		default:
		}
		if err != nil {
			// Report as ready so the reader sees the failure and degrades to EOF.
			if r.logger != nil {
				r.logger.Debug("reactor poll failed", "handle", uintptr(w.handle), "err", err)
			}
			ready = true
		}
		if !ready {
			continue
		}
		select {
		case r.events <- Event{Handle: w.handle, w: w}:
		case <-w.stop:
			return
		}
		select {
		case <-w.resume:
		case <-w.stop:
			return
		}
	}
}
