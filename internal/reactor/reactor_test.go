//go:build !windows

package reactor

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func nextEvent(t *testing.T, r *PollReactor) Event {
	t.Helper()
	select {
	case ev := <-r.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for readiness event")
		return Event{}
	}
}

func TestPollReactorDeliversReadiness(t *testing.T) {
	pr, pw := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))
	defer r.Close()

	h := Handle(pr.Fd())
	calls := 0
	r.Register(h, func() {
		calls++
		buf := make([]byte, 16)
		_, _ = pr.Read(buf)
	})
	require.True(t, r.registered(h))

	_, err := pw.Write([]byte("hello"))
	require.NoError(t, err)

	ev := nextEvent(t, r)
	require.Equal(t, h, ev.Handle)
	r.Dispatch(ev)
	require.Equal(t, 1, calls)
}

func TestPollReactorIsLevelTriggered(t *testing.T) {
	pr, pw := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))
	defer r.Close()

	h := Handle(pr.Fd())
	calls := 0
	// The callback does not drain the pipe, so the handle stays readable.
	r.Register(h, func() { calls++ })

	_, err := pw.Write([]byte("x"))
	require.NoError(t, err)

	r.Dispatch(nextEvent(t, r))
	r.Dispatch(nextEvent(t, r))
	require.Equal(t, 2, calls)
}

func TestPollReactorDropsStaleEvents(t *testing.T) {
	pr, pw := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))
	defer r.Close()

	h := Handle(pr.Fd())
	calls := 0
	r.Register(h, func() { calls++ })
	_, err := pw.Write([]byte("x"))
	require.NoError(t, err)

	ev := nextEvent(t, r)
	r.Unregister(h)
	require.False(t, r.registered(h))
	r.Dispatch(ev)
	require.Zero(t, calls)
}

func TestPollReactorRegisterReplacesCallback(t *testing.T) {
	pr, pw := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))
	defer r.Close()

	h := Handle(pr.Fd())
	var got string
	r.Register(h, func() { got = "first" })
	r.Register(h, func() { got = "second" })

	_, err := pw.Write([]byte("x"))
	require.NoError(t, err)
	r.Dispatch(nextEvent(t, r))
	require.Equal(t, "second", got)
}

func TestPollReactorCallbackMayUnregister(t *testing.T) {
	pr, pw := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))
	defer r.Close()

	h := Handle(pr.Fd())
	r.Register(h, func() { r.Unregister(h) })
	_, err := pw.Write([]byte("x"))
	require.NoError(t, err)

	r.Dispatch(nextEvent(t, r))
	require.False(t, r.registered(h))

	select {
	case ev := <-r.Events():
		t.Fatalf("unexpected event after unregister: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPollReactorCloseUnregistersAll(t *testing.T) {
	pr1, _ := newPipe(t)
	pr2, _ := newPipe(t)
	r := NewPollReactor(WithPollInterval(20 * time.Millisecond))

	r.Register(Handle(pr1.Fd()), func() {})
	r.Register(Handle(pr2.Fd()), func() {})
	r.Close()

	require.False(t, r.registered(Handle(pr1.Fd())))
	require.False(t, r.registered(Handle(pr2.Fd())))
}
