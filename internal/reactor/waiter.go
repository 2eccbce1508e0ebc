package reactor

import (
	"sync"
	"time"
)

// Waiter reports whether its input has data ready, blocking for at most
// timeout. Inputs that buffer in a goroutine install one so that watchers do
// not need an OS-level poll for them.
type Waiter func(timeout time.Duration) bool

var waiters sync.Map // Handle -> Waiter

// SetWaiter makes w the readiness test for h. A nil w removes it and the
// platform poll is used again.
func SetWaiter(h Handle, w Waiter) {
	if w == nil {
		waiters.Delete(h)
		return
	}
	waiters.Store(h, w)
}

func waitReady(h Handle, timeout time.Duration) (bool, error) {
	if v, ok := waiters.Load(h); ok {
		return v.(Waiter)(timeout), nil
	}
	return waitReadable(h, timeout)
}
