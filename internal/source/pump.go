package source

import (
	"io"
	"sync"
	"time"
)

const (
	pumpReadSize    = 32 * 1024
	pumpMaxBuffered = 256 * 1024
)

// pumpReader turns a blocking reader into a rawReader. A goroutine reads
// ahead into a bounded buffer; readAvailable only copies out what is already
// there, and wait blocks until data or an error arrives.
type pumpReader struct {
	src io.ReadCloser

	mu  sync.Mutex
	buf []byte
	err error

	notify  chan struct{}
	drained chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newPumpReader(src io.ReadCloser) *pumpReader {
	p := &pumpReader{
		src:     src,
		notify:  make(chan struct{}, 1),
		drained: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go p.pump()
	return p
}

func (p *pumpReader) pump() {
	chunk := make([]byte, pumpReadSize)
	for {
		n, err := p.src.Read(chunk)
		p.mu.Lock()
		p.buf = append(p.buf, chunk[:n]...)
		if err != nil {
			p.err = err
		}
		full := len(p.buf) >= pumpMaxBuffered
		p.mu.Unlock()
		signal(p.notify)
		if err != nil {
			return
		}

		for full {
			select {
			case <-p.drained:
			case <-p.done:
				return
			}
			p.mu.Lock()
			full = len(p.buf) >= pumpMaxBuffered
			p.mu.Unlock()
		}
	}
}

func (p *pumpReader) readAvailable(dst []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(dst, p.buf)
	p.buf = p.buf[n:]
	if len(p.buf) == 0 {
		p.buf = nil
	}
	if n > 0 {
		signal(p.drained)
		return n, nil
	}
	return 0, p.err
}

func (p *pumpReader) ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf) > 0 || p.err != nil
}

// wait reports whether readAvailable has something to return, blocking for
// at most timeout.
func (p *pumpReader) wait(timeout time.Duration) bool {
	if p.ready() {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.notify:
		return p.ready()
	case <-timer.C:
		return p.ready()
	case <-p.done:
		return true
	}
}

func (p *pumpReader) Close() error {
	var err error
	p.once.Do(func() {
		close(p.done)
		err = p.src.Close()
	})
	return err
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
