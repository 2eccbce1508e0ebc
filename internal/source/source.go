// Package source produces styled text chunks from pipes, files and in-process
// generators.
package source

import (
	"github.com/kk-code-lab/rpager/internal/reactor"
	"github.com/kk-code-lab/rpager/internal/styled"
)

// Source is a pull-based producer of styled runs.
type Source interface {
	// Handle returns a handle that becomes readable when ReadChunk has work to
	// do. Sources without one must be read synchronously.
	Handle() (reactor.Handle, bool)

	// Exhausted reports whether no further content will be produced. Once
	// true it stays true.
	Exhausted() bool

	// ReadChunk performs one bounded, non-blocking unit of work and returns
	// the runs it produced. Line terminators are carried inside run text.
	ReadChunk() []styled.Run

	Close() error
}
