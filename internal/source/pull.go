package source

import (
	"iter"
	"strconv"

	"github.com/kk-code-lab/rpager/internal/reactor"
	"github.com/kk-code-lab/rpager/internal/styled"
)

// PullSource advances an in-process sequence of pre-styled fragments. It has
// no handle; callers read it synchronously and the sequence must not block.
type PullSource struct {
	next func() ([]styled.Run, bool)
	stop func()
	eof  bool
}

// NewPullSource wraps seq. The sequence is consumed once and cannot be
// restarted.
func NewPullSource(seq iter.Seq[[]styled.Run]) *PullSource {
	next, stop := iter.Pull(seq)
	return &PullSource{next: next, stop: stop}
}

// Handle implements Source.
func (s *PullSource) Handle() (reactor.Handle, bool) {
	return 0, false
}

// Exhausted implements Source.
func (s *PullSource) Exhausted() bool {
	return s.eof
}

// ReadChunk returns the next element of the sequence, or nothing once it has
// ended.
func (s *PullSource) ReadChunk() []styled.Run {
	if s.eof {
		return nil
	}
	runs, ok := s.next()
	if !ok {
		s.eof = true
		s.stop()
		return nil
	}
	return append([]styled.Run(nil), runs...)
}

// Close stops the underlying sequence.
func (s *PullSource) Close() error {
	s.eof = true
	s.stop()
	return nil
}

// PlainLines turns each string of seq into one plain line.
func PlainLines(seq iter.Seq[string]) iter.Seq[[]styled.Run] {
	return func(yield func([]styled.Run) bool) {
		for line := range seq {
			if !yield(styled.Plain(line + "\n")) {
				return
			}
		}
	}
}

// Counter yields "<prefix><n>" lines forever.
func Counter(prefix string) iter.Seq[[]styled.Run] {
	return PlainLines(func(yield func(string) bool) {
		for n := 0; ; n++ {
			if !yield(prefix + strconv.Itoa(n)) {
				return
			}
		}
	})
}
