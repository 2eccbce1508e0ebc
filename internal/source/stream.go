package source

import (
	"errors"
	"io"
	"os"

	"github.com/kk-code-lab/rpager/internal/overstrike"
	"github.com/kk-code-lab/rpager/internal/reactor"
	"github.com/kk-code-lab/rpager/internal/styled"
	"pkt.systems/pslog"
)

const defaultChunkSize = 128 * 1024

// rawReader reads whatever input is ready. It returns (0, nil) when nothing is
// available yet and io.EOF once the input is finished.
type rawReader interface {
	readAvailable(p []byte) (int, error)
}

// StreamSource reads a file or pipe descriptor and decodes overstrike
// sequences.
type StreamSource struct {
	handle    reactor.Handle
	reader    rawReader
	closer    io.Closer
	text      *textDecoder
	decoder   *overstrike.Decoder
	buf       []byte
	chunkSize int
	eof       bool
	logger    pslog.Logger
}

// StreamOption configures a StreamSource.
type StreamOption func(*StreamSource)

// WithChunkSize bounds how many bytes a single ReadChunk may consume.
func WithChunkSize(n int) StreamOption {
	return func(s *StreamSource) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithLogger sets the logger used to report degraded input.
func WithLogger(logger pslog.Logger) StreamOption {
	return func(s *StreamSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStreamSource takes ownership of f; Close closes it.
func NewStreamSource(f *os.File, opts ...StreamOption) *StreamSource {
	s := newStreamSource(reactor.Handle(f.Fd()), nil, nil, opts...)
	r := newFileReader(f, s.logger)
	s.reader = r
	s.closer = r
	return s
}

func newStreamSource(h reactor.Handle, r rawReader, closer io.Closer, opts ...StreamOption) *StreamSource {
	s := &StreamSource{
		handle:    h,
		reader:    r,
		closer:    closer,
		text:      newTextDecoder(),
		decoder:   overstrike.New(),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle implements Source.
func (s *StreamSource) Handle() (reactor.Handle, bool) {
	return s.handle, true
}

// Exhausted implements Source.
func (s *StreamSource) Exhausted() bool {
	return s.eof
}

// ReadChunk implements Source. Read errors are treated as end of input.
func (s *StreamSource) ReadChunk() []styled.Run {
	if s.eof {
		return nil
	}

	n, err := s.fill()
	var text string
	if n > 0 {
		text = s.text.decode(s.buf[:n], false)
	}
	if err != nil {
		if !errors.Is(err, io.EOF) && s.logger != nil {
			s.logger.Error("stream read failed, treating as end of input", "handle", uintptr(s.handle), "err", err)
		}
		s.eof = true
		text += s.text.decode(nil, true)
	}

	s.decoder.WriteString(text)
	if s.eof {
		s.decoder.Flush()
	}
	return s.decoder.Take()
}

// Close implements Source.
func (s *StreamSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

func (s *StreamSource) fill() (int, error) {
	if len(s.buf) != s.chunkSize {
		s.buf = make([]byte, s.chunkSize)
	}
	total := 0
	for total < len(s.buf) {
		want := len(s.buf) - total
		n, err := s.reader.readAvailable(s.buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		// A short read means the descriptor has been drained for now.
		if n < want {
			break
		}
	}
	return total, nil
}
