//go:build !windows

package source

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

type fileReader struct {
	f  *os.File
	fd int
}

func newFileReader(f *os.File, logger pslog.Logger) *fileReader {
	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, true); err != nil && logger != nil {
		logger.Warn("could not switch input to non-blocking mode", "fd", fd, "err", err)
	}
	return &fileReader{f: f, fd: fd}
}

func (r *fileReader) readAvailable(p []byte) (int, error) {
	for {
		n, err := unix.Read(r.fd, p)
		switch {
		case err == nil && n == 0 && len(p) > 0:
			return 0, io.EOF
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, nil
		default:
			return 0, err
		}
	}
}

func (r *fileReader) Close() error {
	return r.f.Close()
}
