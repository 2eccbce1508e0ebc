//go:build windows

package source

import (
	"os"

	"github.com/kk-code-lab/rpager/internal/reactor"
	"pkt.systems/pslog"
)

// fileReader reads ahead in a goroutine, since Windows pipes cannot be read
// without blocking. The pump's wait is installed as the handle's reactor
// Waiter.
type fileReader struct {
	*pumpReader
	handle reactor.Handle
}

func newFileReader(f *os.File, _ pslog.Logger) *fileReader {
	r := &fileReader{
		pumpReader: newPumpReader(f),
		handle:     reactor.Handle(f.Fd()),
	}
	reactor.SetWaiter(r.handle, r.wait)
	return r
}

func (r *fileReader) Close() error {
	reactor.SetWaiter(r.handle, nil)
	return r.pumpReader.Close()
}
