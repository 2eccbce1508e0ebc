//go:build windows

package reactor

import "time"

// Windows has no poll(2) for pipes. Pipe readers install a Waiter; anything
// left here is a regular file, which never blocks.
func waitReadable(Handle, time.Duration) (bool, error) {
	return true, nil
}
