//go:build !windows

package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpager/internal/source"
	"github.com/stretchr/testify/require"
)

func TestRunPagesPipeInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	app, scr := newTestApp(t, []Input{{Name: "stdin", Source: source.NewStreamSource(r)}})
	done := runApp(t, app)

	_, err = w.WriteString("N\bNA\bAM\bME\bE\n\tplain\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.HasPrefix(rowText(scr, 0), "NAME") &&
			strings.HasPrefix(rowText(scr, 1), "    plain")
	}, 3*time.Second, 10*time.Millisecond)

	_, _, style, _ := scr.GetContent(0, 0)
	_, _, attrs := style.Decompose()
	require.NotZero(t, attrs&tcell.AttrBold, "overstruck text is drawn bold")

	// More input arrives later and is picked up without a key press.
	_, err = w.WriteString("later\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Eventually(t, func() bool {
		return strings.HasPrefix(rowText(scr, 2), "later") &&
			strings.HasSuffix(rowText(scr, 9), " (1,1) 25% ")
	}, 3*time.Second, 10*time.Millisecond)

	scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitDone(t, done)
}
