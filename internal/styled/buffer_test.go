package styled

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBufferHasOpenLine(t *testing.T) {
	b := NewBuffer()
	require.Equal(t, 1, b.Len())
	require.Empty(t, b.Line(0))
	require.Nil(t, b.Line(1))
	require.Nil(t, b.Line(-1))
}

func TestBufferAppendSplitsLines(t *testing.T) {
	b := NewBuffer()
	n := b.Append([]Run{
		{Style: StylePlain, Text: "one\ntw"},
		{Style: StylePlain, Text: "o\n"},
		{Style: StyleStandout, Text: "three"},
	})

	require.Equal(t, 2, n)
	require.Equal(t, 3, b.Len())
	require.Equal(t, "one", b.Line(0).Text())
	require.Equal(t, Line{{Style: StylePlain, Text: "two"}}, b.Line(1))
	require.Equal(t, Line{{Style: StyleStandout, Text: "three"}}, b.Line(2))
}

func TestBufferAppendContinuesOpenLine(t *testing.T) {
	b := NewBuffer()
	b.Append(Plain("hel"))
	b.Append([]Run{{Style: StylePlain, Text: "lo"}, {Style: StyleStandout2, Text: "!"}})

	require.Equal(t, 1, b.Len())
	require.Equal(t, Line{
		{Style: StylePlain, Text: "hello"},
		{Style: StyleStandout2, Text: "!"},
	}, b.Line(0))
}

func TestBufferAppendEmptyLines(t *testing.T) {
	b := NewBuffer()
	n := b.Append(Plain("\n\n"))
	require.Equal(t, 2, n)
	require.Equal(t, 3, b.Len())
	for i := 0; i < 3; i++ {
		require.Empty(t, b.Line(i))
	}
}

func TestBufferLinesClampsRange(t *testing.T) {
	b := NewBuffer()
	b.Append(Plain("a\nb\nc"))

	require.Len(t, b.Lines(-5, 100), 3)
	require.Len(t, b.Lines(1, 2), 1)
	require.Nil(t, b.Lines(2, 1))
}

func TestLineTextAndLen(t *testing.T) {
	line := Line{{Style: StylePlain, Text: "zaż"}, {Style: StyleStandout, Text: "ółć"}}
	require.Equal(t, "zażółć", line.Text())
	require.Equal(t, 6, line.Len())
	require.Equal(t, "", Line(nil).Text())
}
