package styled

import (
	"strings"
	"unicode/utf8"
)

// Style describes how a run of decoded text should be presented.
type Style int

const (
	StylePlain Style = iota
	StyleStandout
	StyleStandout2
)

func (s Style) String() string {
	switch s {
	case StyleStandout:
		return "standout"
	case StyleStandout2:
		return "standout2"
	default:
		return "plain"
	}
}

// Run is a chunk of text with an associated style.
type Run struct {
	Style Style
	Text  string
}

// Line is one decoded line without its terminator.
type Line []Run

// Text joins the run fragments of the line.
func (l Line) Text() string {
	return joinRunsText(l)
}

// Len reports the number of runes in the line.
func (l Line) Len() int {
	n := 0
	for _, run := range l {
		n += utf8.RuneCountInString(run.Text)
	}
	return n
}

// Text joins the fragments of runs, including any line terminators.
func Text(runs []Run) string {
	return joinRunsText(runs)
}

func joinRunsText(runs []Run) string {
	if len(runs) == 0 {
		return ""
	}
	total := 0
	for _, run := range runs {
		total += len(run.Text)
	}
	var b strings.Builder
	b.Grow(total)
	for _, run := range runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Plain wraps text as a single plain run.
func Plain(text string) []Run {
	if text == "" {
		return nil
	}
	return []Run{{Style: StylePlain, Text: text}}
}
