// Package overstrike decodes the backspace overstrike convention used by
// nroff/man ("_\bX" underlines X, "X\bX" emboldens it) into styled runs.
package overstrike

import (
	"github.com/kk-code-lab/rpager/internal/styled"
)

const backspace = '\b'

// Decoder is a one-pass transducer from runes to styled runs.
//
// The most recent ordinary character of the current line is held back until
// the next rune arrives, because a following backspace may still retract it.
// Flush releases it once the input is known to be complete. Further
// backspaces keep retracting characters of the current line that have not
// been taken yet.
type Decoder struct {
	pending   styled.Style
	held      rune
	heldStyle styled.Style
	hasHeld   bool

	out      []styled.Run
	run      []rune
	runStyle styled.Style
}

// New returns a decoder in its initial state.
func New() *Decoder {
	return &Decoder{}
}

// Feed advances the decoder by one rune.
func (d *Decoder) Feed(r rune) {
	switch r {
	case '\n':
		d.release()
		d.emit(styled.StylePlain, r)
		d.pending = styled.StylePlain
	case backspace:
		prev, ok := d.retract()
		if !ok {
			return
		}
		if prev == '_' {
			d.pending = styled.StyleStandout2
		} else {
			d.pending = styled.StyleStandout
		}
	default:
		d.release()
		d.held = r
		d.heldStyle = d.pending
		d.hasHeld = true
		d.pending = styled.StylePlain
	}
}

// WriteString feeds every rune of s.
func (d *Decoder) WriteString(s string) {
	for _, r := range s {
		d.Feed(r)
	}
}

// Flush emits the held character, if any.
func (d *Decoder) Flush() {
	d.release()
}

// Take returns the runs decoded since the previous call.
func (d *Decoder) Take() []styled.Run {
	d.closeRun()
	out := d.out
	d.out = nil
	return out
}

// Decode runs a fresh decoder over s and returns everything it produced.
func Decode(s string) []styled.Run {
	d := New()
	d.WriteString(s)
	d.Flush()
	return d.Take()
}

func (d *Decoder) release() {
	if !d.hasHeld {
		return
	}
	d.emit(d.heldStyle, d.held)
	d.hasHeld = false
}

// retract removes the most recent character of the current line that has not
// been taken yet.
func (d *Decoder) retract() (rune, bool) {
	if d.hasHeld {
		d.hasHeld = false
		return d.held, true
	}
	if len(d.run) == 0 && len(d.out) > 0 {
		last := d.out[len(d.out)-1]
		d.out = d.out[:len(d.out)-1]
		d.run = []rune(last.Text)
		d.runStyle = last.Style
	}
	n := len(d.run)
	if n == 0 || d.run[n-1] == '\n' {
		return 0, false
	}
	r := d.run[n-1]
	d.run = d.run[:n-1]
	return r, true
}

func (d *Decoder) emit(style styled.Style, r rune) {
	if len(d.run) > 0 && d.runStyle != style {
		d.closeRun()
	}
	d.runStyle = style
	d.run = append(d.run, r)
}

func (d *Decoder) closeRun() {
	if len(d.run) == 0 {
		return
	}
	d.out = append(d.out, styled.Run{Style: d.runStyle, Text: string(d.run)})
	d.run = d.run[:0]
}
