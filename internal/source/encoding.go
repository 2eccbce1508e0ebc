package source

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textDecoder turns raw input bytes into UTF-8 text. A leading UTF-8 or
// UTF-16 byte order mark selects the input encoding; anything else is read as
// UTF-8 with invalid bytes replaced. Incomplete sequences at the end of a read
// are kept until the next one.
type textDecoder struct {
	t       transform.Transformer
	pending []byte
	dst     []byte
}

func newTextDecoder() *textDecoder {
	return &textDecoder{
		t:   unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		dst: make([]byte, 4096),
	}
}

func (d *textDecoder) decode(p []byte, atEOF bool) string {
	src := p
	if len(d.pending) > 0 {
		src = append(d.pending, p...)
		d.pending = nil
	}
	if len(src) == 0 && !atEOF {
		return ""
	}

	var out strings.Builder
	for {
		nDst, nSrc, err := d.t.Transform(d.dst, src, atEOF)
		out.Write(d.dst[:nDst])
		src = src[nSrc:]
		switch {
		case err == nil:
			return out.String()
		case errors.Is(err, transform.ErrShortDst):
			if nDst == 0 && nSrc == 0 {
				d.dst = make([]byte, 2*len(d.dst))
			}
		case errors.Is(err, transform.ErrShortSrc):
			d.pending = append([]byte(nil), src...)
			return out.String()
		default:
			out.Write(src)
			return out.String()
		}
	}
}
