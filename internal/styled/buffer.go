package styled

import "strings"

// Buffer is an append-only list of decoded lines. The last line is always the
// current, possibly incomplete one; a newline closes it and opens a new one.
type Buffer struct {
	lines []Line
}

// NewBuffer returns a buffer holding a single empty line.
func NewBuffer() *Buffer {
	return &Buffer{lines: []Line{nil}}
}

// Len reports the number of lines, counting the open last line.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.lines)
}

// Line returns the line at idx, or nil when idx is out of range. Callers must
// not modify the returned runs.
func (b *Buffer) Line(idx int) Line {
	if b == nil || idx < 0 || idx >= len(b.lines) {
		return nil
	}
	return b.lines[idx]
}

// Lines returns the lines in [start, end).
func (b *Buffer) Lines(start, end int) []Line {
	if b == nil {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start >= end {
		return nil
	}
	return b.lines[start:end]
}

// Append adds runs to the buffer, splitting on newlines, and returns the number
// of line terminators consumed.
func (b *Buffer) Append(runs []Run) int {
	if len(b.lines) == 0 {
		b.lines = []Line{nil}
	}
	newlines := 0
	for _, run := range runs {
		text := run.Text
		for text != "" {
			idx := strings.IndexByte(text, '\n')
			if idx == -1 {
				b.appendToLast(Run{Style: run.Style, Text: text})
				break
			}
			if idx > 0 {
				b.appendToLast(Run{Style: run.Style, Text: text[:idx]})
			}
			b.lines = append(b.lines, nil)
			newlines++
			text = text[idx+1:]
		}
	}
	return newlines
}

func (b *Buffer) appendToLast(run Run) {
	last := len(b.lines) - 1
	line := b.lines[last]
	if n := len(line); n > 0 && line[n-1].Style == run.Style {
		line[n-1].Text += run.Text
		return
	}
	b.lines[last] = append(line, run)
}
