package pager

import (
	"github.com/kk-code-lab/rpager/internal/source"
	"github.com/kk-code-lab/rpager/internal/styled"
)

// Position is a cursor line together with the first visible line.
type Position struct {
	Cursor int
	Scroll int
}

// Document is one open input: its source and everything decoded from it.
type Document struct {
	name   string
	src    source.Source
	buf    *styled.Buffer
	marks  markTable
	follow bool

	// awaiting is set while a handle registration for src is outstanding.
	awaiting bool
	need     int

	pos    Position
	height int
}

// NewDocument creates a document reading from src.
func NewDocument(name string, src source.Source) *Document {
	return &Document{
		name:   name,
		src:    src,
		buf:    styled.NewBuffer(),
		marks:  make(markTable),
		height: 1,
	}
}

func (d *Document) Name() string {
	return d.name
}

// Buffer exposes the decoded lines. Callers must treat it as read-only.
func (d *Document) Buffer() *styled.Buffer {
	return d.buf
}

// EOF reports whether the source has been drained.
func (d *Document) EOF() bool {
	return d.src.Exhausted()
}

// Following reports whether follow mode is on.
func (d *Document) Following() bool {
	return d.follow
}

func (d *Document) Position() Position {
	return d.pos
}

// SetPosition moves the view, clamped to the buffer.
func (d *Document) SetPosition(pos Position) {
	d.pos = pos
	d.clamp()
}

// MoveCursor moves the cursor by delta lines and scrolls to keep it visible.
func (d *Document) MoveCursor(delta int) {
	if delta < 0 {
		d.follow = false
	}
	d.pos.Cursor += delta
	d.clamp()
	if d.pos.Cursor < d.pos.Scroll {
		d.pos.Scroll = d.pos.Cursor
	}
	if d.pos.Cursor >= d.pos.Scroll+d.height {
		d.pos.Scroll = d.pos.Cursor - d.height + 1
	}
	d.clamp()
}

// ScrollBy moves the viewport by delta lines, dragging the cursor along.
func (d *Document) ScrollBy(delta int) {
	if delta < 0 {
		d.follow = false
	}
	d.pos.Scroll += delta
	d.pos.Cursor += delta
	d.clamp()
}

func (d *Document) PageDown() {
	d.ScrollBy(d.height)
}

func (d *Document) PageUp() {
	d.ScrollBy(-d.height)
}

func (d *Document) GoTop() {
	d.follow = false
	d.pos = Position{}
}

// GotoLine puts line idx at the top of the view, as far as the buffer
// allows.
func (d *Document) GotoLine(idx int) {
	if idx < d.pos.Cursor {
		d.follow = false
	}
	d.pos = Position{Cursor: idx, Scroll: idx}
	d.clamp()
}

// GoBottom moves to the last buffered line.
func (d *Document) GoBottom() {
	d.pos = d.endPosition()
}

func (d *Document) endPosition() Position {
	last := d.buf.Len() - 1
	if last < 0 {
		last = 0
	}
	scroll := last - d.height + 1
	if scroll < 0 {
		scroll = 0
	}
	return Position{Cursor: last, Scroll: scroll}
}

func (d *Document) setHeight(h int) {
	if h < 1 {
		h = 1
	}
	d.height = h
}

func (d *Document) clamp() {
	last := d.buf.Len() - 1
	if last < 0 {
		last = 0
	}
	if d.pos.Cursor > last {
		d.pos.Cursor = last
	}
	if d.pos.Cursor < 0 {
		d.pos.Cursor = 0
	}
	if d.pos.Scroll > last {
		d.pos.Scroll = last
	}
	if d.pos.Scroll < 0 {
		d.pos.Scroll = 0
	}
	if d.pos.Cursor < d.pos.Scroll {
		d.pos.Cursor = d.pos.Scroll
	}
}

// appendRuns adds runs to the buffer and returns the number of completed
// lines.
func (d *Document) appendRuns(runs []styled.Run) int {
	if len(runs) == 0 {
		return 0
	}
	n := d.buf.Append(runs)
	if d.follow {
		d.pos = d.endPosition()
	}
	return n
}
