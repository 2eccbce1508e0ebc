package pager

const (
	// MarkStart always refers to the top of the document.
	MarkStart = '^'
	// MarkEnd always refers to the last buffered line.
	MarkEnd = '$'
)

type markTable map[rune]Position

func isReservedMark(name rune) bool {
	return name == MarkStart || name == MarkEnd
}

// validMarkName accepts any printable, non-space rune.
func validMarkName(name rune) bool {
	return name > ' ' && name != 0x7f
}

func (d *Document) setMark(name rune, pos Position) bool {
	if isReservedMark(name) || !validMarkName(name) {
		return false
	}
	d.marks[name] = pos
	return true
}

func (d *Document) mark(name rune) (Position, bool) {
	switch name {
	case MarkStart:
		return Position{}, true
	case MarkEnd:
		return d.endPosition(), true
	}
	pos, ok := d.marks[name]
	return pos, ok
}
