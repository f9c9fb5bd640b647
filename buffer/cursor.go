package buffer

// Cursor is a position in the buffer. Col counts runes, not bytes.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

type Selection struct {
	Start, End Cursor
}

// NewSelection orders a and b so Start is never after End.
func NewSelection(a, b Cursor) Selection {
	if a.Before(b) {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

// Contains reports whether c lies in the half-open range [Start, End).
func (s Selection) Contains(c Cursor) bool {
	if c.Before(s.Start) {
		return false
	}
	return c.Before(s.End)
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}
