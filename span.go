package commonlexer

import "fmt"

// Position is a byte offset within a SourceText
type Position int

func (p Position) Next() Position         { return p + 1 }
func (p Position) Prev() Position         { return p - 1 }
func (p Position) Add(n int) Position     { return p + Position(n) }
func (p Position) Sub(n int) Position     { return p - Position(n) }
func (p Position) Offset() int            { return int(p) }
func (p Position) Before(o Position) bool { return p < o }

// Line returns the 1-based line of the position within `src`
func (p Position) Line(src *SourceText) int { return src.LineOfOffset(int(p)) }

// Column returns the 1-based column of the position within `src`
func (p Position) Column(src *SourceText) int { return src.ColumnOfOffset(int(p)) }

// Span is the half-open range [Start, End) of a SourceText.  Callers
// keep Start <= End; an empty span is valid and marks a match that
// didn't consume anything.
type Span struct{ Start, End Position }

func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// EmptySpan returns the zero width span sitting at `p`
func EmptySpan(p Position) Span {
	return Span{Start: p, End: p}
}

func (s Span) Len() int      { return int(s.End - s.Start) }
func (s Span) IsEmpty() bool { return s.End <= s.Start }

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Contains tells if `other` is completely within `s`
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// From returns the part of the span that starts at `p`
func (s Span) From(p Position) Span {
	return Span{Start: p, End: s.End}
}

// Text returns the text the span covers within `src`
func (s Span) Text(src *SourceText) string {
	return src.Substring(int(s.Start), s.Len())
}

// Lines returns every line the span touches, including the one it
// ends on.
func (s Span) Lines(src *SourceText) []string {
	startLine := s.Start.Line(src)
	endLine := s.End.Line(src)
	if startLine == Invalid || endLine == Invalid {
		return nil
	}
	return src.LinesInRange(startLine, endLine-startLine+1)
}

// Location renders the span as "line:col -> line:col" for humans
func (s Span) Location(src *SourceText) string {
	return fmt.Sprintf("%d:%d -> %d:%d",
		s.Start.Line(src), s.Start.Column(src),
		s.End.Line(src), s.End.Column(src))
}

// DefaultWindowSize is how many bytes a Cursor keeps around its
// position.
const DefaultWindowSize = 256

// Cursor walks a SourceText one byte at a time in both directions.
// Instead of holding on to the whole text, it keeps a window of it
// around its current position and refills the window from the source
// once the position leaves it.
type Cursor struct {
	src    *SourceText
	pos    Position
	window string

	// offset of the first byte of `window` within the source
	windowStart Position
	windowSize  int
}

// NewCursor creates a cursor over `src` sitting at `pos`.  A
// non-positive `windowSize` picks DefaultWindowSize.
func NewCursor(src *SourceText, pos Position, windowSize int) *Cursor {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	c := &Cursor{src: src, pos: pos, windowSize: windowSize}
	c.recache()
	return c
}

func (c *Cursor) Pos() Position { return c.pos }

// Peek returns the byte under the cursor.  The boolean is false when
// the cursor is outside of the source.
func (c *Cursor) Peek() (byte, bool) {
	i := int(c.pos - c.windowStart)
	if i < 0 || i >= len(c.window) {
		return 0, false
	}
	return c.window[i], true
}

// Next moves the cursor one byte forward
func (c *Cursor) Next() {
	c.pos++
	c.recache()
}

// Prev moves the cursor one byte backwards
func (c *Cursor) Prev() {
	c.pos--
	c.recache()
}

// Seek moves the cursor to `pos`
func (c *Cursor) Seek(pos Position) {
	c.pos = pos
	c.recache()
}

// AtEnd tells if the cursor reached `end` or went past it
func (c *Cursor) AtEnd(end Position) bool {
	return c.pos >= end
}

// recache refills the window when the cursor left it.  The new window
// is centered around the position so moving back a few bytes doesn't
// immediately trigger another refill.
func (c *Cursor) recache() {
	i := int(c.pos - c.windowStart)
	if c.window != "" && i >= 0 && i < len(c.window) {
		return
	}
	if c.pos < 0 || int(c.pos) >= c.src.Size() {
		return
	}
	half := c.windowSize / 2
	start := int(c.pos) - half
	if start < 0 {
		start = 0
	}
	c.windowStart = Position(start)
	c.window = c.src.Substring(start, c.windowSize)
}
