package commonlexer

import (
	"math"
	"sort"
	"sync"
	"unicode/utf8"
)

// Invalid is returned by the line and offset queries of a SourceText
// when their input doesn't address anything within the text.
const Invalid = math.MaxInt

// SourceText owns the text being parsed and answers line/column
// questions about it.  It's immutable after construction.
type SourceText struct {
	name string
	text string

	// lineStart holds the byte offset of every line start.  The
	// first entry is always 0 and every other entry is the offset
	// right after a '\n'.
	lineStart []int

	// lazily built, only needed by regular expressions
	runes     *runeIndex
	runesOnce sync.Once
}

// NewSourceText creates a SourceText named `name` (usually a file
// path) holding `text`.
func NewSourceText(name, text string) *SourceText {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &SourceText{name: name, text: text, lineStart: lineStart}
}

// NewSourceTextFromBytes is a NewSourceText that takes the input as
// bytes, like what os.ReadFile returns.
func NewSourceTextFromBytes(name string, data []byte) *SourceText {
	return NewSourceText(name, string(data))
}

func (s *SourceText) Name() string   { return s.name }
func (s *SourceText) String() string { return s.text }
func (s *SourceText) Size() int      { return len(s.text) }
func (s *SourceText) LineCount() int { return len(s.lineStart) }

// Span returns the span that covers the whole text
func (s *SourceText) Span() Span {
	return Span{Start: 0, End: Position(len(s.text))}
}

// OffsetOfLine returns the offset of the first byte of the 1-based
// `line`, or Invalid if there's no such line.
func (s *SourceText) OffsetOfLine(line int) int {
	if line <= 0 || line > len(s.lineStart) {
		return Invalid
	}
	return s.lineStart[line-1]
}

// LineOfOffset returns the 1-based line `offset` is in.  The offset
// right after the last byte belongs to the last line.
func (s *SourceText) LineOfOffset(offset int) int {
	if offset < 0 || offset > len(s.text) {
		return Invalid
	}
	// Find first lineStart > offset, which is also the number of
	// line starts <= offset.
	return sort.Search(len(s.lineStart), func(i int) bool {
		return s.lineStart[i] > offset
	})
}

// ColumnOfOffset returns the 1-based byte column of `offset`.  An
// offset that can't be mapped to a line reports column 1.
func (s *SourceText) ColumnOfOffset(offset int) int {
	line := s.LineOfOffset(offset)
	if line == Invalid {
		return 1
	}
	start := s.OffsetOfLine(line)
	if start == Invalid {
		return 1
	}
	return offset - start + 1
}

// Substring returns at most `length` bytes starting at `offset`.  The
// length is clamped to what's left of the text and an offset past the
// end yields an empty string.
func (s *SourceText) Substring(offset, length int) string {
	if offset < 0 || offset >= len(s.text) || length <= 0 {
		return ""
	}
	if length > len(s.text)-offset {
		length = len(s.text) - offset
	}
	return s.text[offset : offset+length]
}

// LineText returns the contents of `line` without its trailing line
// feed, or an empty string when the line doesn't exist.
func (s *SourceText) LineText(line int) string {
	start := s.OffsetOfLine(line)
	if start == Invalid {
		return ""
	}
	end := len(s.text)
	if next := s.OffsetOfLine(line + 1); next != Invalid {
		end = next - 1
	}
	return s.text[start:end]
}

// LinesInRange returns `count` lines starting at `startLine`.  Lines
// that don't exist come back empty.
func (s *SourceText) LinesInRange(startLine, count int) []string {
	if count <= 0 {
		return nil
	}
	lines := make([]string, 0, count)
	for line := startLine; line < startLine+count; line++ {
		lines = append(lines, s.LineText(line))
	}
	return lines
}

// ensureRunes builds the rune index the first time a regular
// expression runs against this text.
func (s *SourceText) ensureRunes() *runeIndex {
	s.runesOnce.Do(func() { s.runes = newRuneIndex(s.text) })
	return s.runes
}

// runeIndex keeps the text decoded as runes alongside the byte offset
// each rune starts at, so offsets can go back and forth between the
// two representations.
type runeIndex struct {
	runes []rune
	// offsets has one entry per rune plus a final entry holding
	// the text length
	offsets []int
}

func newRuneIndex(text string) *runeIndex {
	count := utf8.RuneCountInString(text)
	ri := &runeIndex{
		runes:   make([]rune, 0, count),
		offsets: make([]int, 0, count+1),
	}
	for offset, r := range text {
		ri.runes = append(ri.runes, r)
		ri.offsets = append(ri.offsets, offset)
	}
	ri.offsets = append(ri.offsets, len(text))
	return ri
}

// runeOf returns the index of the first rune that starts at or after
// the byte `offset`.
func (ri *runeIndex) runeOf(offset int) int {
	return sort.SearchInts(ri.offsets, offset)
}

// offsetOf returns the byte offset rune `i` starts at
func (ri *runeIndex) offsetOf(i int) int {
	if i >= len(ri.offsets) {
		return ri.offsets[len(ri.offsets)-1]
	}
	return ri.offsets[i]
}
