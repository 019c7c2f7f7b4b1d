package commonlexer

// Direction tells on which sides of the wrapped matcher spacing is
// consumed.
type Direction uint8

const (
	DirectionRight Direction = 1 << iota
	DirectionLeft
	DirectionBoth = DirectionLeft | DirectionRight
)

// SpacingMethod picks the set of characters considered spacing
type SpacingMethod int

const (
	// SpacingNormal only accepts spaces and tabs
	SpacingNormal SpacingMethod = iota

	// SpacingWhitespace also accepts line breaks, vertical tabs,
	// form feeds and carriage returns
	SpacingWhitespace
)

func (m SpacingMethod) accepts(c byte) bool {
	switch c {
	case ' ', '\t':
		return true
	case '\n', '\v', '\f', '\r':
		return m == SpacingWhitespace
	default:
		return false
	}
}

func (m SpacingMethod) expected() string {
	if m == SpacingWhitespace {
		return "space, tab, vertical tab, form feed, carriage return or line feed"
	}
	return "space or tab"
}

type SpacingOptions struct {
	// Forced requires at least one spacing character on every side
	// covered by Direction.  Missing spacing is reported as a
	// warning and doesn't fail the match.
	Forced bool

	// Direction defaults to DirectionRight
	Direction Direction
	Method    SpacingMethod
}

type spacingMatcher struct {
	matcher Matcher
	opts    SpacingOptions
}

// Spacing wraps `matcher` so spacing around it is consumed as part of
// the match.
func Spacing(matcher Matcher, opts SpacingOptions) Matcher {
	if opts.Direction == 0 {
		opts.Direction = DirectionRight
	}
	return &spacingMatcher{matcher: matcher, opts: opts}
}

// Spaced is the lenient version of Spacing, eating any whitespace on
// both sides of `matcher`.
func Spaced(matcher Matcher) Matcher {
	return Spacing(matcher, SpacingOptions{Direction: DirectionBoth, Method: SpacingWhitespace})
}

func (m *spacingMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	sub := span
	total := EmptySpan(span.Start)

	if m.opts.Direction&DirectionLeft != 0 {
		sub.Start = m.consume(state, scoped, sub, true)
		total.End = sub.Start
	}

	result := m.matcher.Match(state, scoped, sub)
	switch result.Status {
	case StatusSuccess:
		sub.Start = result.Span.End
		total.End = result.Span.End
	case StatusFailure:
		return failure(total)
	}

	if m.opts.Direction&DirectionRight != 0 {
		sub.Start = m.consume(state, scoped, sub, false)
		total.End = sub.Start
	}
	return success(total)
}

// consume skips spacing from the start of `span` and returns where it
// stopped.  On the left side a spacing character right before the
// span also satisfies a forced requirement.
func (m *spacingMatcher) consume(state *State, scoped *ScopedState, span Span, left bool) Position {
	cursor := state.Cursor(span.Start)
	found := 0

	if m.opts.Forced && left && span.Start > state.ScanSpan().Start {
		cursor.Prev()
		if c, ok := cursor.Peek(); ok && m.opts.Method.accepts(c) {
			found++
		}
		cursor.Next()
	}

	for !cursor.AtEnd(span.End) {
		c, ok := cursor.Peek()
		if !ok || !m.opts.Method.accepts(c) {
			break
		}
		cursor.Next()
		found++
	}

	if m.opts.Forced && found == 0 {
		got := "EOF"
		if !cursor.AtEnd(span.End) {
			if c, ok := cursor.Peek(); ok {
				got = string(c)
			}
		}
		scoped.Warnf(state, span.Start, EmptySpan(span.Start), "Expected %s but got '%s'", m.opts.Method.expected(), got)
	}
	return cursor.Pos()
}
