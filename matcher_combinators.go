package commonlexer

// Unbounded is the upper bound of repetitions that never stop on
// their own
const Unbounded = -1

type sequenceMatcher struct{ matchers []Matcher }

// Sequence matches each of `matchers` in order, each one starting
// where the previous one stopped.  Skips are zero width and don't stop
// the sequence; the first failure does, and the failure only covers
// what the items before it consumed.  Nodes attached by those items
// stay attached.
func Sequence(matchers ...Matcher) Matcher {
	return &sequenceMatcher{matchers: matchers}
}

func (m *sequenceMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	sub := span
	total := EmptySpan(span.Start)
	for _, matcher := range m.matchers {
		result := matcher.Match(state, scoped, sub)
		switch result.Status {
		case StatusSuccess:
			sub.Start = result.Span.End
			total.End = result.Span.End
		case StatusSkip:
			continue
		default:
			return failure(total)
		}
	}
	return success(total)
}

type choiceMatcher struct{ matchers []Matcher }

// Choice tries every one of `matchers` from the same position, each in
// isolation, and keeps the longest success.  When nothing succeeds, it
// reports the skip or failure that went the furthest.  Ties keep the
// first alternative.  Only the winner's nodes and diagnostics reach the
// caller's scope.
func Choice(matchers ...Matcher) Matcher {
	return &choiceMatcher{matchers: matchers}
}

func (m *choiceMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	var (
		best      = failure(EmptySpan(span.Start))
		bestLen   = 0
		bestNode  *Node
		bestScope *ScopedState
	)
	for _, matcher := range m.matchers {
		node := NewNode(NoRule)
		inner := NewScopedState(node)
		result := matcher.Match(state, inner, span)

		if result.Status == StatusSuccess {
			if best.Status != StatusSuccess || result.Span.Len() > best.Span.Len() {
				best, bestNode, bestScope = result, node, inner
			}
			continue
		}
		if best.Status == StatusSuccess {
			continue
		}
		// Zero width attempts still count as having looked at one
		// character, so they compete with failures that stopped
		// right away.
		length := max(result.Span.Len(), 1)
		if length > bestLen {
			bestLen = length
			best, bestNode, bestScope = result, node, inner
		}
	}

	if bestScope != nil {
		scoped.AddDiagnostics(bestScope.Diagnostics)
	}
	if best.Status == StatusSuccess {
		adopt(scoped, bestNode)
	}
	return best
}

type repeatMatcher struct {
	matcher      Matcher
	lower, upper int
}

// Repeat matches `matcher` over and over, between `lower` and `upper`
// times (both inclusive).  An `upper` of Unbounded has no limit.  The
// loop stops early on the first unsuccessful attempt, when the span is
// exhausted or when an iteration doesn't make progress.
//
// Each iteration runs in isolation, so a failed attempt leaves no nodes
// behind.  Diagnostics from the iterations are only surfaced when the
// repetition leaves part of its span unconsumed.  If the lower bound
// was met they come out as warnings since they only explain where the
// repetition stopped.
func Repeat(matcher Matcher, lower, upper int) Matcher {
	return &repeatMatcher{matcher: matcher, lower: lower, upper: upper}
}

func ZeroOrMore(matcher Matcher) Matcher     { return Repeat(matcher, 0, Unbounded) }
func OneOrMore(matcher Matcher) Matcher      { return Repeat(matcher, 1, Unbounded) }
func Exactly(matcher Matcher, n int) Matcher { return Repeat(matcher, n, n) }

func (m *repeatMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	var (
		matches = 0
		sub     = span
		total   = EmptySpan(span.Start)
		held    Diagnostics
	)
	for m.upper == Unbounded || matches < m.upper {
		node := NewNode(NoRule)
		inner := NewScopedState(node)
		result := m.matcher.Match(state, inner, sub)
		held = append(held, inner.Diagnostics...)
		if result.Status != StatusSuccess {
			break
		}
		adopt(scoped, node)
		progressed := result.Span.End > sub.Start
		sub.Start = result.Span.End
		total.End = result.Span.End
		matches++

		if !progressed || sub.IsEmpty() {
			break
		}
	}

	if total.End < span.End {
		if matches >= m.lower {
			scoped.AddDiagnostics(held.downgraded())
		} else {
			scoped.AddDiagnostics(held)
		}
	}

	if matches < m.lower {
		scoped.Errorf(state, sub.Start, sub, "Expected at least %d matches but only got %d matches", m.lower, matches)
		return failure(total)
	}
	return success(total)
}

type optionalMatcher struct{ matcher Matcher }

// Optional never fails: a successful match passes through and anything
// else becomes a zero width skip.  The inner matcher runs in isolation so a
// partial attempt leaves neither nodes nor diagnostics behind.
func Optional(matcher Matcher) Matcher {
	return &optionalMatcher{matcher: matcher}
}

func (m *optionalMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	node := NewNode(NoRule)
	inner := NewScopedState(node)
	result := m.matcher.Match(state, inner, span)
	if result.Status == StatusSuccess {
		scoped.AddDiagnostics(inner.Diagnostics)
		adopt(scoped, node)
		return result
	}
	return skip(EmptySpan(span.Start))
}

type notMatcher struct{ matcher Matcher }

// Not is a negative lookahead.  It succeeds without consuming anything
// when `matcher` doesn't match, and fails when it does.
func Not(matcher Matcher) Matcher {
	return &notMatcher{matcher: matcher}
}

func (m *notMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	inner := NewScopedState(NewNode(NoRule))
	result := m.matcher.Match(state, inner, span)
	if result.Status == StatusSuccess {
		scoped.Errorf(state, span.Start, result.Span, "Did not expect following sequence")
		return failure(EmptySpan(span.Start))
	}
	return success(EmptySpan(span.Start))
}

// adopt moves the children collected by a speculative match into the
// scope's node
func adopt(scoped *ScopedState, node *Node) {
	if scoped.Parent == nil {
		return
	}
	scoped.Parent.AdoptChildren(node)
}
