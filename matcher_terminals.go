package commonlexer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dlclark/regexp2"
)

type textMatcher struct{ text string }

// Text matches `text` literally, byte by byte
func Text(text string) Matcher {
	return &textMatcher{text: text}
}

func (m *textMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	return matchLiteral(state, scoped, span, m.text)
}

// matchLiteral compares the input under `span` with `expected`.  When
// they differ, the diagnostic quotes what was still expected from the
// point of the mismatch on.
func matchLiteral(state *State, scoped *ScopedState, span Span, expected string) MatchResult {
	cursor := state.Cursor(span.Start)
	for i := 0; i < len(expected); i++ {
		pos := cursor.Pos()
		if cursor.AtEnd(span.End) {
			scoped.Errorf(state, pos, Span{span.Start, pos}, "Expected '%s', but got 'EOF'", expected[i:])
			return failure(Span{span.Start, pos})
		}
		c, ok := cursor.Peek()
		if !ok {
			scoped.Errorf(state, pos, Span{span.Start, pos}, "Expected '%s', but got 'EOF'", expected[i:])
			return failure(Span{span.Start, pos})
		}
		if c != expected[i] {
			scoped.Errorf(state, pos, Span{span.Start, pos}, "Expected '%s', but got '%c'", expected[i:], c)
			return failure(Span{span.Start, pos})
		}
		cursor.Next()
	}
	return success(Span{span.Start, cursor.Pos()})
}

type endOfInputMatcher struct{}

// EndOfInput succeeds without consuming anything when nothing is left
// of the span and fails otherwise
func EndOfInput() Matcher { return endOfInputMatcher{} }

func (endOfInputMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	if !span.Start.Before(span.End) {
		return success(EmptySpan(span.Start))
	}
	got := "EOF"
	if c, ok := state.Cursor(span.Start).Peek(); ok {
		got = string(c)
	}
	scoped.Errorf(state, span.Start, span, "Expected end of input but got '%s'", got)
	return failure(EmptySpan(span.Start))
}

type regexMatcher struct {
	pattern string
	re      *regexp2.Regexp
}

type regexConfig struct {
	timeout time.Duration
	options regexp2.RegexOptions
}

// RegexOption customizes how Regex compiles its pattern
type RegexOption func(*regexConfig)

// WithRegexTimeout bounds how long a single match attempt may take.
// Attempts that time out are reported as regular match failures.
func WithRegexTimeout(timeout time.Duration) RegexOption {
	return func(c *regexConfig) { c.timeout = timeout }
}

// WithRegexOptions passes extra flags to the regex engine
func WithRegexOptions(options regexp2.RegexOptions) RegexOption {
	return func(c *regexConfig) { c.options |= options }
}

// Regex matches `pattern` anchored at the start of the span.  The
// pattern can't look past the end of the span but lookbehinds see the
// input that comes before it.
func Regex(pattern string, opts ...RegexOption) (Matcher, error) {
	var cfg regexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	re, err := regexp2.Compile(`\G(?:`+pattern+`)`, cfg.options)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidRegex, pattern, err)
	}
	if cfg.timeout > 0 {
		re.MatchTimeout = cfg.timeout
	}
	return &regexMatcher{pattern: pattern, re: re}, nil
}

// MustRegex is like Regex but panics if the pattern doesn't compile.
// It's meant for patterns known at compile time.
func MustRegex(pattern string, opts ...RegexOption) Matcher {
	m, err := Regex(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *regexMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	index := state.Source().ensureRunes()
	start := index.runeOf(span.Start.Offset())
	end := index.runeOf(span.End.Offset())
	if end > len(index.runes) {
		end = len(index.runes)
	}
	if start > end {
		start = end
	}

	found, err := m.re.FindRunesMatchStartingAt(index.runes[:end], start)
	if err != nil || found == nil || found.Index != start {
		scoped.Errorf(state, span.Start, EmptySpan(span.Start), "Expected regex to succeed, but failed")
		return failure(EmptySpan(span.Start))
	}
	matchEnd := Position(index.offsetOf(found.Index + found.Length))
	return success(Span{span.Start, matchEnd})
}

type captureMatcher struct {
	name    string
	matcher Matcher
}

// Capture runs `matcher` and, when it succeeds, records the span it
// consumed under `name` so a Backref can match the same text later on.
func Capture(name string, matcher Matcher) Matcher {
	return &captureMatcher{name: name, matcher: matcher}
}

func (m *captureMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	result := m.matcher.Match(state, scoped, span)
	if result.Status == StatusSuccess {
		state.SetCapture(m.name, result.Span)
	}
	return result
}

type backrefMatcher struct{ name string }

// Backref matches the exact text last captured under `name`.  A name
// that was never captured matches the empty string.
func Backref(name string) Matcher {
	return &backrefMatcher{name: name}
}

func (m *backrefMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	expected := state.Capture(m.name).Text(state.Source())
	return matchLiteral(state, scoped, span, expected)
}

type resolvedRule struct {
	engine *Engine
	rule   *Rule
}

type refMatcher struct {
	name     string
	resolved atomic.Pointer[resolvedRule]
}

// Ref points at the rule registered under `name`.  The lookup happens
// the first time the matcher runs, so rules can reference each other
// regardless of the order they're defined in.
func Ref(name string) Matcher {
	return &refMatcher{name: name}
}

func (m *refMatcher) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	rule := m.resolve(state.Engine())
	if rule == nil {
		scoped.Errorf(state, span.Start, EmptySpan(span.Start), "Expected non existent rule '%s'", m.name)
		return failure(EmptySpan(span.Start))
	}
	return rule.Match(state, scoped, span)
}

func (m *refMatcher) resolve(engine *Engine) *Rule {
	if engine == nil {
		return nil
	}
	if cached := m.resolved.Load(); cached != nil && cached.engine == engine {
		return cached.rule
	}
	rule := engine.RuleByName(m.name)
	if rule != nil {
		m.resolved.Store(&resolvedRule{engine: engine, rule: rule})
	}
	return rule
}
