package commonlexer

import "fmt"

// Status is the outcome of a match attempt
type Status int

const (
	// StatusSuccess means the matcher consumed what it expected
	StatusSuccess Status = iota

	// StatusSkip means the matcher matched without producing any
	// mandatory content, like an optional that wasn't there.
	// Sequences treat it as zero width and carry on.
	StatusSkip

	// StatusFailure means the matcher didn't match.  It's a regular
	// outcome that drives backtracking, not an error.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkip:
		return "skip"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MatchResult carries the status of a match and the span it covers.
// For failures the span tells how far scanning went before giving up.
type MatchResult struct {
	Status Status
	Span   Span
}

func (r MatchResult) String() string {
	return fmt.Sprintf("%s(%s)", r.Status, r.Span)
}

func success(span Span) MatchResult { return MatchResult{Status: StatusSuccess, Span: span} }
func skip(span Span) MatchResult    { return MatchResult{Status: StatusSkip, Span: span} }
func failure(span Span) MatchResult { return MatchResult{Status: StatusFailure, Span: span} }

// Matcher is the building block of grammars.  Match attempts to
// consume a prefix of `span`, reporting problems into `scoped` and
// attaching any node it creates to `scoped.Parent`.
type Matcher interface {
	Match(state *State, scoped *ScopedState, span Span) MatchResult
}

// MatcherFunc allows using ordinary functions as matchers
type MatcherFunc func(state *State, scoped *ScopedState, span Span) MatchResult

func (fn MatcherFunc) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	return fn(state, scoped, span)
}

// State is shared by every matcher invoked during a single parse call.
// It knows the source, the span the parse was asked to cover, the rule
// that is currently running and the named captures recorded so far.
type State struct {
	engine     *Engine
	source     *SourceText
	span       Span
	windowSize int

	currentRule *Rule
	ruleStart   Position

	captures map[string]Span
}

// NewState creates the state for a parse of `span` within `src`.  The
// engine is used to resolve rule references and can be nil when the
// matchers involved don't reference rules.
func NewState(engine *Engine, src *SourceText, span Span) *State {
	return &State{
		engine:     engine,
		source:     src,
		span:       span,
		windowSize: DefaultWindowSize,
		captures:   map[string]Span{},
	}
}

func (s *State) Engine() *Engine     { return s.engine }
func (s *State) Source() *SourceText { return s.source }
func (s *State) ScanSpan() Span      { return s.span }
func (s *State) CurrentRule() *Rule  { return s.currentRule }
func (s *State) RuleStart() Position { return s.ruleStart }

// Cursor returns a cursor over the source sitting at `pos`
func (s *State) Cursor(pos Position) *Cursor {
	return NewCursor(s.source, pos, s.windowSize)
}

// CurrentRuleID returns the id of the running rule, or NoRule when
// matchers are used outside of any rule.
func (s *State) CurrentRuleID() RuleID {
	if s.currentRule == nil {
		return NoRule
	}
	return s.currentRule.ID()
}

// SetCurrentRule records `rule` as the running rule, starting at
// `start`.
func (s *State) SetCurrentRule(rule *Rule, start Position) {
	s.currentRule = rule
	s.ruleStart = start
}

// SetCapture records `span` under `name`, replacing any previous value
func (s *State) SetCapture(name string, span Span) {
	s.captures[name] = span
}

// Capture returns the span captured under `name`.  Names never
// captured return an empty span at the start of the source.
func (s *State) Capture(name string) Span {
	return s.captures[name]
}

// ScopedState is local to a matcher or rule invocation.  It collects
// the diagnostics produced within the scope and points at the node new
// children are attached to.  Speculative matches run against a scope of
// their own that is only merged into the caller's when they win.
type ScopedState struct {
	Diagnostics Diagnostics
	Parent      *Node
}

func NewScopedState(parent *Node) *ScopedState {
	return &ScopedState{Parent: parent}
}

// AddDiagnostic appends `d` to the scope
func (s *ScopedState) AddDiagnostic(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// AddDiagnostics appends `ds` to the scope, keeping their order
func (s *ScopedState) AddDiagnostics(ds Diagnostics) {
	s.Diagnostics = append(s.Diagnostics, ds...)
}

// Errorf adds an error diagnostic attributed to the running rule
func (s *ScopedState) Errorf(state *State, point Position, span Span, format string, args ...any) {
	s.report(state, SeverityError, point, span, format, args...)
}

// Warnf adds a warning diagnostic attributed to the running rule
func (s *ScopedState) Warnf(state *State, point Position, span Span, format string, args ...any) {
	s.report(state, SeverityWarning, point, span, format, args...)
}

func (s *ScopedState) report(state *State, severity Severity, point Position, span Span, format string, args ...any) {
	s.AddDiagnostic(Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Point:    point,
		Span:     span,
		RuleID:   state.CurrentRuleID(),
		Severity: severity,
	})
}
