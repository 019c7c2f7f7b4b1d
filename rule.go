package commonlexer

// RuleID identifies a rule within an engine.  Zero is never assigned
// and stands for "no rule".
type RuleID uint32

const NoRule RuleID = 0

// CallbackFunc implements a rule with custom Go code.  It gets the
// same arguments a Matcher does and must follow the same contract.
type CallbackFunc func(state *State, scoped *ScopedState, span Span) MatchResult

type ruleKind int

const (
	ruleNode ruleKind = iota
	ruleNodeless
	ruleCallback
)

// Rule is a named, registered unit of a grammar.  It's backed either
// by a Matcher, in which case it may or may not wrap what it matches in
// a node of its own, or by a CallbackFunc.
type Rule struct {
	id       RuleID
	name     string
	kind     ruleKind
	matcher  Matcher
	callback CallbackFunc
}

// NewRule creates a rule that wraps whatever `matcher` matches within
// a node tagged with the rule's id
func NewRule(name string, matcher Matcher) *Rule {
	return &Rule{name: name, kind: ruleNode, matcher: matcher}
}

// NewNodelessRule creates a rule that is transparent in the tree: the
// nodes produced by `matcher` are attached straight to the caller's
// parent.
func NewNodelessRule(name string, matcher Matcher) *Rule {
	return &Rule{name: name, kind: ruleNodeless, matcher: matcher}
}

func NewCallbackRule(name string, callback CallbackFunc) *Rule {
	return &Rule{name: name, kind: ruleCallback, callback: callback}
}

func (r *Rule) ID() RuleID        { return r.id }
func (r *Rule) Name() string      { return r.name }
func (r *Rule) CreatesNode() bool { return r.kind == ruleNode }
func (r *Rule) IsCallback() bool  { return r.kind == ruleCallback }

// Match runs the rule.  While it runs, the rule is the one diagnostics
// get attributed to.
func (r *Rule) Match(state *State, scoped *ScopedState, span Span) MatchResult {
	previous, previousStart := state.CurrentRule(), state.RuleStart()
	state.SetCurrentRule(r, span.Start)
	defer state.SetCurrentRule(previous, previousStart)

	switch r.kind {
	case ruleCallback:
		return r.callback(state, scoped, span)
	case ruleNodeless:
		return r.matcher.Match(state, scoped, span)
	default:
		node := NewNode(r.id)
		inner := NewScopedState(node)
		result := r.matcher.Match(state, inner, span)
		if result.Status == StatusSuccess {
			node.Span = result.Span
			if scoped.Parent != nil {
				scoped.Parent.AddChild(node)
			}
		}
		scoped.AddDiagnostics(inner.Diagnostics)
		return result
	}
}
