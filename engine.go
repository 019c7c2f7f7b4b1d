package commonlexer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/commonlexer/commonlexer/internal/logging"
)

// Engine keeps the rules of a grammar and runs parses against them.
// Rules must be registered before parsing starts.  Once set up, an
// engine can run many parses, concurrent ones included.
type Engine struct {
	rules  []*Rule
	byName map[string]*Rule
	byID   map[RuleID]*Rule
	nextID RuleID
	start  string

	config *Config
	logger *log.Logger
}

// Option customizes an Engine created by NewEngine
type Option func(*Engine)

// WithConfig replaces the default configuration
func WithConfig(cfg *Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithLogger sets the logger the engine reports to
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		byName: map[string]*Rule{},
		byID:   map[RuleID]*Rule{},
		config: NewConfig(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() *Config     { return e.config }
func (e *Engine) Logger() *log.Logger { return e.logger }

// Register adds `rule` to the engine and assigns it a fresh id, which
// is also returned.  When more than one rule shares a name, lookups by
// name find the one registered first.
func (e *Engine) Register(rule *Rule) RuleID {
	rule.id = e.newID()
	e.rules = append(e.rules, rule)
	e.byID[rule.id] = rule
	if _, ok := e.byName[rule.name]; !ok {
		e.byName[rule.name] = rule
	}
	e.logger.Debug("registered rule", logging.FieldRule, rule.name, logging.FieldRuleID, rule.id)
	return rule.id
}

func (e *Engine) newID() RuleID {
	if e.config.GetString("engine.rule_ids") == "random" {
		for {
			id := RuleID(rand.Uint32())
			if _, taken := e.byID[id]; id != NoRule && !taken {
				return id
			}
		}
	}
	e.nextID++
	return e.nextID
}

// Define registers a rule that wraps what `matcher` matches in a node
func (e *Engine) Define(name string, matcher Matcher) RuleID {
	return e.Register(NewRule(name, matcher))
}

// DefineNodeless registers a rule that doesn't create a node of its own
func (e *Engine) DefineNodeless(name string, matcher Matcher) RuleID {
	return e.Register(NewNodelessRule(name, matcher))
}

// DefineCallback registers a rule implemented by `callback`
func (e *Engine) DefineCallback(name string, callback CallbackFunc) RuleID {
	return e.Register(NewCallbackRule(name, callback))
}

// SetStartRule picks the rule parsing starts from.  The name is
// resolved when parsing, so it may refer to a rule registered later.
func (e *Engine) SetStartRule(name string) {
	e.start = name
}

func (e *Engine) StartRule() string { return e.start }

// ResolveID returns the id of the first rule registered under `name`
// or NoRule if there's none
func (e *Engine) ResolveID(name string) RuleID {
	if rule := e.RuleByName(name); rule != nil {
		return rule.id
	}
	return NoRule
}

// Rule returns the rule with id `id` or nil if there's none
func (e *Engine) Rule(id RuleID) *Rule {
	return e.byID[id]
}

// RuleByName returns the first rule registered under `name` or nil
func (e *Engine) RuleByName(name string) *Rule {
	return e.byName[name]
}

// RuleName returns the name of the rule with id `id`.  Unknown ids get
// an empty name.
func (e *Engine) RuleName(id RuleID) string {
	if rule := e.Rule(id); rule != nil {
		return rule.name
	}
	return ""
}

// Rules returns every registered rule in registration order
func (e *Engine) Rules() []*Rule {
	rules := make([]*Rule, len(e.rules))
	copy(rules, e.rules)
	return rules
}

// Parse runs the start rule over the whole of `src`
func (e *Engine) Parse(src *SourceText) *Result {
	if src == nil {
		return e.ParseSpan(nil, Span{})
	}
	return e.ParseSpan(src, src.Span())
}

// ParseSpan runs the start rule over `span` of `src`.  Parsing never
// fails with an error: problems in the input come back as diagnostics
// in the Result.  When the start rule or the source are missing, the
// result is empty and Result.Err tells why.
func (e *Engine) ParseSpan(src *SourceText, span Span) *Result {
	root := NewNode(NoRule)
	root.Span = EmptySpan(span.Start)
	result := &Result{Source: src, Root: root, Span: EmptySpan(span.Start), engine: e}

	if src == nil {
		result.err = ErrNoSource
		e.logger.Warn("nothing to parse", logging.FieldError, result.err)
		return result
	}
	rule := e.RuleByName(e.start)
	if rule == nil {
		result.err = fmt.Errorf("%w: '%s'", ErrStartRuleNotFound, e.start)
		e.logger.Warn("nothing to parse", logging.FieldStartRule, e.start, logging.FieldError, result.err)
		return result
	}

	started := time.Now()
	e.logger.Debug("parse started",
		logging.FieldSource, src.Name(),
		logging.FieldStartRule, rule.name,
		logging.FieldSpan, span.String())

	state := NewState(e, src, span)
	state.windowSize = e.config.GetInt("source.window_size")
	scoped := NewScopedState(root)
	root.RuleID = rule.id

	match := rule.Match(state, scoped, span)
	root.Span = match.Span
	result.Span = match.Span
	result.Status = match.Status
	// the start rule is charged with whatever it left behind
	if e.config.GetBool("engine.require_full_match") && match.Status != StatusFailure && match.Span.End.Before(span.End) {
		state.SetCurrentRule(rule, match.Span.End)
		EndOfInput().Match(state, scoped, Span{match.Span.End, span.End})
		state.SetCurrentRule(nil, span.Start)
	}
	result.Diagnostics = scoped.Diagnostics

	e.logger.Debug("parse finished",
		logging.FieldSource, src.Name(),
		logging.FieldStatus, match.Status,
		logging.FieldNodes, root.Count(),
		logging.FieldErrors, result.Diagnostics.ErrorCount(),
		logging.FieldWarnings, result.Diagnostics.WarningCount(),
		logging.FieldDuration, time.Since(started))
	return result
}
