package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	cl "github.com/commonlexer/commonlexer"
	"github.com/commonlexer/commonlexer/internal/logging"
)

// OptionMain names the option that picks the start rule
const OptionMain = "main"

// Callbacks maps the names of callback rules to their implementation
type Callbacks map[string]cl.CallbackFunc

// Grammar is the result of compiling a grammar file
type Grammar struct {
	// Engine has every rule declared in the file registered and the
	// start rule set
	Engine *cl.Engine

	// Options holds the values of the `!name = value;` declarations.
	// Values are either a string, an int or a bool.
	Options map[string]any

	// Diagnostics are the warnings found while compiling
	Diagnostics cl.Diagnostics
}

// CompileOption customizes Compile and CompileSource
type CompileOption func(*compileConfig)

type compileConfig struct {
	callbacks     Callbacks
	engineOptions []cl.Option
}

// WithCallbacks provides the implementation of the callback rules
// declared in the grammar
func WithCallbacks(callbacks Callbacks) CompileOption {
	return func(c *compileConfig) {
		for name, fn := range callbacks {
			c.callbacks[name] = fn
		}
	}
}

// WithEngineOptions are used when creating the engines, both the one
// that reads the grammar file and the one compiled from it
func WithEngineOptions(opts ...cl.Option) CompileOption {
	return func(c *compileConfig) {
		c.engineOptions = append(c.engineOptions, opts...)
	}
}

// CompileSource parses `src` as a grammar file and compiles it
func CompileSource(src *cl.SourceText, opts ...CompileOption) (*Grammar, error) {
	cfg := newCompileConfig(opts)
	result := NewEngine(cfg.engineOptions...).Parse(src)
	return compile(result, cfg)
}

// Compile turns the tree of a parsed grammar file into an engine.
// Input with error diagnostics is refused, and so are grammars with
// problems such as invalid regular expressions or callback rules
// without a callback.  Both cases return a *cl.DiagnosticsError.
func Compile(result *cl.Result, opts ...CompileOption) (*Grammar, error) {
	return compile(result, newCompileConfig(opts))
}

func newCompileConfig(opts []CompileOption) *compileConfig {
	cfg := &compileConfig{callbacks: Callbacks{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func compile(result *cl.Result, cfg *compileConfig) (*Grammar, error) {
	if err := result.Err(); err != nil {
		return nil, err
	}
	if err := result.DiagnosticsError(); err != nil {
		return nil, err
	}

	started := time.Now()
	c := newCompiler(result, cfg)
	c.declarations(result.Root)
	c.finish()

	if err := cl.NewDiagnosticsError(result.Source, c.diagnostics); err != nil {
		return nil, err
	}

	c.engine.Logger().Debug("compiled grammar",
		logging.FieldGrammar, result.Source.Name(),
		logging.FieldRules, len(c.engine.Rules()),
		logging.FieldStartRule, c.engine.StartRule(),
		logging.FieldDuration, time.Since(started))

	return &Grammar{
		Engine:      c.engine,
		Options:     c.options,
		Diagnostics: c.diagnostics,
	}, nil
}

type compiler struct {
	// result is the parsed grammar file being compiled
	result *cl.Result

	// engine receives the compiled rules
	engine *cl.Engine

	callbacks    Callbacks
	regexOptions []cl.RegexOption

	// options collects the values of option declarations
	options map[string]any

	// firstRule is the name of the first rule declared.  It becomes
	// the start rule when there's no `main` option
	firstRule string

	// references keeps the nodes of every rule reference so they can
	// be checked once all rules are known
	references []*cl.Node

	diagnostics cl.Diagnostics
}

func newCompiler(result *cl.Result, cfg *compileConfig) *compiler {
	engine := cl.NewEngine(cfg.engineOptions...)
	c := &compiler{
		result:    result,
		engine:    engine,
		callbacks: cfg.callbacks,
		options:   map[string]any{},
	}
	if ms := engine.Config().GetInt("regex.timeout_ms"); ms > 0 {
		c.regexOptions = append(c.regexOptions, cl.WithRegexTimeout(time.Duration(ms)*time.Millisecond))
	}
	return c
}

func (c *compiler) declarations(n *cl.Node) {
	for _, child := range n.Children {
		c.declaration(child)
	}
}

func (c *compiler) declaration(n *cl.Node) {
	switch c.name(n) {
	case RuleBlockDeclaration:
		c.declarations(n)
	case RuleOptionDeclaration:
		c.option(n)
	case RuleRuleDeclaration:
		c.define(n, c.engine.Define)
	case RuleNodelessRuleDeclaration:
		c.define(n, c.engine.DefineNodeless)
	case RuleCallbackRuleDeclaration:
		c.callback(n)
	default:
		c.errorf(n, "Unexpected %s in declaration list", c.name(n))
	}
}

func (c *compiler) option(n *cl.Node) {
	name := c.text(n.Child(0))
	value := n.Child(1)
	switch c.name(value) {
	case RuleIdentifier, RuleBoolean:
		switch text := c.text(value); text {
		case "true", "false":
			c.options[name] = text == "true"
		default:
			c.options[name] = text
		}
	case RuleInteger:
		c.options[name] = c.integer(value)
	case RuleTextMatcher:
		c.options[name] = unquoteText(c.text(value))
	default:
		c.errorf(value, "Unexpected %s as the value of option '%s'", c.name(value), name)
	}
}

func (c *compiler) define(n *cl.Node, define func(string, cl.Matcher) cl.RuleID) {
	name := c.text(n.Child(0))
	c.checkDuplicate(n, name)
	define(name, c.matcher(n.Child(1)))
}

func (c *compiler) callback(n *cl.Node) {
	name := c.text(n.Child(0))
	c.checkDuplicate(n, name)
	fn, ok := c.callbacks[name]
	if !ok {
		c.errorf(n, "No callback provided for rule '%s'", name)
		return
	}
	c.engine.DefineCallback(name, fn)
}

func (c *compiler) checkDuplicate(n *cl.Node, name string) {
	if c.firstRule == "" {
		c.firstRule = name
	}
	if c.engine.RuleByName(name) != nil {
		c.warnf(n, "Rule '%s' is already defined, references use the first definition", name)
	}
}

func (c *compiler) matcher(n *cl.Node) cl.Matcher {
	switch c.name(n) {
	case RuleBranch, RuleCombinationMatcher:
		return cl.Sequence(c.matchers(n.Children)...)
	case RuleOrMatcher:
		return cl.Choice(c.matchers(n.Children)...)
	case RuleZeroOrMore:
		return cl.ZeroOrMore(c.matcher(n.Child(0)))
	case RuleOneOrMore:
		return cl.OneOrMore(c.matcher(n.Child(0)))
	case RuleExactAmount:
		return cl.Exactly(c.matcher(n.Child(0)), c.integer(n.Child(1)))
	case RuleRangeMatcher:
		lower, upper := c.integer(n.Child(1)), c.integer(n.Child(2))
		if upper < lower {
			c.errorf(n, "Range upper bound %d is smaller than the lower bound %d", upper, lower)
		}
		return cl.Repeat(c.matcher(n.Child(0)), lower, upper)
	case RuleOptionalMatcher:
		return cl.Optional(c.matcher(n.Child(0)))
	case RuleNegativeMatcher:
		return cl.Not(c.matcher(n.Child(0)))
	case RuleLenientSpaceMatcher:
		return cl.Spaced(c.matcher(n.Child(0)))
	case RuleForcedSpaceMatcher:
		return cl.Spacing(c.matcher(n.Child(0)), cl.SpacingOptions{
			Forced:    true,
			Direction: cl.DirectionRight,
			Method:    cl.SpacingWhitespace,
		})
	case RuleGroup:
		return c.matcher(n.Child(0))
	case RuleNamedGroupMatcher:
		return cl.Capture(c.text(n.Child(0)), c.matcher(n.Child(1)))
	case RuleNamedGroupReferenceMatcher:
		return cl.Backref(c.text(n.Child(0)))
	case RuleReferenceMatcher:
		c.references = append(c.references, n.Child(0))
		return cl.Ref(c.text(n.Child(0)))
	case RuleTextMatcher:
		return cl.Text(unquoteText(c.text(n)))
	case RuleRegexMatcher:
		m, err := cl.Regex(unquoteRegex(c.text(n)), c.regexOptions...)
		if err != nil {
			c.errorf(n, "%s", err)
			return cl.Sequence()
		}
		return m
	default:
		c.errorf(n, "Unexpected %s in matcher", c.name(n))
		return cl.Sequence()
	}
}

func (c *compiler) matchers(nodes []*cl.Node) []cl.Matcher {
	matchers := make([]cl.Matcher, 0, len(nodes))
	for _, n := range nodes {
		matchers = append(matchers, c.matcher(n))
	}
	return matchers
}

func (c *compiler) integer(n *cl.Node) int {
	v, err := strconv.Atoi(c.text(n))
	if err != nil {
		c.errorf(n, "Invalid integer '%s'", c.text(n))
		return 0
	}
	return v
}

// finish sets the start rule and checks references now that every
// rule is known
func (c *compiler) finish() {
	start := c.firstRule
	if v, ok := c.options[OptionMain]; ok {
		name, isString := v.(string)
		if !isString {
			c.errorf(c.result.Root, "Option '%s' must name a rule", OptionMain)
		}
		start = name
	}
	if start != "" && c.engine.RuleByName(start) == nil {
		c.errorf(c.result.Root, "Start rule '%s' is not defined", start)
	}
	c.engine.SetStartRule(start)

	for _, ref := range c.references {
		if name := c.text(ref); c.engine.RuleByName(name) == nil {
			c.warnf(ref, "Reference to undefined rule '%s'", name)
		}
	}
}

func (c *compiler) name(n *cl.Node) string {
	if n == nil {
		return "<nothing>"
	}
	return c.result.RuleName(n)
}

func (c *compiler) text(n *cl.Node) string {
	if n == nil {
		return ""
	}
	return c.result.Text(n)
}

func (c *compiler) errorf(n *cl.Node, format string, args ...any) {
	c.report(cl.SeverityError, n, format, args...)
}

func (c *compiler) warnf(n *cl.Node, format string, args ...any) {
	c.report(cl.SeverityWarning, n, format, args...)
}

func (c *compiler) report(severity cl.Severity, n *cl.Node, format string, args ...any) {
	d := cl.Diagnostic{Message: fmt.Sprintf(format, args...), Severity: severity}
	if n != nil {
		d.Point = n.Span.Start
		d.Span = n.Span
		d.RuleID = n.RuleID
	}
	c.diagnostics = append(c.diagnostics, d)
}

// unquoteText removes the quotes around a text matcher and resolves
// its escape sequences.  Unknown escapes stand for the escaped
// character itself.
func unquoteText(quoted string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(quoted, `"`), `"`)
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// unquoteRegex removes the quotes around a regex matcher.  Escaped
// quotes are the only escape handled here, everything else is up to
// the regex engine.
func unquoteRegex(quoted string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(quoted, `'`), `'`)
	return strings.ReplaceAll(s, `\'`, `'`)
}
