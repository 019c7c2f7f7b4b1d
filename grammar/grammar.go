// Package grammar parses and compiles grammar files, the text format
// used to describe CommonLexer grammars.  A grammar file is a list of
// declarations:
//
//	# comments run until the end of the line
//	!main = File;                       # options
//	Name:   "text" Other;               # rule wrapping its match in a node
//	Spaces?: ' +';                      # rule that doesn't create a node
//	Native!;                            # rule implemented by a Go callback
//	{ A: "a"; B: "b"; }                 # blocks group declarations
//
// Matchers are written with the usual notation: juxtaposition for
// sequences, `|` for choices, `*`, `+`, `?`, `{n}` and `{n,m}` for
// repetitions, `~` for negative lookahead, `(...)` for grouping,
// `(<name>: ...)` and `\name` for captures and back references, `,`
// and `.` for lenient and forced spacing, `"..."` for literal text and
// `'...'` for regular expressions.  `a; b` is a sequence that allows
// mixing in choices and sequences without extra parenthesis.
package grammar

import (
	cl "github.com/commonlexer/commonlexer"
)

// Rules of the grammar file format
const (
	RuleFile                       = "File"
	RuleDeclaration                = "Declaration"
	RuleEmptyDeclaration           = "EmptyDeclaration"
	RuleBlockDeclaration           = "BlockDeclaration"
	RuleOptionDeclaration          = "OptionDeclaration"
	RuleRuleDeclaration            = "RuleDeclaration"
	RuleNodelessRuleDeclaration    = "NodelessRuleDeclaration"
	RuleCallbackRuleDeclaration    = "CallbackRuleDeclaration"
	RuleComment                    = "Comment"
	RuleIdentifier                 = "Identifier"
	RuleValue                      = "Value"
	RuleBoolean                    = "Boolean"
	RuleInteger                    = "Integer"
	RuleDepth1Matcher              = "Depth1Matcher"
	RuleDepth2Matcher              = "Depth2Matcher"
	RuleDepth3Matcher              = "Depth3Matcher"
	RuleDepth4Matcher              = "Depth4Matcher"
	RuleDepth5Matcher              = "Depth5Matcher"
	RuleBranch                     = "Branch"
	RuleCombinationMatcher         = "CombinationMatcher"
	RuleOrMatcher                  = "OrMatcher"
	RuleZeroOrMore                 = "ZeroOrMore"
	RuleOneOrMore                  = "OneOrMore"
	RuleExactAmount                = "ExactAmount"
	RuleRangeMatcher               = "RangeMatcher"
	RuleOptionalMatcher            = "OptionalMatcher"
	RuleNegativeMatcher            = "NegativeMatcher"
	RuleLenientSpaceMatcher        = "LenientSpaceMatcher"
	RuleForcedSpaceMatcher         = "ForcedSpaceMatcher"
	RuleGroup                      = "Group"
	RuleNamedGroupMatcher          = "NamedGroupMatcher"
	RuleNamedGroupReferenceMatcher = "NamedGroupReferenceMatcher"
	RuleReferenceMatcher           = "ReferenceMatcher"
	RuleTextMatcher                = "TextMatcher"
	RuleRegexMatcher               = "RegexMatcher"
)

// NewEngine returns an engine that parses grammar files.  The tree it
// produces is what Compile expects.
func NewEngine(opts ...cl.Option) *cl.Engine {
	e := cl.NewEngine(opts...)
	e.SetStartRule(RuleFile)

	// Declarations
	e.DefineNodeless(RuleFile, seq(
		spaced(cl.ZeroOrMore(spaced(ref(RuleDeclaration)))),
		cl.EndOfInput(),
	))
	e.DefineNodeless(RuleDeclaration, cl.Choice(
		ref(RuleEmptyDeclaration),
		ref(RuleBlockDeclaration),
		ref(RuleOptionDeclaration),
		ref(RuleRuleDeclaration),
		ref(RuleNodelessRuleDeclaration),
		ref(RuleCallbackRuleDeclaration),
		ref(RuleComment),
	))
	e.DefineNodeless(RuleEmptyDeclaration, text(";"))
	e.Define(RuleBlockDeclaration, seq(
		spaced(text("{")),
		cl.ZeroOrMore(spaced(ref(RuleDeclaration))),
		text("}"),
	))
	e.Define(RuleOptionDeclaration, seq(
		spaced(text("!")),
		spaced(ref(RuleIdentifier)),
		spaced(text("=")),
		spaced(ref(RuleValue)),
		text(";"),
	))
	e.Define(RuleRuleDeclaration, seq(
		spaced(ref(RuleIdentifier)),
		spaced(text(":")),
		spaced(ref(RuleDepth1Matcher)),
		text(";"),
	))
	e.Define(RuleNodelessRuleDeclaration, seq(
		spaced(ref(RuleIdentifier)),
		spaced(text("?")),
		spaced(text(":")),
		spaced(ref(RuleDepth1Matcher)),
		text(";"),
	))
	e.Define(RuleCallbackRuleDeclaration, seq(
		spaced(ref(RuleIdentifier)),
		spaced(text("!")),
		spaced(text(";")),
	))
	e.DefineNodeless(RuleComment, cl.MustRegex(`#.*`))

	// Values
	e.Define(RuleIdentifier, cl.MustRegex(`[A-Za-z_][A-Za-z0-9_]*`))
	e.DefineNodeless(RuleValue, cl.Choice(
		ref(RuleIdentifier),
		ref(RuleBoolean),
		ref(RuleInteger),
		ref(RuleTextMatcher),
	))
	e.Define(RuleBoolean, cl.Choice(text("true"), text("false")))
	e.Define(RuleInteger, cl.MustRegex(`[0-9]+`))

	// Precedence levels, from the loosest to the tightest binding
	e.DefineNodeless(RuleDepth1Matcher, cl.Choice(
		ref(RuleBranch),
		ref(RuleDepth2Matcher),
	))
	e.DefineNodeless(RuleDepth2Matcher, cl.Choice(
		ref(RuleCombinationMatcher),
		ref(RuleOrMatcher),
		ref(RuleDepth3Matcher),
	))
	e.DefineNodeless(RuleDepth3Matcher, cl.Choice(
		ref(RuleZeroOrMore),
		ref(RuleOneOrMore),
		ref(RuleExactAmount),
		ref(RuleRangeMatcher),
		ref(RuleOptionalMatcher),
		ref(RuleNegativeMatcher),
		ref(RuleDepth4Matcher),
	))
	e.DefineNodeless(RuleDepth4Matcher, cl.Choice(
		ref(RuleLenientSpaceMatcher),
		ref(RuleForcedSpaceMatcher),
		ref(RuleDepth5Matcher),
	))
	e.DefineNodeless(RuleDepth5Matcher, cl.Choice(
		ref(RuleGroup),
		ref(RuleNamedGroupMatcher),
		ref(RuleNamedGroupReferenceMatcher),
		ref(RuleReferenceMatcher),
		ref(RuleTextMatcher),
		ref(RuleRegexMatcher),
	))

	// Matchers
	e.Define(RuleBranch, seq(
		spaced(ref(RuleDepth2Matcher)),
		cl.OneOrMore(spaced(seq(spaced(text(";")), ref(RuleDepth2Matcher)))),
	))
	e.Define(RuleCombinationMatcher, seq(
		ref(RuleDepth3Matcher),
		cl.OneOrMore(cl.Spacing(ref(RuleDepth3Matcher), cl.SpacingOptions{
			Forced:    true,
			Direction: cl.DirectionLeft,
			Method:    cl.SpacingWhitespace,
		})),
	))
	e.Define(RuleOrMatcher, seq(
		spaced(ref(RuleDepth3Matcher)),
		cl.OneOrMore(spaced(seq(spaced(text("|")), ref(RuleDepth3Matcher)))),
	))
	e.Define(RuleZeroOrMore, seq(spaced(ref(RuleDepth4Matcher)), text("*")))
	e.Define(RuleOneOrMore, seq(spaced(ref(RuleDepth4Matcher)), text("+")))
	e.Define(RuleExactAmount, seq(
		spaced(ref(RuleDepth4Matcher)),
		spaced(text("{")),
		spaced(ref(RuleInteger)),
		text("}"),
	))
	e.Define(RuleRangeMatcher, seq(
		spaced(ref(RuleDepth4Matcher)),
		spaced(text("{")),
		spaced(ref(RuleInteger)),
		spaced(text(",")),
		spaced(ref(RuleInteger)),
		text("}"),
	))
	e.Define(RuleOptionalMatcher, seq(
		spaced(ref(RuleDepth4Matcher)),
		spaced(text("?")),
		cl.Not(text(":")),
	))
	e.Define(RuleNegativeMatcher, seq(spaced(text("~")), ref(RuleDepth4Matcher)))
	e.Define(RuleLenientSpaceMatcher, seq(spaced(ref(RuleDepth5Matcher)), text(",")))
	e.Define(RuleForcedSpaceMatcher, seq(spaced(ref(RuleDepth5Matcher)), text(".")))
	e.Define(RuleGroup, seq(
		spaced(text("(")),
		spaced(ref(RuleDepth2Matcher)),
		text(")"),
	))
	e.Define(RuleNamedGroupMatcher, seq(
		spaced(text("(")),
		spaced(text("<")),
		spaced(ref(RuleIdentifier)),
		spaced(text(">")),
		spaced(text(":")),
		spaced(ref(RuleDepth2Matcher)),
		text(")"),
	))
	e.Define(RuleNamedGroupReferenceMatcher, seq(
		spaced(text(`\`)),
		spaced(ref(RuleIdentifier)),
		cl.Not(declarationHead()),
	))
	e.Define(RuleReferenceMatcher, seq(
		ref(RuleIdentifier),
		cl.Not(declarationHead()),
	))
	e.Define(RuleTextMatcher, cl.MustRegex(`"(?:[^"\\\n]|\.|\\.)*"`))
	e.Define(RuleRegexMatcher, cl.MustRegex(`'(?:[^'\\\n]|\.|\\.)*'`))

	return e
}

// declarationHead matches what comes after the name of a rule being
// declared.  Identifiers followed by it aren't references.
func declarationHead() cl.Matcher {
	return cl.Choice(
		seq(spaced(text("!")), text(";")),
		seq(cl.Optional(spaced(text("?"))), text(":")),
	)
}

var (
	seq    = cl.Sequence
	text   = cl.Text
	ref    = cl.Ref
	spaced = cl.Spaced
)
