package commonlexer

import "github.com/commonlexer/commonlexer/ascii"

// Result is what a parse produces.  Root always exists, even when the
// parse couldn't run at all, and is tagged with the start rule's id.
type Result struct {
	Source      *SourceText
	Root        *Node
	Span        Span
	Status      Status
	Diagnostics Diagnostics

	engine *Engine
	err    error
}

// Engine returns the engine that produced the result
func (r *Result) Engine() *Engine { return r.engine }

// Err reports why a parse couldn't run.  Problems found in the input
// are never reported here, they are in Diagnostics.
func (r *Result) Err() error { return r.err }

// Succeeded tells if the start rule matched without any error
// diagnostics
func (r *Result) Succeeded() bool {
	return r.err == nil && r.Status == StatusSuccess && !r.Diagnostics.HasErrors()
}

// DiagnosticsError returns the error diagnostics wrapped in an error,
// or nil if there are none
func (r *Result) DiagnosticsError() error {
	return NewDiagnosticsError(r.Source, r.Diagnostics)
}

// RuleName returns the name of the rule that created `n`
func (r *Result) RuleName(n *Node) string {
	if r.engine == nil {
		return ""
	}
	return r.engine.RuleName(n.RuleID)
}

// Text returns the source text covered by `n`
func (r *Result) Text(n *Node) string {
	if r.Source == nil {
		return ""
	}
	return n.Text(r.Source)
}

// NodeCount returns how many nodes the parse created
func (r *Result) NodeCount() int { return r.Root.Count() }

// Pretty renders the parse tree as plain text
func (r *Result) Pretty() string {
	return r.print(func(input string, _ FormatToken) string {
		return input
	})
}

// Highlight renders the parse tree with terminal colors
func (r *Result) Highlight() string {
	return r.print(func(input string, token FormatToken) string {
		return ascii.Color(nodePrinterTheme[token], "%s", input)
	})
}

func (r *Result) print(format FormatFunc[FormatToken]) string {
	if r.Source == nil {
		return ""
	}
	names := func(id RuleID) string {
		if name := r.engine.RuleName(id); name != "" {
			return name
		}
		return "<root>"
	}
	np := newNodePrinter(r.Source, names, format)
	np.visit(r.Root)
	return np.output.String()
}
