package commonlexer

import (
	"fmt"
	"strings"
)

// Severity tells how bad a Diagnostic is.  Lower values are more
// severe, so filtering "at least as severe as" is a `<=` comparison.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts the names accepted on the command line and in
// configuration files.  Anything unknown falls back to errors only.
func ParseSeverity(level string) Severity {
	switch strings.ToLower(level) {
	case "warning", "warn", "all":
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Diagnostic is a message produced while matching.  Point is where
// the problem was noticed and Span is the stretch of input that was
// being looked at; RuleID names the rule that was active.
type Diagnostic struct {
	Message  string
	Point    Position
	Span     Span
	RuleID   RuleID
	Severity Severity
}

// String returns the human readable representation of a diagnostic
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s @ %s", d.Severity, d.Message, d.Span)
}

// Format renders the diagnostic with line and column numbers taken
// from `src`.
func (d Diagnostic) Format(src *SourceText) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		src.Name(), d.Point.Line(src), d.Point.Column(src), d.Severity, d.Message)
}

// Diagnostics is the ordered list of diagnostics collected by a scope
type Diagnostics []Diagnostic

// HasErrors returns true if there are any error-level diagnostics.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level diagnostics.
func (ds Diagnostics) ErrorCount() int {
	count := 0
	for _, d := range ds {
		if d.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level diagnostics.
func (ds Diagnostics) WarningCount() int {
	count := 0
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// AtLeast returns the diagnostics that are at least as severe as
// `level`, keeping their order.
func (ds Diagnostics) AtLeast(level Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity <= level {
			out = append(out, d)
		}
	}
	return out
}

// downgraded returns a copy of the list where every error became a
// warning.
func (ds Diagnostics) downgraded() Diagnostics {
	out := make(Diagnostics, len(ds))
	for i, d := range ds {
		d.Severity = SeverityWarning
		out[i] = d
	}
	return out
}

// DiagnosticsError wraps a list of diagnostics so it can travel as an
// error.
type DiagnosticsError struct {
	Source      *SourceText
	Diagnostics Diagnostics
}

// Error implements the error interface, formatting all diagnostics.
func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "parse error (no details)"
	}
	format := func(d Diagnostic) string {
		if e.Source == nil {
			return d.String()
		}
		return d.Format(e.Source)
	}
	if len(e.Diagnostics) == 1 {
		return format(e.Diagnostics[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors found:\n", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("  ")
		b.WriteString(format(d))
		b.WriteRune('\n')
	}
	return b.String()
}

// NewDiagnosticsError creates a DiagnosticsError from the error-level
// entries of `diagnostics`.  Returns nil if there are none.
func NewDiagnosticsError(src *SourceText, diagnostics Diagnostics) error {
	errs := diagnostics.AtLeast(SeverityError)
	if len(errs) == 0 {
		return nil
	}
	return &DiagnosticsError{Source: src, Diagnostics: errs}
}
