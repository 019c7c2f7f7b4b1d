package report

import (
	"fmt"
	"strconv"
	"strings"

	cl "github.com/commonlexer/commonlexer"
)

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line:col  severity  message  (rule)
//
// followed by the source lines the diagnostic covers.
func (s *Styles) FormatDiagnostic(src *cl.SourceText, d cl.Diagnostic, ruleName string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(src.Name()),
		d.Point.Line(src),
		d.Point.Column(src),
	)

	builder.WriteString(fmt.Sprintf("%s  %s  %s",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
	))
	if ruleName != "" {
		builder.WriteString("  " + s.RuleName.Render("("+ruleName+")"))
	}
	builder.WriteString("\n")
	builder.WriteString(s.FormatSourceContext(src, d))

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(severity cl.Severity) string {
	switch severity {
	case cl.SeverityError:
		return s.Error.Render("error")
	case cl.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return severity.String()
	}
}

// FormatSourceContext prints every line covered by the diagnostic's
// span, each one followed by a marker line.  The covered part is
// underlined with `~` and the point of the diagnostic gets a `^`.
// Empty lines are left out.
func (s *Styles) FormatSourceContext(src *cl.SourceText, d cl.Diagnostic) string {
	var builder strings.Builder

	lines := d.Span.Lines(src)
	beginLine, beginColumn := d.Span.Start.Line(src), d.Span.Start.Column(src)
	endLine, endColumn := d.Span.End.Line(src), d.Span.End.Column(src)
	pointLine, pointColumn := d.Point.Line(src), d.Point.Column(src)

	for i, line := range lines {
		if line == "" {
			continue
		}
		number := beginLine + i
		prefix := strconv.Itoa(number) + ": "

		from, to := 1, len(line)+1
		if number == beginLine {
			from = beginColumn
		}
		if number == endLine {
			to = endColumn
		}

		var underline strings.Builder
		for column := from; column < to; column++ {
			if number == pointLine && column == pointColumn {
				underline.WriteString(s.Caret.Render("^"))
				continue
			}
			underline.WriteString(s.Underline.Render("~"))
		}
		if number == pointLine && pointColumn >= to && pointColumn >= from {
			underline.WriteString(s.Caret.Render("^"))
		}

		builder.WriteString(s.LineNumber.Render(prefix) + s.SourceLine.Render(line) + "\n")
		builder.WriteString(strings.Repeat(" ", len(prefix)) + padding(line, from-1) + underline.String() + "\n")
	}

	return builder.String()
}

// padding returns the blanks that move a marker under the column
// right after the first `width` bytes of `line`.  Tabs are kept so
// the marker lines up however the terminal expands them.
func padding(line string, width int) string {
	width = min(max(width, 0), len(line))
	var b strings.Builder
	for i := 0; i < width; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
