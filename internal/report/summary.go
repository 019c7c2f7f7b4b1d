package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	cl "github.com/commonlexer/commonlexer"
)

// Summary holds the figures shown after the diagnostics of a parse
type Summary struct {
	Source   string
	Nodes    int
	Errors   int
	Warnings int
	Duration time.Duration
}

// NewSummary collects the figures of `result`
func NewSummary(result *cl.Result, duration time.Duration) Summary {
	name := ""
	if result.Source != nil {
		name = result.Source.Name()
	}
	return Summary{
		Source:   name,
		Nodes:    result.NodeCount(),
		Errors:   result.Diagnostics.ErrorCount(),
		Warnings: result.Diagnostics.WarningCount(),
		Duration: duration,
	}
}

// FormatSummary formats the summary as a single line.
// Example: "input.txt: 2 issues (1 error, 1 warning), 14 nodes in 1.2ms".
func (s *Styles) FormatSummary(summary Summary) string {
	var builder strings.Builder
	builder.WriteString(s.FilePath.Render(summary.Source) + ": ")

	total := summary.Errors + summary.Warnings
	if total == 0 {
		builder.WriteString(s.Success.Render("no issues"))
	} else {
		var parts []string
		if summary.Errors > 0 {
			parts = append(parts, s.Error.Render(plural(summary.Errors, "error")))
		}
		if summary.Warnings > 0 {
			parts = append(parts, s.Warning.Render(plural(summary.Warnings, "warning")))
		}
		builder.WriteString(fmt.Sprintf("%s (%s)", plural(total, "issue"), strings.Join(parts, ", ")))
	}

	builder.WriteString(s.Dim.Render(fmt.Sprintf(", %s in %s", plural(summary.Nodes, "node"), summary.Duration.Round(time.Microsecond))))
	builder.WriteString("\n")
	return builder.String()
}

// Write prints the diagnostics of `result` that are at least as
// severe as `level`, in the order they were found.
func (s *Styles) Write(w io.Writer, result *cl.Result, level cl.Severity) error {
	if result.Source == nil {
		return nil
	}
	for _, d := range result.Diagnostics.AtLeast(level) {
		rule := result.Engine().RuleName(d.RuleID)
		if _, err := io.WriteString(w, s.FormatDiagnostic(result.Source, d, rule)); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
