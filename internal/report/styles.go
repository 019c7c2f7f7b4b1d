// Package report renders parse diagnostics and summaries for terminals
// using lipgloss.
package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleName   lipgloss.Style
	Message    lipgloss.Style
	LineNumber lipgloss.Style
	SourceLine lipgloss.Style
	Underline  lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// base keeps tabs as they are, so underlines line up with the source
// lines printed above them
func base() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   base().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: base().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath:   base().Bold(true),
		Location:   base().Foreground(lipgloss.Color("8")),
		RuleName:   base().Foreground(lipgloss.Color("8")),
		Message:    base(),
		LineNumber: base().Foreground(lipgloss.Color("8")),
		SourceLine: base().Foreground(lipgloss.Color("7")),
		Underline:  base().Foreground(lipgloss.Color("14")),
		Caret:      base().Foreground(lipgloss.Color("9")).Bold(true),

		Success: base().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: base().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  base().Foreground(lipgloss.Color("8")),
		Bold: base().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := base()
	return &Styles{
		Error:      plain,
		Warning:    plain,
		FilePath:   plain,
		Location:   plain,
		RuleName:   plain,
		Message:    plain,
		LineNumber: plain,
		SourceLine: plain,
		Underline:  plain,
		Caret:      plain,
		Success:    plain,
		Failure:    plain,
		Dim:        plain,
		Bold:       plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
