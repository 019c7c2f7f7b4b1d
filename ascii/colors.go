// Package ascii provides terminal ANSI color codes semantic names for
// colors so they can be grouped in themes.
package ascii

import "fmt"

const (
	Reset  = "\033[0m"
	Red    = "\033[1;31m"
	Yellow = "\033[1;33m"
	Green  = "\033[1;32m"
	Cyan   = "\033[1;36m"
	Gray   = "\033[90m" // Bright black, actually
	Bold   = "\033[1m"

	// 256-color palette
	Orange = "\033[38;5;208m"
	Pink   = "\033[1;38;5;127m"
)

// Theme defines semantic color mappings
type Theme struct {
	// Diagnostic severities
	Error   string
	Warning string

	// Parse tree printer
	Accent  string // rule names
	Span    string // node locations
	Literal string // covered text
	Muted   string
}

// DefaultTheme provides a sensible default color mapping.
var DefaultTheme = Theme{
	Error:   Red,
	Warning: Yellow,

	Accent:  Cyan,
	Span:    Orange,
	Literal: Green,
	Muted:   Gray,
}

// Color wraps the formatted text in `color`, resetting afterwards
func Color(color, format string, args ...any) string {
	return fmt.Sprintf(color+format+Reset, args...)
}
