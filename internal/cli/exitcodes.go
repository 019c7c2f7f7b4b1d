package cli

import "errors"

// Exit codes for commonlexer.
const (
	// ExitSuccess indicates the input parsed without errors.
	ExitSuccess = 0

	// ExitParseErrors indicates the input or the grammar had errors.
	ExitParseErrors = 1

	// ExitFailure indicates the command couldn't run, like when a
	// file can't be read.
	ExitFailure = 2
)

// ErrParseFailed is returned by commands after they reported error
// diagnostics.  It only exists to pick the exit code.
var ErrParseFailed = errors.New("parse failed")

// ExitCode maps the error returned by a command to the process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed):
		return ExitParseErrors
	default:
		return ExitFailure
	}
}
