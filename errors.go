package commonlexer

import "errors"

var (
	// ErrStartRuleNotFound is reported by a Result when the engine's
	// start rule isn't registered.
	ErrStartRuleNotFound = errors.New("start rule not found")

	// ErrNoSource is reported by a Result when Parse got no source
	ErrNoSource = errors.New("no source to parse")

	// ErrInvalidRegex is returned when a regular expression matcher
	// can't compile its pattern
	ErrInvalidRegex = errors.New("invalid regular expression")
)
