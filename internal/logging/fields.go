package logging

// Field names for structured logging
const (
	FieldError = "error"
	FieldPath  = "path"

	// Grammar and rule fields.
	FieldGrammar   = "grammar"
	FieldRule      = "rule"
	FieldRuleID    = "rule_id"
	FieldRules     = "rules"
	FieldStartRule = "start_rule"

	// Parse statistics.
	FieldSource   = "source"
	FieldBytes    = "bytes"
	FieldSpan     = "span"
	FieldStatus   = "status"
	FieldNodes    = "nodes"
	FieldErrors   = "errors"
	FieldWarnings = "warnings"
	FieldDuration = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
