package parser

// Issue categories reported by the tolerant JSON parser.
const (
	IssueTrailingComma   = "trailing-comma"
	IssueMissingComma    = "missing-comma"
	IssueUnescapedQuote  = "unescaped-quote"
	IssueBracketMismatch = "bracket-mismatch"
	IssueOther           = "other"
)

// Issue is one detected or repaired syntax problem in schema JSON text.
// Line and Column are 1-based and relative to the schema text; the consuming
// layer translates them to document-absolute coordinates.
type Issue struct {
	Category   string
	Line       int
	Column     int
	Message    string
	Suggestion string
	Fixed      bool
}
