package lint

import (
	"github.com/liquidlint/liquidlint/pkg/parser"
	"github.com/liquidlint/liquidlint/pkg/schema"
)

// Document is an immutable snapshot of one theme file to analyze.
type Document struct {
	Path    string
	Content string
}

// Result is the complete output of one pipeline run over a document. A new
// run produces a fresh Result; callers replace, never merge.
type Result struct {
	Path string

	// HasSchema is false when the document contains no schema block. That
	// state is not an error, just nothing to analyze.
	HasSchema bool

	// Schema is nil when parsing failed even after repair.
	Schema     *schema.Schema
	Validation *schema.ValidationResult

	// Issues carry document-absolute line numbers.
	Issues []parser.Issue

	ParseErr     string
	ParseErrLine int

	LineMap parser.LineMap
}

// Run executes the full pipeline over one document snapshot: extraction,
// tolerant parsing, normalization, line mapping and validation. It never
// fails; every outcome is represented in the Result.
func Run(doc Document) *Result {
	res := &Result{Path: doc.Path}

	block, ok := parser.ExtractSchemaBlock(doc.Content)
	if !ok {
		return res
	}
	res.HasSchema = true
	res.LineMap = parser.BuildLineMap(block.Text, block.StartLine)

	pr := parser.ParseTolerant(block.Text)
	res.Issues = absoluteIssues(pr.Issues, block.StartLine)

	if pr.Value == nil {
		res.ParseErr = pr.Err
		if pr.ErrLine > 0 {
			res.ParseErrLine = block.StartLine + pr.ErrLine - 1
		}
		return res
	}

	s := schema.FromMap(pr.Value)
	schema.Normalize(s, doc.Path)
	res.Schema = s
	res.Validation = schema.Validate(s)
	return res
}

// LineFor resolves a validation finding to an absolute document line, or 0
// when no line can be determined.
func (r *Result) LineFor(f schema.Finding) int {
	if r.Schema == nil {
		return 0
	}
	return ResolveLine(f.Path, r.Schema, r.LineMap)
}

func absoluteIssues(issues []parser.Issue, startLine int) []parser.Issue {
	if len(issues) == 0 {
		return nil
	}
	out := make([]parser.Issue, len(issues))
	for i, issue := range issues {
		issue.Line = startLine + issue.Line - 1
		out[i] = issue
	}
	return out
}
