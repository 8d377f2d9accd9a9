package parser

import (
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

// ParseResult is the outcome of a tolerant parse of schema JSON text.
// When Value is nil the text could not be parsed even after repair; Err then
// carries the original pre-repair parse error and ErrLine a best-effort
// 1-based line within the text.
type ParseResult struct {
	Value   map[string]any
	Issues  []Issue
	Err     string
	ErrLine int
}

// ParseTolerant attempts a strict JSON parse and, on failure, applies a
// sequence of textual repair heuristics before trying again. It never panics
// or returns a raw error: all failure paths produce a structured result.
func ParseTolerant(text string) ParseResult {
	var value map[string]any
	strictErr := json.Unmarshal([]byte(text), &value)
	if strictErr == nil {
		if value == nil {
			return nonObjectResult(nil)
		}
		return ParseResult{Value: value}
	}

	lines := strings.Split(text, "\n")
	var issues []Issue
	lines, issues = repairTrailingCommas(lines, issues)
	lines, issues = repairMissingCommas(lines, issues)
	issues = detectUnescapedQuotes(lines, issues)

	repaired := strings.Join(lines, "\n")
	value = nil
	repairedErr := json.Unmarshal([]byte(repaired), &value)
	if repairedErr == nil {
		if value == nil {
			return nonObjectResult(issues)
		}
		return ParseResult{Value: value, Issues: issues}
	}

	errLine := ExtractJSONErrorLine(repairedErr, repaired)
	if errLine == 0 {
		errLine = 1
	}
	category := IssueOther
	message := repairedErr.Error()
	if !bracketsBalanced(repaired) {
		category = IssueBracketMismatch
		message = "unbalanced brackets: " + message
	}
	issues = append(issues, Issue{
		Category: category,
		Line:     errLine,
		Column:   1,
		Message:  message,
	})

	return ParseResult{
		Issues:  issues,
		Err:     strictErr.Error(),
		ErrLine: errLine,
	}
}

// nonObjectResult marks a parse whose top-level value is not an object. A
// bare null unmarshals cleanly into a nil map, so it never reaches the error
// paths above.
func nonObjectResult(issues []Issue) ParseResult {
	const msg = "top-level value is not a JSON object"
	return ParseResult{
		Issues: append(issues, Issue{
			Category: IssueOther,
			Line:     1,
			Column:   1,
			Message:  msg,
		}),
		Err:     msg,
		ErrLine: 1,
	}
}

// sameLineTrailingComma matches a comma whose only successor on the line,
// whitespace aside, is a closing bracket or brace.
var sameLineTrailingComma = regexp.MustCompile(`,[ \t]*[\]}]`)

func repairTrailingCommas(lines []string, issues []Issue) ([]string, []Issue) {
	for i := range lines {
		for {
			loc := sameLineTrailingComma.FindStringIndex(lines[i])
			if loc == nil {
				break
			}
			col := loc[0] + 1
			lines[i] = lines[i][:loc[0]] + lines[i][loc[0]+1:]
			issues = append(issues, Issue{
				Category:   IssueTrailingComma,
				Line:       i + 1,
				Column:     col,
				Message:    "trailing comma before closing bracket",
				Suggestion: "remove the comma",
				Fixed:      true,
			})
		}
	}

	for i := range lines {
		trimmed := strings.TrimRight(lines[i], " \t\r")
		if !strings.HasSuffix(trimmed, ",") {
			continue
		}
		next := nextNonBlankLine(lines, i+1)
		if next < 0 {
			continue
		}
		first := strings.TrimSpace(lines[next])
		if first[0] != ']' && first[0] != '}' {
			continue
		}
		idx := strings.LastIndex(lines[i], ",")
		lines[i] = lines[i][:idx] + lines[i][idx+1:]
		issues = append(issues, Issue{
			Category:   IssueTrailingComma,
			Line:       i + 1,
			Column:     idx + 1,
			Message:    "trailing comma before closing bracket",
			Suggestion: "remove the comma",
			Fixed:      true,
		})
	}

	return lines, issues
}

// repairMissingCommas inserts a comma between adjacent lines where the first
// ends a value and the second starts a new element. The new-element test
// (opening brace, quote, or word character) is deliberately permissive and
// can misfire on multi-line string continuations; see the package tests.
func repairMissingCommas(lines []string, issues []Issue) ([]string, []Issue) {
	for i := 0; i+1 < len(lines); i++ {
		a := strings.TrimSpace(lines[i])
		b := strings.TrimSpace(lines[i+1])
		if a == "" || b == "" {
			continue
		}
		last := a[len(a)-1]
		if last != '}' && last != ']' && last != '"' {
			continue
		}
		c := b[0]
		if c == ']' || c == '}' {
			continue
		}
		if c != '{' && c != '"' && !isWordByte(c) {
			continue
		}
		lines[i] = strings.TrimRight(lines[i], " \t\r") + ","
		issues = append(issues, Issue{
			Category:   IssueMissingComma,
			Line:       i + 1,
			Column:     len(lines[i]),
			Message:    "missing comma between elements",
			Suggestion: "add a comma at the end of the line",
			Fixed:      true,
		})
	}
	return lines, issues
}

var (
	// keyValuePair matches a "key": "value" pair; the value capture is greedy
	// up to the last quote on the line so embedded quotes stay inside it.
	keyValuePair = regexp.MustCompile(`"[^"]*"\s*:\s*"(.*)"`)
	colonPair    = regexp.MustCompile(`"\s*:\s*"`)
)

// detectUnescapedQuotes flags string values containing a bare quote. It is
// diagnostic only, never auto-repaired; Liquid placeholder values (double
// braces) are skipped. Lines holding more than one key/value pair are skipped
// because the greedy capture cannot separate the pairs.
func detectUnescapedQuotes(lines []string, issues []Issue) []Issue {
	for i, line := range lines {
		if len(colonPair.FindAllStringIndex(line, -1)) != 1 {
			continue
		}
		m := keyValuePair.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		value := line[m[2]:m[3]]
		if strings.Contains(value, "{{") || strings.Contains(value, "}}") {
			continue
		}
		if !containsUnescapedQuote(value) {
			continue
		}
		issues = append(issues, Issue{
			Category:   IssueUnescapedQuote,
			Line:       i + 1,
			Column:     m[2] + 1,
			Message:    "string value contains an unescaped quote",
			Suggestion: `escape inner quotes with \"`,
		})
	}
	return issues
}

func nextNonBlankLine(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func containsUnescapedQuote(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			return true
		}
	}
	return false
}

func bracketsBalanced(text string) bool {
	braces, brackets := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			braces++
		case '}':
			braces--
		case '[':
			brackets++
		case ']':
			brackets--
		}
	}
	return braces == 0 && brackets == 0
}
