package parser

import (
	"regexp"
	"strings"
)

// SchemaBlock holds the JSON text of an embedded {% schema %} block and its
// position within the host document.
type SchemaBlock struct {
	Text      string // inner JSON text, whitespace-trimmed
	Offset    int    // absolute character offset of Text's first character
	StartLine int    // 1-based document line of Text's first character
}

var (
	schemaOpenRe  = regexp.MustCompile(`(?i)\{%-?\s*schema\s*-?%\}`)
	schemaCloseRe = regexp.MustCompile(`(?i)\{%-?\s*endschema\s*-?%\}`)
)

// ExtractSchemaBlock locates the first {% schema %} ... {% endschema %}
// region in a Liquid document. The keyword match is case-insensitive and
// tolerates trim-control hyphens. Only the first occurrence is considered;
// nested or repeated blocks are not handled. Returns false when the document
// contains no schema block.
func ExtractSchemaBlock(content string) (*SchemaBlock, bool) {
	open := schemaOpenRe.FindStringIndex(content)
	if open == nil {
		return nil, false
	}

	rest := content[open[1]:]
	closing := schemaCloseRe.FindStringIndex(rest)
	if closing == nil {
		return nil, false
	}

	raw := rest[:closing[0]]
	text := strings.TrimSpace(raw)

	// Offset points at the first non-whitespace character of the inner text.
	leading := len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	offset := open[1] + leading

	return &SchemaBlock{
		Text:      text,
		Offset:    offset,
		StartLine: LineOfOffset(content, offset),
	}, true
}

// LineOfOffset converts an absolute character offset into a 1-based line
// number within content. Offsets past the end map to the last line.
func LineOfOffset(content string, offset int) int {
	if offset < 0 {
		return 1
	}
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}
