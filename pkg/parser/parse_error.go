package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var errPositionRe = regexp.MustCompile(`(?:at position|position|offset) (\d+)`)

// ExtractJSONErrorLine recovers a best-effort 1-based line number from a
// strict-parse error. Syntax and type errors carry a byte offset; other
// implementations bury a position in the message text, so a textual
// "at position N" pattern is tried as a fallback. Returns 0 when no position
// can be recovered.
func ExtractJSONErrorLine(err error, text string) int {
	if err == nil {
		return 0
	}

	var synErr *json.SyntaxError
	if errors.As(err, &synErr) && synErr.Offset > 0 {
		return lineAtOffset(text, int(synErr.Offset))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Offset > 0 {
		return lineAtOffset(text, int(typeErr.Offset))
	}

	if m := errPositionRe.FindStringSubmatch(err.Error()); m != nil {
		if pos, convErr := strconv.Atoi(m[1]); convErr == nil {
			return lineAtOffset(text, pos)
		}
	}

	return 0
}

func lineAtOffset(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}
