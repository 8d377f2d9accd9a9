package parser

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
)

func TestExtractJSONErrorLineFromSyntaxError(t *testing.T) {
	text := "{\n  \"name\": oops\n}"
	var v map[string]any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if got := ExtractJSONErrorLine(err, text); got != 2 {
		t.Errorf("line = %d, want 2", got)
	}
}

func TestExtractJSONErrorLineFromMessageText(t *testing.T) {
	text := "abc\ndef\nghi\n"
	err := errors.New("invalid character 'g' at position 9")
	if got := ExtractJSONErrorLine(err, text); got != 3 {
		t.Errorf("line = %d, want 3", got)
	}
}

func TestExtractJSONErrorLineUnknown(t *testing.T) {
	if got := ExtractJSONErrorLine(nil, "x"); got != 0 {
		t.Errorf("line = %d, want 0 for nil error", got)
	}
	if got := ExtractJSONErrorLine(errors.New("no position here"), "x"); got != 0 {
		t.Errorf("line = %d, want 0 for positionless error", got)
	}
}
