package console

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatDiagnostic(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected []string // substrings that should be present in output
	}{
		{
			name: "basic error with position",
			diag: Diagnostic{
				Position: Position{File: "sections/hero.liquid", Line: 5, Column: 10},
				Severity: "error",
				Message:  "duplicate setting id \"title\"",
			},
			expected: []string{
				"sections/hero.liquid:5:10:",
				"error:",
				"duplicate setting id",
			},
		},
		{
			name: "warning with hint",
			diag: Diagnostic{
				Position: Position{File: "blocks/slide.liquid", Line: 2, Column: 1},
				Severity: "warning",
				Message:  "setting \"link\" has no label",
				Hint:     "add a \"label\" field",
			},
			expected: []string{
				"blocks/slide.liquid:2:1:",
				"warning:",
				"has no label",
				"hint:",
				"add a \"label\" field",
			},
		},
		{
			name: "error with context",
			diag: Diagnostic{
				Position: Position{File: "sections/hero.liquid", Line: 3, Column: 5},
				Severity: "error",
				Message:  "trailing comma before closing bracket",
				Context: []string{
					"{",
					"  \"name\": \"Hero\",",
					"  \"settings\": [],",
				},
				ContextStart: 1,
			},
			expected: []string{
				"sections/hero.liquid:3:5:",
				"error:",
				"trailing comma",
				"1 |",
				"2 |",
				"3 |",
			},
		},
		{
			name: "unknown line renders file only",
			diag: Diagnostic{
				Position: Position{File: "sections/hero.liquid"},
				Severity: "error",
				Message:  "no schema block found",
			},
			expected: []string{
				"sections/hero.liquid:",
				"error:",
				"no schema block found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatDiagnostic(tt.diag)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFormatDiagnosticCaret(t *testing.T) {
	out := FormatDiagnostic(Diagnostic{
		Position:     Position{File: "x.liquid", Line: 2, Column: 3},
		Severity:     "error",
		Message:      "bad",
		Context:      []string{"{", "  ,", "}"},
		ContextStart: 1,
	})
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret under the flagged column:\n%s", out)
	}
}

func TestToRelativePath(t *testing.T) {
	if got := ToRelativePath("sections/hero.liquid"); got != "sections/hero.liquid" {
		t.Errorf("relative path changed: %q", got)
	}

	abs, err := filepath.Abs("sections/hero.liquid")
	if err != nil {
		t.Fatal(err)
	}
	got := ToRelativePath(abs)
	if filepath.IsAbs(got) {
		t.Errorf("expected a relative path, got %q", got)
	}
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
	}{
		{"success", FormatSuccessMessage},
		{"info", FormatInfoMessage},
		{"warning", FormatWarningMessage},
		{"error", FormatErrorMessage},
		{"progress", FormatProgressMessage},
		{"count", FormatCountMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("checked 3 files")
			if !strings.Contains(out, "checked 3 files") {
				t.Errorf("message text lost: %q", out)
			}
			if out == "checked 3 files" {
				t.Errorf("expected a prefix marker, got bare message")
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(TableConfig{
		Title:   "Summary",
		Headers: []string{"File", "Errors", "Warnings"},
		Rows: [][]string{
			{"sections/hero.liquid", "1", "2"},
			{"blocks/slide.liquid", "0", "0"},
		},
		ShowTotal: true,
		TotalRow:  []string{"Total", "1", "2"},
	})

	for _, want := range []string{"Summary", "File", "Errors", "sections/hero.liquid", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := RenderTable(TableConfig{}); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
