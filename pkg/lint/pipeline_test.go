package lint

import (
	"testing"

	"github.com/liquidlint/liquidlint/pkg/parser"
)

func TestRunEndToEnd(t *testing.T) {
	doc := Document{
		Path: "sections/test.liquid",
		Content: "<div>{{ section.settings.t }}</div>\n" +
			"{% schema %}\n" +
			"{\n" +
			"  \"name\": \"Test\",\n" +
			"  \"settings\": [{\"type\":\"text\",\"id\":\"t\",\"label\":\"T\"},]\n" +
			"}\n" +
			"{% endschema %}\n",
	}

	res := Run(doc)
	if !res.HasSchema {
		t.Fatal("schema block not found")
	}
	if res.Schema == nil {
		t.Fatalf("parse failed: %q", res.ParseErr)
	}

	if len(res.Issues) != 1 {
		t.Fatalf("want one issue, got %+v", res.Issues)
	}
	issue := res.Issues[0]
	if issue.Category != parser.IssueTrailingComma || !issue.Fixed {
		t.Errorf("unexpected issue: %+v", issue)
	}
	// Schema text starts on document line 3; the comma sits on line 5.
	if issue.Line != 5 {
		t.Errorf("issue line = %d, want document-absolute 5", issue.Line)
	}

	if res.Schema.Name != "Test" {
		t.Errorf("name = %q, want Test", res.Schema.Name)
	}
	if len(res.Schema.Settings) != 1 || res.Schema.Settings[0].ID != "t" {
		t.Errorf("settings = %+v", res.Schema.Settings)
	}
	if len(res.Validation.Errors) != 0 {
		t.Errorf("want zero validation errors, got %+v", res.Validation.Errors)
	}
}

func TestRunNoSchema(t *testing.T) {
	res := Run(Document{Path: "snippets/card.liquid", Content: "<div></div>"})
	if res.HasSchema {
		t.Error("HasSchema = true for a document without a block")
	}
	if res.Schema != nil || res.Validation != nil || len(res.Issues) != 0 {
		t.Errorf("empty result expected, got %+v", res)
	}
}

func TestRunParseFailure(t *testing.T) {
	doc := Document{
		Path:    "sections/broken.liquid",
		Content: "{% schema %}\n{\n  \"name\": oops\n}\n{% endschema %}",
	}
	res := Run(doc)
	if !res.HasSchema {
		t.Fatal("schema block not found")
	}
	if res.Schema != nil {
		t.Fatal("expected a nil schema on parse failure")
	}
	if res.ParseErr == "" {
		t.Error("ParseErr must carry the original error")
	}
	if res.ParseErrLine != 3 {
		t.Errorf("ParseErrLine = %d, want 3", res.ParseErrLine)
	}
	if len(res.Issues) == 0 {
		t.Error("expected a final issue describing the failure")
	}
	// The line map is still built from the raw text.
	if res.LineMap == nil {
		t.Error("LineMap must be available even when parsing fails")
	}
}

func TestRunNullSchemaIsParseFailure(t *testing.T) {
	doc := Document{
		Path:    "sections/null.liquid",
		Content: "{% schema %}\nnull\n{% endschema %}",
	}
	res := Run(doc)
	if res.Schema != nil {
		t.Fatal("expected a nil schema for a null block")
	}
	if res.ParseErr == "" {
		t.Error("ParseErr must explain the failure")
	}
	// The issue carries the failure so it counts toward fail thresholds.
	if len(res.Issues) != 1 || res.Issues[0].Fixed {
		t.Errorf("expected one unfixed issue, got %+v", res.Issues)
	}
	if res.ParseErrLine != 2 {
		t.Errorf("ParseErrLine = %d, want 2", res.ParseErrLine)
	}
}

func TestRunLineForUnparsedSchema(t *testing.T) {
	res := Run(Document{Path: "x.liquid", Content: "{% schema %}\nnot json\n{% endschema %}"})
	if got := res.LineFor(mockFinding("settings[0]")); got != 0 {
		t.Errorf("LineFor = %d, want 0 without a schema", got)
	}
}

func TestRunDeterministic(t *testing.T) {
	doc := Document{
		Path: "sections/hero.liquid",
		Content: "{% schema %}\n" +
			"{\n" +
			"  \"name\": \"Hero\",\n" +
			"  \"settings\": [\n" +
			"    {\"type\": \"text\", \"id\": \"title\", \"label\": \"Title\"}\n" +
			"  ],\n" +
			"  \"presets\": [{\"name\": \"Default\"}]\n" +
			"}\n" +
			"{% endschema %}",
	}
	a := Run(doc)
	b := Run(doc)
	if a.Schema.Name != b.Schema.Name {
		t.Error("runs disagree on the schema name")
	}
	if len(a.Validation.Warnings) != len(b.Validation.Warnings) {
		t.Error("runs disagree on warnings")
	}
	lineA := a.LineFor(mockFinding("settings[0]"))
	lineB := b.LineFor(mockFinding("settings[0]"))
	if lineA != lineB || lineA == 0 {
		t.Errorf("setting line resolved to %d and %d", lineA, lineB)
	}
}
