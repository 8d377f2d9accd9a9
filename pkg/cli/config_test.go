package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/liquidlint/liquidlint/pkg/constants"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, constants.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if cfg.FailOn != FailOnError {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, FailOnError)
	}
	if len(cfg.Ignore) != 0 || len(cfg.Disable) != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "fail_on: warning\nignore:\n  - \"vendor/*\"\ndisable:\n  - trailing-comma\n")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FailOn != FailOnWarning {
		t.Errorf("FailOn = %q", cfg.FailOn)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "vendor/*" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if !cfg.IssueDisabled("trailing-comma") {
		t.Error("trailing-comma should be disabled")
	}
	if cfg.IssueDisabled("missing-comma") {
		t.Error("missing-comma should not be disabled")
	}
}

func TestLoadConfigInvalidFailOn(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "fail_on: sometimes\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected an error for an unknown fail_on value")
	}
}

func TestConfigShouldIgnore(t *testing.T) {
	cfg := &Config{Ignore: []string{"vendor/*", "legacy.liquid"}}
	tests := []struct {
		path string
		want bool
	}{
		{"vendor/theme.liquid", true},
		{"sections/legacy.liquid", true},
		{"sections/hero.liquid", false},
	}
	for _, tt := range tests {
		if got := cfg.ShouldIgnore(tt.path); got != tt.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestConfigFails(t *testing.T) {
	tests := []struct {
		failOn   string
		errors   int
		warnings int
		want     bool
	}{
		{FailOnError, 1, 0, true},
		{FailOnError, 0, 5, false},
		{FailOnWarning, 0, 1, true},
		{FailOnWarning, 0, 0, false},
		{FailOnNever, 9, 9, false},
		{"", 1, 0, true},
	}
	for _, tt := range tests {
		cfg := &Config{FailOn: tt.failOn}
		if got := cfg.Fails(tt.errors, tt.warnings); got != tt.want {
			t.Errorf("FailOn=%q Fails(%d, %d) = %v, want %v",
				tt.failOn, tt.errors, tt.warnings, got, tt.want)
		}
	}
}
