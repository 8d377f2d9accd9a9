package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/liquidlint/liquidlint/pkg/constants"
)

// Fail thresholds accepted by the fail_on config key and --fail-on flag.
const (
	FailOnError   = "error"
	FailOnWarning = "warning"
	FailOnNever   = "never"
)

// Config controls which files are checked and when a run fails. It is read
// from .liquidlint.yml in the working directory; a missing file yields the
// defaults.
type Config struct {
	// FailOn sets the severity that makes a run exit non-zero:
	// "error" (default), "warning", or "never".
	FailOn string `yaml:"fail_on"`

	// Ignore lists glob patterns for files to skip. Patterns match the
	// full relative path and the base name.
	Ignore []string `yaml:"ignore"`

	// Disable lists syntax-issue categories to suppress from output,
	// e.g. "trailing-comma".
	Disable []string `yaml:"disable"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{FailOn: FailOnError}
}

// LoadConfig reads .liquidlint.yml from dir. A missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, constants.ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.FailOn {
	case "", FailOnError, FailOnWarning, FailOnNever:
		return nil
	}
	return fmt.Errorf("fail_on must be %q, %q or %q, got %q",
		FailOnError, FailOnWarning, FailOnNever, c.FailOn)
}

// ShouldIgnore reports whether path matches any ignore pattern.
func (c *Config) ShouldIgnore(path string) bool {
	path = filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range c.Ignore {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// IssueDisabled reports whether a syntax-issue category is suppressed.
func (c *Config) IssueDisabled(category string) bool {
	for _, d := range c.Disable {
		if d == category {
			return true
		}
	}
	return false
}

// Fails reports whether the given finding counts should make the run fail.
func (c *Config) Fails(errors, warnings int) bool {
	switch c.FailOn {
	case FailOnNever:
		return false
	case FailOnWarning:
		return errors > 0 || warnings > 0
	default:
		return errors > 0
	}
}
