package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/liquidlint/liquidlint/pkg/constants"
)

// Finding is one validator result. Path is the logical address of the
// offending element (for example "settings[2]"); line resolution happens
// downstream against the line map.
type Finding struct {
	Kind       string
	Message    string
	Path       string
	Suggestion string
}

// ValidationResult holds the ordered findings of one validation pass.
type ValidationResult struct {
	Errors   []Finding
	Warnings []Finding
}

// HasErrors reports whether any must-fix finding was produced.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

var (
	identifierRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	textAlignmentValues = map[string]bool{"left": true, "center": true, "right": true}
	videoURLProviders   = map[string]bool{"youtube": true, "vimeo": true}
)

// Validate applies every structural and semantic rule to a normalized schema
// and returns the accumulated errors and warnings. Rules run unconditionally
// and never short-circuit one another; finding order follows rule-application
// order (structure, settings, blocks, presets, limits).
func Validate(s *Schema) *ValidationResult {
	v := &validator{schema: s, result: &ValidationResult{}}
	v.validateStructure()
	v.validateSettings(s.Settings, "settings")
	v.validateBlocks()
	v.validatePresets()
	v.validateLimits()
	return v.result
}

type validator struct {
	schema *Schema
	result *ValidationResult
}

func (v *validator) errorf(path, format string, args ...any) {
	v.result.Errors = append(v.result.Errors, Finding{
		Kind:    "error",
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

func (v *validator) warnf(path, suggestion, format string, args ...any) {
	v.result.Warnings = append(v.result.Warnings, Finding{
		Kind:       "warning",
		Message:    fmt.Sprintf(format, args...),
		Path:       path,
		Suggestion: suggestion,
	})
}

func (v *validator) validateStructure() {
	if v.schema.Name == "" || v.schema.Name == DefaultName {
		v.warnf("", "add a \"name\" field to the schema", "schema has no name")
	}
	if n := utf8.RuneCountInString(v.schema.Name); n > constants.MaxNameLength {
		v.warnf("", "shorten the name to 50 characters or fewer",
			"schema name is %d characters long", n)
	}
	if v.schema.Tag != "" && v.schema.Tag != DefaultTag {
		v.warnf("", "", "non-default tag %q is set", v.schema.Tag)
	}
}

func (v *validator) validateSettings(settings []Setting, pathPrefix string) {
	seen := map[string]bool{}
	for i, s := range settings {
		path := fmt.Sprintf("%s[%d]", pathPrefix, i)

		if s.Type == "" {
			v.errorf(path, "setting is missing a type")
			v.validateVisibleIf(s, path)
			continue
		}

		if InformationalTypes[s.Type] {
			if s.Content == "" {
				v.warnf(path, "add a \"content\" field", "%s setting has no content", s.Type)
			}
			if s.ID != "" || s.Label != "" {
				v.warnf(path, "remove the \"id\" and \"label\" fields",
					"%s settings do not use id or label", s.Type)
			}
			v.validateVisibleIf(s, path)
			continue
		}

		if s.ID == "" {
			v.errorf(path, "setting of type %q is missing an id", s.Type)
		} else {
			if seen[s.ID] {
				v.errorf(path, "duplicate setting id %q", s.ID)
			}
			seen[s.ID] = true
			if !identifierRe.MatchString(s.ID) {
				v.warnf(path, "use lowercase letters, digits and underscores, starting with a letter",
					"setting id %q does not match the expected pattern", s.ID)
			}
		}
		if s.Label == "" {
			v.warnf(path, "add a \"label\" field", "setting %q has no label", s.ID)
		}

		v.validateSettingType(s, path)
		v.validateVisibleIf(s, path)
	}
}

func (v *validator) validateSettingType(s Setting, path string) {
	if !KnownSettingTypes[s.Type] {
		v.errorf(path, "unknown setting type %q", s.Type)
		return
	}

	switch p := s.Payload.(type) {
	case RangePayload:
		if p.Min == nil || p.Max == nil {
			v.errorf(path, "range setting requires both min and max")
		} else if *p.Min >= *p.Max {
			v.errorf(path, "range min %v must be less than max %v", *p.Min, *p.Max)
		}
		if p.Step != nil && *p.Step <= 0 {
			v.errorf(path, "range step must be greater than zero")
		}
	case OptionsPayload:
		if !p.Present || len(p.Options) == 0 {
			v.errorf(path, "%s setting requires a non-empty options list", s.Type)
		}
	case ListPayload:
		if p.Limit != nil && (*p.Limit < 1 || *p.Limit > constants.MaxBlockCount) {
			v.errorf(path, "%s limit %d is outside the range 1-50", s.Type, *p.Limit)
		}
	case MetaobjectPayload:
		if p.Type == "" {
			v.errorf(path, "metaobject setting requires a metaobject_type")
		}
	case VideoURLPayload:
		if p.Present && !p.IsArray {
			v.errorf(path, "video_url accept must be an array")
		} else {
			for _, provider := range p.Accept {
				if !videoURLProviders[provider] {
					v.errorf(path, "video_url provider %q is not supported (use youtube or vimeo)", provider)
				}
			}
		}
	}

	if s.Type == "text_alignment" && s.Default != nil {
		value, ok := s.Default.(string)
		if !ok || !textAlignmentValues[value] {
			v.errorf(path, "text_alignment default must be one of left, center, right")
		}
	}
}

func (v *validator) validateVisibleIf(s Setting, path string) {
	expr := strings.TrimSpace(s.VisibleIf)
	if expr == "" {
		return
	}
	if !strings.HasPrefix(expr, "{{") || !strings.HasSuffix(expr, "}}") {
		v.warnf(path, "wrap the expression in {{ and }}",
			"visible_if expression is not wrapped in double braces")
	}
	if !strings.Contains(expr, "settings.") {
		v.warnf(path, "reference a setting such as {{ section.settings.my_id }}",
			"visible_if expression does not reference a settings value")
	}
	if strings.Count(expr, "{{") != strings.Count(expr, "}}") {
		v.errorf(path, "visible_if expression has unbalanced double braces")
	}
}

func (v *validator) validateBlocks() {
	seenTypes := map[string]bool{}
	for i, b := range v.schema.Blocks {
		path := fmt.Sprintf("blocks[%d]", i)

		if b.Type == "" {
			v.errorf(path, "block is missing a type")
			continue
		}

		if b.Reserved() {
			if b.Name != "" {
				v.warnf(path, "remove the \"name\" field",
					"%s blocks do not use a name", b.Type)
			}
			if len(b.Settings) > 0 {
				v.warnf(path, "remove the \"settings\" array",
					"%s blocks do not carry settings", b.Type)
			}
		} else {
			if b.Name == "" {
				v.errorf(path, "block of type %q is missing a name", b.Type)
			}
			if !identifierRe.MatchString(b.Type) {
				v.warnf(path, "use lowercase letters, digits and underscores, starting with a letter",
					"block type %q does not match the expected pattern", b.Type)
			}
			v.validateSettings(b.Settings, path+".settings")
		}

		if seenTypes[b.Type] {
			v.warnf(path, "give each block a distinct type", "duplicate block type %q", b.Type)
		}
		seenTypes[b.Type] = true
	}
}

func (v *validator) validatePresets() {
	if len(v.schema.Presets) == 0 {
		v.warnf("", "add at least one preset so the section can be inserted from the editor",
			"schema defines no presets")
		return
	}

	settingIDs := map[string]bool{}
	for _, s := range v.schema.Settings {
		if s.ID != "" {
			settingIDs[s.ID] = true
		}
	}
	blockTypes := map[string]bool{}
	hasReserved := false
	for _, b := range v.schema.Blocks {
		blockTypes[b.Type] = true
		if b.Reserved() {
			hasReserved = true
		}
	}

	for i, p := range v.schema.Presets {
		path := fmt.Sprintf("presets[%d]", i)
		if p.Name == "" {
			v.errorf(path, "preset is missing a name")
		}

		overrideKeys := make([]string, 0, len(p.Settings))
		for key := range p.Settings {
			overrideKeys = append(overrideKeys, key)
		}
		sort.Strings(overrideKeys)
		for _, key := range overrideKeys {
			if !settingIDs[key] {
				v.warnf(path, "remove the override or add a matching setting",
					"preset overrides unknown setting %q", key)
			}
		}

		// Reserved dynamic blocks accept arbitrary types at render time,
		// so reference checks only apply when none are declared.
		if hasReserved {
			continue
		}
		for j, pb := range p.Blocks {
			if !blockTypes[pb.Type] {
				v.warnf(fmt.Sprintf("%s.blocks[%d]", path, j),
					"reference a block type declared in the schema",
					"preset references undeclared block type %q", pb.Type)
			}
		}
	}
}

func (v *validator) validateLimits() {
	min, max := v.schema.MinBlocks, v.schema.MaxBlocks
	if min != nil && max != nil && *min > *max {
		v.errorf("limits", "min_blocks %d is greater than max_blocks %d", *min, *max)
	}
	if (min != nil || max != nil) && len(v.schema.Blocks) == 0 {
		v.warnf("limits", "declare blocks or remove the limits",
			"block count limits are set but the schema defines no blocks")
	}
	if max != nil && *max > constants.MaxBlockCount {
		v.warnf("limits", "keep max_blocks at 50 or below",
			"max_blocks %d may hurt editor performance", *max)
	}
}
