package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// LineMap maps semantic keys inside a schema block to 1-based absolute
// document line numbers. It is built by a single line-oriented scan that
// trades parsing rigor for resilience: it still produces useful
// approximations when the JSON does not strictly parse.
//
// Recorded keys:
//
//	schema:settings, schema:blocks, schema:presets, schema:limits
//	setting:index:N, block:index:N, preset:index:N
//	setting:id:<id>, block:name:<name>, block:type:<@type>:<N>, preset:name:<name>
//
// Identity keys follow last-occurrence-wins; index keys are recorded once.
type LineMap map[string]int

// SectionKey returns the start-of-section marker key, e.g. "schema:settings".
func SectionKey(section string) string {
	return "schema:" + section
}

// IndexKey returns the positional marker key for the Nth item of a section,
// e.g. "setting:index:2". kind is the singular section name.
func IndexKey(kind string, i int) string {
	return fmt.Sprintf("%s:index:%d", kind, i)
}

// SettingIDKey returns the identity key for a setting identifier.
func SettingIDKey(id string) string {
	return "setting:id:" + id
}

// BlockNameKey returns the identity key for a named block.
func BlockNameKey(name string) string {
	return "block:name:" + name
}

// ReservedBlockKey returns the identity key for a reserved dynamic block,
// which has no name and is identified by its marker type and position.
func ReservedBlockKey(blockType string, i int) string {
	return fmt.Sprintf("block:type:%s:%d", blockType, i)
}

// PresetNameKey returns the identity key for a named preset.
func PresetNameKey(name string) string {
	return "preset:name:" + name
}

var (
	settingsArrayRe = regexp.MustCompile(`"settings"\s*:\s*\[`)
	blocksArrayRe   = regexp.MustCompile(`"blocks"\s*:\s*\[`)
	presetsArrayRe  = regexp.MustCompile(`"presets"\s*:\s*\[`)
	typeFieldRe     = regexp.MustCompile(`"type"\s*:\s*"([^"]*)"`)
	idFieldRe       = regexp.MustCompile(`"id"\s*:\s*"([^"]*)"`)
	nameFieldRe     = regexp.MustCompile(`"name"\s*:\s*"([^"]*)"`)
	limitsFieldRe   = regexp.MustCompile(`"(?:min_blocks|max_blocks)"\s*:`)
)

// BuildLineMap scans schema text left to right, tracking brace nesting depth
// and the current section, and records semantic line markers. startLine is
// the 1-based document line of the text's first line. The scan is a line
// heuristic, not a parser: brace counting ignores string contents, and a
// nested settings array inside a block re-enters the settings section.
func BuildLineMap(text string, startLine int) LineMap {
	lm := LineMap{}
	depth := 0
	section := ""
	counters := map[string]int{}

	for i, line := range strings.Split(text, "\n") {
		abs := startLine + i

		// Section switches trigger on the key literal followed by an array
		// opener, so preset setting-override objects do not hijack a section.
		switch {
		case settingsArrayRe.MatchString(line):
			section = "settings"
			recordSectionStart(lm, "settings", abs, depth)
		case blocksArrayRe.MatchString(line):
			section = "blocks"
			recordSectionStart(lm, "blocks", abs, depth)
		case presetsArrayRe.MatchString(line):
			section = "presets"
			recordSectionStart(lm, "presets", abs, depth)
		}

		if depth == 1 && limitsFieldRe.MatchString(line) {
			if _, ok := lm[SectionKey("limits")]; !ok {
				lm[SectionKey("limits")] = abs
			}
		}

		switch section {
		case "settings":
			if typeFieldRe.MatchString(line) {
				idx := counters[section]
				lm[IndexKey("setting", idx)] = abs
				counters[section]++
			}
			if m := idFieldRe.FindStringSubmatch(line); m != nil && m[1] != "" {
				lm[SettingIDKey(m[1])] = abs
			}
		case "blocks":
			if m := typeFieldRe.FindStringSubmatch(line); m != nil {
				idx := counters[section]
				lm[IndexKey("block", idx)] = abs
				if strings.HasPrefix(m[1], "@") {
					lm[ReservedBlockKey(m[1], idx)] = abs
				}
				counters[section]++
			}
			if m := nameFieldRe.FindStringSubmatch(line); m != nil && m[1] != "" {
				lm[BlockNameKey(m[1])] = abs
			}
		case "presets":
			if m := nameFieldRe.FindStringSubmatch(line); m != nil {
				idx := counters[section]
				lm[IndexKey("preset", idx)] = abs
				counters[section]++
				if m[1] != "" {
					lm[PresetNameKey(m[1])] = abs
				}
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")

		// A closing bracket at root depth ends the current section.
		if section != "" && depth == 1 && strings.Contains(line, "]") {
			section = ""
		}
	}

	return lm
}

// recordSectionStart records the first section-start marker seen at root
// depth; nested arrays of the same name inside blocks or presets do not move
// the section start.
func recordSectionStart(lm LineMap, section string, line, depth int) {
	if depth != 1 {
		return
	}
	if _, ok := lm[SectionKey(section)]; !ok {
		lm[SectionKey(section)] = line
	}
}
