package lint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/liquidlint/liquidlint/pkg/parser"
	"github.com/liquidlint/liquidlint/pkg/schema"
)

// blockLineSpacing is the assumed line height of one block entry, used to
// estimate a position when no marker for the block was recorded.
const blockLineSpacing = 4

var (
	settingsPathRe = regexp.MustCompile(`^settings\[(\d+)\]`)
	blocksPathRe   = regexp.MustCompile(`^blocks\[(\d+)\]`)
	presetsPathRe  = regexp.MustCompile(`^presets\[(\d+)\]`)
)

// lineStrategy is one attempt at resolving a path to a line. Strategies are
// tried in declaration order; the first hit wins.
type lineStrategy func() (int, bool)

func firstLine(strategies ...lineStrategy) int {
	for _, try := range strategies {
		if line, ok := try(); ok {
			return line
		}
	}
	return 0
}

// ResolveLine maps a finding's logical path to an absolute document line
// using the line map. It returns 0 when no strategy yields a line; a missing
// mapping is a normal outcome, never an error.
func ResolveLine(path string, s *schema.Schema, lm parser.LineMap) int {
	if path == "" || lm == nil {
		return 0
	}

	if m := settingsPathRe.FindStringSubmatch(path); m != nil {
		return resolveSetting(atoi(m[1]), s, lm)
	}
	if m := blocksPathRe.FindStringSubmatch(path); m != nil {
		return resolveBlock(atoi(m[1]), s, lm)
	}
	if m := presetsPathRe.FindStringSubmatch(path); m != nil {
		return resolvePreset(atoi(m[1]), s, lm)
	}
	if path == "limits" {
		return firstLine(
			lookup(lm, parser.SectionKey("limits")),
			lookup(lm, parser.SectionKey("settings")),
		)
	}

	// Unrecognized paths degrade to the nearest section start.
	switch {
	case strings.Contains(path, "settings"):
		return firstLine(lookup(lm, parser.SectionKey("settings")))
	case strings.Contains(path, "blocks"):
		return firstLine(lookup(lm, parser.SectionKey("blocks")))
	case strings.Contains(path, "presets"):
		return firstLine(lookup(lm, parser.SectionKey("presets")))
	}
	return 0
}

func resolveSetting(i int, s *schema.Schema, lm parser.LineMap) int {
	return firstLine(
		lookup(lm, parser.IndexKey("setting", i)),
		func() (int, bool) {
			if i < len(s.Settings) && s.Settings[i].ID != "" {
				return lookupKey(lm, parser.SettingIDKey(s.Settings[i].ID))
			}
			return 0, false
		},
		func() (int, bool) {
			// Walk back to the nearest earlier setting with a known id.
			for j := i - 1; j >= 0 && j < len(s.Settings); j-- {
				if s.Settings[j].ID == "" {
					continue
				}
				if line, ok := lookupKey(lm, parser.SettingIDKey(s.Settings[j].ID)); ok {
					return line, true
				}
			}
			return 0, false
		},
		lookup(lm, parser.SectionKey("settings")),
	)
}

func resolveBlock(i int, s *schema.Schema, lm parser.LineMap) int {
	return firstLine(
		lookup(lm, parser.IndexKey("block", i)),
		func() (int, bool) {
			if i >= len(s.Blocks) {
				return 0, false
			}
			b := s.Blocks[i]
			if b.Reserved() {
				return lookupKey(lm, parser.ReservedBlockKey(b.Type, i))
			}
			if b.Name != "" {
				return lookupKey(lm, parser.BlockNameKey(b.Name))
			}
			return 0, false
		},
		func() (int, bool) {
			if start, ok := lookupKey(lm, parser.SectionKey("blocks")); ok {
				return start + (i+1)*blockLineSpacing, true
			}
			return 0, false
		},
	)
}

func resolvePreset(i int, s *schema.Schema, lm parser.LineMap) int {
	return firstLine(
		lookup(lm, parser.IndexKey("preset", i)),
		func() (int, bool) {
			if i < len(s.Presets) && s.Presets[i].Name != "" {
				return lookupKey(lm, parser.PresetNameKey(s.Presets[i].Name))
			}
			return 0, false
		},
		func() (int, bool) {
			for j := i - 1; j >= 0 && j < len(s.Presets); j-- {
				if s.Presets[j].Name == "" {
					continue
				}
				if line, ok := lookupKey(lm, parser.PresetNameKey(s.Presets[j].Name)); ok {
					return line, true
				}
			}
			return 0, false
		},
		lookup(lm, parser.SectionKey("presets")),
	)
}

func lookup(lm parser.LineMap, key string) lineStrategy {
	return func() (int, bool) {
		return lookupKey(lm, key)
	}
}

func lookupKey(lm parser.LineMap, key string) (int, bool) {
	line, ok := lm[key]
	return line, ok
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
