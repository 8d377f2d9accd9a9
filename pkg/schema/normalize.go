package schema

import (
	"sort"
	"strings"
)

// Normalize fills defaults and derived metadata on a freshly decoded schema.
// Collections come out non-nil so callers can range without nil checks.
func Normalize(s *Schema, sourcePath string) {
	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.Tag == "" {
		s.Tag = DefaultTag
	}
	if s.Settings == nil {
		s.Settings = []Setting{}
	}
	if s.Blocks == nil {
		s.Blocks = []Block{}
	}
	if s.Presets == nil {
		s.Presets = []Preset{}
	}
	for i := range s.Blocks {
		if s.Blocks[i].Settings == nil {
			s.Blocks[i].Settings = []Setting{}
		}
	}
	sort.Strings(s.Locales)
	s.SourcePath = sourcePath
	s.Category = DeriveFileCategory(sourcePath)
}

// DeriveFileCategory infers whether a theme file defines a section or a
// standalone block from its path. The nearest "blocks" or "sections"
// directory segment wins; anything else counts as a section.
func DeriveFileCategory(path string) FileCategory {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	// Last segment is the file name, never a directory.
	for i := len(segments) - 2; i >= 0; i-- {
		switch segments[i] {
		case "blocks":
			return CategoryBlock
		case "sections":
			return CategorySection
		}
	}
	return CategorySection
}
