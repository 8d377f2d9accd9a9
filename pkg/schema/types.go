package schema

// FileCategory classifies the theme file a schema belongs to.
type FileCategory string

const (
	CategorySection FileCategory = "section"
	CategoryBlock   FileCategory = "block"
)

// DefaultName is the placeholder display name applied by normalization when
// a schema has no name of its own.
const DefaultName = "Untitled"

// DefaultTag is the wrapper element sections render into unless overridden.
const DefaultTag = "div"

// Reserved dynamic block types denote content supplied at render time by an
// external source. They carry no name and no settings.
const (
	BlockTypeApp   = "@app"
	BlockTypeTheme = "@theme"
)

// IsReservedBlockType reports whether t is a reserved dynamic marker.
func IsReservedBlockType(t string) bool {
	return t == BlockTypeApp || t == BlockTypeTheme
}

// Schema is the root configuration object embedded in a theme file. It is
// constructed fresh on every parse, never mutated afterwards, and replaced
// wholesale by the next parse. After normalization the Settings, Blocks and
// Presets collections are never nil.
type Schema struct {
	Name       string
	Tag        string
	Class      string
	Limit      *int
	Settings   []Setting
	Blocks     []Block
	Presets    []Preset
	MinBlocks  *int
	MaxBlocks  *int
	EnabledOn  *TemplateFilter
	DisabledOn *TemplateFilter
	Locales    []string

	// Derived metadata, filled by Normalize.
	Category   FileCategory
	SourcePath string
}

// TemplateFilter restricts where a section may be enabled or disabled.
type TemplateFilter struct {
	Templates []string
	Groups    []string
}

// Setting is one configurable field. The shared base record carries the
// attributes common to every kind; kind-specific attributes live in Payload.
type Setting struct {
	Type      string
	ID        string
	Label     string
	Content   string // header and paragraph kinds only
	Info      string
	Default   any
	VisibleIf string
	Payload   SettingPayload // nil for kinds without extra attributes
}

// SettingPayload is the kind-specific attribute variant of a Setting.
type SettingPayload interface {
	settingPayload()
}

// RangePayload carries the numeric bounds of a range setting.
type RangePayload struct {
	Min  *float64
	Max  *float64
	Step *float64
	Unit string
}

// OptionsPayload carries the enumeration choices of select and radio settings.
type OptionsPayload struct {
	Options []Option
	Present bool // true when the options key exists, even if empty
}

// ListPayload carries the item-count limit of list-picker settings.
type ListPayload struct {
	Limit *int
}

// MetaobjectPayload carries the type discriminator of a metaobject setting.
type MetaobjectPayload struct {
	Type string
}

// VideoURLPayload carries the accepted-provider list of a video_url setting.
type VideoURLPayload struct {
	Accept  []string
	Present bool // true when the accept key exists
	IsArray bool // false when accept exists but is not an array
}

func (RangePayload) settingPayload()      {}
func (OptionsPayload) settingPayload()    {}
func (ListPayload) settingPayload()       {}
func (MetaobjectPayload) settingPayload() {}
func (VideoURLPayload) settingPayload()   {}

// Option is a label/value pair used by enumeration settings.
type Option struct {
	Label string
	Value string
}

// Block is a reusable nested component definition.
type Block struct {
	Type     string
	Name     string
	Limit    *int
	Settings []Setting
}

// Reserved reports whether the block is a reserved dynamic marker.
func (b Block) Reserved() bool {
	return IsReservedBlockType(b.Type)
}

// Preset is a named default configuration.
type Preset struct {
	Name     string
	Settings map[string]any // setting identifier -> default value
	Blocks   []PresetBlock
}

// PresetBlock is a block instantiation reference inside a preset.
type PresetBlock struct {
	Type     string
	Settings map[string]any
}

// InformationalTypes are setting kinds that display static content and carry
// no identifier or label.
var InformationalTypes = map[string]bool{
	"header":    true,
	"paragraph": true,
}

// KnownSettingTypes is the allow-list of setting kinds.
var KnownSettingTypes = map[string]bool{
	"article":          true,
	"blog":             true,
	"checkbox":         true,
	"collection":       true,
	"collection_list":  true,
	"color":            true,
	"color_background": true,
	"color_scheme":     true,
	"font_picker":      true,
	"header":           true,
	"html":             true,
	"image_picker":     true,
	"inline_richtext":  true,
	"link_list":        true,
	"liquid":           true,
	"metaobject":       true,
	"number":           true,
	"page":             true,
	"paragraph":        true,
	"product":          true,
	"product_list":     true,
	"radio":            true,
	"range":            true,
	"richtext":         true,
	"select":           true,
	"text":             true,
	"text_alignment":   true,
	"textarea":         true,
	"url":              true,
	"video":            true,
	"video_url":        true,
}
