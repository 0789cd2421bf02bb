package docxwriter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

// DefaultWatermarkText is the attribution rendered when no watermark is configured
const DefaultWatermarkText = "\n\n\n\n\nTHIS WAS MADE BY Karar Haider - @kr__4r\n\n\n\n\n"

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as RRGGBB, the form used by w:color
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Color schemes
var Colors = map[string]RGB{
	"primary":   {0, 0, 0},
	"secondary": {128, 128, 128},
	"accent":    {0, 112, 192},
	"highlight": {255, 255, 0},
	"error":     {255, 0, 0},
	"success":   {0, 176, 80},
	"warning":   {255, 192, 0},
	"info":      {0, 176, 240},
	"white":     {255, 255, 255},
}

// Font families
var Fonts = map[string]string{
	"serif":     "Times New Roman",
	"sans":      "Arial",
	"mono":      "Courier New",
	"heading":   "Times New Roman",
	"modern":    "Calibri",
	"elegant":   "Georgia",
	"technical": "Consolas",
}

// Font sizes
var Sizes = map[string]Length{
	"tiny":     Pt(8),
	"small":    Pt(10),
	"normal":   Pt(12),
	"large":    Pt(14),
	"huge":     Pt(16),
	"title":    Pt(18),
	"subtitle": Pt(14),
	"heading1": Pt(16),
	"heading2": Pt(14),
	"heading3": Pt(12),
}

// Line spacing multiples
var LineSpacing = map[string]float64{
	"single":         1.0,
	"one_point_five": 1.5,
	"double":         2.0,
	"triple":         3.0,
}

// Alignment is a paragraph justification value
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// StyleKind distinguishes paragraph, character and table styles
type StyleKind int

const (
	ParagraphStyle StyleKind = iota
	CharacterStyle
	TableStyle
)

func (k StyleKind) String() string {
	switch k {
	case CharacterStyle:
		return xml.StyleTypeCharacter
	case TableStyle:
		return xml.StyleTypeTable
	default:
		return xml.StyleTypeParagraph
	}
}

// Style is a named formatting definition. Zero values mean "inherit".
type Style struct {
	Name    string
	Kind    StyleKind
	BasedOn string

	Font   string
	Size   Length
	Bold   bool
	Italic bool
	// Underline is a w:u value such as "single"
	Underline string
	Color     *RGB

	Alignment   Alignment
	LineSpacing float64
	SpaceBefore Length
	SpaceAfter  Length
	// SpaceAfterSet writes SpaceAfter even when it is zero
	SpaceAfterSet   bool
	LeftIndent      Length
	RightIndent     Length
	FirstLineIndent Length

	// NumID attaches the style to a numbering instance (list styles)
	NumID int
	// Borders draws single borders on every edge (table styles)
	Borders bool
}

// ID returns the style identifier referenced from document markup
func (s Style) ID() string {
	return StyleID(s.Name)
}

// StyleID converts a display name such as "Heading 1" to its identifier "Heading1"
func StyleID(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

// Registry is a set of named styles. It is read-only once built and may be
// shared between builds.
type Registry struct {
	styles map[string]Style
	order  []string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{styles: make(map[string]Style)}
}

// Register adds or replaces a style. It must not be called on a registry
// that is already in use by a build.
func (r *Registry) Register(s Style) {
	if _, exists := r.styles[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.styles[s.Name] = s
}

// Get returns the named style
func (r *Registry) Get(name string) (*Style, bool) {
	s, ok := r.styles[name]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Has reports whether the named style exists
func (r *Registry) Has(name string) bool {
	_, ok := r.styles[name]
	return ok
}

// Names returns the style names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of styles
func (r *Registry) Len() int {
	return len(r.styles)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the built-in research-paper style set
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = newDefaultRegistry()
	})
	return defaultRegistry
}

const (
	bulletNumID   = 1
	numberedNumID = 2
)

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	serif := Fonts["serif"]
	heading := Fonts["heading"]
	normal := Sizes["normal"]
	boxed := func(name string, color *RGB, font string) Style {
		return Style{
			Name: name, BasedOn: "Normal", Font: font, Size: normal, Color: color,
			LeftIndent: Pt(36), RightIndent: Pt(36), SpaceBefore: Pt(12), SpaceAfter: Pt(12),
		}
	}
	color := func(name string) *RGB {
		c := Colors[name]
		return &c
	}

	r.Register(Style{
		Name: "Normal", Font: serif, Size: normal,
		LineSpacing: LineSpacing["double"], SpaceAfterSet: true, FirstLineIndent: Pt(36),
	})
	r.Register(Style{
		Name: "Title", BasedOn: "Normal", Font: heading, Size: Sizes["title"], Bold: true,
		Alignment: AlignCenter, SpaceAfter: Pt(24),
	})
	r.Register(Style{
		Name: "Subtitle", BasedOn: "Normal", Font: heading, Size: Sizes["subtitle"], Italic: true,
		Alignment: AlignCenter, SpaceAfter: Pt(24),
	})
	for level := 1; level <= 9; level++ {
		size, ok := Sizes[fmt.Sprintf("heading%d", level)]
		if !ok {
			size = normal
		}
		r.Register(Style{
			Name: fmt.Sprintf("Heading %d", level), BasedOn: "Normal", Font: heading, Size: size, Bold: true,
			SpaceBefore: Pt(18), SpaceAfter: Pt(12), SpaceAfterSet: true,
		})
	}
	r.Register(Style{
		Name: "Abstract", BasedOn: "Normal", Font: serif, Size: normal,
		LineSpacing: LineSpacing["double"], SpaceAfter: Pt(24),
	})
	r.Register(Style{
		Name: "References", BasedOn: "Normal", Font: serif, Size: normal,
		LineSpacing: LineSpacing["double"], SpaceAfter: Pt(12), LeftIndent: Pt(36), FirstLineIndent: Pt(-36),
	})
	r.Register(Style{
		Name: "Quote", BasedOn: "Normal", Font: serif, Size: normal, Italic: true,
		LeftIndent: Pt(36), RightIndent: Pt(36), SpaceBefore: Pt(12), SpaceAfter: Pt(12),
	})
	r.Register(Style{
		Name: "List Bullet", BasedOn: "Normal", Font: serif, Size: normal,
		LeftIndent: Pt(36), FirstLineIndent: Pt(-18), NumID: bulletNumID,
	})
	r.Register(Style{
		Name: "List Number", BasedOn: "Normal", Font: serif, Size: normal,
		LeftIndent: Pt(36), FirstLineIndent: Pt(-18), NumID: numberedNumID,
	})
	r.Register(Style{
		Name: "Table Grid", Kind: TableStyle, Font: serif, Size: normal, Alignment: AlignLeft, Borders: true,
	})
	r.Register(Style{
		Name: "Caption", BasedOn: "Normal", Font: serif, Size: Sizes["small"], Italic: true,
		Alignment: AlignCenter, SpaceBefore: Pt(6), SpaceAfter: Pt(6),
	})
	r.Register(Style{
		Name: "Footnote", BasedOn: "Normal", Font: serif, Size: Sizes["tiny"],
		LeftIndent: Pt(36), FirstLineIndent: Pt(-18),
	})
	r.Register(Style{Name: "Header", BasedOn: "Normal", Font: serif, Size: Sizes["small"], Alignment: AlignRight})
	r.Register(Style{Name: "Footer", BasedOn: "Normal", Font: serif, Size: Sizes["small"], Alignment: AlignCenter})
	r.Register(boxed("Code", nil, Fonts["mono"]))
	r.Register(boxed("Warning", color("warning"), serif))
	r.Register(boxed("Error", color("error"), serif))
	r.Register(boxed("Success", color("success"), serif))
	r.Register(Style{
		Name: "Hidden", BasedOn: "Normal", Font: heading, Size: normal, Color: color("white"), Alignment: AlignCenter,
	})
	r.Register(Style{Name: "Hyperlink", Kind: CharacterStyle, Color: color("accent"), Underline: "single"})
	return r
}

// runProperties returns the character formatting of the style
func (s Style) runProperties() *xml.RunProperties {
	props := &xml.RunProperties{}
	if s.Font != "" {
		props.Font = &xml.Font{ASCII: s.Font}
	}
	if s.Bold {
		props.Bold = &xml.Empty{}
	}
	if s.Italic {
		props.Italic = &xml.Empty{}
	}
	if s.Color != nil {
		props.Color = &xml.Color{Val: s.Color.Hex()}
	}
	if s.Size > 0 {
		props.Size = &xml.Size{Val: s.Size.HalfPoints()}
		props.SizeCs = &xml.Size{Val: s.Size.HalfPoints()}
	}
	if s.Underline != "" {
		props.Underline = &xml.UnderlineStyle{Val: s.Underline}
	}
	return props
}

// paragraphProperties returns the paragraph formatting of the style, or nil
func (s Style) paragraphProperties() *xml.ParagraphProperties {
	props := &xml.ParagraphProperties{}
	set := false
	if s.NumID != 0 {
		props.Numbering = &xml.NumberingProperties{NumID: s.NumID}
		set = true
	}
	if s.SpaceBefore != 0 || s.SpaceAfter != 0 || s.SpaceAfterSet || s.LineSpacing != 0 {
		spacing := &xml.Spacing{Before: s.SpaceBefore.Twips(), After: s.SpaceAfter.Twips(), AfterSet: s.SpaceAfterSet}
		if s.LineSpacing != 0 {
			spacing.Line = int(s.LineSpacing * 240)
			spacing.LineRule = "auto"
		}
		props.Spacing = spacing
		set = true
	}
	if s.LeftIndent != 0 || s.RightIndent != 0 || s.FirstLineIndent != 0 {
		props.Indentation = &xml.Indentation{
			Left:      s.LeftIndent.Twips(),
			Right:     s.RightIndent.Twips(),
			FirstLine: s.FirstLineIndent.Twips(),
		}
		set = true
	}
	if s.Alignment != "" {
		props.Alignment = &xml.Alignment{Val: string(s.Alignment)}
		set = true
	}
	if !set {
		return nil
	}
	return props
}

func (s Style) definition() xml.StyleDefinition {
	def := xml.StyleDefinition{
		Type:          s.Kind.String(),
		StyleID:       s.ID(),
		Name:          s.Name,
		Default:       s.Name == "Normal",
		QFormat:       s.Kind != TableStyle,
		RunProperties: s.runProperties(),
	}
	if s.BasedOn != "" {
		def.BasedOn = StyleID(s.BasedOn)
	}
	if s.Kind != CharacterStyle {
		def.ParagraphProperties = s.paragraphProperties()
	}
	if s.Kind == TableStyle {
		def.TableProperties = &xml.TableProperties{}
		if s.Borders {
			def.TableProperties.Borders = singleTableBorders()
		}
	}
	return def
}

func singleTableBorders() *xml.TableBorders {
	edge := func() *xml.BorderProperties {
		return &xml.BorderProperties{Val: "single", Sz: "4", Space: "0", Color: "auto"}
	}
	return &xml.TableBorders{
		Top: edge(), Left: edge(), Bottom: edge(), Right: edge(),
		InsideH: edge(), InsideV: edge(),
	}
}

// stylesPart builds word/styles.xml for the registry. lang sets the
// proofing language of the document defaults.
func (r *Registry) stylesPart(lang string) *xml.Styles {
	styles := &xml.Styles{
		DefaultRunProperties: &xml.RunProperties{
			Font: &xml.Font{ASCII: Fonts["serif"]},
			Size: &xml.Size{Val: Sizes["normal"].HalfPoints()},
		},
	}
	if lang != "" {
		styles.DefaultRunProperties.Lang = &xml.Lang{Val: lang}
	}
	for _, name := range r.order {
		styles.Styles = append(styles.Styles, r.styles[name].definition())
	}
	return styles
}

// defaultNumbering builds word/numbering.xml with one bullet and one decimal
// list definition, nine levels each
func defaultNumbering() *xml.Numbering {
	bullets := []string{"•", "o", "▪"}
	var bullet, decimal []xml.NumberingLevel
	for lvl := 0; lvl < 9; lvl++ {
		left := Pt(36 * float64(lvl+1)).Twips()
		hanging := Pt(18).Twips()
		bullet = append(bullet, xml.NumberingLevel{
			Level: lvl, Start: 1, Format: "bullet", Text: bullets[lvl%len(bullets)],
			Left: left, Hanging: hanging,
		})
		decimal = append(decimal, xml.NumberingLevel{
			Level: lvl, Start: 1, Format: "decimal", Text: fmt.Sprintf("%%%d.", lvl+1),
			Left: left, Hanging: hanging,
		})
	}
	return &xml.Numbering{
		Abstract: []xml.AbstractNum{
			{ID: 0, Levels: bullet},
			{ID: 1, Levels: decimal},
		},
		Instances: []xml.NumInstance{
			{ID: bulletNumID, Abstract: 0},
			{ID: numberedNumID, Abstract: 1},
		},
	}
}

// SortedNames returns the style names in alphabetical order
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
