package docxwriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
	"golang.org/x/text/unicode/norm"
)

// Page geometry: US Letter with one inch margins
var (
	pageWidth  = Inches(8.5)
	pageHeight = Inches(11)
	pageMargin = Pt(72)
)

// Builder is the in-memory document of a single build. It is owned by one
// goroutine for its whole life and discarded after Save or on error.
type Builder struct {
	registry *Registry
	doc      *xml.Document
	rels     *Relationships
	media    []mediaPart
	props    DocumentProperties
	pictures *PictureCache

	nextDrawingID int
}

// NewBuilder returns an empty document using registry for named styles.
// A nil registry selects DefaultRegistry.
func NewBuilder(registry *Registry) *Builder {
	if registry == nil {
		registry = DefaultRegistry()
	}

	doc := xml.NewDocument()
	doc.Body.SectionProperties = &xml.SectionProperties{
		PageSize: &xml.PageSize{Width: pageWidth.Twips(), Height: pageHeight.Twips()},
		PageMargins: &xml.PageMargins{
			Top:    pageMargin.Twips(),
			Right:  pageMargin.Twips(),
			Bottom: pageMargin.Twips(),
			Left:   pageMargin.Twips(),
			Header: Inches(0.5).Twips(),
			Footer: Inches(0.5).Twips(),
		},
	}

	rels := newRelationships()
	rels.add(stylesRelationType, "styles.xml", "")
	rels.add(numberingRelationType, "numbering.xml", "")

	return &Builder{
		registry:      registry,
		doc:           doc,
		rels:          rels,
		props:         NewDocumentProperties("", "", "", time.Now()),
		nextDrawingID: 1,
	}
}

// Registry returns the style registry of the document
func (b *Builder) Registry() *Registry {
	return b.registry
}

// Document returns the underlying element tree
func (b *Builder) Document() *xml.Document {
	return b.doc
}

// Len returns the number of top-level body elements
func (b *Builder) Len() int {
	return b.doc.Body.Len()
}

// Properties returns the package metadata
func (b *Builder) Properties() DocumentProperties {
	return b.props
}

// SetProperties replaces the package metadata
func (b *Builder) SetProperties(p DocumentProperties) {
	b.props = p
}

// SetPictureCache shares decoded pictures with other builds. A nil cache
// decodes every image on use.
func (b *Builder) SetPictureCache(pc *PictureCache) {
	b.pictures = pc
}

// Relationships returns a copy of the main document part's relationships
func (b *Builder) Relationships() []Relationship {
	rels := make([]Relationship, len(b.rels.Relationship))
	copy(rels, b.rels.Relationship)
	return rels
}

// style looks up a named style of the given kind
func (b *Builder) style(name string, kind StyleKind) (*Style, error) {
	s, ok := b.registry.Get(name)
	if !ok {
		return nil, &RenderError{Kind: "style", Message: fmt.Sprintf("style %q is not defined", name)}
	}
	if s.Kind != kind {
		return nil, &RenderError{Kind: "style", Message: fmt.Sprintf("style %q is a %s style, not %s", name, s.Kind, kind)}
	}
	return s, nil
}

// newRun builds a text run with NFC-normalized text
func newRun(text string, props *xml.RunProperties) *xml.Run {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return xml.NewTextRun(norm.NFC.String(text), props)
}

// AddParagraph appends a paragraph holding text in one run. An empty style
// leaves the paragraph on the document default; an empty text adds no run.
func (b *Builder) AddParagraph(text, style string) (*xml.Paragraph, error) {
	p := &xml.Paragraph{}
	if style != "" {
		s, err := b.style(style, ParagraphStyle)
		if err != nil {
			return nil, err
		}
		p.Properties = &xml.ParagraphProperties{Style: &xml.Style{Val: s.ID()}}
	}
	if text != "" {
		p.AddRun(newRun(text, nil))
	}
	b.doc.Body.Append(p)
	return p, nil
}

// AddHeading appends a heading paragraph. Level 0 uses the Title style,
// levels 1 to 9 use "Heading N".
func (b *Builder) AddHeading(text string, level int) (*xml.Paragraph, error) {
	if level < 0 || level > 9 {
		return nil, &RenderError{Kind: "heading", Message: fmt.Sprintf("heading level %d out of range 0-9", level)}
	}
	name := "Title"
	if level > 0 {
		name = fmt.Sprintf("Heading %d", level)
	}
	p, err := b.AddParagraph(text, name)
	if err != nil {
		return nil, &RenderError{Kind: "heading", Message: fmt.Sprintf("no style for heading level %d", level), Cause: err}
	}
	p.Properties.KeepNext = true
	return p, nil
}

// textWidth is the usable width between the page margins
func (b *Builder) textWidth() Length {
	return pageWidth - 2*pageMargin
}

// AddTable appends a rows x cols table with evenly divided columns and a
// fixed layout. Every cell starts with one empty paragraph.
func (b *Builder) AddTable(rows, cols int, style string) (*xml.Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &RenderError{Kind: "table", Message: fmt.Sprintf("invalid table size %dx%d", rows, cols)}
	}

	props := &xml.TableProperties{
		Width:  &xml.Width{Type: "auto", Val: 0},
		Layout: &xml.TableLayout{Type: "fixed"},
		Look:   &xml.TableLook{Val: "04A0", FirstRow: "1", LastRow: "0", FirstColumn: "1", LastColumn: "0", NoHBand: "0", NoVBand: "1"},
	}
	if style != "" {
		s, err := b.style(style, TableStyle)
		if err != nil {
			return nil, err
		}
		props.Style = &xml.Style{Val: s.ID()}
	}

	colWidth := b.textWidth().Twips() / cols
	grid := &xml.TableGrid{Columns: make([]xml.GridColumn, cols)}
	for j := range grid.Columns {
		grid.Columns[j].Width = colWidth
	}

	t := &xml.Table{Properties: props, Grid: grid, Rows: make([]xml.TableRow, rows)}
	for i := range t.Rows {
		cells := make([]xml.TableCell, cols)
		for j := range cells {
			cells[j] = xml.TableCell{
				Properties: &xml.TableCellProperties{Width: &xml.Width{Type: "dxa", Val: colWidth}},
				Paragraphs: []xml.Paragraph{{}},
			}
		}
		t.Rows[i].Cells = cells
	}

	b.doc.Body.Append(t)
	return t, nil
}

// SetCellText replaces the content of a cell with one paragraph and one run
func SetCellText(cell *xml.TableCell, text string) *xml.Run {
	run := newRun(text, nil)
	cell.Paragraphs = []xml.Paragraph{{Content: []xml.ParagraphContent{run}}}
	return run
}

// AddPageBreak appends a paragraph holding a page break
func (b *Builder) AddPageBreak() *xml.Paragraph {
	p := &xml.Paragraph{}
	p.AddRun(&xml.Run{Content: []xml.RunContent{&xml.Break{Type: "page"}}})
	b.doc.Body.Append(p)
	return p
}
