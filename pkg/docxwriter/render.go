package docxwriter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/markup"
	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

// Fixed run formatting applied by the renderers
var (
	headingRunSize   = Sizes["large"]
	bodyRunSize      = Sizes["normal"]
	titleRunSize     = Sizes["title"]
	tableHeaderSize  = Sizes["normal"]
	watermarkRunSize = Sizes["normal"]
	listIndentStep   = Pt(36)
	listHanging      = Pt(18)
)

// formatRuns applies fn to the properties of every direct run of p
func formatRuns(p *xml.Paragraph, fn func(*xml.RunProperties)) {
	for _, run := range p.Runs() {
		fn(run.EnsureProperties())
	}
}

func setFont(props *xml.RunProperties, font string, size Length) {
	if font != "" {
		props.Font = &xml.Font{ASCII: font}
	}
	if size > 0 {
		props.Size = &xml.Size{Val: size.HalfPoints()}
		props.SizeCs = &xml.Size{Val: size.HalfPoints()}
	}
}

// RenderTitle appends the document title: Title style, bold, centered
func RenderTitle(b *Builder, title string) error {
	p, err := b.AddHeading(title, 0)
	if err != nil {
		return err
	}
	p.Properties.Alignment = &xml.Alignment{Val: string(AlignCenter)}
	formatRuns(p, func(props *xml.RunProperties) {
		setFont(props, "", titleRunSize)
		props.Bold = &xml.Empty{}
	})
	return nil
}

// RenderSection appends a heading and its body. The body is split on blank
// lines; a unit starting with "- " or "* " becomes a bullet list, any
// other unit one paragraph.
func RenderSection(b *Builder, n SectionNode) error {
	heading, err := b.AddHeading(strings.TrimSpace(n.Heading), n.Level)
	if err != nil {
		return err
	}
	formatRuns(heading, func(props *xml.RunProperties) {
		setFont(props, Fonts["heading"], headingRunSize)
		props.Bold = &xml.Empty{}
	})

	body := strings.ReplaceAll(n.Body, "\r\n", "\n")
	for _, unit := range strings.Split(body, "\n\n") {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}

		if isListUnit(unit) {
			if err := RenderList(b, ListNode{Items: listItems(unit), Type: ListBullet}); err != nil {
				return err
			}
			continue
		}

		p, err := b.AddParagraph(unit, n.Style)
		if err != nil {
			return err
		}
		formatRuns(p, func(props *xml.RunProperties) {
			setFont(props, Fonts["serif"], bodyRunSize)
		})
	}

	for _, link := range n.Links {
		p, err := b.AddParagraph("", n.Style)
		if err != nil {
			return err
		}
		if _, err := b.AddHyperlink(p, link.Text, link.URL); err != nil {
			return err
		}
	}
	return nil
}

func isListUnit(unit string) bool {
	return strings.HasPrefix(unit, "- ") || strings.HasPrefix(unit, "* ")
}

// listItems splits a list unit into items, stripping the leading markers.
// Lines left empty are dropped.
func listItems(unit string) []string {
	var items []string
	for _, line := range strings.Split(unit, "\n") {
		item := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-* \t"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// RenderTable appends a table. Empty rows are a no-op. Rows longer than
// row 0 are cut to its length; shorter rows leave trailing cells empty.
func RenderTable(b *Builder, n TableNode) error {
	if len(n.Rows) == 0 {
		return nil
	}
	cols := len(n.Rows[0])
	if cols == 0 {
		return &RenderError{Kind: "table", Message: "first row has no cells"}
	}
	if n.HeaderRows < 0 {
		return &RenderError{Kind: "table", Message: fmt.Sprintf("header rows must not be negative, got %d", n.HeaderRows)}
	}

	t, err := b.AddTable(len(n.Rows), cols, n.Style)
	if err != nil {
		return err
	}

	for i, row := range n.Rows {
		for j, text := range row {
			if j >= cols {
				break
			}
			SetCellText(t.Cell(i, j), text)
		}
	}

	for i := 0; i < n.HeaderRows && i < len(t.Rows); i++ {
		row := &t.Rows[i]
		row.Properties = &xml.TableRowProperties{Header: true, CantSplit: true}
		for j := range row.Cells {
			cell := &row.Cells[j]
			for k := range cell.Paragraphs {
				formatRuns(&cell.Paragraphs[k], func(props *xml.RunProperties) {
					props.Bold = &xml.Empty{}
					setFont(props, "", tableHeaderSize)
				})
			}
		}
	}

	if len(n.Borders) > 0 {
		borders, err := markup.CellBorders(n.Borders)
		if err != nil {
			return &RenderError{Kind: "table", Message: "invalid borders", Cause: err}
		}
		for i := range t.Rows {
			for j := range t.Rows[i].Cells {
				markup.SetCellBorders(&t.Rows[i].Cells[j], borders)
			}
		}
	}
	return nil
}

// ListIndent returns the left indent of a list item at level
func ListIndent(level int) Length {
	return listIndentStep * Length(level+1)
}

// RenderList appends one paragraph per item with the bullet or numbered
// list style, indented by level
func RenderList(b *Builder, n ListNode) error {
	if n.Level < 0 {
		return &RenderError{Kind: "list", Message: fmt.Sprintf("level must not be negative, got %d", n.Level)}
	}

	var styleName string
	switch n.Type {
	case ListBullet, "":
		styleName = "List Bullet"
	case ListNumbered:
		styleName = "List Number"
	default:
		return &RenderError{Kind: "list", Message: fmt.Sprintf("unknown list type %q", n.Type)}
	}
	style, err := b.style(styleName, ParagraphStyle)
	if err != nil {
		return err
	}

	ilvl := n.Level
	if ilvl > 8 {
		ilvl = 8
	}
	for _, item := range n.Items {
		p, err := b.AddParagraph(item, styleName)
		if err != nil {
			return err
		}
		if style.NumID != 0 {
			p.Properties.Numbering = &xml.NumberingProperties{Level: ilvl, NumID: style.NumID}
		}
		p.Properties.Indentation = &xml.Indentation{
			Left:      ListIndent(n.Level).Twips(),
			FirstLine: -listHanging.Twips(),
		}
	}
	return nil
}

// RenderImage embeds the picture at n.Path. Any failure is returned with
// the path attached.
func RenderImage(b *Builder, n ImageNode) error {
	if n.Width <= 0 || n.Height <= 0 {
		return &RenderError{Kind: "image", Path: n.Path, Message: fmt.Sprintf("invalid size %gx%g", n.Width, n.Height)}
	}

	pic, err := b.pictures.Load(n.Path)
	if err != nil {
		return &RenderError{Kind: "image", Path: n.Path, Cause: err}
	}

	if _, err := b.AddPicture(pic, filepath.Base(n.Path), Inches(n.Width), Inches(n.Height)); err != nil {
		return &RenderError{Kind: "image", Path: n.Path, Cause: err}
	}

	if n.Caption != "" {
		if _, err := b.AddParagraph(n.Caption, "Caption"); err != nil {
			return err
		}
	}
	return nil
}

// RenderPageBreak appends a page break when the node is enabled
func RenderPageBreak(b *Builder, n PageBreakNode) error {
	if n.Enabled {
		b.AddPageBreak()
	}
	return nil
}

// RenderWatermark appends the hidden attribution paragraph. An empty text
// renders nothing.
func RenderWatermark(b *Builder, text string) error {
	if text == "" {
		return nil
	}

	p, err := b.AddParagraph("", "Hidden")
	if err != nil {
		return err
	}
	p.Properties.Alignment = &xml.Alignment{Val: string(AlignCenter)}

	props := &xml.RunProperties{
		Bold:      &xml.Empty{},
		Italic:    &xml.Empty{},
		Color:     &xml.Color{Val: Colors["white"].Hex()},
		Underline: &xml.UnderlineStyle{Val: "single"},
	}
	setFont(props, Fonts["heading"], watermarkRunSize)
	p.AddRun(newRun(text, props))
	return nil
}

// Render draws one classified node
func Render(b *Builder, node Node) error {
	switch n := node.(type) {
	case SectionNode:
		return RenderSection(b, n)
	case TableNode:
		return RenderTable(b, n)
	case ListNode:
		return RenderList(b, n)
	case ImageNode:
		return RenderImage(b, n)
	case PageBreakNode:
		return RenderPageBreak(b, n)
	case nil:
		return &RenderError{Message: "nil node"}
	}
	return &RenderError{Message: fmt.Sprintf("unknown node type %T", node)}
}

// IsWatermark reports whether p is a watermark paragraph
func IsWatermark(p *xml.Paragraph) bool {
	return p != nil && p.StyleID() == StyleID("Hidden")
}
