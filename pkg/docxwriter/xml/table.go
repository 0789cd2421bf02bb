package xml

import (
	"encoding/xml"
	"strings"
)

// Table represents a table in the document
type Table struct {
	Properties *TableProperties
	Grid       *TableGrid
	Rows       []TableRow
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// Cell returns the cell at row i, column j or nil when out of range
func (t *Table) Cell(i, j int) *TableCell {
	if i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i].Cells) {
		return nil
	}
	return &t.Rows[i].Cells[j]
}

// ColumnCount returns the number of grid columns
func (t *Table) ColumnCount() int {
	if t.Grid == nil {
		return 0
	}
	return len(t.Grid.Columns)
}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil {
		if err := e.EncodeElement(t.Properties, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	}

	if t.Grid != nil {
		if err := e.EncodeElement(t.Grid, xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
			return err
		}
	}

	for i := range t.Rows {
		if err := e.EncodeElement(&t.Rows[i], xml.StartElement{Name: xml.Name{Local: "w:tr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableProperties represents table formatting properties
type TableProperties struct {
	Style   *Style
	Width   *Width
	Borders *TableBorders
	Layout  *TableLayout
	Look    *TableLook
}

// MarshalXML implements custom XML marshaling for TableProperties
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:tblStyle"}}); err != nil {
			return err
		}
	}

	if p.Width != nil {
		if err := e.EncodeElement(p.Width, xml.StartElement{Name: xml.Name{Local: "w:tblW"}}); err != nil {
			return err
		}
	}

	if p.Borders != nil {
		if err := e.EncodeElement(p.Borders, xml.StartElement{Name: xml.Name{Local: "w:tblBorders"}}); err != nil {
			return err
		}
	}

	if p.Layout != nil {
		if err := e.EncodeElement(p.Layout, xml.StartElement{Name: xml.Name{Local: "w:tblLayout"}}); err != nil {
			return err
		}
	}

	if p.Look != nil {
		if err := e.EncodeElement(p.Look, xml.StartElement{Name: xml.Name{Local: "w:tblLook"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableLayout represents table layout mode
type TableLayout struct {
	Type string
}

// MarshalXML implements custom XML marshaling for TableLayout
func (t TableLayout) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblLayout"}
	start.Attr = []xml.Attr{attr("w:type", t.Type)}
	return e.EncodeElement(struct{}{}, start)
}

// TableLook represents table style options
type TableLook struct {
	Val         string
	FirstRow    string
	LastRow     string
	FirstColumn string
	LastColumn  string
	NoHBand     string
	NoVBand     string
}

// MarshalXML implements custom XML marshaling for TableLook
func (t TableLook) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblLook"}
	start.Attr = []xml.Attr{}

	for _, a := range []struct{ name, val string }{
		{"w:val", t.Val},
		{"w:firstRow", t.FirstRow},
		{"w:lastRow", t.LastRow},
		{"w:firstColumn", t.FirstColumn},
		{"w:lastColumn", t.LastColumn},
		{"w:noHBand", t.NoHBand},
		{"w:noVBand", t.NoVBand},
	} {
		if a.val != "" {
			start.Attr = append(start.Attr, attr(a.name, a.val))
		}
	}

	return e.EncodeElement(struct{}{}, start)
}

// TableGrid represents table column definitions
type TableGrid struct {
	Columns []GridColumn
}

// MarshalXML implements custom XML marshaling for TableGrid
func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, col := range g.Columns {
		if err := encodeEmpty(e, "w:gridCol", intAttr("w:w", col.Width)); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GridColumn represents a table column width in twips
type GridColumn struct {
	Width int
}

// TableRow represents a row in a table
type TableRow struct {
	Properties *TableRowProperties
	Cells      []TableCell
}

// MarshalXML implements custom XML marshaling for TableRow to ensure proper namespacing
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:trPr"}}); err != nil {
			return err
		}
	}

	for i := range r.Cells {
		if err := e.EncodeElement(&r.Cells[i], xml.StartElement{Name: xml.Name{Local: "w:tc"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRowProperties represents row properties
type TableRowProperties struct {
	// CantSplit keeps the row on one page
	CantSplit bool
	// Header repeats the row at the top of every page
	Header bool
}

// MarshalXML implements custom XML marshaling for TableRowProperties
func (p TableRowProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:trPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.CantSplit {
		if err := encodeEmpty(e, "w:cantSplit"); err != nil {
			return err
		}
	}

	if p.Header {
		if err := encodeEmpty(e, "w:tblHeader"); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a cell in a table
type TableCell struct {
	Properties *TableCellProperties
	Paragraphs []Paragraph
}

// EnsureProperties returns the cell properties, creating them when missing
func (c *TableCell) EnsureProperties() *TableCellProperties {
	if c.Properties == nil {
		c.Properties = &TableCellProperties{}
	}
	return c.Properties
}

// MarshalXML implements custom XML marshaling for TableCell to ensure proper namespacing
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := e.EncodeElement(c.Properties, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}); err != nil {
			return err
		}
	}

	// A cell must end with a paragraph
	if len(c.Paragraphs) == 0 {
		if err := e.EncodeElement(&Paragraph{}, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}
	for i := range c.Paragraphs {
		if err := e.EncodeElement(&c.Paragraphs[i], xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all paragraphs in a cell
func (c *TableCell) GetText() string {
	var texts []string
	for i := range c.Paragraphs {
		if text := c.Paragraphs[i].GetText(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// TableCellProperties represents cell properties
type TableCellProperties struct {
	Width     *Width
	TcBorders *TableCellBorders
}

// MarshalXML implements custom XML marshaling for TableCellProperties
func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tcPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Width != nil {
		if err := e.EncodeElement(p.Width, xml.StartElement{Name: xml.Name{Local: "w:tcW"}}); err != nil {
			return err
		}
	}

	if p.TcBorders != nil {
		if err := e.EncodeElement(p.TcBorders, xml.StartElement{Name: xml.Name{Local: "w:tcBorders"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Width represents width settings
type Width struct {
	Type string
	Val  int
}

// MarshalXML implements custom XML marshaling for Width
func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{intAttr("w:w", w.Val), attr("w:type", w.Type)}
	return e.EncodeElement(struct{}{}, start)
}

// TableBorders represents borders for a table (w:tblBorders)
// This includes inner borders (insideH, insideV) in addition to outer borders
type TableBorders struct {
	Top     *BorderProperties
	Left    *BorderProperties
	Bottom  *BorderProperties
	Right   *BorderProperties
	InsideH *BorderProperties
	InsideV *BorderProperties
}

// MarshalXML implements custom XML marshaling for TableBorders
func (b TableBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblBorders"}
	return encodeBorders(e, start, []namedBorder{
		{"w:top", b.Top},
		{"w:left", b.Left},
		{"w:bottom", b.Bottom},
		{"w:right", b.Right},
		{"w:insideH", b.InsideH},
		{"w:insideV", b.InsideV},
	})
}

// TableCellBorders represents borders for a table cell
type TableCellBorders struct {
	Top    *BorderProperties
	Left   *BorderProperties
	Bottom *BorderProperties
	Right  *BorderProperties
}

// MarshalXML implements custom XML marshaling for TableCellBorders
func (b TableCellBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tcBorders"}
	// Order matters in Word XML
	return encodeBorders(e, start, []namedBorder{
		{"w:top", b.Top},
		{"w:left", b.Left},
		{"w:bottom", b.Bottom},
		{"w:right", b.Right},
	})
}

type namedBorder struct {
	name   string
	border *BorderProperties
}

func encodeBorders(e *xml.Encoder, start xml.StartElement, borders []namedBorder) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, nb := range borders {
		if nb.border == nil {
			continue
		}
		if err := e.EncodeElement(nb.border, xml.StartElement{Name: xml.Name{Local: nb.name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// BorderProperties represents border styling
type BorderProperties struct {
	Val   string
	Sz    string
	Space string
	Color string
}

// MarshalXML implements custom XML marshaling for BorderProperties
func (b BorderProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{}

	if b.Val != "" {
		start.Attr = append(start.Attr, attr("w:val", b.Val))
	}
	if b.Sz != "" {
		start.Attr = append(start.Attr, attr("w:sz", b.Sz))
	}
	if b.Space != "" {
		start.Attr = append(start.Attr, attr("w:space", b.Space))
	}
	if b.Color != "" {
		start.Attr = append(start.Attr, attr("w:color", b.Color))
	}

	// Self-closing element
	return e.EncodeElement(struct{}{}, start)
}
