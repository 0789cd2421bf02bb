package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *ParagraphProperties
	// Content maintains the order of runs and hyperlinks
	Content []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// AddRun appends a run and returns it
func (p *Paragraph) AddRun(run *Run) *Run {
	p.Content = append(p.Content, run)
	return run
}

// Runs returns the direct child runs of the paragraph (runs nested in
// hyperlinks are not included)
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, content := range p.Content {
		if r, ok := content.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// StyleID returns the referenced paragraph style or ""
func (p *Paragraph) StyleID() string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := e.EncodeElement(p.Properties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}

	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
				return err
			}
		case *Hyperlink:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:hyperlink"}}); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var texts []string
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			texts = append(texts, c.GetText())
		case *Hyperlink:
			texts = append(texts, c.GetText())
		}
	}
	return strings.Join(texts, "")
}

// ParagraphProperties represents paragraph formatting properties.
// Children are written in schema order.
type ParagraphProperties struct {
	Style       *Style
	KeepNext    bool
	Numbering   *NumberingProperties
	Spacing     *Spacing
	Indentation *Indentation
	Alignment   *Alignment
	// RunProperties are the paragraph mark run properties
	RunProperties *RunProperties
}

// MarshalXML implements custom XML marshaling for ParagraphProperties
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:pStyle"}}); err != nil {
			return err
		}
	}

	if p.KeepNext {
		if err := encodeEmpty(e, "w:keepNext"); err != nil {
			return err
		}
	}

	if p.Numbering != nil {
		if err := e.EncodeElement(p.Numbering, xml.StartElement{Name: xml.Name{Local: "w:numPr"}}); err != nil {
			return err
		}
	}

	if p.Spacing != nil {
		if err := e.EncodeElement(p.Spacing, xml.StartElement{Name: xml.Name{Local: "w:spacing"}}); err != nil {
			return err
		}
	}

	if p.Indentation != nil {
		if err := e.EncodeElement(p.Indentation, xml.StartElement{Name: xml.Name{Local: "w:ind"}}); err != nil {
			return err
		}
	}

	if p.Alignment != nil {
		if err := e.EncodeElement(p.Alignment, xml.StartElement{Name: xml.Name{Local: "w:jc"}}); err != nil {
			return err
		}
	}

	if p.RunProperties != nil {
		if err := e.EncodeElement(p.RunProperties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Alignment represents text alignment
type Alignment struct {
	Val string `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for Alignment
func (a Alignment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:jc"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: a.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Indentation represents paragraph indentation in twips.
// A negative FirstLine is written as a hanging indent.
type Indentation struct {
	Left      int
	Right     int
	FirstLine int
}

// MarshalXML implements custom XML marshaling for Indentation
func (i Indentation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:ind"}
	start.Attr = []xml.Attr{intAttr("w:left", i.Left)}

	if i.Right != 0 {
		start.Attr = append(start.Attr, intAttr("w:right", i.Right))
	}
	switch {
	case i.FirstLine > 0:
		start.Attr = append(start.Attr, intAttr("w:firstLine", i.FirstLine))
	case i.FirstLine < 0:
		start.Attr = append(start.Attr, intAttr("w:hanging", -i.FirstLine))
	}
	return e.EncodeElement(struct{}{}, start)
}

// Spacing represents paragraph spacing in twips; Line is in 240ths of a
// line when LineRule is "auto"
type Spacing struct {
	Before int
	After  int
	// AfterSet writes After even when it is zero
	AfterSet bool
	Line     int
	LineRule string
}

// MarshalXML implements custom XML marshaling for Spacing
func (s Spacing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:spacing"}
	start.Attr = []xml.Attr{}

	if s.Before != 0 {
		start.Attr = append(start.Attr, intAttr("w:before", s.Before))
	}
	if s.After != 0 || s.AfterSet {
		start.Attr = append(start.Attr, intAttr("w:after", s.After))
	}
	if s.Line != 0 {
		start.Attr = append(start.Attr, intAttr("w:line", s.Line))
	}
	if s.LineRule != "" {
		start.Attr = append(start.Attr, attr("w:lineRule", s.LineRule))
	}

	// Self-closing element
	return e.EncodeElement(struct{}{}, start)
}

// Hyperlink represents a hyperlink in the document
type Hyperlink struct {
	// ID is the relationship id of the external target
	ID      string
	History bool
	Runs    []Run
}

// isParagraphContent implements the ParagraphContent interface
func (h Hyperlink) isParagraphContent() {}

// MarshalXML implements custom XML marshaling for Hyperlink to ensure proper namespacing
func (h Hyperlink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:hyperlink"}
	start.Attr = []xml.Attr{}
	if h.ID != "" {
		start.Attr = append(start.Attr, attr("r:id", h.ID))
	}
	if h.History {
		start.Attr = append(start.Attr, attr("w:history", "1"))
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i := range h.Runs {
		if err := e.EncodeElement(&h.Runs[i], xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a hyperlink
func (h *Hyperlink) GetText() string {
	var texts []string
	for i := range h.Runs {
		texts = append(texts, h.Runs[i].GetText())
	}
	return strings.Join(texts, "")
}
