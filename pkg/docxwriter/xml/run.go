package xml

import (
	"encoding/xml"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties
	// Content keeps text, breaks and drawings in order
	Content []RunContent
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// NewTextRun builds a run for text. Embedded newlines become line breaks.
func NewTextRun(text string, props *RunProperties) *Run {
	run := &Run{Properties: props}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			run.Content = append(run.Content, &Break{})
		}
		if line != "" {
			run.Content = append(run.Content, NewText(line))
		}
	}
	return run
}

// EnsureProperties returns the run properties, creating them when missing
func (r *Run) EnsureProperties() *RunProperties {
	if r.Properties == nil {
		r.Properties = &RunProperties{}
	}
	return r.Properties
}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	for _, content := range r.Content {
		switch c := content.(type) {
		case *Text:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:t"}}); err != nil {
				return err
			}
		case *Break:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:br"}}); err != nil {
				return err
			}
		case *Drawing:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:drawing"}}); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run. Breaks count as newlines.
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, content := range r.Content {
		switch c := content.(type) {
		case *Text:
			sb.WriteString(c.Content)
		case *Break:
			if c.Type == "" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// RunProperties represents run formatting properties.
// Children are written in schema order.
type RunProperties struct {
	Style     *RunStyle
	Font      *Font
	Bold      *Empty
	Italic    *Empty
	Color     *Color
	Size      *Size
	SizeCs    *Size // Complex script size
	Underline *UnderlineStyle
	Lang      *Lang
}

// IsBold reports whether bold is switched on
func (p *RunProperties) IsBold() bool {
	return p != nil && p.Bold != nil
}

// MarshalXML implements custom XML marshaling for RunProperties
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:rStyle"}}); err != nil {
			return err
		}
	}
	if p.Font != nil {
		if err := e.EncodeElement(p.Font, xml.StartElement{Name: xml.Name{Local: "w:rFonts"}}); err != nil {
			return err
		}
	}
	if p.Bold != nil {
		if err := encodeEmpty(e, "w:b"); err != nil {
			return err
		}
	}
	if p.Italic != nil {
		if err := encodeEmpty(e, "w:i"); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := encodeEmpty(e, "w:color", attr("w:val", p.Color.Val)); err != nil {
			return err
		}
	}
	if p.Size != nil {
		if err := e.EncodeElement(p.Size, xml.StartElement{Name: xml.Name{Local: "w:sz"}}); err != nil {
			return err
		}
	}
	if p.SizeCs != nil {
		if err := e.EncodeElement(p.SizeCs, xml.StartElement{Name: xml.Name{Local: "w:szCs"}}); err != nil {
			return err
		}
	}
	if p.Underline != nil {
		if err := encodeEmpty(e, "w:u", attr("w:val", p.Underline.Val)); err != nil {
			return err
		}
	}
	if p.Lang != nil {
		if err := e.EncodeElement(p.Lang, xml.StartElement{Name: xml.Name{Local: "w:lang"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Text represents text content
type Text struct {
	Space   string
	Content string
}

// isRunContent implements the RunContent interface
func (t Text) isRunContent() {}

// NewText returns a text element, preserving leading and trailing spaces
func NewText(content string) *Text {
	t := &Text{Content: content}
	if strings.TrimSpace(content) != content {
		t.Space = "preserve"
	}
	return t
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space == "preserve" {
		start.Attr = append(start.Attr, attr("xml:space", "preserve"))
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line, page or column break
type Break struct {
	Type string
}

// isRunContent implements the RunContent interface
func (b Break) isRunContent() {}

// MarshalXML implements xml.Marshaler to ensure Break is self-closing
func (b Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, attr("w:type", b.Type))
	}
	return e.EncodeElement(struct{}{}, start)
}

// Color represents text color as RRGGBB hex
type Color struct {
	Val string
}

// Size represents font size in half-points
type Size struct {
	Val int
}

// MarshalXML implements custom XML marshaling for Size
func (s Size) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	// Ensure the element has the w: prefix if it doesn't already
	if !strings.HasPrefix(start.Name.Local, "w:") {
		start.Name.Local = "w:" + start.Name.Local
	}
	start.Attr = []xml.Attr{intAttr("w:val", s.Val)}
	return e.EncodeElement(struct{}{}, start)
}

// Lang represents language settings
type Lang struct {
	Val      string
	EastAsia string
	Bidi     string
}

// MarshalXML implements custom XML marshaling for Lang
func (l Lang) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:lang"}
	start.Attr = []xml.Attr{}

	if l.Val != "" {
		start.Attr = append(start.Attr, attr("w:val", l.Val))
	}
	if l.EastAsia != "" {
		start.Attr = append(start.Attr, attr("w:eastAsia", l.EastAsia))
	}
	if l.Bidi != "" {
		start.Attr = append(start.Attr, attr("w:bidi", l.Bidi))
	}

	return e.EncodeElement(struct{}{}, start)
}

// Font represents font information. The same face is used for every script.
type Font struct {
	ASCII string
}

// MarshalXML implements custom XML marshaling for Font
func (f Font) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rFonts"}
	start.Attr = []xml.Attr{
		attr("w:ascii", f.ASCII),
		attr("w:hAnsi", f.ASCII),
		attr("w:cs", f.ASCII),
		attr("w:eastAsia", f.ASCII),
	}
	return e.EncodeElement(struct{}{}, start)
}

// RunStyle represents a run style reference
type RunStyle struct {
	Val string
}

// MarshalXML implements custom XML marshaling for RunStyle
func (s RunStyle) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rStyle"}
	start.Attr = []xml.Attr{attr("w:val", s.Val)}
	return e.EncodeElement(struct{}{}, start)
}

// UnderlineStyle represents underline formatting
type UnderlineStyle struct {
	Val string
}
