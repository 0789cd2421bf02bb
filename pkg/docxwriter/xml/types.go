package xml

import (
	"encoding/xml"
	"strconv"
)

// Namespace URIs declared on the root of the main document part.
const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NamespaceA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespacePic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// RunContent represents any content that can appear in a run
type RunContent interface {
	isRunContent()
}

// Empty represents an empty element (used for boolean properties)
type Empty struct{}

// Style represents a style reference
type Style struct {
	Val string `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for Style
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	// The element name depends on the context (pStyle, tblStyle, etc.)
	// so we keep the provided name
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: s.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// encodeEmpty writes a self-contained element with the given attributes.
func encodeEmpty(e *xml.Encoder, name string, attrs ...xml.Attr) error {
	return e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func intAttr(name string, value int) xml.Attr {
	return attr(name, strconv.Itoa(value))
}
