package xml

import (
	"encoding/xml"
	"fmt"
)

// Header is the declaration written in front of every package part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Document represents a Word document structure
type Document struct {
	Body *Body
	// Attrs holds the root element attributes (namespace declarations)
	Attrs []xml.Attr
}

// NewDocument returns an empty document that declares the namespaces used
// by paragraphs, tables, hyperlinks and inline pictures.
func NewDocument() *Document {
	return &Document{
		Body: &Body{},
		Attrs: []xml.Attr{
			attr("xmlns:w", NamespaceW),
			attr("xmlns:r", NamespaceR),
			attr("xmlns:wp", NamespaceWP),
			attr("xmlns:a", NamespaceA),
			attr("xmlns:pic", NamespacePic),
		},
	}
}

// MarshalXML implements custom XML marshaling for the document root
func (doc Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = doc.Attrs
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	body := doc.Body
	if body == nil {
		body = &Body{}
	}
	if err := e.EncodeElement(body, xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *SectionProperties
}

// Append adds an element at the end of the body
func (b *Body) Append(elem BodyElement) {
	b.Elements = append(b.Elements, elem)
}

// Len returns the number of body elements
func (b *Body) Len() int {
	return len(b.Elements)
}

// Paragraphs returns the top-level paragraphs in document order
func (b *Body) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, elem := range b.Elements {
		if p, ok := elem.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns the top-level tables in document order
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, elem := range b.Elements {
		if t, ok := elem.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
				return err
			}
		case *Table:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:tbl"}}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported body element %T", elem)
		}
	}

	// Section properties must be the last child of the body
	if b.SectionProperties != nil {
		if err := e.EncodeElement(b.SectionProperties, xml.StartElement{Name: xml.Name{Local: "w:sectPr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalDocument serializes doc as the word/document.xml part
func MarshalDocument(doc *Document) ([]byte, error) {
	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append([]byte(Header), data...), nil
}
