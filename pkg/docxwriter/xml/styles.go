package xml

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Style types used in w:style/@w:type
const (
	StyleTypeParagraph = "paragraph"
	StyleTypeCharacter = "character"
	StyleTypeTable     = "table"
)

// Styles represents the w:styles root of word/styles.xml
type Styles struct {
	DefaultRunProperties       *RunProperties
	DefaultParagraphProperties *ParagraphProperties
	Styles                     []StyleDefinition
}

// StyleDefinition represents a single w:style element
type StyleDefinition struct {
	Type    string
	StyleID string
	Name    string
	BasedOn string
	Next    string
	Default bool
	// UIPriority orders styles in Word's gallery; 0 omits the element
	UIPriority int
	QFormat    bool

	ParagraphProperties *ParagraphProperties
	RunProperties       *RunProperties
	TableProperties     *TableProperties
}

// MarshalXML implements custom XML marshaling for Styles
func (s Styles) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:styles"}
	start.Attr = []xml.Attr{attr("xmlns:w", NamespaceW)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if s.DefaultRunProperties != nil || s.DefaultParagraphProperties != nil {
		defaults := xml.StartElement{Name: xml.Name{Local: "w:docDefaults"}}
		if err := e.EncodeToken(defaults); err != nil {
			return err
		}
		if s.DefaultRunProperties != nil {
			if err := wrap(e, "w:rPrDefault", s.DefaultRunProperties, "w:rPr"); err != nil {
				return err
			}
		}
		if s.DefaultParagraphProperties != nil {
			if err := wrap(e, "w:pPrDefault", s.DefaultParagraphProperties, "w:pPr"); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(defaults.End()); err != nil {
			return err
		}
	}

	for i := range s.Styles {
		if err := e.EncodeElement(&s.Styles[i], xml.StartElement{Name: xml.Name{Local: "w:style"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func wrap(e *xml.Encoder, outer string, v interface{}, inner string) error {
	start := xml.StartElement{Name: xml.Name{Local: outer}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: inner}}); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// MarshalXML implements custom XML marshaling for StyleDefinition
func (s StyleDefinition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:style"}
	start.Attr = []xml.Attr{attr("w:type", s.Type)}
	if s.Default {
		start.Attr = append(start.Attr, attr("w:default", "1"))
	}
	start.Attr = append(start.Attr, attr("w:styleId", s.StyleID))
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeEmpty(e, "w:name", attr("w:val", s.Name)); err != nil {
		return err
	}
	if s.BasedOn != "" {
		if err := encodeEmpty(e, "w:basedOn", attr("w:val", s.BasedOn)); err != nil {
			return err
		}
	}
	if s.Next != "" {
		if err := encodeEmpty(e, "w:next", attr("w:val", s.Next)); err != nil {
			return err
		}
	}
	if s.UIPriority > 0 {
		if err := encodeEmpty(e, "w:uiPriority", attr("w:val", strconv.Itoa(s.UIPriority))); err != nil {
			return err
		}
	}
	if s.QFormat {
		if err := encodeEmpty(e, "w:qFormat"); err != nil {
			return err
		}
	}
	if s.ParagraphProperties != nil {
		if err := e.EncodeElement(s.ParagraphProperties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}
	if s.RunProperties != nil {
		if err := e.EncodeElement(s.RunProperties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}
	if s.TableProperties != nil {
		if err := e.EncodeElement(s.TableProperties, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalStyles serializes s as the word/styles.xml part
func MarshalStyles(s *Styles) ([]byte, error) {
	data, err := xml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal styles: %w", err)
	}
	return append([]byte(Header), data...), nil
}
