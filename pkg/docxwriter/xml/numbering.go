package xml

import (
	"encoding/xml"
	"fmt"
)

// NumberingProperties references a numbering instance from a paragraph
type NumberingProperties struct {
	Level int
	NumID int
}

// MarshalXML writes w:numPr
func (n NumberingProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:numPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:ilvl", intAttr("w:val", n.Level)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:numId", intAttr("w:val", n.NumID)); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// Numbering represents the w:numbering root of word/numbering.xml
type Numbering struct {
	Abstract  []AbstractNum
	Instances []NumInstance
}

// AbstractNum is a multi-level list definition
type AbstractNum struct {
	ID     int
	Levels []NumberingLevel
}

// NumberingLevel describes one level of an abstract list definition
type NumberingLevel struct {
	Level  int
	Start  int
	Format string // bullet, decimal, lowerLetter, ...
	Text   string // e.g. "•" or "%1."
	// Left and Hanging are in twips
	Left    int
	Hanging int
	// Font overrides the marker font, used for bullet glyphs
	Font string
}

// NumInstance binds a w:numId to an abstract definition
type NumInstance struct {
	ID       int
	Abstract int
}

// MarshalXML writes w:numbering. Abstract definitions precede instances.
func (n Numbering) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:numbering"}
	start.Attr = []xml.Attr{attr("xmlns:w", NamespaceW)}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, a := range n.Abstract {
		abs := xml.StartElement{Name: xml.Name{Local: "w:abstractNum"}, Attr: []xml.Attr{intAttr("w:abstractNumId", a.ID)}}
		if err := e.EncodeToken(abs); err != nil {
			return err
		}
		if err := encodeEmpty(e, "w:multiLevelType", attr("w:val", "hybridMultilevel")); err != nil {
			return err
		}
		for _, lvl := range a.Levels {
			if err := lvl.encode(e); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(abs.End()); err != nil {
			return err
		}
	}

	for _, inst := range n.Instances {
		num := xml.StartElement{Name: xml.Name{Local: "w:num"}, Attr: []xml.Attr{intAttr("w:numId", inst.ID)}}
		if err := e.EncodeToken(num); err != nil {
			return err
		}
		if err := encodeEmpty(e, "w:abstractNumId", intAttr("w:val", inst.Abstract)); err != nil {
			return err
		}
		if err := e.EncodeToken(num.End()); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

func (l NumberingLevel) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:lvl"}, Attr: []xml.Attr{intAttr("w:ilvl", l.Level)}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:start", intAttr("w:val", l.Start)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:numFmt", attr("w:val", l.Format)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:lvlText", attr("w:val", l.Text)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "w:lvlJc", attr("w:val", "left")); err != nil {
		return err
	}
	pPr := &ParagraphProperties{Indentation: &Indentation{Left: l.Left, FirstLine: -l.Hanging}}
	if err := e.EncodeElement(pPr, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
		return err
	}
	if l.Font != "" {
		rPr := &RunProperties{Font: &Font{ASCII: l.Font}}
		if err := e.EncodeElement(rPr, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// MarshalNumbering serializes n as the word/numbering.xml part
func MarshalNumbering(n *Numbering) ([]byte, error) {
	data, err := xml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal numbering: %w", err)
	}
	return append([]byte(Header), data...), nil
}
