package xml

import "encoding/xml"

// SectionProperties represents the final w:sectPr of a body
type SectionProperties struct {
	PageSize    *PageSize
	PageMargins *PageMargins
}

// MarshalXML implements custom XML marshaling for SectionProperties
func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:sectPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if s.PageSize != nil {
		if err := encodeEmpty(e, "w:pgSz", intAttr("w:w", s.PageSize.Width), intAttr("w:h", s.PageSize.Height)); err != nil {
			return err
		}
	}

	if m := s.PageMargins; m != nil {
		if err := encodeEmpty(e, "w:pgMar",
			intAttr("w:top", m.Top),
			intAttr("w:right", m.Right),
			intAttr("w:bottom", m.Bottom),
			intAttr("w:left", m.Left),
			intAttr("w:header", m.Header),
			intAttr("w:footer", m.Footer),
			intAttr("w:gutter", m.Gutter),
		); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// PageSize is the page width and height in twips
type PageSize struct {
	Width  int
	Height int
}

// PageMargins are page margins in twips
type PageMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
	Gutter int
}
