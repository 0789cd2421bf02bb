package docxwriter

import (
	"encoding/xml"
	"time"

	"github.com/google/uuid"
)

const (
	coreNamespace    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	dcNamespace      = "http://purl.org/dc/elements/1.1/"
	dcTermsNamespace = "http://purl.org/dc/terms/"
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	appNamespace     = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// DocumentProperties is the package metadata written to docProps/core.xml
type DocumentProperties struct {
	Title    string
	Creator  string
	Language string
	// Identifier is a urn:uuid unique to each build
	Identifier string
	Created    time.Time
	Modified   time.Time
}

// NewDocumentProperties returns properties stamped with now and a fresh identifier
func NewDocumentProperties(title, creator, lang string, now time.Time) DocumentProperties {
	now = now.UTC().Truncate(time.Second)
	return DocumentProperties{
		Title:      title,
		Creator:    creator,
		Language:   lang,
		Identifier: uuid.New().URN(),
		Created:    now,
		Modified:   now,
	}
}

type coreProperties struct {
	props DocumentProperties
}

func (p DocumentProperties) core() coreProperties {
	return coreProperties{props: p}
}

// MarshalXML writes cp:coreProperties with Dublin Core children
func (c coreProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "cp:coreProperties"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:cp"}, Value: coreNamespace},
		{Name: xml.Name{Local: "xmlns:dc"}, Value: dcNamespace},
		{Name: xml.Name{Local: "xmlns:dcterms"}, Value: dcTermsNamespace},
		{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNamespace},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	text := func(name, value string) error {
		if value == "" {
			return nil
		}
		return e.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: name}})
	}
	stamp := func(name string, t time.Time) error {
		if t.IsZero() {
			return nil
		}
		el := xml.StartElement{
			Name: xml.Name{Local: name},
			Attr: []xml.Attr{{Name: xml.Name{Local: "xsi:type"}, Value: "dcterms:W3CDTF"}},
		}
		return e.EncodeElement(t.UTC().Format(time.RFC3339), el)
	}

	p := c.props
	for _, f := range []struct{ name, value string }{
		{"dc:title", p.Title},
		{"dc:creator", p.Creator},
		{"cp:lastModifiedBy", p.Creator},
		{"dc:identifier", p.Identifier},
		{"dc:language", p.Language},
	} {
		if err := text(f.name, f.value); err != nil {
			return err
		}
	}
	if err := stamp("dcterms:created", p.Created); err != nil {
		return err
	}
	if err := stamp("dcterms:modified", p.Modified); err != nil {
		return err
	}

	return e.EncodeToken(start.End())
}

// appProperties is the minimal docProps/app.xml
type appProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Namespace   string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
}
