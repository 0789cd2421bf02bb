package docxwriter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	docxml "github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

// Relationship and content type constants
const (
	relationshipsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNamespace  = "http://schemas.openxmlformats.org/package/2006/content-types"

	officeDocumentRelationType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	corePropertiesRelationType = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	appPropertiesRelationType  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	stylesRelationType         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	numberingRelationType      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"

	documentContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	stylesContentType    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	numberingContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	coreContentType      = "application/vnd.openxmlformats-package.core-properties+xml"
	appContentType       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	relsContentType      = "application/vnd.openxmlformats-package.relationships+xml"
)

// Part names
const (
	documentPart     = "word/document.xml"
	stylesPart       = "word/styles.xml"
	numberingPart    = "word/numbering.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	packageRelsPart  = "_rels/.rels"
	contentTypesPart = "[Content_Types].xml"
	corePart         = "docProps/core.xml"
	appPart          = "docProps/app.xml"
)

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships of one part
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

func newRelationships() *Relationships {
	return &Relationships{Namespace: relationshipsNamespace}
}

// add appends a relationship with the next free id and returns the id
func (r *Relationships) add(relType, target, mode string) string {
	id := getNextRelationshipID(r)
	r.Relationship = append(r.Relationship, Relationship{
		ID:         id,
		Type:       relType,
		Target:     target,
		TargetMode: mode,
	})
	return id
}

// find returns the id of an existing relationship with the same type and target
func (r *Relationships) find(relType, target string) (string, bool) {
	for _, rel := range r.Relationship {
		if rel.Type == relType && rel.Target == target {
			return rel.ID, true
		}
	}
	return "", false
}

// getNextRelationshipID generates the next available relationship ID
func getNextRelationshipID(rels *Relationships) string {
	maxID := 0

	for _, rel := range rels.Relationship {
		if strings.HasPrefix(rel.ID, "rId") {
			if id, err := strconv.Atoi(rel.ID[3:]); err == nil && id > maxID {
				maxID = id
			}
		}
	}

	return fmt.Sprintf("rId%d", maxID+1)
}

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Namespace string        `xml:"xmlns,attr"`
	Defaults  []DefaultType `xml:"Default"`
	Overrides []Override    `xml:"Override"`
}

// DefaultType maps a file extension to a content type
type DefaultType struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Override maps a single part to a content type
type Override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// DocumentPart represents a part of the DOCX package
type DocumentPart struct {
	Name    string
	Content []byte
}

func marshalPart(name string, v interface{}) (DocumentPart, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return DocumentPart{}, fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return DocumentPart{Name: name, Content: append([]byte(docxml.Header), data...)}, nil
}

// parts serializes every part of the package in write order
func (b *Builder) parts() ([]DocumentPart, error) {
	types := &ContentTypes{
		Namespace: contentTypesNamespace,
		Defaults: []DefaultType{
			{Extension: "rels", ContentType: relsContentType},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []Override{
			{PartName: "/" + documentPart, ContentType: documentContentType},
			{PartName: "/" + stylesPart, ContentType: stylesContentType},
			{PartName: "/" + numberingPart, ContentType: numberingContentType},
			{PartName: "/" + corePart, ContentType: coreContentType},
			{PartName: "/" + appPart, ContentType: appContentType},
		},
	}
	seen := make(map[string]bool)
	for _, m := range b.media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		types.Defaults = append(types.Defaults, DefaultType{Extension: m.ext, ContentType: m.contentType})
	}
	sort.SliceStable(types.Defaults[2:], func(i, j int) bool {
		return types.Defaults[2+i].Extension < types.Defaults[2+j].Extension
	})

	packageRels := newRelationships()
	packageRels.add(officeDocumentRelationType, documentPart, "")
	packageRels.add(corePropertiesRelationType, corePart, "")
	packageRels.add(appPropertiesRelationType, appPart, "")

	var parts []DocumentPart
	for _, p := range []struct {
		name string
		v    interface{}
	}{
		{contentTypesPart, types},
		{packageRelsPart, packageRels},
		{documentRelsPart, b.rels},
	} {
		part, err := marshalPart(p.name, p.v)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	document, err := docxml.MarshalDocument(b.doc)
	if err != nil {
		return nil, err
	}
	styles, err := docxml.MarshalStyles(b.registry.stylesPart(b.props.Language))
	if err != nil {
		return nil, err
	}
	numbering, err := docxml.MarshalNumbering(defaultNumbering())
	if err != nil {
		return nil, err
	}
	parts = append(parts,
		DocumentPart{Name: documentPart, Content: document},
		DocumentPart{Name: stylesPart, Content: styles},
		DocumentPart{Name: numberingPart, Content: numbering},
	)

	for _, m := range b.media {
		parts = append(parts, DocumentPart{Name: m.name, Content: m.data})
	}

	core, err := marshalPart(corePart, b.props.core())
	if err != nil {
		return nil, err
	}
	app, err := marshalPart(appPart, appProperties{Namespace: appNamespace, Application: "docxwriter"})
	if err != nil {
		return nil, err
	}
	return append(parts, core, app), nil
}

// WriteTo writes the document package as a zip archive
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	parts, err := b.parts()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.Name,
			Method:   zip.Deflate,
			Modified: b.props.Modified,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Content); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish zip archive: %w", err)
	}

	return buf.WriteTo(w)
}

// Save writes the document to path. The file appears complete or not at
// all: data goes to a temporary file in the same directory which is then
// renamed over path.
func (b *Builder) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := b.WriteTo(tmp); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &PersistenceError{Path: path, Cause: err}
	}
	committed = true
	return nil
}
