package docxwriter

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderWriteTo(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(nil)
	b.SetProperties(NewDocumentProperties("Paper", "Ada", "en-US", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err := RenderTitle(b, "Paper"); err != nil {
		t.Fatal(err)
	}
	if err := RenderImage(b, ImageNode{Path: writePNG(t, dir, "a.png"), Width: 1, Height: 1}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if !f.Modified.Equal(b.Properties().Modified) {
			t.Errorf("%s modified = %v, want %v", f.Name, f.Modified, b.Properties().Modified)
		}
	}
	want := []string{
		contentTypesPart,
		packageRelsPart,
		documentRelsPart,
		documentPart,
		stylesPart,
		numberingPart,
		"word/media/image1.png",
		corePart,
		appPart,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("part order mismatch (-want +got):\n%s", diff)
	}
}

func TestContentTypes(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(nil)
	png := writePNG(t, dir, "a.png")
	for i := 0; i < 2; i++ {
		if err := RenderImage(b, ImageNode{Path: png, Width: 1, Height: 1}); err != nil {
			t.Fatal(err)
		}
	}

	parts, err := b.parts()
	if err != nil {
		t.Fatal(err)
	}
	types := string(parts[0].Content)
	for _, want := range []string{
		`<Default Extension="png" ContentType="image/png"></Default>`,
		`<Override PartName="/word/document.xml" ContentType="` + documentContentType + `"></Override>`,
		`<Override PartName="/word/numbering.xml" ContentType="` + numberingContentType + `"></Override>`,
	} {
		if !strings.Contains(types, want) {
			t.Errorf("content types missing %s\n%s", want, types)
		}
	}
	if strings.Count(types, `Extension="png"`) != 1 {
		t.Errorf("png default repeated:\n%s", types)
	}
}

func TestRelationshipIDs(t *testing.T) {
	b := NewBuilder(nil)
	rels := b.Relationships()
	if len(rels) != 2 || rels[0].ID != "rId1" || rels[1].ID != "rId2" {
		t.Fatalf("initial relationships = %+v", rels)
	}

	id, err := b.RelateExternal(" https://example.com ")
	if err != nil {
		t.Fatal(err)
	}
	if id != "rId3" {
		t.Errorf("first external id = %q, want rId3", id)
	}
	again, _ := b.RelateExternal("https://example.com")
	if again != id {
		t.Errorf("repeat id = %q, want %q", again, id)
	}
	if _, err := b.RelateExternal("http://[::1"); !IsRenderError(err) {
		t.Errorf("malformed URL: expected RenderError, got %v", err)
	}

	// Relationships returns a copy
	b.Relationships()[0].ID = "changed"
	if b.Relationships()[0].ID != "rId1" {
		t.Error("Relationships() exposes internal state")
	}
}

func TestGetNextRelationshipID(t *testing.T) {
	rels := newRelationships()
	rels.Relationship = []Relationship{{ID: "rId4"}, {ID: "custom"}, {ID: "rId2"}}
	if got := getNextRelationshipID(rels); got != "rId5" {
		t.Errorf("getNextRelationshipID() = %q, want rId5", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.docx")

	b := NewBuilder(nil)
	if _, err := b.AddParagraph("hello", ""); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
	parts := readDocx(t, path)
	if body := parseBody(t, parts[documentPart]); len(body) != 1 || body[0].text != "hello" {
		t.Errorf("body = %+v", body)
	}
	assertNoTempFiles(t, filepath.Dir(path))
}

func TestSaveFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the final rename fail
	target := filepath.Join(dir, "out.docx")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewBuilder(nil).Save(target)
	if !IsPersistenceError(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestCoreProperties(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 500, time.FixedZone("X", 3600))
	props := NewDocumentProperties("A & B", "Ada", "en-US", now)
	if props.Created.Location() != time.UTC || props.Created.Nanosecond() != 0 {
		t.Errorf("Created = %v, want UTC truncated to the second", props.Created)
	}
	if !strings.HasPrefix(props.Identifier, "urn:uuid:") {
		t.Errorf("Identifier = %q", props.Identifier)
	}
	other := NewDocumentProperties("A & B", "Ada", "en-US", now)
	if other.Identifier == props.Identifier {
		t.Error("identifiers are not unique")
	}

	b := NewBuilder(nil)
	b.SetProperties(props)
	parts, err := b.parts()
	if err != nil {
		t.Fatal(err)
	}
	var core string
	for _, p := range parts {
		if p.Name == corePart {
			core = string(p.Content)
		}
	}
	for _, want := range []string{
		`<dc:title>A &amp; B</dc:title>`,
		`<dc:creator>Ada</dc:creator>`,
		`<dcterms:created xsi:type="dcterms:W3CDTF">2024-05-06T06:08:09Z</dcterms:created>`,
	} {
		if !strings.Contains(core, want) {
			t.Errorf("core.xml missing %s\n%s", want, core)
		}
	}
}
