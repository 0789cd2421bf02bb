package docxwriter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	docxml "github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

// readDocx returns every part of the package at path
func readDocx(t *testing.T, path string) map[string][]byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer zr.Close()

	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open part %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read part %s: %v", f.Name, err)
		}
		parts[f.Name] = data
	}
	return parts
}

type cellItem struct {
	text string
	bold bool
}

// bodyItem is a top-level paragraph or table of word/document.xml
type bodyItem struct {
	kind      string // "p" or "tbl"
	style     string
	text      string
	align     string
	color     string
	indent    string
	numbered  bool
	pageBreak bool
	drawing   bool
	links     []string
	rows      [][]cellItem
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// parseBody walks document.xml and summarizes the body elements
func parseBody(t *testing.T, data []byte) []bodyItem {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		items                  []bodyItem
		stack                  []string
		cur                    *bodyItem
		cell                   *cellItem
		runBold                bool
		cellRuns, cellBoldRuns int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid document.xml: %v", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)

			if parent == "body" && (name == "p" || name == "tbl") {
				items = append(items, bodyItem{kind: name})
				cur = &items[len(items)-1]
				continue
			}
			if cur == nil {
				continue
			}

			switch name {
			case "pStyle":
				if cur.kind == "p" {
					cur.style = attrValue(el, "val")
				}
			case "numPr":
				cur.numbered = true
			case "ind":
				if cur.kind == "p" && parent == "pPr" {
					cur.indent = attrValue(el, "left")
				}
			case "jc":
				if cur.kind == "p" && parent == "pPr" {
					cur.align = attrValue(el, "val")
				}
			case "color":
				if parent == "rPr" && cell == nil {
					cur.color = attrValue(el, "val")
				}
			case "tr":
				cur.rows = append(cur.rows, nil)
			case "tc":
				row := len(cur.rows) - 1
				cur.rows[row] = append(cur.rows[row], cellItem{})
				cell = &cur.rows[row][len(cur.rows[row])-1]
				cellRuns, cellBoldRuns = 0, 0
			case "r":
				runBold = false
				if cell != nil {
					cellRuns++
				}
			case "b":
				if parent == "rPr" {
					runBold = true
				}
			case "br":
				if attrValue(el, "type") == "page" {
					cur.pageBreak = true
				} else if cell != nil {
					cell.text += "\n"
				} else {
					cur.text += "\n"
				}
			case "drawing":
				cur.drawing = true
			case "hyperlink":
				cur.links = append(cur.links, attrValue(el, "id"))
			}

		case xml.EndElement:
			name := el.Name.Local
			stack = stack[:len(stack)-1]
			switch name {
			case "r":
				if cell != nil && runBold {
					cellBoldRuns++
				}
			case "tc":
				if cell != nil {
					cell.bold = cellRuns > 0 && cellRuns == cellBoldRuns
				}
				cell = nil
			}
			if len(stack) > 0 && stack[len(stack)-1] == "body" && (name == "p" || name == "tbl") {
				cur = nil
			}

		case xml.CharData:
			if cur != nil && len(stack) > 0 && stack[len(stack)-1] == "t" {
				if cell != nil {
					cell.text += string(el)
				} else {
					cur.text += string(el)
				}
			}
		}
	}
	return items
}

// builderBody marshals the builder's document and summarizes its body
func builderBody(t *testing.T, b *Builder) []bodyItem {
	t.Helper()
	data, err := docxml.MarshalDocument(b.Document())
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	return parseBody(t, data)
}

// writePNG writes a small PNG image and returns its path
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testWriter returns a writer that saves into dir and logs into logs
func testWriter(dir string, watermark string, logs io.Writer) *Writer {
	if logs == nil {
		logs = io.Discard
	}
	config := DefaultConfig()
	config.OutputDir = dir
	config.Watermark = watermark
	config.DisableWatermark = watermark == ""
	return New(
		WithConfig(config),
		WithLogger(NewLogger(logs, log.DebugLevel)),
	)
}
