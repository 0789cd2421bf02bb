package docxwriter

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

const (
	imageRelationshipType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// mediaPart is an embedded binary part under word/media
type mediaPart struct {
	name        string
	ext         string
	contentType string
	relID       string
	sum         [sha256.Size]byte
	data        []byte
}

// imageFormat describes how a decoded format is stored in the package
type imageFormat struct {
	ext         string
	contentType string
}

var imageFormats = map[string]imageFormat{
	"png":  {"png", "image/png"},
	"jpeg": {"jpeg", "image/jpeg"},
	"gif":  {"gif", "image/gif"},
	"bmp":  {"bmp", "image/bmp"},
	"tiff": {"tiff", "image/tiff"},
}

// Picture is image data ready to embed
type Picture struct {
	Format string
	Data   []byte
	// Width and Height are the pixel dimensions
	Width  int
	Height int
}

// DecodePicture detects the format of data. WebP images are converted to
// PNG because word processors do not reliably display them.
func DecodePicture(data []byte) (*Picture, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unrecognized image format: %w", err)
	}

	if format == "webp" {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp image: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to convert webp image: %w", err)
		}
		data, format = buf.Bytes(), "png"
	}

	if _, ok := imageFormats[format]; !ok {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	return &Picture{Format: format, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// addMedia stores data as a media part and returns its relationship id.
// Identical data is stored once.
func (b *Builder) addMedia(pic *Picture) string {
	sum := sha256.Sum256(pic.Data)
	for _, m := range b.media {
		if m.sum == sum {
			return m.relID
		}
	}

	format := imageFormats[pic.Format]
	index := len(b.media) + 1
	name := fmt.Sprintf("image%d.%s", index, format.ext)
	relID := b.rels.add(imageRelationshipType, "media/"+name, "")
	b.media = append(b.media, mediaPart{
		name:        "word/media/" + name,
		ext:         format.ext,
		contentType: format.contentType,
		relID:       relID,
		sum:         sum,
		data:        pic.Data,
	})
	return relID
}

// AddPicture appends a paragraph holding pic as an inline drawing of the
// given size. description becomes the alternative text.
func (b *Builder) AddPicture(pic *Picture, description string, width, height Length) (*xml.Paragraph, error) {
	if pic == nil {
		return nil, &RenderError{Kind: "image", Message: "no picture"}
	}
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Kind: "image", Message: fmt.Sprintf("invalid picture size %.2fx%.2f in", width.Inches(), height.Inches())}
	}

	relID := b.addMedia(pic)
	id := b.nextDrawingID
	b.nextDrawingID++

	drawing := &xml.Drawing{
		ID:          id,
		Name:        fmt.Sprintf("Picture %d", id),
		Description: description,
		EmbedID:     relID,
		Width:       width.EMU(),
		Height:      height.EMU(),
	}

	p := &xml.Paragraph{}
	p.AddRun(&xml.Run{Content: []xml.RunContent{drawing}})
	b.doc.Body.Append(p)
	return p, nil
}
