package docxwriter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/markup"
	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

const hyperlinkRelationType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

// RelateExternal registers target as an external hyperlink of the document
// and returns its relationship id. The same target always yields the same id.
func (b *Builder) RelateExternal(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", &RenderError{Kind: "hyperlink", Message: "empty URL"}
	}
	if _, err := url.Parse(target); err != nil {
		return "", &RenderError{Kind: "hyperlink", Message: fmt.Sprintf("invalid URL %q", target), Cause: err}
	}

	if id, ok := b.rels.find(hyperlinkRelationType, target); ok {
		return id, nil
	}
	return b.rels.add(hyperlinkRelationType, target, "External"), nil
}

// AddHyperlink appends a hyperlink to p. The relationship is registered
// before the hyperlink element is built.
func (b *Builder) AddHyperlink(p *xml.Paragraph, text, target string) (*xml.Hyperlink, error) {
	if p == nil {
		return nil, &RenderError{Kind: "hyperlink", Message: "no paragraph"}
	}
	id, err := b.RelateExternal(target)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = target
	}

	link, err := markup.Hyperlink(id, text, b.hyperlinkRunProperties())
	if err != nil {
		return nil, &RenderError{Kind: "hyperlink", Cause: err}
	}
	p.Content = append(p.Content, link)
	return link, nil
}

// hyperlinkRunProperties uses the Hyperlink character style when the
// registry has one and falls back to direct formatting
func (b *Builder) hyperlinkRunProperties() *xml.RunProperties {
	if s, err := b.style("Hyperlink", CharacterStyle); err == nil {
		return &xml.RunProperties{Style: &xml.RunStyle{Val: s.ID()}}
	}
	return &xml.RunProperties{
		Color:     &xml.Color{Val: Colors["accent"].Hex()},
		Underline: &xml.UnderlineStyle{Val: "single"},
	}
}
