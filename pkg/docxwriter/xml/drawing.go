package xml

import (
	"encoding/xml"
	"strconv"
)

const pictureGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/picture"

// Drawing is an inline picture anchored in a run
type Drawing struct {
	// ID is the drawing object id, unique within the document
	ID int
	// Name is the picture name shown in Word's selection pane
	Name        string
	Description string
	// EmbedID is the relationship id of the image part
	EmbedID string
	// Width and Height are in EMU
	Width  int64
	Height int64
}

// isRunContent implements the RunContent interface
func (d Drawing) isRunContent() {}

// node is a generic element used to write the nested DrawingML markup
type node struct {
	name     string
	attrs    []xml.Attr
	children []node
}

func (n node) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: n.name}, Attr: n.attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func el(name string, attrs []xml.Attr, children ...node) node {
	return node{name: name, attrs: attrs, children: children}
}

func int64Attr(name string, v int64) xml.Attr {
	return attr(name, strconv.FormatInt(v, 10))
}

// MarshalXML writes w:drawing/wp:inline with a single pic:pic graphic
func (d Drawing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	cx := int64Attr("cx", d.Width)
	cy := int64Attr("cy", d.Height)

	pic := el("pic:pic", nil,
		el("pic:nvPicPr", nil,
			el("pic:cNvPr", []xml.Attr{intAttr("id", 0), attr("name", d.Name)}),
			el("pic:cNvPicPr", nil),
		),
		el("pic:blipFill", nil,
			el("a:blip", []xml.Attr{attr("r:embed", d.EmbedID)}),
			el("a:stretch", nil, el("a:fillRect", nil)),
		),
		el("pic:spPr", nil,
			el("a:xfrm", nil,
				el("a:off", []xml.Attr{attr("x", "0"), attr("y", "0")}),
				el("a:ext", []xml.Attr{cx, cy}),
			),
			el("a:prstGeom", []xml.Attr{attr("prst", "rect")}, el("a:avLst", nil)),
		),
	)

	inline := el("wp:inline", []xml.Attr{attr("distT", "0"), attr("distB", "0"), attr("distL", "0"), attr("distR", "0")},
		el("wp:extent", []xml.Attr{cx, cy}),
		el("wp:docPr", []xml.Attr{intAttr("id", d.ID), attr("name", d.Name), attr("descr", d.Description)}),
		el("wp:cNvGraphicFramePr", nil,
			el("a:graphicFrameLocks", []xml.Attr{attr("noChangeAspect", "1")}),
		),
		el("a:graphic", nil,
			el("a:graphicData", []xml.Attr{attr("uri", pictureGraphicURI)}, pic),
		),
	)

	return el("w:drawing", nil, inline).encode(e)
}
