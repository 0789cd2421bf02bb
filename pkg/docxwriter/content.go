package docxwriter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/markup"
)

// Option defaults
const (
	DefaultSectionLevel = 1
	DefaultTableStyle   = "Table Grid"
	DefaultHeaderRows   = 1
	DefaultImageWidth   = 6.0
	DefaultImageHeight  = 4.0
)

// NodeKind identifies the shape of a content node
type NodeKind int

const (
	KindSection NodeKind = iota
	KindTable
	KindList
	KindImage
	KindPageBreak
)

func (k NodeKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindList:
		return "list"
	case KindImage:
		return "image"
	case KindPageBreak:
		return "page_break"
	default:
		return "section"
	}
}

// Node is a classified content entry. It is one of SectionNode, TableNode,
// ListNode, ImageNode or PageBreakNode.
type Node interface {
	Kind() NodeKind
	isNode()
}

// Link is a hyperlink rendered under a section
type Link struct {
	Text string
	URL  string
}

// SectionNode is a heading followed by body paragraphs
type SectionNode struct {
	Heading string
	Body    string
	// Level 0 is the Title style, 1-9 the heading styles
	Level int
	// Style overrides the paragraph style of the body
	Style string
	Links []Link
}

// TableNode is a grid of cell text. The column count is taken from row 0.
type TableNode struct {
	Key        string
	Rows       [][]string
	Style      string
	HeaderRows int
	// Borders are applied to every cell when set
	Borders markup.Borders
}

// ListType selects bullets or numbers
type ListType string

const (
	ListBullet   ListType = "bullet"
	ListNumbered ListType = "numbered"
)

// ListNode is a flat list of items at one nesting level
type ListNode struct {
	Key   string
	Items []string
	Type  ListType
	Level int
}

// ImageNode is a picture loaded from Path. Width and Height are in inches.
type ImageNode struct {
	Key     string
	Path    string
	Width   float64
	Height  float64
	Caption string
}

// PageBreakNode starts a new page when Enabled
type PageBreakNode struct {
	Key     string
	Enabled bool
}

func (SectionNode) Kind() NodeKind   { return KindSection }
func (TableNode) Kind() NodeKind     { return KindTable }
func (ListNode) Kind() NodeKind      { return KindList }
func (ImageNode) Kind() NodeKind     { return KindImage }
func (PageBreakNode) Kind() NodeKind { return KindPageBreak }

func (SectionNode) isNode()   {}
func (TableNode) isNode()     {}
func (ListNode) isNode()      {}
func (ImageNode) isNode()     {}
func (PageBreakNode) isNode() {}

// shapeKeys are tested in this order; the first present key wins
var shapeKeys = []struct {
	key  string
	kind NodeKind
}{
	{"table", KindTable},
	{"list", KindList},
	{"image", KindImage},
	{"page_break", KindPageBreak},
}

// Classify turns a content entry into a Node. A mapping value is matched
// against the shape keys table, list, image and page_break in that order;
// anything else is a section with key as heading.
func Classify(key string, value interface{}) (Node, error) {
	obj, isObject := asObject(value)
	if !isObject {
		body, err := stringify(value)
		if err != nil {
			return nil, &RenderError{Key: key, Kind: KindSection.String(), Cause: err}
		}
		return SectionNode{Heading: key, Body: body, Level: DefaultSectionLevel}, nil
	}

	for _, shape := range shapeKeys {
		if !obj.Has(shape.key) {
			continue
		}
		var (
			node Node
			err  error
		)
		switch shape.kind {
		case KindTable:
			node, err = parseTable(key, obj)
		case KindList:
			node, err = parseList(key, obj)
		case KindImage:
			node, err = parseImage(key, obj)
		case KindPageBreak:
			v, _ := obj.Get("page_break")
			node = PageBreakNode{Key: key, Enabled: truthy(v)}
		}
		if err != nil {
			return nil, &RenderError{Key: key, Kind: shape.kind.String(), Cause: err}
		}
		return node, nil
	}

	node, err := parseSection(key, obj)
	if err != nil {
		return nil, &RenderError{Key: key, Kind: KindSection.String(), Cause: err}
	}
	return node, nil
}

func parseSection(key string, obj Object) (Node, error) {
	node := SectionNode{Heading: key, Level: DefaultSectionLevel}

	text, ok := obj.Get("text")
	if !ok {
		body, err := stringify(obj)
		if err != nil {
			return nil, err
		}
		node.Body = body
		return node, nil
	}

	var err error
	if node.Body, err = stringify(text); err != nil {
		return nil, err
	}
	if node.Level, err = intOption(obj, "level", DefaultSectionLevel); err != nil {
		return nil, err
	}
	if node.Style, err = stringOption(obj, "style", ""); err != nil {
		return nil, err
	}
	if node.Links, err = parseLinks(obj); err != nil {
		return nil, err
	}
	return node, nil
}

func parseLinks(obj Object) ([]Link, error) {
	v, ok := obj.Get("links")
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("links must be a list, got %s", typeName(v))
	}

	links := make([]Link, 0, len(list))
	for i, item := range list {
		linkObj, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("links[%d] must be an object, got %s", i, typeName(item))
		}
		url, err := stringOption(linkObj, "url", "")
		if err != nil {
			return nil, fmt.Errorf("links[%d]: %w", i, err)
		}
		if strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("links[%d]: url is required", i)
		}
		text, err := stringOption(linkObj, "text", url)
		if err != nil {
			return nil, fmt.Errorf("links[%d]: %w", i, err)
		}
		links = append(links, Link{Text: text, URL: url})
	}
	return links, nil
}

func parseTable(key string, obj Object) (Node, error) {
	v, _ := obj.Get("table")
	node := TableNode{Key: key}

	if v != nil {
		outer, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("table must be a list of rows, got %s", typeName(v))
		}
		for i, rowValue := range outer {
			row, ok := rowValue.([]interface{})
			if !ok {
				return nil, fmt.Errorf("table row %d must be a list, got %s", i, typeName(rowValue))
			}
			cells, err := scalarStrings(row)
			if err != nil {
				return nil, fmt.Errorf("table row %d: %w", i, err)
			}
			node.Rows = append(node.Rows, cells)
		}
	}

	var err error
	if node.Style, err = stringOption(obj, "style", DefaultTableStyle); err != nil {
		return nil, err
	}
	if node.HeaderRows, err = intOption(obj, "header_rows", DefaultHeaderRows); err != nil {
		return nil, err
	}
	if node.HeaderRows < 0 {
		return nil, fmt.Errorf("header_rows must not be negative, got %d", node.HeaderRows)
	}

	if bv, ok := obj.Get("borders"); ok && bv != nil {
		bobj, ok := asObject(bv)
		if !ok {
			return nil, fmt.Errorf("borders must be an object, got %s", typeName(bv))
		}
		node.Borders = make(markup.Borders, len(bobj))
		for _, e := range bobj {
			side, err := markup.ParseSide(e.Key)
			if err != nil {
				return nil, err
			}
			style, ok := e.Value.(string)
			if !ok {
				return nil, fmt.Errorf("border %s must be a string, got %s", e.Key, typeName(e.Value))
			}
			node.Borders[side] = style
		}
	}
	return node, nil
}

func parseList(key string, obj Object) (Node, error) {
	v, _ := obj.Get("list")
	node := ListNode{Key: key}

	if v != nil {
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("list must be a list of strings, got %s", typeName(v))
		}
		var err error
		if node.Items, err = scalarStrings(items); err != nil {
			return nil, err
		}
	}

	listType, err := stringOption(obj, "list_type", string(ListBullet))
	if err != nil {
		return nil, err
	}
	node.Type = ListType(listType)
	if node.Type != ListBullet && node.Type != ListNumbered {
		return nil, fmt.Errorf("list_type must be %q or %q, got %q", ListBullet, ListNumbered, listType)
	}

	if node.Level, err = intOption(obj, "level", 0); err != nil {
		return nil, err
	}
	return node, nil
}

func parseImage(key string, obj Object) (Node, error) {
	v, _ := obj.Get("image")
	path, ok := v.(string)
	if !ok || strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("image must be a file path, got %s", typeName(v))
	}

	node := ImageNode{Key: key, Path: path}
	var err error
	if node.Width, err = floatOption(obj, "width", DefaultImageWidth); err != nil {
		return nil, err
	}
	if node.Height, err = floatOption(obj, "height", DefaultImageHeight); err != nil {
		return nil, err
	}
	if node.Caption, err = stringOption(obj, "caption", ""); err != nil {
		return nil, err
	}
	return node, nil
}

// asObject accepts both decoded input objects and plain maps. Map keys are
// sorted since maps have no order.
func asObject(v interface{}) (Object, bool) {
	switch m := v.(type) {
	case Object:
		return m, true
	case map[string]interface{}:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, len(keys))
		for i, k := range keys {
			obj[i] = Entry{Key: k, Value: m[k]}
		}
		return obj, true
	}
	return nil, false
}

// stringify renders a value as section body text. Scalars use their plain
// form; lists and objects are written as JSON.
func stringify(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	}
	data, err := marshalJSON(v)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to text: %w", typeName(v), err)
	}
	return string(data), nil
}

// scalarStrings converts a list of scalars to strings
func scalarStrings(values []interface{}) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		switch v.(type) {
		case []interface{}, Object, map[string]interface{}:
			return nil, fmt.Errorf("item %d must be text, got %s", i, typeName(v))
		}
		s, err := stringify(v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func stringOption(obj Object, name, def string) (string, error) {
	v, ok := obj.Get(name)
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", name, typeName(v))
	}
	return s, nil
}

func intOption(obj Object, name string, def int) (int, error) {
	v, ok := obj.Get(name)
	if !ok || v == nil {
		return def, nil
	}
	f, err := number(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %s", name, typeName(v))
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, v)
	}
	return int(f), nil
}

func floatOption(obj Object, name string, def float64) (float64, error) {
	v, ok := obj.Get(name)
	if !ok || v == nil {
		return def, nil
	}
	f, err := number(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %s", name, typeName(v))
	}
	return f, nil
}

func number(v interface{}) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Float64()
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	}
	return 0, fmt.Errorf("not a number")
}

// truthy follows JSON-ish truthiness: false, null, 0, "" and empty
// collections are false
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case Object:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}
