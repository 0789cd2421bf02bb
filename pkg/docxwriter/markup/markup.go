package markup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
	"golang.org/x/text/unicode/norm"
)

// Fixed attributes of every cell border edge
const (
	BorderSize  = "4"
	BorderSpace = "0"
	BorderColor = "auto"
)

// ErrMissingRelationship is returned when a hyperlink is requested before
// its relationship id is known
var ErrMissingRelationship = errors.New("hyperlink requires a relationship id")

// Hyperlink returns a w:hyperlink referencing relID with text wrapped in a
// single run. props may be nil.
func Hyperlink(relID, text string, props *xml.RunProperties) (*xml.Hyperlink, error) {
	if strings.TrimSpace(relID) == "" {
		return nil, ErrMissingRelationship
	}
	run := xml.NewTextRun(norm.NFC.String(text), props)
	return &xml.Hyperlink{
		ID:      relID,
		History: true,
		Runs:    []xml.Run{*run},
	}, nil
}

// Side is one edge of a table cell
type Side string

const (
	Top    Side = "top"
	Left   Side = "left"
	Bottom Side = "bottom"
	Right  Side = "right"
)

// Sides lists the edges in the order they are written
var Sides = []Side{Top, Left, Bottom, Right}

// ParseSide converts a side name, case-insensitively
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(s)))
	if side.valid() {
		return side, nil
	}
	return "", fmt.Errorf("unknown border side %q", s)
}

func (s Side) valid() bool {
	for _, known := range Sides {
		if s == known {
			return true
		}
	}
	return false
}

// Borders maps a cell edge to a border style name such as "single" or "double"
type Borders map[Side]string

// CellBorders returns one w:tcBorders container with a child for each
// requested side. Sides are written top, left, bottom, right regardless
// of map order.
func CellBorders(borders Borders) (*xml.TableCellBorders, error) {
	if len(borders) == 0 {
		return nil, errors.New("no border sides given")
	}

	var unknown []string
	for side := range borders {
		if !side.valid() {
			unknown = append(unknown, string(side))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown border sides: %s", strings.Join(unknown, ", "))
	}

	container := &xml.TableCellBorders{}
	for _, side := range Sides {
		style, ok := borders[side]
		if !ok {
			continue
		}
		if strings.TrimSpace(style) == "" {
			return nil, fmt.Errorf("empty border style for side %s", side)
		}
		edge := &xml.BorderProperties{Val: style, Sz: BorderSize, Space: BorderSpace, Color: BorderColor}
		switch side {
		case Top:
			container.Top = edge
		case Left:
			container.Left = edge
		case Bottom:
			container.Bottom = edge
		case Right:
			container.Right = edge
		}
	}
	return container, nil
}

// SetCellBorders installs borders on cell, replacing any container already
// present. Calling it twice leaves exactly one container.
func SetCellBorders(cell *xml.TableCell, borders *xml.TableCellBorders) {
	if cell == nil || borders == nil {
		return
	}
	copied := *borders
	cell.EnsureProperties().TcBorders = &copied
}
