package models

import (
	"errors"
	"fmt"
)

// NodeKind identifies the variant of a layout Node.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindHeader
	KindCategoryBlock
	KindTitleDivider
	KindSubcategoryBlock
	KindTextRun
	KindImagePlaceholder
	KindTable
)

var nodeKindNames = map[NodeKind]string{
	KindDocument:         "document",
	KindHeader:           "header",
	KindCategoryBlock:    "category",
	KindTitleDivider:     "title_divider",
	KindSubcategoryBlock: "subcategory",
	KindTextRun:          "text",
	KindImagePlaceholder: "image",
	KindTable:            "table",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	for kind, name := range nodeKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// Side tells on which side of a horizontal pair the image placeholder goes.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	case "":
		*s = SideNone
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Axis is the direction children of a container are laid out in.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// TextRole tells renderers which typographic style a text run uses.
type TextRole string

const (
	RoleTitle            TextRole = "title"
	RoleCategoryTitle    TextRole = "category_title"
	RoleSubcategoryTitle TextRole = "subcategory_title"
	RoleBody             TextRole = "body"
	RoleTableHeader      TextRole = "table_header"
	RoleTableCell        TextRole = "table_cell"
	RoleNotice           TextRole = "notice"
)

// TextRun is a piece of text with inline style ranges over it.
type TextRun struct {
	// Content is the text with inline markup already removed.
	Content string `json:"content"`
	// Ranges are sorted, non-overlapping style annotations over Content.
	Ranges []StyleRange `json:"ranges,omitempty"`
	// Bullet marks the run as a bulleted list item.
	Bullet bool `json:"bullet,omitempty"`
	// Role selects the typographic style.
	Role TextRole `json:"role"`
	// FontSize is the font size in pixels.
	FontSize int `json:"font_size"`
}

// ImagePlaceholder reserves space for an illustration.
type ImagePlaceholder struct {
	// Label names what the illustration is for.
	Label string `json:"label"`
	W     int    `json:"w"`
	H     int    `json:"h"`
}

// TableColumn describes one props table column.
type TableColumn struct {
	Label string `json:"label"`
	// Width is the fixed width in pixels, zero when FillWidth is set.
	Width     int  `json:"width,omitempty"`
	FillWidth bool `json:"fill_width"`
}

// TableBodyRow is one rendered table row.
type TableBodyRow struct {
	Cells [TableColumns]TextRun `json:"cells"`
	// Rule is the thickness of the separator drawn below the row, zero for none.
	Rule int `json:"rule"`
}

// Values returns the plain cell contents.
func (r TableBodyRow) Values() TableRow {
	var row TableRow
	for i, c := range r.Cells {
		row[i] = c.Content
	}
	return row
}

// Table is a props table.
type Table struct {
	Columns []TableColumn `json:"columns"`
	// HeaderRule is the thickness of the separator between header and body.
	HeaderRule int            `json:"header_rule"`
	Rows       []TableBodyRow `json:"rows"`
}

// Node is one block of the layout tree. Kind selects which of the optional
// payload fields are set.
type Node struct {
	Kind NodeKind `json:"kind"`
	// Name is the category or subcategory label for block nodes.
	Name      string `json:"name,omitempty"`
	FillWidth bool   `json:"fill_width"`
	// Width is the fixed width in pixels for nodes that do not fill.
	Width int  `json:"width,omitempty"`
	Axis  Axis `json:"axis,omitempty"`
	// ImageSide is set on alternating subcategory pairs.
	ImageSide Side `json:"image_side,omitempty"`
	// Rule is the thickness of the rule drawn by a title divider.
	Rule     int               `json:"rule,omitempty"`
	Text     *TextRun          `json:"text,omitempty"`
	Image    *ImagePlaceholder `json:"image,omitempty"`
	Table    *Table            `json:"table,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Append adds children in render order and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// ErrSkipChildren can be returned by a WalkFunc to skip the children of the
// current node.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(n *Node, depth int) error

// Walk visits n and its descendants depth first in render order.
func Walk(n *Node, fn WalkFunc) error {
	return walk(n, 0, fn)
}

func walk(n *Node, depth int, fn WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(n, depth); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every node of the given kind under n, n included.
func FindAll(n *Node, kind NodeKind) []*Node {
	var found []*Node
	_ = Walk(n, func(c *Node, _ int) error {
		if c.Kind == kind {
			found = append(found, c)
		}
		return nil
	})
	return found
}
