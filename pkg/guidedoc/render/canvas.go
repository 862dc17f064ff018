// Package render turns layout trees into concrete output: nodes on a
// drawing canvas, Markdown, HTML or plain text.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// ErrInvalidHandle is returned by canvases given a parent handle they did not
// create.
var ErrInvalidHandle = errors.New("invalid canvas handle")

// Handle is an opaque reference to a node created on a canvas.
type Handle any

// TextRequest asks a canvas for a text node.
type TextRequest struct {
	// Parent is the container to append to, nil for a top level node.
	Parent Handle
	Run    models.TextRun
	// FillWidth makes the node stretch to its parent, otherwise Width applies.
	FillWidth bool
	Width     int
}

// ContainerRequest asks a canvas for a container node.
type ContainerRequest struct {
	// Parent is the container to append to, nil for a top level node.
	Parent Handle
	// Kind is the layout node kind. Table header and body rows are requested
	// with KindTable and a horizontal axis.
	Kind      models.NodeKind
	Name      string
	Axis      models.Axis
	FillWidth bool
	Width     int
	ImageSide models.Side
	// Rule is the thickness of the bottom rule, zero for none.
	Rule int
	// Image is set for image placeholders.
	Image *models.ImagePlaceholder
}

// Canvas creates nodes on a drawing surface. Calls may block, for example
// while fonts load.
type Canvas interface {
	CreateTextNode(ctx context.Context, req TextRequest) (Handle, error)
	CreateContainerNode(ctx context.Context, req ContainerRequest) (Handle, error)
}

// Materialize creates the nodes of the layout tree on canvas in render order
// and returns the handle of the root. It stops at the first canvas error or
// when ctx is done.
func Materialize(ctx context.Context, canvas Canvas, root *models.Node) (Handle, error) {
	if root == nil {
		return nil, errors.New("nil layout tree")
	}
	return materialize(ctx, canvas, nil, root)
}

func materialize(ctx context.Context, canvas Canvas, parent Handle, n *models.Node) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case n.Kind == models.KindTable && n.Table != nil:
		return materializeTable(ctx, canvas, parent, n)
	case (n.Kind == models.KindHeader || n.Kind == models.KindTextRun) && n.Text != nil:
		h, err := canvas.CreateTextNode(ctx, TextRequest{Parent: parent, Run: *n.Text, FillWidth: n.FillWidth, Width: n.Width})
		if err != nil {
			return nil, fmt.Errorf("text node %q: %w", n.Text.Content, err)
		}
		return h, nil
	}

	h, err := canvas.CreateContainerNode(ctx, ContainerRequest{
		Parent:    parent,
		Kind:      n.Kind,
		Name:      n.Name,
		Axis:      n.Axis,
		FillWidth: n.FillWidth,
		Width:     n.Width,
		ImageSide: n.ImageSide,
		Rule:      n.Rule,
		Image:     n.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("%s node %q: %w", n.Kind, n.Name, err)
	}

	// a title divider carries its title inline
	if n.Kind == models.KindTitleDivider && n.Text != nil {
		if _, err := canvas.CreateTextNode(ctx, TextRequest{Parent: h, Run: *n.Text, FillWidth: true}); err != nil {
			return nil, fmt.Errorf("title %q: %w", n.Text.Content, err)
		}
	}

	for _, child := range n.Children {
		if _, err := materialize(ctx, canvas, h, child); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func materializeTable(ctx context.Context, canvas Canvas, parent Handle, n *models.Node) (Handle, error) {
	t := n.Table
	h, err := canvas.CreateContainerNode(ctx, ContainerRequest{
		Parent:    parent,
		Kind:      models.KindTable,
		Name:      n.Name,
		Axis:      models.AxisVertical,
		FillWidth: n.FillWidth,
		Width:     n.Width,
	})
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", n.Name, err)
	}

	header := make([]models.TextRun, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = models.TextRun{Content: col.Label, Role: models.RoleTableHeader}
		if len(t.Rows) > 0 {
			header[i].FontSize = t.Rows[0].Cells[0].FontSize
		}
	}
	if err := materializeRow(ctx, canvas, h, "Header", t.Columns, header, t.HeaderRule); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := materializeRow(ctx, canvas, h, fmt.Sprintf("Row %d", i+1), t.Columns, row.Cells[:], row.Rule); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func materializeRow(ctx context.Context, canvas Canvas, table Handle, name string, cols []models.TableColumn, cells []models.TextRun, rule int) error {
	h, err := canvas.CreateContainerNode(ctx, ContainerRequest{
		Parent:    table,
		Kind:      models.KindTable,
		Name:      name,
		Axis:      models.AxisHorizontal,
		FillWidth: true,
		Rule:      rule,
	})
	if err != nil {
		return fmt.Errorf("table row %q: %w", name, err)
	}
	for i, cell := range cells {
		req := TextRequest{Parent: h, Run: cell, FillWidth: true}
		if i < len(cols) {
			req.FillWidth, req.Width = cols[i].FillWidth, cols[i].Width
		}
		if _, err := canvas.CreateTextNode(ctx, req); err != nil {
			return fmt.Errorf("table cell %q: %w", cell.Content, err)
		}
	}
	return nil
}
