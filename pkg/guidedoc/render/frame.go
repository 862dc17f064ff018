package render

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/markup"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// FramePrefix starts the name of every document frame.
const FramePrefix = "UI Docs: "

// Frame node types.
const (
	FrameTypeFrame     = "FRAME"
	FrameTypeText      = "TEXT"
	FrameTypeRectangle = "RECTANGLE"
)

// Font is a font family and style a text node is set in.
type Font struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// DefaultFamily is the family every text role is set in.
const DefaultFamily = "Inter"

// FontFor returns the font of a text role.
func FontFor(role models.TextRole) Font {
	switch role {
	case models.RoleTitle, models.RoleCategoryTitle:
		return Font{Family: DefaultFamily, Style: "Bold"}
	case models.RoleSubcategoryTitle, models.RoleTableHeader:
		return Font{Family: DefaultFamily, Style: "Semi Bold"}
	default:
		return Font{Family: DefaultFamily, Style: "Regular"}
	}
}

// FontLoader makes a font available before text is set in it.
type FontLoader func(ctx context.Context, font Font) error

// Frame is a node of a design canvas document.
type Frame struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	// Layout is the auto layout direction: VERTICAL, HORIZONTAL or NONE.
	Layout    string `json:"layout,omitempty"`
	Padding   int    `json:"padding,omitempty"`
	Spacing   int    `json:"spacing,omitempty"`
	FillWidth bool   `json:"fill_width,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	// StrokeBottom is the thickness of the bottom border.
	StrokeBottom int `json:"stroke_bottom,omitempty"`

	Characters string              `json:"characters,omitempty"`
	Font       *Font               `json:"font,omitempty"`
	FontSize   int                 `json:"font_size,omitempty"`
	LineHeight int                 `json:"line_height,omitempty"`
	Styles     []models.StyleRange `json:"styles,omitempty"`

	Children []*Frame `json:"children,omitempty"`
}

// FrameOptions configures a FrameCanvas.
type FrameOptions struct {
	// Padding and Spacing apply to document frames.
	Padding int
	Spacing int
	// Loader is awaited before the first text node of every font. Nil means
	// fonts are always available.
	Loader FontLoader
}

// FrameCanvas is a Canvas building an in-memory tree of design frames.
type FrameCanvas struct {
	opts   FrameOptions
	frames []*Frame
	loaded map[Font]bool
}

// NewFrameCanvas creates a new FrameCanvas.
func NewFrameCanvas(opts FrameOptions) *FrameCanvas {
	return &FrameCanvas{opts: opts, loaded: make(map[Font]bool)}
}

// Frames returns the top level frames in creation order.
func (c *FrameCanvas) Frames() []*Frame {
	return c.frames
}

// CreateContainerNode implements Canvas.
func (c *FrameCanvas) CreateContainerNode(ctx context.Context, req ContainerRequest) (Handle, error) {
	f := &Frame{
		ID:           uuid.NewString(),
		Type:         FrameTypeFrame,
		Name:         req.Name,
		Layout:       layoutMode(req.Axis),
		FillWidth:    req.FillWidth,
		Width:        req.Width,
		StrokeBottom: req.Rule,
	}

	switch req.Kind {
	case models.KindDocument:
		f.Name = FramePrefix + req.Name
		f.Padding, f.Spacing = c.opts.Padding, c.opts.Spacing
	case models.KindImagePlaceholder:
		f.Type, f.Layout = FrameTypeRectangle, "NONE"
		if req.Image != nil {
			f.Width, f.Height = req.Image.W, req.Image.H
		}
	case models.KindSubcategoryBlock, models.KindCategoryBlock:
		f.Spacing = c.opts.Spacing / 2
	}

	if err := c.attach(req.Parent, f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateTextNode implements Canvas. Bulleted runs get the bullet prefix back
// and their style ranges shifted past it.
func (c *FrameCanvas) CreateTextNode(ctx context.Context, req TextRequest) (Handle, error) {
	font := FontFor(req.Run.Role)
	if err := c.load(ctx, font); err != nil {
		return nil, err
	}

	chars := req.Run.Content
	shift := 0
	if req.Run.Bullet {
		chars = markup.BulletPrefix + chars
		shift = len([]rune(markup.BulletPrefix))
	}

	f := &Frame{
		ID:         uuid.NewString(),
		Type:       FrameTypeText,
		FillWidth:  req.FillWidth,
		Width:      req.Width,
		Characters: chars,
		Font:       &font,
		FontSize:   req.Run.FontSize,
		LineHeight: lineHeight(req.Run.FontSize),
	}
	for _, r := range req.Run.Ranges {
		if r.Empty() {
			continue
		}
		r.Start += shift
		r.End += shift
		f.Styles = append(f.Styles, r)
	}

	if err := c.attach(req.Parent, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *FrameCanvas) load(ctx context.Context, font Font) error {
	if c.opts.Loader == nil || c.loaded[font] {
		return nil
	}
	if err := c.opts.Loader(ctx, font); err != nil {
		return fmt.Errorf("load font %s %s: %w", font.Family, font.Style, err)
	}
	c.loaded[font] = true
	return nil
}

func (c *FrameCanvas) attach(parent Handle, f *Frame) error {
	if parent == nil {
		c.frames = append(c.frames, f)
		return nil
	}
	p, ok := parent.(*Frame)
	if !ok || p.Type == FrameTypeText {
		return fmt.Errorf("%w: %T", ErrInvalidHandle, parent)
	}
	p.Children = append(p.Children, f)
	return nil
}

func layoutMode(axis models.Axis) string {
	switch axis {
	case models.AxisHorizontal:
		return "HORIZONTAL"
	case models.AxisVertical:
		return "VERTICAL"
	default:
		return "NONE"
	}
}

// lineHeight keeps the 14/20 ratio of body text for every size.
func lineHeight(size int) int {
	return (size*10 + 3) / 7
}
