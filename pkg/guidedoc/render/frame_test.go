package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

var _ Canvas = (*FrameCanvas)(nil)

func TestFrameCanvas(t *testing.T) {
	var loads []Font
	canvas := NewFrameCanvas(FrameOptions{
		Padding: 48,
		Spacing: 24,
		Loader: func(_ context.Context, font Font) error {
			loads = append(loads, font)
			return nil
		},
	})

	h, err := Materialize(context.Background(), canvas, buttonLayout(t))
	require.NoError(t, err)

	frames := canvas.Frames()
	require.Len(t, frames, 1)
	doc := frames[0]
	assert.Same(t, doc, h)
	assert.Equal(t, "UI Docs: Button", doc.Name)
	assert.Equal(t, FrameTypeFrame, doc.Type)
	assert.Equal(t, "VERTICAL", doc.Layout)
	assert.Equal(t, 48, doc.Padding)
	assert.Equal(t, 24, doc.Spacing)
	_, err = uuid.Parse(doc.ID)
	assert.NoError(t, err)

	title := doc.Children[0]
	assert.Equal(t, FrameTypeText, title.Type)
	assert.Equal(t, "Button", title.Characters)
	assert.Equal(t, 800, title.Width)
	assert.False(t, title.FillWidth)
	assert.Equal(t, &Font{Family: "Inter", Style: "Bold"}, title.Font)

	// one load per distinct font
	assert.ElementsMatch(t, []Font{
		{Family: "Inter", Style: "Bold"},
		{Family: "Inter", Style: "Regular"},
		{Family: "Inter", Style: "Semi Bold"},
	}, loads)

	usage := doc.Children[2]
	pair := usage.Children[1]
	assert.Equal(t, "HORIZONTAL", pair.Layout)
	require.Len(t, pair.Children, 2)
	image := pair.Children[1]
	assert.Equal(t, FrameTypeRectangle, image.Type)
	assert.Equal(t, 320, image.Width)
	assert.Equal(t, 200, image.Height)

	bullet := pair.Children[0].Children[1]
	assert.Equal(t, "• Use primary once", bullet.Characters)
	assert.Equal(t, []models.StyleRange{{Start: 6, End: 13, Kind: models.StyleCode}}, bullet.Styles)
	assert.Equal(t, 20, bullet.LineHeight)
}

func TestFrameCanvasSkipsEmptyRanges(t *testing.T) {
	canvas := NewFrameCanvas(FrameOptions{})
	h, err := canvas.CreateTextNode(context.Background(), TextRequest{Run: models.TextRun{
		Content: "a b",
		Ranges: []models.StyleRange{
			{Start: 0, End: 0, Kind: models.StyleBold},
			{Start: 2, End: 3, Kind: models.StyleCode},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, []models.StyleRange{{Start: 2, End: 3, Kind: models.StyleCode}}, h.(*Frame).Styles)
}

func TestFrameCanvasErrors(t *testing.T) {
	t.Run("font loader failure", func(t *testing.T) {
		failure := errors.New("font not installed")
		canvas := NewFrameCanvas(FrameOptions{Loader: func(context.Context, Font) error { return failure }})
		_, err := Materialize(context.Background(), canvas, buttonLayout(t))
		assert.ErrorIs(t, err, failure)
	})

	t.Run("foreign parent", func(t *testing.T) {
		canvas := NewFrameCanvas(FrameOptions{})
		_, err := canvas.CreateContainerNode(context.Background(), ContainerRequest{Parent: "not a frame"})
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("text parent", func(t *testing.T) {
		canvas := NewFrameCanvas(FrameOptions{})
		text, err := canvas.CreateTextNode(context.Background(), TextRequest{Run: models.TextRun{Content: "x"}})
		require.NoError(t, err)
		_, err = canvas.CreateTextNode(context.Background(), TextRequest{Parent: text, Run: models.TextRun{Content: "y"}})
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})
}

func TestFontFor(t *testing.T) {
	assert.Equal(t, "Bold", FontFor(models.RoleCategoryTitle).Style)
	assert.Equal(t, "Semi Bold", FontFor(models.RoleTableHeader).Style)
	assert.Equal(t, "Regular", FontFor(models.RoleTableCell).Style)
}
