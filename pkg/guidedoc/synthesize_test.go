package guidedoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

func TestSynthesize(t *testing.T) {
	rows := []models.Row{
		{Component: "Button", Category: "1. Description", Guideline: "A button triggers an action"},
		{Component: "Button", Category: "2. Props", Guideline: "size: controls size"},
	}

	res := Synthesize(rows, "Button", DefaultOptions())

	require.NoError(t, res.Err())
	assert.True(t, res.HasContent())
	assert.Equal(t, "Button", res.Component)
	assert.Equal(t, []string{"1. Description", "2. Props"}, res.Organized.CategoryNames())

	root := res.Layout
	require.Equal(t, models.KindDocument, root.Kind)
	require.Len(t, root.Children, 3)
	assert.Equal(t, models.KindHeader, root.Children[0].Kind)

	desc := root.Children[1]
	assert.Equal(t, "1. Description", desc.Name)
	texts := models.FindAll(desc, models.KindTextRun)
	require.Len(t, texts, 1)
	assert.Equal(t, "A button triggers an action", texts[0].Text.Content)
	assert.False(t, texts[0].Text.Bullet)
	assert.Empty(t, models.FindAll(desc, models.KindImagePlaceholder))

	props := root.Children[2]
	tables := models.FindAll(props, models.KindTable)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Table.Rows, 1)
	assert.Equal(t, models.TableRow{"size", "", "", "controls size"}, tables[0].Table.Rows[0].Values())
}

func TestSynthesizeNoMatchingRows(t *testing.T) {
	rows := []models.Row{{Component: "Button", Category: "1. Description", Guideline: "text"}}

	res := Synthesize(rows, "Card", Options{})

	assert.False(t, res.HasContent())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.NoMatchingRows, res.Diagnostics[0].Kind)
	assert.Equal(t, models.KindHeader, res.Layout.Children[0].Kind)
	assert.Equal(t, "Card", res.Layout.Children[0].Text.Content)
}

func TestResultErr(t *testing.T) {
	rows := []models.Row{
		{Component: "Button", Category: "3. Usage", Subcategory: "Do", Guideline: "**bold `code** tail`"},
		{Component: "Button", Category: "2. Props", Subcategory: "Props", Guideline: "just text"},
	}

	res := Synthesize(rows, "Button", Options{})
	err := res.Err()
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, len(res.Diagnostics))

	var synthErr *models.SynthesisError
	require.True(t, errors.As(errs[0], &synthErr))
	assert.Equal(t, "3. Usage", synthErr.Category)
}

func TestComponents(t *testing.T) {
	rows := []models.Row{
		{Component: "Component"},
		{Component: "Button 10"},
		{Component: " Tooltip"},
		{Component: "Button 2"},
		{Component: ""},
		{Component: "Button 2 "},
		{Component: "Avatar"},
	}

	assert.Equal(t, []string{"Avatar", "Button 2", "Button 10", "Tooltip"}, Components(rows))
	assert.Empty(t, Components(nil))
}
