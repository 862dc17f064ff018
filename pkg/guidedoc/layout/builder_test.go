package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

func build(t *testing.T, rows []models.Row, component string) (*models.Node, []*models.SynthesisError) {
	t.Helper()
	return NewBuilder(Options{}).Build(Organize(rows, component))
}

// categories returns the category blocks of a document.
func categories(root *models.Node) []*models.Node {
	var blocks []*models.Node
	for _, c := range root.Children {
		if c.Kind == models.KindCategoryBlock {
			blocks = append(blocks, c)
		}
	}
	return blocks
}

func texts(n *models.Node) []string {
	var out []string
	for _, run := range models.FindAll(n, models.KindTextRun) {
		out = append(out, run.Text.Content)
	}
	return out
}

func TestBuildButtonScenario(t *testing.T) {
	root, diags := build(t, []models.Row{
		row("Button", "1. Description", "", "A button triggers an action"),
		row("Button", "2. Props", "", "size: controls size"),
	}, "Button")
	assert.Empty(t, diags)

	require.Equal(t, models.KindDocument, root.Kind)
	header := root.Children[0]
	assert.Equal(t, models.KindHeader, header.Kind)
	assert.False(t, header.FillWidth)
	assert.Equal(t, DefaultMetrics().ContentWidth, header.Width)
	assert.Equal(t, "Button", header.Text.Content)

	cats := categories(root)
	require.Len(t, cats, 2)
	assert.Equal(t, "1. Description", cats[0].Name)
	assert.Equal(t, "2. Props", cats[1].Name)

	// description: divider then a plain paragraph, no image, no bullets
	desc := cats[0]
	require.Len(t, desc.Children, 2)
	assert.Equal(t, models.KindTitleDivider, desc.Children[0].Kind)
	assert.Equal(t, "1. Description", desc.Children[0].Text.Content)
	assert.Equal(t, DefaultMetrics().DividerRule, desc.Children[0].Rule)
	para := desc.Children[1]
	assert.Equal(t, models.KindSubcategoryBlock, para.Kind)
	require.Len(t, para.Children, 1)
	run := para.Children[0].Text
	assert.Equal(t, "A button triggers an action", run.Content)
	assert.False(t, run.Bullet)
	assert.Equal(t, DefaultMetrics().DescriptionFontSize, run.FontSize)
	assert.Empty(t, models.FindAll(desc, models.KindImagePlaceholder))

	tables := models.FindAll(cats[1], models.KindTable)
	require.Len(t, tables, 1)
	table := tables[0].Table
	require.Len(t, table.Rows, 1)
	assert.Equal(t, models.TableRow{"size", "", "", "controls size"}, table.Rows[0].Values())
	assert.Zero(t, table.Rows[0].Rule)
}

func TestBuildAlternation(t *testing.T) {
	root, diags := build(t, []models.Row{
		row("Button", "3. Usage", "S0", "a"),
		row("Button", "3. Usage", models.MainContent, "intro"),
		row("Button", "3. Usage", "S1", "b"),
		row("Button", "3. Usage", "S2", "c"),
		row("Button", "5. Accessibility", "T0", "d"),
	}, "Button")
	require.Empty(t, diags)

	cats := categories(root)
	require.Len(t, cats, 2)

	var sides []models.Side
	var names []string
	for _, c := range cats[0].Children[1:] {
		sides = append(sides, c.ImageSide)
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"S0", models.MainContent, "S1", "S2"}, names)
	assert.Equal(t, []models.Side{models.SideRight, models.SideNone, models.SideLeft, models.SideRight}, sides)

	// counter restarts per category
	assert.Equal(t, models.SideRight, cats[1].Children[1].ImageSide)

	right := cats[0].Children[1]
	assert.Equal(t, models.AxisHorizontal, right.Axis)
	require.Len(t, right.Children, 2)
	assert.Equal(t, models.KindSubcategoryBlock, right.Children[0].Kind)
	assert.Equal(t, models.KindImagePlaceholder, right.Children[1].Kind)

	left := cats[0].Children[3]
	assert.Equal(t, models.KindImagePlaceholder, left.Children[0].Kind)
	assert.Equal(t, models.KindSubcategoryBlock, left.Children[1].Kind)

	content := right.Children[0]
	require.Len(t, content.Children, 2)
	assert.Equal(t, models.RoleSubcategoryTitle, content.Children[0].Text.Role)
	assert.Equal(t, "S0", content.Children[0].Text.Content)
	assert.True(t, content.Children[1].Text.Bullet)

	intro := cats[0].Children[2]
	assert.Equal(t, []string{"intro"}, texts(intro))
	assert.False(t, intro.Children[0].Text.Bullet)
	assert.Empty(t, models.FindAll(intro, models.KindImagePlaceholder))
}

func TestBuildAnatomy(t *testing.T) {
	root, _ := build(t, []models.Row{
		row("Button", "4. Anatomy", "Container", "• Holds the label"),
		row("Button", "4. Anatomy", "Label", "Uses `text-sm`"),
	}, "Button")

	cat := categories(root)[0]
	images := models.FindAll(cat, models.KindImagePlaceholder)
	require.Len(t, images, 1)
	assert.Same(t, images[0], cat.Children[1], "shared image sits directly under the category")

	subs := cat.Children[2:]
	require.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, models.SideNone, s.ImageSide)
		assert.Equal(t, models.RoleSubcategoryTitle, s.Children[0].Text.Role)
	}
	first := subs[0].Children[1].Text
	assert.Equal(t, "Holds the label", first.Content)
	assert.True(t, first.Bullet)

	second := subs[1].Children[1].Text
	assert.Equal(t, "Uses text-sm", second.Content)
	assert.Equal(t, []models.StyleRange{{Start: 5, End: 12, Kind: models.StyleCode}}, second.Ranges)
}

func TestBuildPropsTable(t *testing.T) {
	root, diags := build(t, []models.Row{
		row("Button", "2. Props", "Inputs", "Prop Name | Type | Default Value | Description"),
		row("Button", "2. Props", "Inputs", "size | string | md | size prop"),
		row("Button", "2. Props", "Inputs", "**disabled** | boolean | false | turns it off"),
		row("Button", "2. Props", "Inputs", "variant | string"),
	}, "Button")

	require.Len(t, diags, 1)
	assert.Equal(t, models.MalformedTableRow, diags[0].Kind)
	assert.Equal(t, "Inputs", diags[0].Subcategory)

	cat := categories(root)[0]
	sub := cat.Children[1]
	require.Len(t, sub.Children, 2)
	assert.Equal(t, "Inputs", sub.Children[0].Text.Content)

	table := sub.Children[1].Table
	require.NotNil(t, table)
	require.Len(t, table.Columns, 4)
	var labels []string
	for _, c := range table.Columns {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Prop Name", "Type", "Default", "Description"}, labels)
	assert.True(t, table.Columns[0].FillWidth)
	assert.False(t, table.Columns[3].FillWidth)
	assert.Equal(t, DefaultMetrics().DescriptionColumnWidth, table.Columns[3].Width)
	assert.Equal(t, 2, table.HeaderRule)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []int{1, 1, 0}, []int{table.Rows[0].Rule, table.Rows[1].Rule, table.Rows[2].Rule})
	disabled := table.Rows[1].Cells[0]
	assert.Equal(t, "disabled", disabled.Content)
	assert.Equal(t, []models.StyleRange{{Start: 0, End: 8, Kind: models.StyleBold}}, disabled.Ranges)
	assert.Equal(t, models.TableRow{"variant", "", "", "string"}, table.Rows[2].Values())
}

func TestBuildPipeContentMakesTable(t *testing.T) {
	root, _ := build(t, []models.Row{
		row("Button", "6. Tokens", "", "Prop Name | Type | Default Value | Description"),
		row("Button", "6. Tokens", "", "size | string | md | size prop"),
	}, "Button")

	tables := models.FindAll(root, models.KindTable)
	require.Len(t, tables, 1)
	assert.Equal(t, []models.TableRow{{"size", "string", "md", "size prop"}}, []models.TableRow{tables[0].Table.Rows[0].Values()})
	assert.Len(t, tables[0].Table.Rows, 1)
}

func TestBuildDescriptionSuppression(t *testing.T) {
	root, _ := build(t, []models.Row{
		row("Button", "Anatomy description", "Part", "**Label** text"),
		row("Button", "Long description", "Details", "more"),
	}, "Button")

	for _, cat := range categories(root) {
		assert.Empty(t, models.FindAll(cat, models.KindImagePlaceholder), cat.Name)
		for _, run := range models.FindAll(cat, models.KindTextRun) {
			assert.NotEqual(t, models.RoleSubcategoryTitle, run.Text.Role)
			assert.False(t, run.Text.Bullet)
			assert.Equal(t, DefaultMetrics().DescriptionFontSize, run.Text.FontSize)
		}
	}
}

func TestBuildFillWidth(t *testing.T) {
	root, _ := build(t, []models.Row{
		row("Button", "1. Description", "", "text"),
		row("Button", "3. Usage", "Do", "x"),
		row("Button", "4. Anatomy", "Label", "y"),
		row("Button", "2. Props", "", "a: b"),
	}, "Button")

	_ = models.Walk(root, func(n *models.Node, _ int) error {
		if n.Kind == models.KindHeader {
			assert.False(t, n.FillWidth)
		} else {
			assert.True(t, n.FillWidth, "%s %q", n.Kind, n.Name)
		}
		return nil
	})
}

func TestBuildNoMatchingRows(t *testing.T) {
	root, diags := build(t, []models.Row{row("Button", "1. Description", "", "text")}, "Card")

	require.Len(t, diags, 1)
	assert.Equal(t, models.NoMatchingRows, diags[0].Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, models.RoleNotice, root.Children[1].Text.Role)
	assert.Contains(t, root.Children[1].Text.Content, "Card")
	assert.Empty(t, categories(root))
}

func TestBuildSkipsBrokenCategory(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := NewBuilder(Options{Logger: zap.New(core)})

	doc := &models.OrganizedDocument{
		Component: "Button",
		Categories: []models.Category{
			{Name: "1. Description", Subcategories: []models.Subcategory{{Name: models.MainContent, Lines: []string{"ok"}}}},
			{Name: "3. Usage"},
			{Name: "", Subcategories: []models.Subcategory{{Name: "x", Lines: []string{"y"}}}},
			{Name: "5. Accessibility", Subcategories: []models.Subcategory{{Name: "Keyboard", Lines: []string{"tab"}}}},
		},
	}

	root, diags := b.Build(doc)

	var names []string
	for _, c := range categories(root) {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"1. Description", "5. Accessibility"}, names)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, models.CategorySynthesisFailure, d.Kind)
		assert.Error(t, d.Unwrap())
	}
	assert.Equal(t, 2, logs.FilterMessage("Category skipped").Len())
}

func TestBuildMalformedStyleRangeKeepsLine(t *testing.T) {
	root, diags := build(t, []models.Row{
		row("Button", "3. Usage", "Do", "**a `b` c**"),
	}, "Button")

	assert.Contains(t, texts(root), "a b c")
	require.NotEmpty(t, diags)
	assert.Equal(t, models.MalformedStyleRange, diags[0].Kind)
	assert.Equal(t, "3. Usage", diags[0].Category)
	assert.Equal(t, "Do", diags[0].Subcategory)
}

func TestBuildCustomMetrics(t *testing.T) {
	m := DefaultMetrics()
	m.ContentWidth = 1200
	m.ImageWidth = 400

	root, _ := NewBuilder(Options{Metrics: m}).Build(Organize([]models.Row{row("Button", "3. Usage", "Do", "x")}, "Button"))
	assert.Equal(t, 1200, root.Children[0].Width)
	images := models.FindAll(root, models.KindImagePlaceholder)
	require.Len(t, images, 1)
	assert.Equal(t, 400, images[0].Image.W)
}
