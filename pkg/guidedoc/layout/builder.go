package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/markup"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/parser"
)

var (
	errNoCategoryName = errors.New("category has no name")
	errNoContent      = errors.New("category has no content")
)

// Options configures a Builder.
type Options struct {
	// Metrics sizes the layout hints. Zero value means DefaultMetrics.
	Metrics Metrics
	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Builder turns organized documents into layout trees. A Builder holds no
// per-document state and may be shared.
type Builder struct {
	m   Metrics
	log *zap.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(opts Options) *Builder {
	b := &Builder{m: opts.Metrics, log: opts.Logger}
	if b.m == (Metrics{}) {
		b.m = DefaultMetrics()
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	return b
}

// Metrics returns the sizes used by the builder.
func (b *Builder) Metrics() Metrics {
	return b.m
}

// Build creates the layout tree of doc. It always returns a document node;
// problems are recovered at the narrowest scope and returned as diagnostics.
// A category that cannot be built is left out of the tree.
func (b *Builder) Build(doc *models.OrganizedDocument) (*models.Node, []*models.SynthesisError) {
	var component string
	if doc != nil {
		component = doc.Component
	}

	root := &models.Node{Kind: models.KindDocument, Name: component, FillWidth: true, Axis: models.AxisVertical}
	root.Append(&models.Node{
		Kind:  models.KindHeader,
		Name:  component,
		Width: b.m.ContentWidth,
		Axis:  models.AxisVertical,
		Text:  &models.TextRun{Content: component, Role: models.RoleTitle, FontSize: b.m.TitleFontSize},
	})

	if doc.Empty() {
		b.log.Info("No rows for component", zap.String("component", component))
		root.Append(textNode(models.TextRun{
			Content:  fmt.Sprintf("No documentation found for %q.", component),
			Role:     models.RoleNotice,
			FontSize: b.m.BodyFontSize,
		}))
		return root, []*models.SynthesisError{
			models.NewSynthesisError(models.NoMatchingRows, "", "", component, nil),
		}
	}

	var diags []*models.SynthesisError
	for i := range doc.Categories {
		cat := &doc.Categories[i]
		node, catDiags, err := b.buildCategory(cat)
		diags = append(diags, catDiags...)
		if err != nil {
			b.log.Warn("Category skipped", zap.String("component", component), zap.String("category", cat.Name), zap.Error(err))
			diags = append(diags, models.NewSynthesisError(models.CategorySynthesisFailure, cat.Name, "", "", err))
			continue
		}
		root.Append(node)
	}
	return root, diags
}

// buildCategory builds one category block. Panics are turned into errors so
// one bad category cannot abort the document.
func (b *Builder) buildCategory(cat *models.Category) (node *models.Node, diags []*models.SynthesisError, err error) {
	defer func() {
		if r := recover(); r != nil {
			node, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	if cat.Name == "" {
		return nil, nil, errNoCategoryName
	}
	if len(cat.Subcategories) == 0 {
		return nil, nil, errNoContent
	}

	cls := ClassifyCategory(cat)
	b.log.Debug("Building category", zap.String("category", cat.Name), zap.Stringer("policy", cls.Policy), zap.Bool("description", cls.Description))

	cb := &categoryBuilder{Builder: b, cat: cat, cls: cls}
	block := &models.Node{Kind: models.KindCategoryBlock, Name: cat.Name, FillWidth: true, Axis: models.AxisVertical}
	block.Append(cb.titleDivider())

	switch cls.Policy {
	case PolicyPropsTable:
		cb.props(block)
	case PolicyAnatomy:
		cb.anatomy(block)
	default:
		cb.alternating(block)
	}
	return block, cb.diags, nil
}

// categoryBuilder carries the state of one buildCategory call.
type categoryBuilder struct {
	*Builder
	cat   *models.Category
	cls   Classification
	diags []*models.SynthesisError
}

func (cb *categoryBuilder) titleDivider() *models.Node {
	run := cb.resolve(cb.cat.Name, "", markup.LineOptions{Role: models.RoleCategoryTitle, FontSize: cb.m.CategoryTitleFontSize})
	return &models.Node{
		Kind:      models.KindTitleDivider,
		Name:      cb.cat.Name,
		FillWidth: true,
		Axis:      models.AxisVertical,
		Rule:      cb.m.DividerRule,
		Text:      &run,
	}
}

// alternating lays subcategories out next to an illustration which changes
// sides on every subcategory, starting on the right.
func (cb *categoryBuilder) alternating(block *models.Node) {
	counter := 0
	for _, sub := range cb.cat.Subcategories {
		if sub.IsMainContent() || cb.cls.Description {
			block.Append(cb.paragraph(sub))
			continue
		}

		side := models.SideRight
		if counter%2 == 1 {
			side = models.SideLeft
		}
		counter++

		content := cb.list(sub)
		image := cb.image(sub.Name)
		pair := &models.Node{
			Kind:      models.KindSubcategoryBlock,
			Name:      sub.Name,
			FillWidth: true,
			Axis:      models.AxisHorizontal,
			ImageSide: side,
		}
		if side == models.SideRight {
			pair.Append(content, image)
		} else {
			pair.Append(image, content)
		}
		block.Append(pair)
	}
}

// anatomy puts one illustration on top of the category, subcategories
// follow as plain lists.
func (cb *categoryBuilder) anatomy(block *models.Node) {
	if !cb.cls.Description {
		block.Append(cb.image(cb.cat.Name))
	}
	for _, sub := range cb.cat.Subcategories {
		if sub.IsMainContent() || cb.cls.Description {
			block.Append(cb.paragraph(sub))
			continue
		}
		block.Append(cb.list(sub))
	}
}

func (cb *categoryBuilder) props(block *models.Node) {
	for _, sub := range cb.cat.Subcategories {
		node := cb.subcategory(sub.Name, models.AxisVertical)
		if cb.showTitle(sub) {
			node.Append(cb.subcategoryTitle(sub))
		}
		node.Append(cb.table(sub))
		block.Append(node)
	}
}

// paragraph renders lines as plain body text without title or bullets.
func (cb *categoryBuilder) paragraph(sub models.Subcategory) *models.Node {
	node := cb.subcategory(sub.Name, models.AxisVertical)
	opts := markup.LineOptions{Role: models.RoleBody, FontSize: cb.bodyFontSize()}
	for _, line := range sub.Lines {
		node.Append(textNode(cb.resolve(line, sub.Name, opts)))
	}
	return node
}

// list renders the subcategory title followed by one bullet per line.
func (cb *categoryBuilder) list(sub models.Subcategory) *models.Node {
	node := cb.subcategory(sub.Name, models.AxisVertical)
	if cb.showTitle(sub) {
		node.Append(cb.subcategoryTitle(sub))
	}
	opts := markup.LineOptions{Bullet: !cb.cls.Description, Role: models.RoleBody, FontSize: cb.bodyFontSize()}
	for _, line := range sub.Lines {
		node.Append(textNode(cb.resolve(line, sub.Name, opts)))
	}
	return node
}

func (cb *categoryBuilder) table(sub models.Subcategory) *models.Node {
	rows, malformed := parser.ParseTableRows(sub.Lines)
	for _, line := range malformed {
		cb.diags = append(cb.diags, models.NewSynthesisError(models.MalformedTableRow, cb.cat.Name, sub.Name, line, nil))
	}

	table := &models.Table{HeaderRule: cb.m.TableHeaderRule}
	for i, label := range models.PropsColumnLabels {
		col := models.TableColumn{Label: label, FillWidth: true}
		if i == models.TableColumns-1 {
			col.Width, col.FillWidth = cb.m.DescriptionColumnWidth, false
		}
		table.Columns = append(table.Columns, col)
	}

	opts := markup.LineOptions{Role: models.RoleTableCell, FontSize: cb.m.BodyFontSize}
	for i, row := range rows {
		var body models.TableBodyRow
		for c, cell := range row {
			body.Cells[c] = cb.resolve(cell, sub.Name, opts)
		}
		if i < len(rows)-1 {
			body.Rule = cb.m.TableRowRule
		}
		table.Rows = append(table.Rows, body)
	}

	return &models.Node{Kind: models.KindTable, Name: sub.Name, FillWidth: true, Table: table}
}

func (cb *categoryBuilder) image(label string) *models.Node {
	return &models.Node{
		Kind:      models.KindImagePlaceholder,
		Name:      label,
		FillWidth: true,
		Image:     &models.ImagePlaceholder{Label: label, W: cb.m.ImageWidth, H: cb.m.ImageHeight},
	}
}

func (cb *categoryBuilder) subcategory(name string, axis models.Axis) *models.Node {
	return &models.Node{Kind: models.KindSubcategoryBlock, Name: name, FillWidth: true, Axis: axis}
}

func (cb *categoryBuilder) subcategoryTitle(sub models.Subcategory) *models.Node {
	return textNode(cb.resolve(sub.Name, sub.Name, markup.LineOptions{
		Role:     models.RoleSubcategoryTitle,
		FontSize: cb.m.SubcategoryTitleFontSize,
	}))
}

func (cb *categoryBuilder) showTitle(sub models.Subcategory) bool {
	return !sub.IsMainContent() && !cb.cls.Description
}

func (cb *categoryBuilder) bodyFontSize() int {
	if cb.cls.Description {
		return cb.m.DescriptionFontSize
	}
	return cb.m.BodyFontSize
}

// resolve resolves one line and records dropped ranges against the category.
func (cb *categoryBuilder) resolve(line, subcategory string, opts markup.LineOptions) models.TextRun {
	run, errs := markup.ResolveLine(line, opts)
	for _, e := range errs {
		e.Category, e.Subcategory = cb.cat.Name, subcategory
		cb.diags = append(cb.diags, e)
	}
	return run
}

func textNode(run models.TextRun) *models.Node {
	return &models.Node{Kind: models.KindTextRun, FillWidth: true, Text: &run}
}
