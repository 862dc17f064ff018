package layout

// Metrics holds the sizes the builder writes into layout hints. All values
// are pixels.
type Metrics struct {
	// ContentWidth is the fixed width of the document header.
	ContentWidth int
	// Padding is the document padding on each side.
	Padding int
	// ItemSpacing is the gap between sibling blocks.
	ItemSpacing int
	// DividerRule is the thickness of the rule under category titles.
	DividerRule int
	// TableHeaderRule separates the props table header from its body.
	TableHeaderRule int
	// TableRowRule separates props table body rows.
	TableRowRule int
	// DescriptionColumnWidth is the fixed width of the props description column.
	DescriptionColumnWidth int
	// ImageWidth and ImageHeight size image placeholders.
	ImageWidth  int
	ImageHeight int
	// Font sizes per text role.
	TitleFontSize            int
	CategoryTitleFontSize    int
	SubcategoryTitleFontSize int
	BodyFontSize             int
	DescriptionFontSize      int
}

// DefaultMetrics returns the sizes of the standard guideline page.
func DefaultMetrics() Metrics {
	return Metrics{
		ContentWidth:             800,
		Padding:                  48,
		ItemSpacing:              24,
		DividerRule:              1,
		TableHeaderRule:          2,
		TableRowRule:             1,
		DescriptionColumnWidth:   320,
		ImageWidth:               320,
		ImageHeight:              200,
		TitleFontSize:            32,
		CategoryTitleFontSize:    24,
		SubcategoryTitleFontSize: 18,
		BodyFontSize:             14,
		DescriptionFontSize:      18,
	}
}

// InnerWidth returns the width available to blocks inside the padding.
func (m Metrics) InnerWidth() int {
	return m.ContentWidth - 2*m.Padding
}
