// Package guidedoc synthesizes UI guideline page layouts from flat tables of
// documentation rows.
package guidedoc

import (
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/layout"
)

// LoadOptions configures how rows are read from a workbook.
type LoadOptions struct {
	// Sheet is the sheet to read. Empty means the first sheet, or the sheet
	// named by Range.
	Sheet string
	// Range restricts reading to a cell range or a defined name. Empty means
	// the bounding box of the data.
	Range string
	// AllSheets reads every sheet and concatenates the rows.
	// If nil, defaults to true when neither Sheet nor Range is set.
	AllSheets *bool
}

// ShouldReadAllSheets returns whether every sheet should be read.
func (o LoadOptions) ShouldReadAllSheets() bool {
	if o.AllSheets != nil {
		return *o.AllSheets
	}
	return o.Sheet == "" && o.Range == ""
}

// Options configures synthesis.
type Options struct {
	// Metrics sizes layout hints. Zero value means layout.DefaultMetrics.
	Metrics layout.Metrics
	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns default synthesis options.
func DefaultOptions() Options {
	return Options{
		Metrics: layout.DefaultMetrics(),
	}
}
