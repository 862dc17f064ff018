package guidedoc

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/layout"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/parser"
)

// Result is the outcome of one synthesis call.
type Result struct {
	// Component is the requested component (trimmed).
	Component string `json:"component"`
	// Organized is the category hierarchy the layout was built from.
	Organized *models.OrganizedDocument `json:"organized"`
	// Layout is the document node of the layout tree.
	Layout *models.Node `json:"layout"`
	// Diagnostics lists problems recovered while building the layout.
	Diagnostics []*models.SynthesisError `json:"diagnostics,omitempty"`
}

// Err returns all diagnostics combined into one error, nil when there are none.
func (r *Result) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}
	return err
}

// HasContent reports whether any row matched the component.
func (r *Result) HasContent() bool {
	return !r.Organized.Empty()
}

// Synthesize organizes the rows of component and builds their layout tree.
// It never fails: problems are reported through Result.Diagnostics.
func Synthesize(rows []models.Row, component string, opts Options) *Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	doc := layout.Organize(rows, component)
	builder := layout.NewBuilder(layout.Options{Metrics: opts.Metrics, Logger: log})
	root, diags := builder.Build(doc)

	log.Debug("Synthesized document",
		zap.String("component", doc.Component),
		zap.Int("categories", len(doc.Categories)),
		zap.Int("diagnostics", len(diags)))

	return &Result{
		Component:   doc.Component,
		Organized:   doc,
		Layout:      root,
		Diagnostics: diags,
	}
}

// Components returns the distinct component names found in rows, in natural
// order ("Button 2" before "Button 10").
func Components(rows []models.Row) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		name := strings.TrimSpace(row.Component)
		if name == "" || seen[name] || parser.IsHeaderRecord([]string{name}) {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}
