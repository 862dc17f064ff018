package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/parser"
)

// Reserved category labels.
const (
	// PropsCategory is the label of the props category in guideline sheets.
	PropsCategory = "2. Props"

	propsToken       = "props"
	anatomyToken     = "anatomy"
	descriptionToken = "description"
)

// Policy is the layout pattern applied to a category.
type Policy int

const (
	// PolicyDefault renders subcategories as bullet lists paired with an
	// illustration on alternating sides.
	PolicyDefault Policy = iota
	// PolicyAnatomy renders one shared illustration followed by bullet lists.
	PolicyAnatomy
	// PolicyPropsTable renders subcategories as props tables.
	PolicyPropsTable
)

func (p Policy) String() string {
	switch p {
	case PolicyAnatomy:
		return "anatomy"
	case PolicyPropsTable:
		return "props_table"
	default:
		return "default"
	}
}

// Classification is the layout decision for one category.
type Classification struct {
	Policy Policy
	// Description suppresses subcategory titles, bullets and images and
	// enlarges the body font.
	Description bool
}

var listNumber = regexp.MustCompile(`^\d+\s*[.)]\s*`)

// NormalizeLabel trims label, removes a leading list number ("2. ", "3) ")
// and case folds the rest.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = listNumber.ReplaceAllString(label, "")
	// Casers are stateful and must not be shared between goroutines.
	return cases.Fold().String(label)
}

// Classify picks the layout policy from the category label alone.
func Classify(category string) Policy {
	normalized := NormalizeLabel(category)
	switch {
	case strings.TrimSpace(category) == PropsCategory || normalized == propsToken:
		return PolicyPropsTable
	case strings.Contains(normalized, anatomyToken):
		return PolicyAnatomy
	default:
		return PolicyDefault
	}
}

// IsDescription reports whether category carries the description flag.
func IsDescription(category string) bool {
	return strings.Contains(NormalizeLabel(category), descriptionToken)
}

// ClassifyCategory classifies a category by label and content: pipe-delimited
// content turns any category into a props table.
func ClassifyCategory(cat *models.Category) Classification {
	c := Classification{
		Policy:      Classify(cat.Name),
		Description: IsDescription(cat.Name),
	}
	if c.Policy != PolicyPropsTable {
		for _, line := range cat.Lines() {
			if parser.IsTableLine(line) {
				c.Policy = PolicyPropsTable
				break
			}
		}
	}
	return c
}
