// Package layout organizes guideline rows of a component and builds the
// renderer independent layout tree for them.
package layout

import (
	"strings"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// Organize groups the rows of component into categories and subcategories,
// both in first-seen order. Rows without category or guideline are skipped,
// an empty subcategory becomes models.MainContent. A component without rows
// yields an empty document.
func Organize(rows []models.Row, component string) *models.OrganizedDocument {
	component = strings.TrimSpace(component)
	doc := &models.OrganizedDocument{Component: component}

	catIndex := make(map[string]int)
	subIndex := make(map[string]map[string]int)

	for _, row := range rows {
		if !row.Matches(component) {
			continue
		}
		category := strings.TrimSpace(row.Category)
		guideline := strings.TrimSpace(row.Guideline)
		if category == "" || guideline == "" {
			continue
		}
		subcategory := strings.TrimSpace(row.Subcategory)
		if subcategory == "" {
			subcategory = models.MainContent
		}

		ci, ok := catIndex[category]
		if !ok {
			ci = len(doc.Categories)
			catIndex[category] = ci
			subIndex[category] = make(map[string]int)
			doc.Categories = append(doc.Categories, models.Category{Name: category})
		}
		cat := &doc.Categories[ci]

		si, ok := subIndex[category][subcategory]
		if !ok {
			si = len(cat.Subcategories)
			subIndex[category][subcategory] = si
			cat.Subcategories = append(cat.Subcategories, models.Subcategory{Name: subcategory})
		}
		cat.Subcategories[si].Lines = append(cat.Subcategories[si].Lines, guideline)
	}
	return doc
}
