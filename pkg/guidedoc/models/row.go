// Package models defines the data structures shared by the synthesis stages.
package models

import "strings"

// RowCells is the number of cells a source record must carry to become a Row.
const RowCells = 4

// Row represents a single documentation row of the guideline sheet.
type Row struct {
	// Component is the UI component the row documents (column A).
	Component string `json:"component"`
	// Category is the top level grouping label (column B).
	Category string `json:"category"`
	// Subcategory is the second level grouping label (column C), may be empty.
	Subcategory string `json:"subcategory,omitempty"`
	// Guideline is the content line (column D).
	Guideline string `json:"guideline"`
}

// RowFromCells builds a Row from positional cells. It reports false when
// fewer than RowCells cells are present.
func RowFromCells(cells []string) (Row, bool) {
	if len(cells) < RowCells {
		return Row{}, false
	}
	return Row{
		Component:   cells[0],
		Category:    cells[1],
		Subcategory: cells[2],
		Guideline:   cells[3],
	}, true
}

// Matches reports whether the row belongs to component. Both sides are
// trimmed, comparison is case-sensitive.
func (r Row) Matches(component string) bool {
	return strings.TrimSpace(r.Component) == strings.TrimSpace(component)
}
