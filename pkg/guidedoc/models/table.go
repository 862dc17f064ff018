package models

import "strings"

// TableColumns is the number of columns of a props table.
const TableColumns = 4

// PropsHeader is the canonical header line of a props subcategory. A source
// row equal to it is dropped as a duplicated header.
const PropsHeader = "Prop Name | Type | Default Value | Description"

// PropsColumnLabels are the labels rendered in the props table header.
var PropsColumnLabels = [TableColumns]string{"Prop Name", "Type", "Default", "Description"}

// TableRow is one row of a props table: name, type, default and description.
type TableRow [TableColumns]string

// Name returns the first cell.
func (r TableRow) Name() string { return r[0] }

// Type returns the second cell.
func (r TableRow) Type() string { return r[1] }

// Default returns the third cell.
func (r TableRow) Default() string { return r[2] }

// Description returns the fourth cell.
func (r TableRow) Description() string { return r[3] }

// Joined returns cells joined the way they appear in the source sheet.
func (r TableRow) Joined() string {
	return strings.Join(r[:], " | ")
}

// IsHeader reports whether the row repeats the canonical header.
func (r TableRow) IsHeader() bool {
	return r.Joined() == PropsHeader
}
