package models

// RowSet represents the rows loaded from one sheet of a guideline source.
type RowSet struct {
	// BookName is the source file name or URL (no directory part for files).
	BookName string `json:"book_name"`
	// SheetName is the sheet the rows were read from (empty for CSV sources).
	SheetName string `json:"sheet_name,omitempty"`
	// Rows contains the accepted rows in source order.
	Rows []Row `json:"rows"`
	// Rejected counts records dropped for having fewer than RowCells cells.
	Rejected int `json:"rejected,omitempty"`
}
