// Package parser turns guideline sheets into rows and props lines into table
// rows.
package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// headerLabel is the first cell of the header record of a guideline sheet.
const headerLabel = "component"

// ExtractRows reads guideline rows from a sheet. When area is nil the
// bounding box of non-empty cells is used. Four columns are read starting at
// the first column of the area.
func ExtractRows(f *excelize.File, sheetName string, area *models.CellRange) (models.RowSet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.RowSet{}, err
	}

	set := models.RowSet{SheetName: sheetName}
	bounds := area
	if bounds == nil {
		if bounds = findDataBounds(rows); bounds == nil {
			return set, nil
		}
	}

	records := make([][]string, 0, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		if rowNum < bounds.R1 || rowNum > bounds.R2 {
			continue
		}
		// GetRows drops trailing empty cells, the grid is padded back
		cells := make([]string, models.RowCells)
		for i := range cells {
			colIdx := bounds.C1 - 1 + i
			if colIdx < len(row) && colIdx < bounds.C2 {
				cells[i] = cellText(row[colIdx])
			}
		}
		records = append(records, cells)
	}

	fromRecords := RowsFromRecords(records)
	set.Rows, set.Rejected = fromRecords.Rows, fromRecords.Rejected
	return set, nil
}

// RowsFromRecords converts positional records into rows. Blank records and
// the header record are skipped, records with fewer than four cells are
// rejected.
func RowsFromRecords(records [][]string) models.RowSet {
	var set models.RowSet
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		if i == 0 && IsHeaderRecord(rec) {
			continue
		}
		row, ok := models.RowFromCells(rec)
		if !ok {
			set.Rejected++
			continue
		}
		set.Rows = append(set.Rows, row)
	}
	return set
}

// IsHeaderRecord reports whether rec is the column header of a guideline
// sheet.
func IsHeaderRecord(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), headerLabel)
}

// cellText normalizes the line endings of a cell value.
func cellText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) *models.CellRange {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return nil
	}
	return &models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}
}
