package parser

import (
	"strings"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// TableDelimiter separates cells of a props line.
const TableDelimiter = "|"

// IsTableLine reports whether line is pipe-delimited table data.
func IsTableLine(line string) bool {
	return strings.Contains(line, TableDelimiter)
}

// SplitTableRow splits a props line into the four props columns. Lines
// without a pipe are read as "name: description". The second result is
// false when cells had to be made up for the row.
//
// Fewer than four cells are laid out left to right with empty cells after
// them, except a two cell row, which is taken as name and description.
// Surplus cells are joined into the description.
func SplitTableRow(line string) (models.TableRow, bool) {
	var row models.TableRow

	if !IsTableLine(line) {
		name, desc, found := strings.Cut(line, ":")
		row[0] = strings.TrimSpace(name)
		row[3] = strings.TrimSpace(desc)
		return row, found
	}

	cells := splitCells(line)
	switch {
	case len(cells) == 2:
		row[0], row[3] = cells[0], cells[1]
		return row, false
	case len(cells) > models.TableColumns:
		copy(row[:], cells[:models.TableColumns-1])
		row[3] = strings.Join(cells[models.TableColumns-1:], " "+TableDelimiter+" ")
		return row, true
	default:
		copy(row[:], cells)
		return row, len(cells) == models.TableColumns
	}
}

// ParseTableRows splits props lines into table rows. Blank lines, repeated
// header lines and markdown separator lines are skipped. Lines which needed
// padding are returned as malformed, their rows are still part of the result.
func ParseTableRows(lines []string) (rows []models.TableRow, malformed []string) {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isSeparatorLine(line) {
			continue
		}
		row, ok := SplitTableRow(line)
		if row.IsHeader() {
			continue
		}
		if !ok {
			malformed = append(malformed, line)
		}
		rows = append(rows, row)
	}
	return rows, malformed
}

// splitCells splits on the delimiter and trims cells. The empty cells made by
// leading and trailing pipes ("| a | b |") are removed.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, TableDelimiter)
	line = strings.TrimSuffix(line, TableDelimiter)

	parts := strings.Split(line, TableDelimiter)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// isSeparatorLine reports whether line is a markdown table rule like
// "|---|:---:|".
func isSeparatorLine(line string) bool {
	if !IsTableLine(line) {
		return false
	}
	for _, cell := range splitCells(line) {
		if strings.Trim(cell, "-: ") != "" || !strings.Contains(cell, "-") {
			return false
		}
	}
	return true
}
