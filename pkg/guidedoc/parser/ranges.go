package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// ResolveRange resolves ref to a sheet name and cell range. ref is either a
// range reference ('Sheet'!$A$1:$D$10, Sheet!A1:D10, A1:D10) or the name of a
// workbook defined name holding such a reference. An empty sheet name means
// the caller picks the sheet.
func ResolveRange(f *excelize.File, ref string) (string, *models.CellRange, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil, nil
	}

	for _, dn := range f.GetDefinedName() {
		if strings.EqualFold(dn.Name, ref) {
			ref = dn.RefersTo
			break
		}
	}

	sheet, area := ParseRangeReference(ref)
	if area == nil {
		return "", nil, fmt.Errorf("invalid range reference %q", ref)
	}
	return sheet, area, nil
}

// ParseRangeReference parses a range reference string. Only the first area of
// a comma separated list is used.
// Format: 'SheetName'!$A$1:$D$10, SheetName!$A$1:$D$10 or $A$1:$D$10
func ParseRangeReference(ref string) (string, *models.CellRange) {
	part, _, _ := strings.Cut(ref, ",")
	part = strings.TrimSpace(part)
	if part == "" {
		return "", nil
	}

	var sheetName string
	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(part, "!"); idx >= 0 {
		// Remove quotes from sheet name
		sheetName = strings.Trim(part[:idx], "'")
		part = part[idx+1:]
	}

	return sheetName, parseRangeToArea(part)
}

// parseRangeToArea parses a range string like $A$1:$D$10 to CellRange.
func parseRangeToArea(rangeStr string) *models.CellRange {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	// Split by :
	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.CellRange{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}
}
