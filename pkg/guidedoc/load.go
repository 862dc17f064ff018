package guidedoc

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/parser"
)

// Load reads guideline rows from an xlsx workbook or a CSV file, chosen by
// the file extension.
func Load(path string, opts LoadOptions) (*models.RowSet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(path, opts)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, filepath.Base(path))
	}
}

// LoadCSV reads guideline rows from a CSV file.
func LoadCSV(path string) (*models.RowSet, error) {
	bookName := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(bookName, "open", err)
	}
	defer f.Close()

	set, err := parser.ParseCSV(f)
	if err != nil {
		return nil, NewLoadError(bookName, "rows", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	set.BookName = bookName
	return &set, nil
}

// LoadWorkbook reads guideline rows from an xlsx workbook.
func LoadWorkbook(path string, opts LoadOptions) (*models.RowSet, error) {
	bookName := filepath.Base(path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(bookName, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheetName, area, err := parser.ResolveRange(f, opts.Range)
	if err != nil {
		return nil, NewLoadError(bookName, "range", err)
	}
	if opts.Sheet != "" {
		sheetName = opts.Sheet
	}

	// Get sheet names
	sheetList := f.GetSheetList()
	if sheetName == "" && !opts.ShouldReadAllSheets() && len(sheetList) > 0 {
		sheetName = sheetList[0]
	}

	if sheetName != "" && !slices.Contains(sheetList, sheetName) {
		return nil, NewLoadError(bookName, "rows", fmt.Errorf("sheet %q does not exist", sheetName))
	}

	result := &models.RowSet{BookName: bookName, SheetName: sheetName}
	for _, name := range sheetList {
		if sheetName != "" && name != sheetName {
			continue
		}
		set, err := parser.ExtractRows(f, name, area)
		if err != nil {
			return nil, NewLoadError(bookName, "rows", err)
		}
		result.Rows = append(result.Rows, set.Rows...)
		result.Rejected += set.Rejected
	}
	return result, nil
}
