package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// ParseCSV reads guideline rows from CSV data. Quoted fields may contain
// commas and line breaks.
func ParseCSV(r io.Reader) (models.RowSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RowSet{}, fmt.Errorf("csv: %w", err)
		}
		for i := range rec {
			rec[i] = cellText(rec[i])
		}
		records = append(records, rec)
	}
	return RowsFromRecords(records), nil
}
