package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"statement_insight/pkg/models"
)

// ParseCSV reads a comma-separated statement table. FieldsPerRecord is left
// unchecked here; the positional three-column check lives in normalize so
// every format reports the same error.
func ParseCSV(r io.Reader) ([]models.StatementRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, &ErrFormat{Reason: fmt.Sprintf("read csv: %v", err)}
	}
	return normalize(raw)
}
