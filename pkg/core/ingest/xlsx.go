package ingest

import (
	"fmt"
	"io"

	"statement_insight/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of a workbook. Cell values come back as
// display strings; numeric coercion stays with the calculator.
func ParseXLSX(r io.Reader) ([]models.StatementRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ErrFormat{Reason: fmt.Sprintf("open workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ErrFormat{Reason: "workbook has no sheets"}
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ErrFormat{Reason: fmt.Sprintf("read sheet %q: %v", sheets[0], err)}
	}
	return normalize(raw)
}
