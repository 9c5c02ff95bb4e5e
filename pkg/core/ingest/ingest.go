// Package ingest turns an uploaded statement file into the three-column row
// sequence the calculator consumes. Columns are mapped positionally to
// indicator / prior / current; the only schema check is the column count.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"statement_insight/pkg/models"
)

// ErrFormat reports an upload the ingester cannot read as a statement table.
type ErrFormat struct {
	Reason string
}

func (e *ErrFormat) Error() string {
	return "cannot read statement file: " + e.Reason
}

// Parse dispatches on the file extension. Supported formats: .xlsx, .csv
// (and .tsv), .html/.htm.
func Parse(filename string, r io.Reader) ([]models.StatementRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(r)
	case ".csv", ".tsv":
		return ParseCSV(r)
	case ".html", ".htm":
		return ParseHTML(r)
	default:
		return nil, &ErrFormat{Reason: fmt.Sprintf("unsupported file type %q (want .xlsx, .csv or .html)", filepath.Ext(filename))}
	}
}

// normalize converts raw cell rows into statement rows. Every non-empty row
// must have exactly three cells; trailing empty cells are tolerated because
// spreadsheet readers commonly pad short rows. A leading header row is
// skipped when both value cells are non-numeric.
func normalize(raw [][]string) ([]models.StatementRow, error) {
	rows := make([]models.StatementRow, 0, len(raw))
	for i, cells := range raw {
		for len(cells) > 3 && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}
		if isEmptyRow(cells) {
			continue
		}
		if len(cells) > 3 {
			return nil, &ErrFormat{Reason: fmt.Sprintf("row %d has %d columns, want exactly 3 (indicator | prior | current)", i+1, len(cells))}
		}
		// Spreadsheet readers drop trailing empty cells; pad the row back so
		// a missing value coerces to zero downstream.
		for len(cells) < 3 {
			cells = append(cells, "")
		}
		if len(rows) == 0 && looksLikeHeader(cells) {
			continue
		}
		rows = append(rows, models.StatementRow{
			Indicator: strings.TrimSpace(cells[0]),
			Prior:     strings.TrimSpace(cells[1]),
			Current:   strings.TrimSpace(cells[2]),
		})
	}
	if len(rows) == 0 {
		return nil, &ErrFormat{Reason: "no data rows found"}
	}
	return rows, nil
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// looksLikeHeader reports whether a leading row is a label row: both value
// cells present but neither parseable as a number.
func looksLikeHeader(cells []string) bool {
	return !isNumericCell(cells[1]) && !isNumericCell(cells[2]) &&
		strings.TrimSpace(cells[1]) != "" && strings.TrimSpace(cells[2]) != ""
}

func isNumericCell(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
