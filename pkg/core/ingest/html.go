package ingest

import (
	"fmt"
	"io"
	"strings"

	"statement_insight/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML extracts the first <table> of an HTML document. Statement
// exports from accounting tools are often HTML tables with an .xls
// extension in disguise; this path handles the honest ones.
func ParseHTML(r io.Reader) ([]models.StatementRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ErrFormat{Reason: fmt.Sprintf("parse html: %v", err)}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &ErrFormat{Reason: "document contains no <table>"}
	}

	var raw [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			raw = append(raw, cells)
		}
	})
	return normalize(raw)
}
