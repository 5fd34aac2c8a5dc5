package fundamentus

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/internal/normalize"
)

// signatureColumns identify the FII result table among whatever tables the
// page carries. At least minSignatureHits of them must appear in a header.
var signatureColumns = []string{
	normalize.ColTicker,
	normalize.ColSegment,
	normalize.ColPrice,
	normalize.ColDividendYield,
	normalize.ColPVP,
	normalize.ColLiquidity,
}

const minSignatureHits = 4

// parseResultTable locates the fund table in the document and extracts one
// RawRecord per row, keyed by canonical column key. Discovery is tolerant:
// every table is inspected and matched by header signature, not position.
func parseResultTable(html string) ([]contracts.RawRecord, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parse HTML: %w", err)
	}

	var records []contracts.RawRecord
	var columns []string
	found := false

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		header := tableHeader(table)
		if countSignatureHits(header) < minSignatureHits {
			return true // keep looking
		}

		columns = header
		records = extractRows(table, header)
		found = true
		return false
	})

	if !found {
		return nil, nil, fmt.Errorf("no table matching the expected column signature")
	}

	return records, columns, nil
}

// tableHeader reads the header row and canonicalizes each label
func tableHeader(table *goquery.Selection) []string {
	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = table.Find("tr").First()
	}

	var header []string
	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		header = append(header, normalize.ResolveColumn(cell.Text()))
	})
	return header
}

// countSignatureHits counts expected columns present in a header
func countSignatureHits(header []string) int {
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		seen[h] = struct{}{}
	}

	hits := 0
	for _, want := range signatureColumns {
		if _, ok := seen[want]; ok {
			hits++
		}
	}
	return hits
}

// extractRows turns data rows into RawRecords. Rows with a different cell
// count than the header (spacers, ads) are skipped.
func extractRows(table *goquery.Selection, header []string) []contracts.RawRecord {
	var records []contracts.RawRecord

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != len(header) {
			return
		}

		record := make(contracts.RawRecord, len(header))
		cells.Each(func(j int, cell *goquery.Selection) {
			record[header[j]] = strings.TrimSpace(cell.Text())
		})

		records = append(records, record)
	})

	return records
}
