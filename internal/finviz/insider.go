package finviz

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// insiderTableSelectors locate the insider-trading table.
var insiderTableSelectors = []string{
	"table.body-table",
	"table.insider-trading-table",
	".insider-trading table",
}

// parseInsiderDocument extracts insider transactions. The header row is
// skipped, rows need at least 7 cells, and rows with a blank or "-"
// insider name are discarded. A missing 8th shares-total cell defaults
// to "N/A".
func parseInsiderDocument(doc *goquery.Document) []InsiderTransaction {
	var table *goquery.Selection
	for _, selector := range insiderTableSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			table = sel
			break
		}
	}
	if table == nil {
		return nil
	}

	var transactions []InsiderTransaction
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := tr.Find("td")
		if cells.Length() < 7 {
			return
		}

		cell := func(idx int) string {
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		insider := cell(0)
		if insider == "" || insider == "-" {
			return
		}

		sharesTotal := "N/A"
		if cells.Length() >= 8 {
			sharesTotal = cell(7)
		}

		transactions = append(transactions, InsiderTransaction{
			Insider:      insider,
			Relationship: cell(1),
			Date:         cell(2),
			Transaction:  cell(3),
			Cost:         cell(4),
			Shares:       cell(5),
			Value:        cell(6),
			SharesTotal:  sharesTotal,
		})
	})

	return transactions
}
