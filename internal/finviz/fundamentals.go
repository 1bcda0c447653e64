package finviz

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// snapshotTableSelectors locate the label/value metric grid.
var snapshotTableSelectors = []string{
	"table.snapshot-table2",
	"table.js-snapshot-table",
	".snapshot-table-wrapper table",
}

// profileSelectors locate the company description block.
var profileSelectors = []string{
	"td.fullview-profile",
	".quote-profile",
}

// parseFundamentalsDocument extracts the snapshot metrics for ticker.
// The grid alternates label and value cells; labels are matched against
// a fixed vocabulary and unknown labels are ignored. A page without the
// table yields a partial object carrying only the ticker.
func parseFundamentalsDocument(doc *goquery.Document, ticker string) *FundamentalMetrics {
	metrics := &FundamentalMetrics{Ticker: ticker}

	var table *goquery.Selection
	for _, selector := range snapshotTableSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			table = sel
			break
		}
	}
	if table == nil {
		return metrics
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		// Adjacent label/value pairs across the row.
		for i := 0; i+1 < cells.Length(); i += 2 {
			label := strings.TrimSpace(cells.Eq(i).Text())
			value := strings.TrimSpace(cells.Eq(i + 1).Text())
			assignMetric(metrics, label, value)
		}
	})

	metrics.Profile = extractProfile(doc)

	return metrics
}

// assignMetric maps a known snapshot label to its field. Unrecognized
// labels are no-ops.
func assignMetric(m *FundamentalMetrics, label, value string) {
	switch label {
	case "P/E":
		m.PE = value
	case "Forward P/E":
		m.ForwardPE = value
	case "PEG":
		m.PEG = value
	case "P/B":
		m.PriceToBook = value
	case "Current Ratio":
		m.CurrentRatio = value
	case "Debt/Eq":
		m.DebtToEquity = value
	case "ROE":
		m.ROE = value
	case "Profit Margin":
		m.ProfitMargin = value
	case "Insider Own":
		m.InsiderOwnership = value
	case "Short Float":
		m.ShortFloat = value
	case "Market Cap":
		m.MarketCap = value
	case "EPS next Y":
		m.EPSGrowthNextY = value
	case "EPS next 5Y":
		m.EPSGrowthNext5Y = value
	case "Sales past 5Y":
		m.SalesGrowth5Y = value
	case "RSI (14)":
		m.RSI14 = value
	case "SMA200":
		m.SMA200 = value
	case "Price":
		m.Price = value
	}
}

// extractProfile converts the company description block to markdown so
// downstream consumers get plain readable text instead of raw HTML.
func extractProfile(doc *goquery.Document) string {
	for _, selector := range profileSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		html, err := sel.Html()
		if err != nil || html == "" {
			continue
		}
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(html)
		if err != nil {
			return strings.TrimSpace(sel.Text())
		}
		return strings.TrimSpace(markdown)
	}
	return ""
}
