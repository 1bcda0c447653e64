package finviz

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// signalCodes maps screener signal presets to the page's s= parameter.
var signalCodes = map[string]string{
	"top_gainers":    "ta_topgainers",
	"top_losers":     "ta_toplosers",
	"new_high":       "ta_newhigh",
	"new_low":        "ta_newlow",
	"most_volatile":  "ta_mostvolatile",
	"most_active":    "ta_mostactive",
	"oversold":       "ta_oversold",
	"overbought":     "ta_overbought",
	"unusual_volume": "ta_unusualvolume",
	"insider_buying": "it_latestbuys",
}

// marketCapFilters maps coarse market-cap buckets to f= filter codes.
var marketCapFilters = map[string]string{
	"mega":  "cap_mega",
	"large": "cap_large",
	"mid":   "cap_mid",
	"small": "cap_small",
	"micro": "cap_micro",
}

// ScreenOptions select which screener view to fetch.
type ScreenOptions struct {
	Signal    string // preset name, see signalCodes
	Sector    string // sector filter, e.g. "technology"
	MarketCap string // bucket name, see marketCapFilters
	Limit     int    // max rows returned, 0 = all
}

// KnownSignals lists the accepted signal preset names.
func KnownSignals() []string {
	names := make([]string, 0, len(signalCodes))
	for name := range signalCodes {
		names = append(names, name)
	}
	return names
}

func (o ScreenOptions) queryParams() url.Values {
	params := url.Values{}
	params.Set("v", "111") // overview view: the 11-column table

	if code, ok := signalCodes[strings.ToLower(o.Signal)]; ok {
		params.Set("s", code)
	}

	var filters []string
	if o.Sector != "" {
		filters = append(filters, "sec_"+strings.ToLower(strings.ReplaceAll(o.Sector, " ", "")))
	}
	if code, ok := marketCapFilters[strings.ToLower(o.MarketCap)]; ok {
		filters = append(filters, code)
	}
	if len(filters) > 0 {
		params.Set("f", strings.Join(filters, ","))
	}

	return params
}

// screenerTableSelectors locate the results table across page layout
// revisions, tried in order.
var screenerTableSelectors = []string{
	"table.screener_table",
	"table.styled-table-new",
	"table.table-light",
	"#screener-table table",
}

// parseScreenerDocument extracts screening rows from the results table.
// The header row is skipped, rows need at least 11 cells, and rows with
// a blank or "-" ticker are discarded. A page without the table yields
// an empty slice.
func parseScreenerDocument(doc *goquery.Document) []ScreeningRow {
	var table *goquery.Selection
	for _, selector := range screenerTableSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			table = sel
			break
		}
	}
	if table == nil {
		return nil
	}

	var rows []ScreeningRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := tr.Find("td")
		if cells.Length() < 11 {
			return
		}

		cell := func(idx int) string {
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		ticker := cell(1)
		if ticker == "" || ticker == "-" {
			return
		}

		rows = append(rows, ScreeningRow{
			Ticker:    ticker,
			Company:   cell(2),
			Sector:    cell(3),
			Industry:  cell(4),
			Country:   cell(5),
			MarketCap: cell(6),
			PE:        cell(7),
			Price:     cell(8),
			Change:    cell(9),
			Volume:    cell(10),
		})
	})

	return rows
}
