package finviz

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func screenerRow(ticker, company string) string {
	return `<tr>
		<td>1</td><td>` + ticker + `</td><td>` + company + `</td>
		<td>Technology</td><td>Software</td><td>USA</td>
		<td>2.95T</td><td>31.2</td><td>189.50</td><td>1.25%</td><td>52,164,500</td>
	</tr>`
}

func TestParseScreenerDocument(t *testing.T) {
	html := `<html><body><table class="screener_table">
		<tr><td>No.</td><td>Ticker</td><td>Company</td><td>Sector</td><td>Industry</td><td>Country</td><td>Market Cap</td><td>P/E</td><td>Price</td><td>Change</td><td>Volume</td></tr>` +
		screenerRow("AAPL", "Apple Inc.") +
		screenerRow("MSFT", "Microsoft Corp.") +
		screenerRow("-", "Placeholder Co.") +
		`</table></body></html>`

	rows := parseScreenerDocument(docFromHTML(t, html))

	require.Len(t, rows, 2, "header skipped, dash-ticker row discarded")
	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, "Apple Inc.", rows[0].Company)
	assert.Equal(t, "Technology", rows[0].Sector)
	assert.Equal(t, "2.95T", rows[0].MarketCap)
	assert.Equal(t, "1.25%", rows[0].Change)
	assert.Equal(t, "52,164,500", rows[0].Volume)
	assert.Equal(t, "MSFT", rows[1].Ticker)
}

func TestParseScreenerDocumentShortRowsSkipped(t *testing.T) {
	html := `<table class="screener_table">
		<tr><td>header</td></tr>
		<tr><td>1</td><td>AAPL</td><td>Apple</td></tr>
	</table>`

	rows := parseScreenerDocument(docFromHTML(t, html))
	assert.Empty(t, rows, "rows with fewer than 11 cells are skipped")
}

func TestParseScreenerDocumentMissingTable(t *testing.T) {
	rows := parseScreenerDocument(docFromHTML(t, "<html><body><p>no results</p></body></html>"))
	assert.Empty(t, rows, "missing table is empty data, not an error")
}

func TestScreenOptionsQueryParams(t *testing.T) {
	params := ScreenOptions{Signal: "top_gainers", Sector: "Technology", MarketCap: "large"}.queryParams()

	assert.Equal(t, "111", params.Get("v"))
	assert.Equal(t, "ta_topgainers", params.Get("s"))
	assert.Equal(t, "sec_technology,cap_large", params.Get("f"))
}

func TestScreenOptionsUnknownSignalIgnored(t *testing.T) {
	params := ScreenOptions{Signal: "moon_shot"}.queryParams()
	assert.Empty(t, params.Get("s"))
}
