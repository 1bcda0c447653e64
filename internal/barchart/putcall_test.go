package barchart

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

const structuredTotalsHTML = `<html><body>
<div class="bc-ratios-summary">
	<table>
		<tr><td>Put Volume Total</td><td><b>120,000</b></td></tr>
		<tr><td>Call Volume Total</td><td><b>100,000</b></td></tr>
		<tr><td>Put/Call Volume Ratio</td><td><b>1.20</b></td></tr>
		<tr><td>Put Open Interest Total</td><td><b>500,000</b></td></tr>
		<tr><td>Call Open Interest Total</td><td><b>400,000</b></td></tr>
		<tr><td>Put/Call Open Interest Ratio</td><td><b>1.25</b></td></tr>
	</table>
</div>
</body></html>`

func TestExtractTotalsBlock(t *testing.T) {
	totals := extractTotalsBlock(docFromHTML(t, structuredTotalsHTML))

	assert.Equal(t, 120000.0, totals.PutVolume)
	assert.Equal(t, 100000.0, totals.CallVolume)
	assert.Equal(t, 1.20, totals.VolumeRatio)
	assert.Equal(t, 500000.0, totals.PutOpenInterest)
	assert.Equal(t, 400000.0, totals.CallOpenInterest)
	assert.Equal(t, 1.25, totals.OIRatio)
}

func TestExtractTotalsBlockAbsent(t *testing.T) {
	totals := extractTotalsBlock(docFromHTML(t, "<html><body><p>nothing</p></body></html>"))
	assert.Zero(t, totals.PutVolume)
	assert.Zero(t, totals.CallVolume)
}

func TestExtractTotalsRegex(t *testing.T) {
	page := `Some page text. Put Volume Total: 75,500 and Call Volume Total: 151,000.
	Put/Call Volume Ratio 0.50. Put Open Interest Total 200,000,
	Call Open Interest Total 800,000, Put/Call Open Interest Ratio 0.25.`

	totals := extractTotalsRegex(page)

	assert.Equal(t, 75500.0, totals.PutVolume)
	assert.Equal(t, 151000.0, totals.CallVolume)
	assert.Equal(t, 0.50, totals.VolumeRatio)
	assert.Equal(t, 200000.0, totals.PutOpenInterest)
	assert.Equal(t, 800000.0, totals.CallOpenInterest)
	assert.Equal(t, 0.25, totals.OIRatio)
}

func expirationRow(date string, putVol, callVol, volRatio, putOI, callOI, oiRatio string) string {
	return `<tr><td>` + date + `</td><td>` + putVol + `</td><td>` + callVol + `</td><td>` + volRatio +
		`</td><td>` + putOI + `</td><td>` + callOI + `</td><td>` + oiRatio + `</td></tr>`
}

func TestExtractExpirationRows(t *testing.T) {
	html := `<table>
		<tr><td>Expiration</td><td>Put Vol</td><td>Call Vol</td><td>Ratio</td><td>Put OI</td><td>Call OI</td><td>OI Ratio</td></tr>` +
		expirationRow("01/17/25", "1,000", "2,000", "0.50", "5,000", "10,000", "0.50") +
		expirationRow("2025-02-21", "3,000", "2,000", "", "6,000", "3,000", "") +
		expirationRow("Mar 21", "500", "400", "1.25", "700", "350", "2.00") +
		`<tr><td>Totals</td><td>4,500</td><td>4,400</td><td>1.02</td><td>11,700</td><td>13,350</td><td>0.88</td></tr>
	</table>`

	rows := extractExpirationRows(docFromHTML(t, html))

	require.Len(t, rows, 3, "header and non-date rows are skipped")
	assert.Equal(t, "01/17/25", rows[0].ExpirationDate)
	assert.Equal(t, 0.50, rows[0].PutCallVolumeRatio)

	// Missing ratio cells are computed from the raw pair.
	assert.Equal(t, "2025-02-21", rows[1].ExpirationDate)
	assert.InDelta(t, 1.5, rows[1].PutCallVolumeRatio, 0.001)
	assert.InDelta(t, 2.0, rows[1].PutCallOIRatio, 0.001)

	assert.Equal(t, "Mar 21", rows[2].ExpirationDate)
}

func TestParsePrefersStructuredTotalsOverRowSums(t *testing.T) {
	html := structuredTotalsHTML[:strings.Index(structuredTotalsHTML, "</body>")] +
		`<table>` +
		expirationRow("01/17/25", "10", "20", "0.50", "30", "40", "0.75") +
		`</table></body></html>`

	analysis := Parse(docFromHTML(t, html), "AAPL")

	assert.Equal(t, 120000.0, analysis.TotalPutVolume, "extracted totals beat row sums")
	assert.Equal(t, 1.20, analysis.PutCallVolumeRatio)
	require.Len(t, analysis.Expirations, 1)
	assert.Equal(t, "01/17/25", analysis.Expirations[0].ExpirationDate)
}

func TestParseFallsBackToRowSums(t *testing.T) {
	html := `<html><body><table>` +
		expirationRow("01/17/25", "1,000", "2,000", "0.50", "5,000", "10,000", "0.50") +
		expirationRow("02/21/25", "2,000", "2,000", "1.00", "5,000", "10,000", "0.50") +
		`</table></body></html>`

	analysis := Parse(docFromHTML(t, html), "AAPL")

	assert.Equal(t, 3000.0, analysis.TotalPutVolume)
	assert.Equal(t, 4000.0, analysis.TotalCallVolume)
	assert.InDelta(t, 0.75, analysis.PutCallVolumeRatio, 0.001)
	assert.Equal(t, 10000.0, analysis.TotalPutOI)
	assert.Equal(t, 20000.0, analysis.TotalCallOI)
	assert.True(t, analysis.Validation.IsValid)
}

func TestParseSynthesizesOverallRow(t *testing.T) {
	analysis := Parse(docFromHTML(t, structuredTotalsHTML), "AAPL")

	require.Len(t, analysis.Expirations, 1)
	assert.Equal(t, "Overall", analysis.Expirations[0].ExpirationDate)
	assert.Equal(t, 120000.0, analysis.Expirations[0].PutVolume)
	assert.Equal(t, 1.20, analysis.Expirations[0].PutCallVolumeRatio)
}

func TestParseEmptyPageInvalid(t *testing.T) {
	analysis := Parse(docFromHTML(t, "<html><body><p>maintenance</p></body></html>"), "AAPL")

	assert.False(t, analysis.Validation.IsValid)
	require.NotEmpty(t, analysis.Validation.Warnings)
	assert.Contains(t, analysis.Validation.Warnings[0], "no put/call data")
	assert.Empty(t, analysis.Expirations)
}
