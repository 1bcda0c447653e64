package barchart

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/speculor/internal/parse"
)

// totalsBlockSelectors locate the structured summary block across page
// layout revisions.
var totalsBlockSelectors = []string{
	".bc-ratios-summary",
	".put-call-ratios-totals",
	".bc-futures-options-quotes-totals",
}

// totalsLabels map the six labeled summary quantities to their fields.
// Matching is case-insensitive on a contains basis so minor label
// rewordings keep working.
var totalsLabels = []struct {
	keyword string
	assign  func(*totals, float64)
}{
	{"put volume total", func(t *totals, v float64) { t.PutVolume = v }},
	{"call volume total", func(t *totals, v float64) { t.CallVolume = v }},
	{"put/call volume ratio", func(t *totals, v float64) { t.VolumeRatio = v }},
	{"put open interest total", func(t *totals, v float64) { t.PutOpenInterest = v }},
	{"call open interest total", func(t *totals, v float64) { t.CallOpenInterest = v }},
	{"put/call open interest ratio", func(t *totals, v float64) { t.OIRatio = v }},
}

// totalsPatterns are the whole-page regex fallbacks for the same six
// quantities, tolerant of comma-formatted numbers.
var totalsPatterns = []struct {
	re     *regexp.Regexp
	assign func(*totals, float64)
}{
	{regexp.MustCompile(`(?i)put\s+volume\s+total[^\d]*([\d,]+)`), func(t *totals, v float64) { t.PutVolume = v }},
	{regexp.MustCompile(`(?i)call\s+volume\s+total[^\d]*([\d,]+)`), func(t *totals, v float64) { t.CallVolume = v }},
	{regexp.MustCompile(`(?i)put/call\s+volume\s+ratio[^\d]*([\d.]+)`), func(t *totals, v float64) { t.VolumeRatio = v }},
	{regexp.MustCompile(`(?i)put\s+open\s+interest\s+total[^\d]*([\d,]+)`), func(t *totals, v float64) { t.PutOpenInterest = v }},
	{regexp.MustCompile(`(?i)call\s+open\s+interest\s+total[^\d]*([\d,]+)`), func(t *totals, v float64) { t.CallOpenInterest = v }},
	{regexp.MustCompile(`(?i)put/call\s+open\s+interest\s+ratio[^\d]*([\d.]+)`), func(t *totals, v float64) { t.OIRatio = v }},
}

// expirationDatePattern accepts slash dates, ISO dates, and month
// abbreviations as the first cell of a per-expiration row.
var expirationDatePattern = regexp.MustCompile(`(?i)^(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}|(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s-]+\d{1,2})`)

// extractTotalsBlock reads the six labeled quantities from the
// structured summary block, values taken from bolded cells. Returns a
// zero-valued totals when the block is absent.
func extractTotalsBlock(doc *goquery.Document) totals {
	var t totals

	var block *goquery.Selection
	for _, selector := range totalsBlockSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			block = sel
			break
		}
	}
	if block == nil {
		return t
	}

	block.Find("tr, li, .row").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(row.Text()))
		value := strings.TrimSpace(row.Find("b, strong").First().Text())
		if value == "" {
			return
		}
		for _, entry := range totalsLabels {
			if strings.Contains(label, entry.keyword) {
				entry.assign(&t, parse.Number(value))
				break
			}
		}
	})

	return t
}

// extractTotalsRegex scans the whole page text for the six labeled
// quantities. Only quantities still zero in the prior stage should be
// trusted from here; the caller decides precedence.
func extractTotalsRegex(pageText string) totals {
	var t totals
	for _, entry := range totalsPatterns {
		if m := entry.re.FindStringSubmatch(pageText); len(m) > 1 {
			entry.assign(&t, parse.Number(m[1]))
		}
	}
	return t
}

// extractExpirationRows scans every table row for a date-like first
// cell followed by at least six data cells. Cell layout per row:
// expiry, put volume, call volume, volume ratio, put OI, call OI,
// OI ratio. Missing or zero ratio cells are computed from the raw
// put/call pair.
func extractExpirationRows(doc *goquery.Document) []ExpirationRatio {
	var rows []ExpirationRatio

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 7 {
			return
		}

		first := strings.TrimSpace(cells.Eq(0).Text())
		if !expirationDatePattern.MatchString(first) {
			return
		}

		cell := func(idx int) float64 {
			return parse.Number(strings.TrimSpace(cells.Eq(idx).Text()))
		}

		row := ExpirationRatio{
			ExpirationDate:     first,
			PutVolume:          cell(1),
			CallVolume:         cell(2),
			PutCallVolumeRatio: cell(3),
			PutOpenInterest:    cell(4),
			CallOpenInterest:   cell(5),
			PutCallOIRatio:     cell(6),
		}

		if row.PutCallVolumeRatio == 0 && row.CallVolume > 0 {
			row.PutCallVolumeRatio = row.PutVolume / row.CallVolume
		}
		if row.PutCallOIRatio == 0 && row.CallOpenInterest > 0 {
			row.PutCallOIRatio = row.PutOpenInterest / row.CallOpenInterest
		}

		rows = append(rows, row)
	})

	return rows
}
