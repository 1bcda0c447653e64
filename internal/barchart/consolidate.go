package barchart

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ratioTolerance is the allowed disagreement between an extracted ratio
// and the ratio recomputed from its raw totals before a warning fires.
const ratioTolerance = 0.1

// currentPriceSelectors pull the last trade price out of the page,
// checked in order against the quote header variants.
var currentPriceSelectors = []string{
	".last-change .last-price",
	"span.last-price",
	".bc-quote-last-price",
}

// Parse runs the full extraction chain over a fetched page and returns
// the consolidated analysis. Each fallback stage only contributes where
// the prior stage produced nothing useful.
func Parse(doc *goquery.Document, ticker string) *Analysis {
	extracted := extractTotalsBlock(doc)

	// Stage 2: regex over the whole page, only when the structured
	// block gave no volume totals at all.
	if extracted.PutVolume == 0 && extracted.CallVolume == 0 {
		extracted = extractTotalsRegex(doc.Text())
	}

	// Stage 3 runs unconditionally: per-expiration rows are wanted in
	// the output regardless of whether totals were found above.
	expirations := extractExpirationRows(doc)

	analysis := consolidate(ticker, extracted, expirations)
	analysis.CurrentPrice = extractCurrentPrice(doc)
	analysis.Sentiment, analysis.Insights = classifySentiment(analysis)
	analysis.Validation = validate(analysis, extracted)
	return analysis
}

// consolidate merges extracted totals with per-expiration rows.
// Extracted totals take precedence; row sums fill in only when both
// extracted volume (or OI) totals are zero. Ratios prefer the extracted
// value, else put/call computed from the consolidated totals.
func consolidate(ticker string, extracted totals, expirations []ExpirationRatio) *Analysis {
	analysis := &Analysis{
		Ticker:      ticker,
		Expirations: expirations,
	}

	var sumPutVol, sumCallVol, sumPutOI, sumCallOI float64
	for _, row := range expirations {
		sumPutVol += row.PutVolume
		sumCallVol += row.CallVolume
		sumPutOI += row.PutOpenInterest
		sumCallOI += row.CallOpenInterest
	}

	analysis.TotalPutVolume = extracted.PutVolume
	analysis.TotalCallVolume = extracted.CallVolume
	if analysis.TotalPutVolume == 0 && analysis.TotalCallVolume == 0 {
		analysis.TotalPutVolume = sumPutVol
		analysis.TotalCallVolume = sumCallVol
	}

	analysis.TotalPutOI = extracted.PutOpenInterest
	analysis.TotalCallOI = extracted.CallOpenInterest
	if analysis.TotalPutOI == 0 && analysis.TotalCallOI == 0 {
		analysis.TotalPutOI = sumPutOI
		analysis.TotalCallOI = sumCallOI
	}

	analysis.PutCallVolumeRatio = extracted.VolumeRatio
	if analysis.PutCallVolumeRatio == 0 && analysis.TotalCallVolume > 0 {
		analysis.PutCallVolumeRatio = analysis.TotalPutVolume / analysis.TotalCallVolume
	}

	analysis.PutCallOIRatio = extracted.OIRatio
	if analysis.PutCallOIRatio == 0 && analysis.TotalCallOI > 0 {
		analysis.PutCallOIRatio = analysis.TotalPutOI / analysis.TotalCallOI
	}

	// Downstream consumers always get at least one row when any data
	// exists: synthesize an aggregate entry from the totals.
	if len(analysis.Expirations) == 0 && (analysis.TotalPutVolume > 0 || analysis.TotalCallVolume > 0 ||
		analysis.TotalPutOI > 0 || analysis.TotalCallOI > 0) {
		analysis.Expirations = []ExpirationRatio{{
			ExpirationDate:     "Overall",
			PutVolume:          analysis.TotalPutVolume,
			CallVolume:         analysis.TotalCallVolume,
			PutCallVolumeRatio: analysis.PutCallVolumeRatio,
			PutOpenInterest:    analysis.TotalPutOI,
			CallOpenInterest:   analysis.TotalCallOI,
			PutCallOIRatio:     analysis.PutCallOIRatio,
		}}
	}

	return analysis
}

// validate applies the restructured validator contract: invalid only
// when every total is zero; everything else downgrades to warnings.
func validate(analysis *Analysis, extracted totals) Validation {
	v := Validation{IsValid: true}

	if analysis.TotalPutVolume == 0 && analysis.TotalCallVolume == 0 &&
		analysis.TotalPutOI == 0 && analysis.TotalCallOI == 0 {
		return Validation{
			IsValid:  false,
			Warnings: []string{"no put/call data extracted from page"},
		}
	}

	if analysis.PutCallVolumeRatio > 10 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("unusually high put/call volume ratio: %.2f", analysis.PutCallVolumeRatio))
	}
	if analysis.PutCallOIRatio > 5 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("unusually high put/call open interest ratio: %.2f", analysis.PutCallOIRatio))
	}

	// Ratio had to be computed from totals rather than read off the page.
	if extracted.VolumeRatio == 0 && (analysis.TotalPutVolume > 0 || analysis.TotalCallVolume > 0) {
		v.Warnings = append(v.Warnings, "volume ratio computed from totals, not extracted")
	}
	if extracted.OIRatio == 0 && (analysis.TotalPutOI > 0 || analysis.TotalCallOI > 0) {
		v.Warnings = append(v.Warnings, "open interest ratio computed from totals, not extracted")
	}

	// Reconcile the extracted ratio against the one recomputed from the
	// raw totals.
	if extracted.VolumeRatio > 0 && analysis.TotalCallVolume > 0 {
		computed := analysis.TotalPutVolume / analysis.TotalCallVolume
		if math.Abs(computed-extracted.VolumeRatio) > ratioTolerance {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"extracted volume ratio %.2f disagrees with computed %.2f", extracted.VolumeRatio, computed))
		}
	}

	return v
}

func extractCurrentPrice(doc *goquery.Document) float64 {
	for _, selector := range currentPriceSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if v := priceFromText(text); v > 0 {
			return v
		}
	}
	return 0
}

func priceFromText(text string) float64 {
	cleaned := strings.TrimSpace(strings.Trim(text, "$"))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	var v float64
	if _, err := fmt.Sscanf(cleaned, "%f", &v); err != nil {
		return 0
	}
	return v
}
