// Package barchart scrapes the options put/call ratio page and derives
// a sentiment classification. Extraction runs as an ordered fallback
// chain: a structured totals block, then whole-page regex matching,
// then summing per-expiration table rows. The three sources are
// reconciled and disagreements surface as warnings, never errors.
package barchart

// ExpirationRatio is the put/call data for one option expiration date.
// A synthetic "Overall" entry is synthesized when aggregate totals were
// found but no per-expiration rows were.
type ExpirationRatio struct {
	ExpirationDate     string  `json:"expiration_date"`
	PutVolume          float64 `json:"put_volume"`
	CallVolume         float64 `json:"call_volume"`
	PutCallVolumeRatio float64 `json:"put_call_volume_ratio"`
	PutOpenInterest    float64 `json:"put_open_interest"`
	CallOpenInterest   float64 `json:"call_open_interest"`
	PutCallOIRatio     float64 `json:"put_call_oi_ratio"`
}

// totals carries the six aggregate quantities a page can report.
type totals struct {
	PutVolume        float64
	CallVolume       float64
	VolumeRatio      float64
	PutOpenInterest  float64
	CallOpenInterest float64
	OIRatio          float64
}

// Validation describes extraction confidence for one analysis.
type Validation struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// Analysis is the full put/call ratio result for one ticker.
type Analysis struct {
	Ticker             string            `json:"ticker"`
	CurrentPrice       float64           `json:"current_price,omitempty"`
	TotalPutVolume     float64           `json:"total_put_volume"`
	TotalCallVolume    float64           `json:"total_call_volume"`
	PutCallVolumeRatio float64           `json:"put_call_volume_ratio"`
	TotalPutOI         float64           `json:"total_put_open_interest"`
	TotalCallOI        float64           `json:"total_call_open_interest"`
	PutCallOIRatio     float64           `json:"put_call_oi_ratio"`
	Expirations        []ExpirationRatio `json:"expirations"`
	Sentiment          string            `json:"sentiment"`
	Insights           []string          `json:"insights"`
	Validation         Validation        `json:"validation"`
}

// Sentiment classifications.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)
