// Package scoring provides pure calculation functions for financial
// health and insider sentiment heuristics. All functions are stateless
// and perform no I/O.
package scoring

import "time"

// Weights control the contribution of each health component. They are
// not required to sum to 1 and are deliberately not normalized: callers
// overriding a single weight scale the overall score accordingly.
type Weights struct {
	Profitability float64 `json:"profitability"`
	Liquidity     float64 `json:"liquidity"`
	Leverage      float64 `json:"leverage"`
	Efficiency    float64 `json:"efficiency"`
	Growth        float64 `json:"growth"`
}

// DefaultWeights returns the standard component weighting.
func DefaultWeights() Weights {
	return Weights{
		Profitability: 0.30,
		Liquidity:     0.20,
		Leverage:      0.20,
		Efficiency:    0.15,
		Growth:        0.15,
	}
}

// HealthInputs are the metric display strings a health score is derived
// from. Empty strings and "-" placeholders mean the metric is absent.
type HealthInputs struct {
	ProfitMargin string
	ROE          string
	CurrentRatio string
	DebtToEquity string
	PE           string
	EPSGrowth    string
}

// ComponentScore is one sub-score with its interpretation.
type ComponentScore struct {
	Score          float64 `json:"score"` // 0-100
	Interpretation string  `json:"interpretation"`
}

// HealthScore is the weighted overall financial health result.
type HealthScore struct {
	Ticker        string         `json:"ticker"`
	Profitability ComponentScore `json:"profitability"`
	Liquidity     ComponentScore `json:"liquidity"`
	Leverage      ComponentScore `json:"leverage"`
	Efficiency    ComponentScore `json:"efficiency"`
	Growth        ComponentScore `json:"growth"`
	Overall       int            `json:"overall"` // 0-100, weighted and rounded
	Rating        string         `json:"rating"`
	Weights       Weights        `json:"weights"`
}

// Rating bands for the overall score.
const (
	RatingExcellent    = "Excellent"
	RatingGood         = "Good"
	RatingFair         = "Fair"
	RatingBelowAverage = "Below Average"
	RatingPoor         = "Poor"
)

// Transaction is one insider transaction in calculation-ready form.
type Transaction struct {
	Insider      string
	Relationship string
	Date         time.Time
	Type         string  // raw transaction type text, e.g. "Sale", "Buy"
	Value        float64 // signed dollar value
}

// Sentiment classifications.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// Confidence levels for insider sentiment.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// RelationshipActivity aggregates buy/sell activity per insider role.
type RelationshipActivity struct {
	Buys      int     `json:"buys"`
	Sells     int     `json:"sells"`
	BuyValue  float64 `json:"buy_value"`
	SellValue float64 `json:"sell_value"`
}

// InsiderSentiment is the classification of recent insider activity.
type InsiderSentiment struct {
	Ticker            string                          `json:"ticker"`
	Sentiment         string                          `json:"sentiment"`
	Confidence        string                          `json:"confidence"`
	TotalTransactions int                             `json:"total_transactions"`
	BuyCount          int                             `json:"buy_count"`
	SellCount         int                             `json:"sell_count"`
	TotalBuyValue     float64                         `json:"total_buy_value"`
	TotalSellValue    float64                         `json:"total_sell_value"`
	BuyRatio          float64                         `json:"buy_ratio"`
	Insights          []string                        `json:"insights"`
	ByRelationship    map[string]RelationshipActivity `json:"by_relationship,omitempty"`
}

// InsiderOptions bound which transactions qualify for analysis.
type InsiderOptions struct {
	AnalysisPeriodDays  int     // rolling window from now, default 90
	MinTransactionValue float64 // absolute value floor, default 50000
	Now                 time.Time
}
