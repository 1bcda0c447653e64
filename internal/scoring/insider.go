package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Default qualification bounds for insider sentiment.
const (
	DefaultAnalysisPeriodDays  = 90
	DefaultMinTransactionValue = 50_000
)

// Buy ratio thresholds for classification.
const (
	bullishBuyRatio = 0.7
	bearishBuyRatio = 0.3
)

// Confidence gates: both the count and the total dollar value must
// clear the bar.
const (
	highConfidenceCount   = 10
	highConfidenceValue   = 1_000_000
	mediumConfidenceCount = 5
	mediumConfidenceValue = 500_000
)

// buyKeywords and sellKeywords classify a transaction type by keyword.
// Types matching neither bucket are excluded from both totals.
var buyKeywords = []string{"buy", "purchase", "acquire", "exercise", "conversion"}
var sellKeywords = []string{"sell", "sale", "dispose", "gift"}

// classifyTransaction returns +1 for a buy, -1 for a sell, 0 for
// neither.
func classifyTransaction(transactionType string) int {
	lower := strings.ToLower(transactionType)
	for _, kw := range buyKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	for _, kw := range sellKeywords {
		if strings.Contains(lower, kw) {
			return -1
		}
	}
	return 0
}

// CalculateInsiderSentiment classifies recent insider activity. Only
// transactions inside the analysis window and at or above the minimum
// absolute value qualify. Zero qualifying transactions short-circuits
// to neutral/low.
func CalculateInsiderSentiment(ticker string, transactions []Transaction, opts InsiderOptions) InsiderSentiment {
	if opts.AnalysisPeriodDays <= 0 {
		opts.AnalysisPeriodDays = DefaultAnalysisPeriodDays
	}
	if opts.MinTransactionValue <= 0 {
		opts.MinTransactionValue = DefaultMinTransactionValue
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	cutoff := now.AddDate(0, 0, -opts.AnalysisPeriodDays)

	result := InsiderSentiment{
		Ticker:         ticker,
		ByRelationship: make(map[string]RelationshipActivity),
	}

	for _, tx := range transactions {
		if tx.Date.Before(cutoff) || tx.Date.After(now) {
			continue
		}
		if math.Abs(tx.Value) < opts.MinTransactionValue {
			continue
		}

		direction := classifyTransaction(tx.Type)
		if direction == 0 {
			continue
		}

		result.TotalTransactions++
		value := math.Abs(tx.Value)
		activity := result.ByRelationship[tx.Relationship]
		if direction > 0 {
			result.BuyCount++
			result.TotalBuyValue += value
			activity.Buys++
			activity.BuyValue += value
		} else {
			result.SellCount++
			result.TotalSellValue += value
			activity.Sells++
			activity.SellValue += value
		}
		result.ByRelationship[tx.Relationship] = activity
	}

	if result.TotalTransactions == 0 {
		result.Sentiment = SentimentNeutral
		result.Confidence = ConfidenceLow
		result.ByRelationship = nil
		result.Insights = []string{fmt.Sprintf(
			"No significant insider activity in the last %d days", opts.AnalysisPeriodDays)}
		return result
	}

	totalValue := result.TotalBuyValue + result.TotalSellValue
	if totalValue > 0 {
		result.BuyRatio = result.TotalBuyValue / totalValue
	}

	switch {
	case result.BuyRatio >= bullishBuyRatio:
		result.Sentiment = SentimentBullish
		result.Insights = append(result.Insights, fmt.Sprintf(
			"Insiders are net buyers: %.0f%% of transaction value is buying", result.BuyRatio*100))
	case result.BuyRatio <= bearishBuyRatio:
		result.Sentiment = SentimentBearish
		result.Insights = append(result.Insights, fmt.Sprintf(
			"Insiders are net sellers: only %.0f%% of transaction value is buying", result.BuyRatio*100))
	default:
		result.Sentiment = SentimentNeutral
		result.Insights = append(result.Insights, fmt.Sprintf(
			"Mixed insider activity: %.0f%% of transaction value is buying", result.BuyRatio*100))
	}

	switch {
	case result.TotalTransactions >= highConfidenceCount && totalValue >= highConfidenceValue:
		result.Confidence = ConfidenceHigh
	case result.TotalTransactions >= mediumConfidenceCount && totalValue >= mediumConfidenceValue:
		result.Confidence = ConfidenceMedium
	default:
		result.Confidence = ConfidenceLow
	}

	result.Insights = append(result.Insights, fmt.Sprintf(
		"%d qualifying transactions totaling $%.0f over %d days",
		result.TotalTransactions, totalValue, opts.AnalysisPeriodDays))

	return result
}
