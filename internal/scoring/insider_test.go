package scoring

import (
	"testing"
	"time"
)

var insiderNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func tx(daysAgo int, txType string, value float64) Transaction {
	return Transaction{
		Insider:      "DOE JANE",
		Relationship: "CEO",
		Date:         insiderNow.AddDate(0, 0, -daysAgo),
		Type:         txType,
		Value:        value,
	}
}

func TestCalculateInsiderSentimentNoQualifyingTransactions(t *testing.T) {
	transactions := []Transaction{
		tx(10, "Buy", 10_000),   // below value floor
		tx(200, "Buy", 500_000), // outside window
		tx(5, "Option grant", 300_000), // matches neither keyword set
	}

	result := CalculateInsiderSentiment("AAPL", transactions, InsiderOptions{Now: insiderNow})

	if result.Sentiment != SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral", result.Sentiment)
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
	if result.TotalTransactions != 0 {
		t.Errorf("total_transactions = %d, want 0", result.TotalTransactions)
	}
	if len(result.Insights) != 1 {
		t.Fatalf("insights = %v, want exactly the no-activity insight", result.Insights)
	}
}

func TestCalculateInsiderSentimentBullish(t *testing.T) {
	transactions := []Transaction{
		tx(5, "Buy", 800_000),
		tx(10, "Purchase", 400_000),
		tx(15, "Sale", 100_000),
	}

	result := CalculateInsiderSentiment("AAPL", transactions, InsiderOptions{Now: insiderNow})

	if result.Sentiment != SentimentBullish {
		t.Errorf("sentiment = %q, want bullish (buy ratio %.2f)", result.Sentiment, result.BuyRatio)
	}
	if result.BuyCount != 2 || result.SellCount != 1 {
		t.Errorf("counts = %d/%d, want 2 buys / 1 sell", result.BuyCount, result.SellCount)
	}
	wantRatio := 1_200_000.0 / 1_300_000.0
	if diff := result.BuyRatio - wantRatio; diff > 0.001 || diff < -0.001 {
		t.Errorf("buy_ratio = %v, want %v", result.BuyRatio, wantRatio)
	}
}

func TestCalculateInsiderSentimentBearish(t *testing.T) {
	transactions := []Transaction{
		tx(5, "Sale", 900_000),
		tx(10, "Sale", 600_000),
		tx(15, "Buy", 100_000),
	}

	result := CalculateInsiderSentiment("AAPL", transactions, InsiderOptions{Now: insiderNow})

	if result.Sentiment != SentimentBearish {
		t.Errorf("sentiment = %q, want bearish (buy ratio %.2f)", result.Sentiment, result.BuyRatio)
	}
}

func TestCalculateInsiderSentimentConfidenceGates(t *testing.T) {
	// 10 transactions totaling over $1M: high confidence.
	var many []Transaction
	for i := 0; i < 10; i++ {
		many = append(many, tx(i+1, "Buy", 150_000))
	}
	result := CalculateInsiderSentiment("AAPL", many, InsiderOptions{Now: insiderNow})
	if result.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want high", result.Confidence)
	}

	// 5 transactions totaling $600K: medium.
	result = CalculateInsiderSentiment("AAPL", many[:5], InsiderOptions{Now: insiderNow, MinTransactionValue: 50_000})
	if result.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", result.Confidence)
	}

	// 2 transactions: low even at high value.
	result = CalculateInsiderSentiment("AAPL", many[:2], InsiderOptions{Now: insiderNow})
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
}

func TestCalculateInsiderSentimentExerciseCountsAsBuy(t *testing.T) {
	transactions := []Transaction{
		tx(5, "Option Exercise", 500_000),
		tx(6, "Conversion of derivative", 200_000),
	}
	result := CalculateInsiderSentiment("AAPL", transactions, InsiderOptions{Now: insiderNow})
	if result.BuyCount != 2 {
		t.Errorf("buy_count = %d, want 2 (exercise and conversion are buys)", result.BuyCount)
	}
}

func TestCalculateInsiderSentimentByRelationship(t *testing.T) {
	transactions := []Transaction{
		{Relationship: "CEO", Date: insiderNow.AddDate(0, 0, -3), Type: "Buy", Value: 400_000},
		{Relationship: "CEO", Date: insiderNow.AddDate(0, 0, -4), Type: "Sale", Value: 100_000},
		{Relationship: "Director", Date: insiderNow.AddDate(0, 0, -5), Type: "Buy", Value: 60_000},
	}

	result := CalculateInsiderSentiment("AAPL", transactions, InsiderOptions{Now: insiderNow})

	ceo := result.ByRelationship["CEO"]
	if ceo.Buys != 1 || ceo.Sells != 1 {
		t.Errorf("CEO activity = %+v, want 1 buy / 1 sell", ceo)
	}
	if ceo.BuyValue != 400_000 {
		t.Errorf("CEO buy value = %v, want 400000", ceo.BuyValue)
	}
	director := result.ByRelationship["Director"]
	if director.Buys != 1 {
		t.Errorf("Director activity = %+v, want 1 buy", director)
	}
}

func TestClassifyTransaction(t *testing.T) {
	tests := []struct {
		txType string
		want   int
	}{
		{"Buy", 1},
		{"Purchase of stock", 1},
		{"Acquire (non open market)", 1},
		{"Option Exercise", 1},
		{"Sale", -1},
		{"Automatic Sell", -1},
		{"Disposition (gift)", -1},
		{"Option grant", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := classifyTransaction(tt.txType); got != tt.want {
			t.Errorf("classifyTransaction(%q) = %d, want %d", tt.txType, got, tt.want)
		}
	}
}
