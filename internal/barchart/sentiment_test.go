package barchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySentimentBearish(t *testing.T) {
	analysis := &Analysis{PutCallVolumeRatio: 1.5}

	sentiment, insights := classifySentiment(analysis)

	assert.Equal(t, SentimentBearish, sentiment)
	require.NotEmpty(t, insights)
	assert.Contains(t, insights[0], "1.50")
	assert.Contains(t, insights[0], "bearish")
}

func TestClassifySentimentBullish(t *testing.T) {
	analysis := &Analysis{PutCallVolumeRatio: 0.5, TotalCallVolume: 1000}

	sentiment, insights := classifySentiment(analysis)

	assert.Equal(t, SentimentBullish, sentiment)
	require.NotEmpty(t, insights)
	assert.Contains(t, insights[0], "0.50")
	assert.Contains(t, insights[0], "bullish")
}

func TestClassifySentimentZeroPutVolumeBullish(t *testing.T) {
	// No put buyers at all is the strongest bullish reading, not neutral.
	analysis := &Analysis{PutCallVolumeRatio: 0, TotalCallVolume: 2000}

	sentiment, _ := classifySentiment(analysis)

	assert.Equal(t, SentimentBullish, sentiment)
}

func TestClassifySentimentNoVolumeDataNeutral(t *testing.T) {
	sentiment, _ := classifySentiment(&Analysis{})

	assert.Equal(t, SentimentNeutral, sentiment)
}

func TestClassifySentimentNeutralBand(t *testing.T) {
	for _, ratio := range []float64{0.8, 1.0, 1.2} {
		sentiment, _ := classifySentiment(&Analysis{PutCallVolumeRatio: ratio})
		assert.Equal(t, SentimentNeutral, sentiment, "ratio %.2f should be neutral", ratio)
	}
}

func TestOpenInterestInsights(t *testing.T) {
	_, insights := classifySentiment(&Analysis{PutCallVolumeRatio: 1.0, PutCallOIRatio: 1.8})
	assert.Contains(t, joined(insights), "hedging activity")

	_, insights = classifySentiment(&Analysis{PutCallVolumeRatio: 1.0, PutCallOIRatio: 0.3})
	assert.Contains(t, joined(insights), "bullish positioning")

	// Absent data must not fire either insight.
	_, insights = classifySentiment(&Analysis{PutCallVolumeRatio: 1.0, PutCallOIRatio: 0})
	text := joined(insights)
	assert.NotContains(t, text, "hedging activity")
	assert.NotContains(t, text, "bullish positioning")
}

func TestTrendInsight(t *testing.T) {
	rows := func(ratios ...float64) []ExpirationRatio {
		out := make([]ExpirationRatio, len(ratios))
		for i, r := range ratios {
			out[i] = ExpirationRatio{PutCallVolumeRatio: r}
		}
		return out
	}

	assert.Contains(t, trendInsight(rows(0.5, 0.8, 1.1)), "increasing")
	assert.Contains(t, trendInsight(rows(1.1, 0.8, 0.5)), "decreasing")
	assert.Empty(t, trendInsight(rows(0.5, 1.1, 0.8)), "non-monotonic sequence stays silent")
	assert.Empty(t, trendInsight(rows(0.5, 0.5, 0.8)), "plateau is not strictly monotonic")
	assert.Empty(t, trendInsight(rows(0.5, 0.8)), "needs three rows")
}

func TestValidateWarnings(t *testing.T) {
	// Unusually high ratios warn but stay valid.
	analysis := &Analysis{
		TotalPutVolume: 11000, TotalCallVolume: 1000,
		PutCallVolumeRatio: 11.0,
		TotalPutOI:         6000, TotalCallOI: 1000,
		PutCallOIRatio: 6.0,
	}
	v := validate(analysis, totals{VolumeRatio: 11.0, OIRatio: 6.0, PutVolume: 11000, CallVolume: 1000, PutOpenInterest: 6000, CallOpenInterest: 1000})

	assert.True(t, v.IsValid)
	assert.Contains(t, joined(v.Warnings), "unusually high put/call volume ratio")
	assert.Contains(t, joined(v.Warnings), "unusually high put/call open interest ratio")
}

func TestValidateReconciliationWarning(t *testing.T) {
	// Extracted ratio disagrees with put/call computed from totals by
	// more than the tolerance.
	analysis := &Analysis{
		TotalPutVolume: 1000, TotalCallVolume: 1000,
		PutCallVolumeRatio: 2.0,
	}
	v := validate(analysis, totals{VolumeRatio: 2.0, PutVolume: 1000, CallVolume: 1000})

	assert.True(t, v.IsValid)
	assert.Contains(t, joined(v.Warnings), "disagrees with computed")
}

func joined(items []string) string {
	out := ""
	for _, s := range items {
		out += s + "\n"
	}
	return out
}
